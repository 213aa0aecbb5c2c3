package db

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"escolas-map/logger"
	"escolas-map/models"

	"github.com/oklog/ulid/v2"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheets      = errors.New("excel file does not contain any sheets")
	ErrMissingColumn = errors.New("required column missing from header row")
)

// Snapshot is one immutable load of the school spreadsheet
type Snapshot struct {
	Version  ulid.ULID       `json:"version"`
	Source   string          `json:"source"`
	LoadedAt time.Time       `json:"loadedAt"`
	Schools  []models.School `json:"-"`
	Dropped  int             `json:"dropped"` // Rows skipped for missing or invalid fields
}

// LoadSchoolsFromFile opens path and loads it with LoadSchoolsFromExcel
func LoadSchoolsFromFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()
	return LoadSchoolsFromExcel(f, path)
}

// LoadSchoolsFromExcel reads the first sheet of a workbook and returns the complete school rows.
// Rows with any empty or unparseable required field are dropped.
func LoadSchoolsFromExcel(r io.Reader, source string) (*Snapshot, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.L().Warn("close excel file", "source", source, "err", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	// Raw values keep numbers free of the workbook's display formats
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", sheetName, ErrMissingColumn)
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheetName, err)
	}

	snap := &Snapshot{
		Version:  ulid.Make(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Schools:  make([]models.School, 0, len(rows)-1),
	}
	for i, row := range rows[1:] {
		school, err := parseRow(row, idx)
		if err != nil {
			// header is row 1 in the sheet
			logger.L().Debug("skipping incomplete row", "row", i+2, "err", err)
			snap.Dropped++
			continue
		}
		snap.Schools = append(snap.Schools, school)
	}

	logger.L().Info("loaded schools",
		"source", source,
		"sheet", sheetName,
		"rows", len(snap.Schools),
		"dropped", snap.Dropped,
		"version", snap.Version.String(),
	)
	return snap, nil
}

// columnIndex maps each required column to its position in the header row
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(models.RequiredColumns))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range models.RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (models.School, error) {
	var s models.School
	text := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("%s is empty", col)
		}
		v := strings.TrimSpace(row[i])
		if v == "" {
			return "", fmt.Errorf("%s is empty", col)
		}
		return v, nil
	}
	number := func(col string) (float64, error) {
		v, err := text(col)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", col, err)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%s is not a finite number", col)
		}
		return n, nil
	}

	var err error
	if s.UF, err = text(models.ColUF); err != nil {
		return s, err
	}
	if s.Regional, err = text(models.ColRegional); err != nil {
		return s, err
	}
	if s.Name, err = text(models.ColEscola); err != nil {
		return s, err
	}

	numbers := []struct {
		col string
		dst *float64
	}{
		{models.ColLatitude, &s.Latitude},
		{models.ColLongitude, &s.Longitude},
		{models.ColLC, &s.LC},
		{models.ColCH, &s.CH},
		{models.ColCN, &s.CN},
		{models.ColMT, &s.MT},
		{models.ColRedacao, &s.Redacao},
		{models.ColMediaGeral, &s.MediaGeral},
	}
	for _, n := range numbers {
		if *n.dst, err = number(n.col); err != nil {
			return s, err
		}
	}
	return s, nil
}
