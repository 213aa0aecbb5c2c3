package db

import (
	"bytes"
	"errors"
	"testing"

	"escolas-map/models"

	"github.com/xuri/excelize/v2"
)

// workbook writes rows to the first sheet; nil cells are left empty
func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func header() []interface{} {
	cols := make([]interface{}, len(models.RequiredColumns))
	for i, c := range models.RequiredColumns {
		cols[i] = c
	}
	return cols
}

func TestLoadSchoolsFromExcel(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		header(),
		{"SP", "Campinas", "EE Carlos Gomes", -22.9, -47.06, 560.5, 520.25, 498.0, 610.75, 700.0, 577.9},
		{"SP", "Campinas", "EE Sem Nota", -22.8, -47.0, 500.0, nil, 480.0, 600.0, 650.0, 555.0},
		{"MG", "Uberaba", "EE Boa Vista", -19.7, -47.9, 470.0, 480.0, 460.0, 450.0, 520.0, 476.0},
		{"MG", nil, "EE Sem Regional", -19.6, -47.8, 470.0, 480.0, 460.0, 450.0, 520.0, 476.0},
		{"BA", "Salvador", "EE Texto", -12.9, -38.5, "n/d", 480.0, 460.0, 450.0, 520.0, 476.0},
	})

	snap, err := LoadSchoolsFromExcel(buf, "test.xlsx")
	if err != nil {
		t.Fatalf("LoadSchoolsFromExcel: %v", err)
	}
	if len(snap.Schools) != 2 {
		t.Fatalf("loaded %d schools, want 2", len(snap.Schools))
	}
	if snap.Dropped != 3 {
		t.Fatalf("dropped %d rows, want 3", snap.Dropped)
	}
	if snap.Source != "test.xlsx" || snap.Version.String() == "" {
		t.Fatalf("unexpected snapshot metadata: %+v", snap)
	}

	got := snap.Schools[0]
	want := models.School{
		UF: "SP", Regional: "Campinas", Name: "EE Carlos Gomes",
		Latitude: -22.9, Longitude: -47.06,
		LC: 560.5, CH: 520.25, CN: 498.0, MT: 610.75, Redacao: 700.0, MediaGeral: 577.9,
	}
	if got != want {
		t.Fatalf("first school = %+v, want %+v", got, want)
	}
}

func TestLoadSchoolsFromExcelDropCountMatchesIncompleteRows(t *testing.T) {
	complete := []interface{}{"PE", "Recife", "EE X", -8.05, -34.9, 500.0, 500.0, 500.0, 500.0, 500.0, 500.0}
	rows := [][]interface{}{header()}
	for i := 0; i < 10; i++ {
		row := append([]interface{}(nil), complete...)
		if i%3 == 0 {
			// blank a different column each time
			row[i%len(row)] = nil
		}
		rows = append(rows, row)
	}

	snap, err := LoadSchoolsFromExcel(workbook(t, rows), "drop.xlsx")
	if err != nil {
		t.Fatalf("LoadSchoolsFromExcel: %v", err)
	}
	// rows 0, 3, 6, 9 have a blank
	if snap.Dropped != 4 || len(snap.Schools) != 6 {
		t.Fatalf("dropped=%d loaded=%d, want 4 and 6", snap.Dropped, len(snap.Schools))
	}
}

func TestLoadSchoolsFromExcelColumnOrderAndExtras(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"EXTRA", "MEDIAS_MEDIA_GERAL", "ESCOLA", "UF", "REGIONAL", "LATITUDE", "LONGITUDE",
			"MEDIAS_LC", "MEDIAS_CH", "MEDIAS_CN", "MEDIAS_MT", "MEDIAS_REDACAO"},
		{"ignored", 555.5, "EE Ordem", "RS", "Pelotas", -31.7, -52.3, 1, 2, 3, 4, 5},
	})

	snap, err := LoadSchoolsFromExcel(buf, "order.xlsx")
	if err != nil {
		t.Fatalf("LoadSchoolsFromExcel: %v", err)
	}
	if len(snap.Schools) != 1 {
		t.Fatalf("loaded %d schools", len(snap.Schools))
	}
	s := snap.Schools[0]
	if s.MediaGeral != 555.5 || s.UF != "RS" || s.LC != 1 || s.Redacao != 5 {
		t.Fatalf("unexpected school: %+v", s)
	}
}

func TestLoadSchoolsFromExcelMissingColumn(t *testing.T) {
	h := header()[:len(models.RequiredColumns)-1] // no MEDIAS_MEDIA_GERAL
	buf := workbook(t, [][]interface{}{h})

	_, err := LoadSchoolsFromExcel(buf, "missing.xlsx")
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestLoadSchoolsFromExcelRejectsGarbage(t *testing.T) {
	if _, err := LoadSchoolsFromExcel(bytes.NewBufferString("not a workbook"), "bad.xlsx"); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}

func TestLoadSchoolsFromFileMissing(t *testing.T) {
	if _, err := LoadSchoolsFromFile("does-not-exist.xlsx"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
