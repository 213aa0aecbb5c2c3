package models

// Spreadsheet column names
const (
	ColUF         = "UF"
	ColRegional   = "REGIONAL"
	ColEscola     = "ESCOLA"
	ColLatitude   = "LATITUDE"
	ColLongitude  = "LONGITUDE"
	ColLC         = "MEDIAS_LC"
	ColCH         = "MEDIAS_CH"
	ColCN         = "MEDIAS_CN"
	ColMT         = "MEDIAS_MT"
	ColRedacao    = "MEDIAS_REDACAO"
	ColMediaGeral = "MEDIAS_MEDIA_GERAL"
)

// Selection sentinels for the state and regional filters
const (
	AllStates    = "Todos"
	AllRegionals = "Todas"
)

// RequiredColumns lists every column a school row must have, in load order.
var RequiredColumns = []string{
	ColUF, ColRegional, ColEscola, ColLatitude, ColLongitude,
	ColLC, ColCH, ColCN, ColMT, ColRedacao, ColMediaGeral,
}

// School represents one state school row
type School struct {
	UF         string  `json:"uf"`       // Brazilian state code
	Regional   string  `json:"regional"` // Regional school district
	Name       string  `json:"escola"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	LC         float64 `json:"mediasLc"`      // Linguagens e Códigos
	CH         float64 `json:"mediasCh"`      // Ciências Humanas
	CN         float64 `json:"mediasCn"`      // Ciências da Natureza
	MT         float64 `json:"mediasMt"`      // Matemática
	Redacao    float64 `json:"mediasRedacao"` // Redação
	MediaGeral float64 `json:"mediasMediaGeral"`
}

// Score returns the value of the given score column, false for unknown columns
func (s School) Score(column string) (float64, bool) {
	switch column {
	case ColLC:
		return s.LC, true
	case ColCH:
		return s.CH, true
	case ColCN:
		return s.CN, true
	case ColMT:
		return s.MT, true
	case ColRedacao:
		return s.Redacao, true
	case ColMediaGeral:
		return s.MediaGeral, true
	}
	return 0, false
}

// Subject pairs a display label with its score column
type Subject struct {
	Label  string `json:"label"`
	Column string `json:"column"`
}

// Subjects is the selectable subject list; the first entry is the default.
var Subjects = []Subject{
	{Label: "Redação", Column: ColRedacao},
	{Label: "Matemática", Column: ColMT},
	{Label: "Linguagens e Códigos", Column: ColLC},
	{Label: "Ciências da Natureza", Column: ColCN},
	{Label: "Ciências Humanas", Column: ColCH},
	{Label: "Média Geral", Column: ColMediaGeral},
}

// DefaultSubject is the subject selected when none (or an unknown one) is given
func DefaultSubject() Subject {
	return Subjects[0]
}

// SubjectByLabel looks up a subject by its display label
func SubjectByLabel(label string) (Subject, bool) {
	for _, s := range Subjects {
		if s.Label == label {
			return s, true
		}
	}
	return Subject{}, false
}

// Filter is the user's current selection
type Filter struct {
	State    string `json:"uf" form:"uf"`
	Regional string `json:"regional" form:"regional"`
	Subject  string `json:"disciplina" form:"disciplina"` // Subject label
}

// FilterOptions holds the values each dropdown may offer
type FilterOptions struct {
	States    []string `json:"ufs"`
	Regionals []string `json:"regionais"`
	Subjects  []string `json:"disciplinas"`
}
