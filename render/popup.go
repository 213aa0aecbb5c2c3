package render

import (
	"fmt"
	"html/template"
	"strings"

	"escolas-map/models"
)

const popupSeparator = "----------------------------------------------------"

var popupTmpl = template.Must(template.New("popup").Parse(`<b>{{.Name}}</b><br>
` + popupSeparator + `
<br>
Média da escola em cada área de conhecimento:<br>
{{range .Lines}}- {{.Label}}: {{.Value}}<br>
{{end}}` + popupSeparator + `
<b>Média Geral: {{.Overall}} </b> <br>
`))

type popupLine struct {
	Label string
	Value string
}

// popupSubjects lists the per-area lines in display order; the overall average closes the popup.
var popupSubjects = []models.Subject{
	{Label: "Redação", Column: models.ColRedacao},
	{Label: "Matemática", Column: models.ColMT},
	{Label: "Linguagens e Códigos", Column: models.ColLC},
	{Label: "Ciências da Natureza", Column: models.ColCN},
	{Label: "Ciências Humanas", Column: models.ColCH},
}

// Popup renders the HTML shown when a school marker is clicked
func Popup(s models.School) (string, error) {
	lines := make([]popupLine, 0, len(popupSubjects))
	for _, subj := range popupSubjects {
		v, _ := s.Score(subj.Column)
		lines = append(lines, popupLine{Label: subj.Label, Value: FormatScore(v)})
	}

	var sb strings.Builder
	err := popupTmpl.Execute(&sb, struct {
		Name    string
		Lines   []popupLine
		Overall string
	}{
		Name:    s.Name,
		Lines:   lines,
		Overall: FormatScore(s.MediaGeral),
	})
	if err != nil {
		return "", fmt.Errorf("render popup for %s: %w", s.Name, err)
	}
	return sb.String(), nil
}
