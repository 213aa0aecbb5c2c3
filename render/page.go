package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"escolas-map/colorize"
	"escolas-map/models"
)

// Page is everything the dashboard shows for one filter selection
type Page struct {
	Filter   models.Filter
	Options  models.FilterOptions
	Map      *Map
	Palette  colorize.Palette
	ChartURL template.URL
	Source   string
	Version  string
	Dropped  int
}

// Render writes the dashboard HTML
func (p *Page) Render(w io.Writer) error {
	markers, err := p.Map.MarkersJSON()
	if err != nil {
		return err
	}

	data := struct {
		*Page
		Count           int
		Legend          []colorize.LegendEntry
		MarkersJSON     template.JS
		TileURL         string
		TileAttribution string
		TileSubdomains  string
		TileMaxZoom     int
	}{
		Page:            p,
		Count:           len(p.Map.Markers),
		Legend:          colorize.Legend(p.Palette, legendSwatchCount),
		MarkersJSON:     template.JS(markers),
		TileURL:         TileURL,
		TileAttribution: TileAttribution,
		TileSubdomains:  TileSubdomains,
		TileMaxZoom:     TileMaxZoom,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"score": FormatScore,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
   <meta charset="UTF-8"/>
   <meta name="viewport" content="width=device-width, initial-scale=1"/>
   <title>Mapa Interativo das Escolas Estaduais</title>
   <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
   <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
   <style>
      body { font-family: "Source Sans Pro", Arial, sans-serif; margin: 0 2rem 2rem; color: #31333f; }
      h1 { margin-top: 1.5rem; }
      .filters { display: flex; flex-wrap: wrap; gap: 1.5rem; margin: 1rem 0; }
      .filters label { display: flex; flex-direction: column; font-size: 0.9rem; gap: 0.3rem; }
      .filters select { min-width: 16rem; padding: 0.4rem; }
      #map { width: 1000px; max-width: 100%; height: 600px; border: 1px solid #ddd; }
      .legend { display: flex; gap: 1rem; margin: 0.8rem 0; font-size: 0.85rem; }
      .legend-item { display: flex; align-items: center; gap: 0.3rem; }
      .legend-color { width: 14px; height: 14px; border-radius: 50%; }
      .meta { color: #888; font-size: 0.8rem; }
      .chart { margin-top: 1.5rem; max-width: 100%; }
   </style>
</head>
<body>
   <h1>📍 Mapa Interativo das Escolas Estaduais</h1>
   <p>Use os filtros abaixo para visualizar os dados de desempenho por escola:</p>

   <form class="filters" method="get" action="/">
      <label>Selecione o Estado (UF):
         <select name="uf" onchange="this.form.submit()">
         {{- range .Options.States}}
            <option value="{{.}}"{{if eq . $.Filter.State}} selected{{end}}>{{.}}</option>
         {{- end}}
         </select>
      </label>
      <label>Selecione a Regional:
         <select name="regional" onchange="this.form.submit()">
         {{- range .Options.Regionals}}
            <option value="{{.}}"{{if eq . $.Filter.Regional}} selected{{end}}>{{.}}</option>
         {{- end}}
         </select>
      </label>
      <label>Selecione a Disciplina:
         <select name="disciplina" onchange="this.form.submit()">
         {{- range .Options.Subjects}}
            <option value="{{.}}"{{if eq . $.Filter.Subject}} selected{{end}}>{{.}}</option>
         {{- end}}
         </select>
      </label>
      <noscript><button type="submit">Aplicar</button></noscript>
   </form>

   <div id="map"></div>

   <div class="legend">
      <strong>{{.Map.Subject.Label}}:</strong>
      {{- range .Legend}}
      <div class="legend-item"><div class="legend-color" style="background-color: {{.Color}};"></div><span>{{score .Score}}</span></div>
      {{- end}}
   </div>
   <p class="meta">{{.Count}} escolas · fonte {{.Source}} · versão {{.Version}} · {{.Dropped}} linhas incompletas ignoradas</p>

   <img class="chart" src="{{.ChartURL}}" alt="Médias por área de conhecimento"/>

   <script>
      const markers = {{.MarkersJSON}};
      const map = L.map('map').setView([{{.Map.CenterLat}}, {{.Map.CenterLon}}], {{.Map.Zoom}});
      L.tileLayer({{.TileURL}}, {
         attribution: {{.TileAttribution}},
         subdomains: {{.TileSubdomains}},
         maxZoom: {{.TileMaxZoom}}
      }).addTo(map);
      L.geoJSON(markers, {
         pointToLayer: (feature, latlng) => L.circleMarker(latlng, {
            radius: feature.properties.radius,
            color: feature.properties.color,
            fill: true,
            fillColor: feature.properties.color,
            fillOpacity: feature.properties.fillOpacity
         }),
         onEachFeature: (feature, layer) => layer.bindPopup(feature.properties.popup, {
            maxWidth: feature.properties.popupMaxWidth
         })
      }).addTo(map);
   </script>
</body>
</html>
`))
