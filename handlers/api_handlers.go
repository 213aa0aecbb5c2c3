package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"escolas-map/colorize"
	"escolas-map/db"
	"escolas-map/filter"
	"escolas-map/logger"
	"escolas-map/metrics"
	"escolas-map/models"
	"escolas-map/render"

	"github.com/gin-gonic/gin"
)

const geoJSONContentType = "application/geo+json"

// APIHandler holds the dependencies of the dashboard handlers
type APIHandler struct {
	Store       *db.Store
	Cache       db.MarkerCache
	Palette     colorize.Palette
	FallbackLat float64
	FallbackLon float64
}

// NewAPIHandler creates a new APIHandler. A nil cache disables marker caching.
func NewAPIHandler(store *db.Store, cache db.MarkerCache, palette colorize.Palette, fallbackLat, fallbackLon float64) *APIHandler {
	if cache == nil {
		cache = db.NoopCache{}
	}
	return &APIHandler{
		Store:       store,
		Cache:       cache,
		Palette:     palette,
		FallbackLat: fallbackLat,
		FallbackLon: fallbackLon,
	}
}

// view is one run of the load-filter pipeline for the request's selection
type view struct {
	snap    *db.Snapshot
	filter  models.Filter
	subject models.Subject
	schools []models.School
}

func (h *APIHandler) resolve(c *gin.Context) (*view, bool) {
	snap, err := h.Store.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "School data not loaded"})
		return nil, false
	}

	var f models.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return nil, false
	}
	f = filter.Normalize(snap.Schools, f)
	subject, _ := models.SubjectByLabel(f.Subject)

	return &view{
		snap:    snap,
		filter:  f,
		subject: subject,
		schools: filter.Apply(snap.Schools, f),
	}, true
}

func (v *view) query() url.Values {
	return url.Values{
		"uf":         {v.filter.State},
		"regional":   {v.filter.Regional},
		"disciplina": {v.filter.Subject},
	}
}

// --- Dashboard ---

// Dashboard handles GET /
func (h *APIHandler) Dashboard(c *gin.Context) {
	start := time.Now()
	v, ok := h.resolve(c)
	if !ok {
		return
	}

	m, err := render.BuildMap(v.schools, v.subject, h.Palette, h.FallbackLat, h.FallbackLon)
	if err != nil {
		logger.L().Error("build map", "filter", v.filter, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build map"})
		return
	}

	page := &render.Page{
		Filter:   v.filter,
		Options:  filter.Options(v.snap.Schools, v.filter),
		Map:      m,
		Palette:  h.Palette,
		ChartURL: template.URL("/chart.png?" + v.query().Encode()),
		Source:   v.snap.Source,
		Version:  v.snap.Version.String(),
		Dropped:  v.snap.Dropped,
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		logger.L().Error("render page", "filter", v.filter, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())

	metrics.PageRendersTotal.Inc()
	metrics.MarkersPerRender.Observe(float64(len(m.Markers)))
	metrics.RenderDurationMs.Observe(float64(time.Since(start).Milliseconds()))
}

// Chart handles GET /chart.png
func (h *APIHandler) Chart(c *gin.Context) {
	v, ok := h.resolve(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := render.AveragesChart(&buf, filter.SubjectAverages(v.schools), h.Palette)
	if errors.Is(err, render.ErrNoAverages) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schools match the filter"})
		return
	}
	if err != nil {
		logger.L().Error("render chart", "filter", v.filter, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render chart"})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// --- Data API ---

// GetOptions handles GET /api/options
func (h *APIHandler) GetOptions(c *gin.Context) {
	v, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filter":  v.filter,
		"options": filter.Options(v.snap.Schools, v.filter),
	})
}

// GetSchools handles GET /api/schools
func (h *APIHandler) GetSchools(c *gin.Context) {
	v, ok := h.resolve(c)
	if !ok {
		return
	}
	lat, lon, found := filter.Center(v.schools)
	if !found {
		lat, lon = h.FallbackLat, h.FallbackLon
	}
	c.JSON(http.StatusOK, gin.H{
		"filter":   v.filter,
		"count":    len(v.schools),
		"center":   []float64{lat, lon},
		"averages": filter.SubjectAverages(v.schools),
		"schools":  v.schools,
	})
}

// GetMarkers handles GET /api/markers, serving the GeoJSON from cache when possible
func (h *APIHandler) GetMarkers(c *gin.Context) {
	v, ok := h.resolve(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	key := db.MarkersKey(v.snap.Version, h.Palette.Name(), v.filter)

	cached, hit, err := h.Cache.Get(ctx, key)
	if err != nil {
		logger.L().Warn("marker cache get", "key", key, "err", err)
	}
	if hit {
		c.Data(http.StatusOK, geoJSONContentType, cached)
		return
	}

	m, err := render.BuildMap(v.schools, v.subject, h.Palette, h.FallbackLat, h.FallbackLon)
	if err != nil {
		logger.L().Error("build map", "filter", v.filter, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build markers"})
		return
	}
	body, err := m.MarkersJSON()
	if err != nil {
		logger.L().Error("marshal markers", "filter", v.filter, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build markers"})
		return
	}
	if err := h.Cache.Set(ctx, key, body); err != nil {
		logger.L().Warn("marker cache set", "key", key, "err", err)
	}
	metrics.MarkersPerRender.Observe(float64(len(m.Markers)))
	c.Data(http.StatusOK, geoJSONContentType, body)
}

// --- Import Handler ---

// ImportSchools handles POST /api/import, replacing the data set with the uploaded workbook
func (h *APIHandler) ImportSchools(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	logger.L().Info("received file upload", "filename", header.Filename, "size", header.Size)

	snap, err := db.LoadSchoolsFromExcel(file, header.Filename)
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("invalid").Inc()
		logger.L().Warn("import schools", "filename", header.Filename, "err", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Failed to import schools: " + err.Error()})
		return
	}
	h.Store.Replace(snap)
	metrics.ImportsTotal.WithLabelValues("ok").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": len(snap.Schools),
		"dropped":       snap.Dropped,
		"version":       snap.Version.String(),
	})
}

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
