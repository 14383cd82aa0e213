package api

import (
	"net/http"

	"github.com/sherpa-labs/sherpa/internal/chart"
	"github.com/sherpa-labs/sherpa/internal/flatfile"
	"github.com/sherpa-labs/sherpa/internal/store"
)

type ChartsHandler struct {
	compasses store.CompassStore
	table     *flatfile.File
}

func NewChartsHandler(c store.CompassStore, table *flatfile.File) *ChartsHandler {
	return &ChartsHandler{compasses: c, table: table}
}

// Quadrant plots saved compasses on one axis pair. The kind query
// parameter selects the pair and defaults to service/research.
func (h *ChartsHandler) Quadrant(w http.ResponseWriter, r *http.Request) {
	kind := chart.AxisServiceResearch
	if v := r.URL.Query().Get("kind"); v != "" {
		kind = chart.AxisKind(v)
		if !kind.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown axis pair"})
			return
		}
	}

	compasses, err := h.compasses.ListCompasses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, chart.CompassFigure(deref(compasses), kind))
}

// Map plots the imported subnet table as a landscape bubble chart.
func (h *ChartsHandler) Map(w http.ResponseWriter, r *http.Request) {
	rows, err := h.table.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	points := make([]chart.Point, len(rows))
	for i, row := range rows {
		points[i] = chart.Point{
			Label: row.Name,
			X:     row.ServiceResearch,
			Y:     row.IntelligenceResource,
			Score: row.Score,
			Notes: row.Notes,
		}
	}
	writeJSON(w, http.StatusOK, chart.QuadrantFigure(points))
}

// Scores ranks saved compasses by total score.
func (h *ChartsHandler) Scores(w http.ResponseWriter, r *http.Request) {
	compasses, err := h.compasses.ListCompasses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, chart.ScoreBarFigure(deref(compasses)))
}

func deref(compasses []*store.Compass) []store.Compass {
	out := make([]store.Compass, 0, len(compasses))
	for _, c := range compasses {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}
