package api

import (
	"encoding/json"
	"net/http"

	"github.com/sherpa-labs/sherpa/internal/catalog"
	"github.com/sherpa-labs/sherpa/internal/scoring"
	"github.com/sherpa-labs/sherpa/internal/store"
)

// EvaluateHandler scores one set of inputs without persisting anything.
type EvaluateHandler struct {
	frameworks store.FrameworkStore
}

func NewEvaluateHandler(f store.FrameworkStore) *EvaluateHandler {
	return &EvaluateHandler{frameworks: f}
}

type EvaluateRequest struct {
	Framework string `json:"framework,omitempty"`

	Service      map[string]float64 `json:"service_oriented_scores"`
	Research     map[string]float64 `json:"research_oriented_scores"`
	Intelligence map[string]float64 `json:"intelligence_oriented_scores"`
	Resource     map[string]float64 `json:"resource_oriented_scores"`

	AdditionalScores  map[string]float64                `json:"additional_criteria_scores"`
	AdditionalWeights map[string]store.AdditionalWeight `json:"additional_weights,omitempty"`
}

func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	weights := req.AdditionalWeights
	if len(weights) == 0 {
		fw, err := h.lookupFramework(req.Framework)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		weights = catalog.WeightSnapshot(fw.AdditionalCriteria)
	}

	result := scoring.Evaluate(scoring.Input{
		Service:           req.Service,
		Research:          req.Research,
		Intelligence:      req.Intelligence,
		Resource:          req.Resource,
		AdditionalScores:  req.AdditionalScores,
		AdditionalWeights: weights,
	})
	evaluationsTotal.Inc()

	writeJSON(w, http.StatusOK, result)
}

func (h *EvaluateHandler) lookupFramework(name string) (*store.Framework, error) {
	if name != "" {
		fw, err := h.frameworks.GetFramework(name)
		if err != nil {
			return nil, err
		}
		if fw != nil {
			return fw, nil
		}
	}
	return catalog.DefaultFramework(), nil
}
