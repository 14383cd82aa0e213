package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sherpa-labs/sherpa/internal/catalog"
	"github.com/sherpa-labs/sherpa/internal/events"
	"github.com/sherpa-labs/sherpa/internal/scoring"
	"github.com/sherpa-labs/sherpa/internal/store"
)

type CompassesHandler struct {
	store      store.CompassStore
	frameworks store.FrameworkStore
	subnets    store.SubnetStore
	events     events.Client
}

func NewCompassesHandler(s store.CompassStore, f store.FrameworkStore, sub store.SubnetStore, ev events.Client) *CompassesHandler {
	return &CompassesHandler{store: s, frameworks: f, subnets: sub, events: ev}
}

func (h *CompassesHandler) List(w http.ResponseWriter, r *http.Request) {
	compasses, err := h.store.ListCompasses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if compasses == nil {
		compasses = []*store.Compass{}
	}
	writeJSON(w, http.StatusOK, compasses)
}

func (h *CompassesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, err := h.store.GetCompass(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "compass not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Save recomputes every derived field before writing. The stored document
// is always internally consistent with its own inputs and weight snapshot,
// whatever the client sent in the derived slots.
func (h *CompassesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var c store.Compass
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if name := chi.URLParam(r, "name"); name != "" {
		c.Name = name
	}
	if c.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	// PUT updates the stored document in place; POST of a namesake gets a
	// fresh file with a counter suffix instead of clobbering it.
	if r.Method == http.MethodPut {
		existing, err := h.store.GetCompass(c.Name)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if existing != nil {
			c.FilePath = existing.FilePath
			c.CreatedAt = existing.CreatedAt
			if c.UID == "" {
				c.UID = existing.UID
			}
		}
	}
	if c.UID == "" {
		c.UID = uuid.NewString()
	}

	weights, err := h.resolveWeights(&c)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	c.Additional.Weights = weights

	result := scoring.Evaluate(scoring.Input{
		Service:           c.ServiceScores,
		Research:          c.ResearchScores,
		Intelligence:      c.IntelligenceScores,
		Resource:          c.ResourceScores,
		AdditionalScores:  c.Additional.Scores,
		AdditionalWeights: weights,
	})
	result.Apply(&c)
	evaluationsTotal.Inc()

	path, err := h.store.SaveCompass(&c)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	compassSavesTotal.Inc()

	if h.subnets != nil {
		if err := h.subnets.UpsertSubnet(r.Context(), recordFromCompass(&c)); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectCompassEvaluated(c.Name), events.CompassEvaluatedEvent{
			Name:       c.Name,
			TotalScore: c.TotalScore,
			Tier:       c.Tier,
		})
		_ = h.events.Publish(events.SubjectCompassSaved(c.Name), events.CompassSavedEvent{
			Name:       c.Name,
			UID:        c.UID,
			Framework:  c.Framework,
			TotalScore: c.TotalScore,
			Tier:       c.Tier,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "saved",
		"path":    path,
		"compass": &c,
	})
}

func (h *CompassesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, err := h.store.GetCompass(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "compass not found"})
		return
	}

	if err := h.store.DeleteCompass(name); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectCompassDeleted(name), events.CompassDeletedEvent{Name: name})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "name": name})
}

// resolveWeights picks the additional-criteria weight snapshot for a save:
// the referenced framework when it exists, then the snapshot already
// carried by the document, then the built-in catalog.
func (h *CompassesHandler) resolveWeights(c *store.Compass) (map[string]store.AdditionalWeight, error) {
	if c.Framework != "" {
		fw, err := h.frameworks.GetFramework(c.Framework)
		if err != nil {
			return nil, err
		}
		if fw != nil {
			return catalog.WeightSnapshot(fw.AdditionalCriteria), nil
		}
	}
	if len(c.Additional.Weights) > 0 {
		return c.Additional.Weights, nil
	}
	return catalog.WeightSnapshot(catalog.DefaultFramework().AdditionalCriteria), nil
}

// recordFromCompass flattens a compass into its SQL snapshot row. The row
// ID is the compass UID when it is a UUID, otherwise a name-derived UUID,
// so re-saving the same compass updates one row instead of creating more.
func recordFromCompass(c *store.Compass) *store.SubnetRecord {
	id, err := uuid.Parse(c.UID)
	if err != nil {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sherpa/compass/"+c.Name))
	}
	now := time.Now().UTC()
	return &store.SubnetRecord{
		ID:                   id,
		Name:                 c.Name,
		UID:                  c.UID,
		Description:          c.Description,
		ServiceScores:        c.ServiceScores,
		ResearchScores:       c.ResearchScores,
		IntelligenceScores:   c.IntelligenceScores,
		ResourceScores:       c.ResourceScores,
		Additional:           c.Additional,
		ServiceResearch:      c.ServiceResearch,
		IntelligenceResource: c.IntelligenceResource,
		TotalScore:           c.TotalScore,
		Tier:                 c.Tier,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
