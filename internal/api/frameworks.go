package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sherpa-labs/sherpa/internal/events"
	"github.com/sherpa-labs/sherpa/internal/store"
)

type FrameworksHandler struct {
	store  store.FrameworkStore
	events events.Client
}

func NewFrameworksHandler(s store.FrameworkStore, ev events.Client) *FrameworksHandler {
	return &FrameworksHandler{store: s, events: ev}
}

func (h *FrameworksHandler) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	fws, err := h.store.ListFrameworks(onlyActive)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if fws == nil {
		fws = []*store.Framework{}
	}
	writeJSON(w, http.StatusOK, fws)
}

func (h *FrameworksHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	fw, err := h.store.GetFramework(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if fw == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "framework not found"})
		return
	}
	writeJSON(w, http.StatusOK, fw)
}

func (h *FrameworksHandler) Save(w http.ResponseWriter, r *http.Request) {
	var fw store.Framework
	if err := json.NewDecoder(r.Body).Decode(&fw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	// A name in the path wins over the body so PUT is unambiguous.
	if name := chi.URLParam(r, "name"); name != "" {
		fw.Name = name
	}
	if err := fw.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Updating a stored framework keeps its file and creation stamp
	// even when the request body omits them.
	if existing, err := h.store.GetFramework(fw.Name); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	} else if existing != nil {
		fw.FilePath = existing.FilePath
		if fw.CreatedAt == "" {
			fw.CreatedAt = existing.CreatedAt
		}
	}

	path, err := h.store.SaveFramework(&fw)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	frameworkSavesTotal.Inc()

	if h.events != nil {
		_ = h.events.Publish(events.SubjectFrameworkSaved(fw.Name), events.FrameworkSavedEvent{
			Name:    fw.Name,
			Version: fw.Version,
			Active:  fw.Active,
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "path": path})
}

func (h *FrameworksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	fw, err := h.store.GetFramework(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if fw == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "framework not found"})
		return
	}

	if err := h.store.DeleteFramework(name); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectFrameworkDeleted(name), events.FrameworkDeletedEvent{Name: name})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "name": name})
}

func (h *FrameworksHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *FrameworksHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *FrameworksHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	name := chi.URLParam(r, "name")
	fw, err := h.store.GetFramework(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if fw == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "framework not found"})
		return
	}

	fw.Active = active
	if _, err := h.store.SaveFramework(fw); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, fw)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
