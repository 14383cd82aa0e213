package api

import (
	"net/http"

	"github.com/sherpa-labs/sherpa/internal/flatfile"
	"github.com/sherpa-labs/sherpa/internal/store"
)

type AdminHandler struct {
	frameworks store.FrameworkStore
	compasses  store.CompassStore
	subnets    store.SubnetStore
	table      *flatfile.File
	seeder     BackupSeeder
}

func NewAdminHandler(f store.FrameworkStore, c store.CompassStore, s store.SubnetStore, table *flatfile.File, seeder BackupSeeder) *AdminHandler {
	return &AdminHandler{frameworks: f, compasses: c, subnets: s, table: table, seeder: seeder}
}

type Stats struct {
	Frameworks       int `json:"frameworks"`
	ActiveFrameworks int `json:"active_frameworks"`
	Compasses        int `json:"compasses"`
	SubnetRecords    int `json:"subnet_records"`
	TableRows        int `json:"table_rows"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats Stats

	fws, err := h.frameworks.ListFrameworks(false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	stats.Frameworks = len(fws)
	for _, fw := range fws {
		if fw.Active {
			stats.ActiveFrameworks++
		}
	}

	compasses, err := h.compasses.ListCompasses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	stats.Compasses = len(compasses)

	if h.subnets != nil {
		recs, err := h.subnets.ListSubnets(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		stats.SubnetRecords = len(recs)
	}

	rows, err := h.table.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	stats.TableRows = len(rows)

	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) SeedBackups(w http.ResponseWriter, r *http.Request) {
	if h.seeder == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no backup seeder configured"})
		return
	}
	if err := h.seeder.SeedBackups(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}
