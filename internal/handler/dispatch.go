package handler

import (
	"net/http"

	"github.com/yonigrin7234/moveboss-pro-sub007/internal/service"
)

// GetWorklist handles GET /dispatch/worklist.
// Returns the loads needing dispatcher attention, most urgent first.
func (s *Server) GetWorklist(w http.ResponseWriter, r *http.Request) {
	entries, err := s.dispatch.Worklist(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []service.WorklistEntry `json:"data"`
	}{Data: entries})
}

// GetUrgencyCounts handles GET /dispatch/urgency-counts.
func (s *Server) GetUrgencyCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.dispatch.UrgencyCounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Counts map[string]int `json:"counts"`
	}{Counts: counts})
}
