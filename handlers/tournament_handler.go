package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-bracket/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	rosterService services.RosterService
}

func NewTournamentHandler(rs services.RosterService) *TournamentHandler {
	return &TournamentHandler{
		rosterService: rs,
	}
}

// ListHandler обрабатывает GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := h.rosterService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": ids}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RosterHandler обрабатывает GET /tournaments/{tournamentID}/roster
func (h *TournamentHandler) RosterHandler(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.rosterService.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
