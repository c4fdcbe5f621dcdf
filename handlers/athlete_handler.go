package handlers

import (
	"net/http"

	"github.com/Dosada05/tt-championship/services"
)

type AthleteHandler struct {
	championshipService services.ChampionshipService
}

func NewAthleteHandler(cs services.ChampionshipService) *AthleteHandler {
	return &AthleteHandler{championshipService: cs}
}

// Add godoc
// @Summary Register an athlete
// @Tags athletes
// @Accept json
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Param input body services.AthleteInput true "Athlete"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Roster locked"
// @Failure 422 {object} map[string]interface{}
// @Router /championships/{championshipID}/athletes [post]
func (h *AthleteHandler) Add(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AthleteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athlete, err := h.championshipService.AddAthlete(r.Context(), championshipID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"athlete": athlete}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Update an athlete
// @Tags athletes
// @Accept json
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Param athleteID path string true "Athlete ID"
// @Param input body services.AthleteInput true "Athlete"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /championships/{championshipID}/athletes/{athleteID} [put]
func (h *AthleteHandler) Update(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	athleteID, err := idFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AthleteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athlete, err := h.championshipService.UpdateAthlete(r.Context(), championshipID, athleteID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"athlete": athlete}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Remove godoc
// @Summary Remove an athlete
// @Tags athletes
// @Param championshipID path string true "Championship ID"
// @Param athleteID path string true "Athlete ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /championships/{championshipID}/athletes/{athleteID} [delete]
func (h *AthleteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	athleteID, err := idFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.RemoveAthlete(r.Context(), championshipID, athleteID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
