package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/repositories"
	"github.com/Dosada05/tt-championship/services"
)

type ChampionshipHandler struct {
	championshipService services.ChampionshipService
}

func NewChampionshipHandler(cs services.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{championshipService: cs}
}

// Create godoc
// @Summary Create a championship
// @Tags championships
// @Accept json
// @Produce json
// @Param input body services.CreateChampionshipInput true "Name, date and format"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /championships [post]
func (h *ChampionshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.CreateChampionship(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary List championships
// @Tags championships
// @Produce json
// @Param status query string false "created, groups, knockout or completed"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /championships [get]
func (h *ChampionshipHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListChampionshipsFilter
	query := r.URL.Query()

	if statusStr := query.Get("status"); statusStr != "" {
		status := models.ChampionshipStatus(statusStr)
		switch status {
		case models.StatusCreated, models.StatusGroups, models.StatusKnockout, models.StatusCompleted:
			filter.Status = &status
		default:
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}
	for param, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequestResponse(w, r, errors.New("invalid "+param+" query parameter"))
			return
		}
		*dst = n
	}

	championships, err := h.championshipService.ListChampionships(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championships": championships}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID godoc
// @Summary Get a championship with groups, standings and knockout
// @Tags championships
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /championships/{championshipID} [get]
func (h *ChampionshipHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GetChampionship(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Delete a championship
// @Tags championships
// @Param championshipID path string true "Championship ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /championships/{championshipID} [delete]
func (h *ChampionshipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.DeleteChampionship(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset godoc
// @Summary Drop groups and knockout, keeping roster and format
// @Tags championships
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /championships/{championshipID}/reset [post]
func (h *ChampionshipHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.Reset(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
