package handlers

import (
	"net/http"

	"github.com/Dosada05/tt-championship/services"
)

type GroupHandler struct {
	championshipService services.ChampionshipService
}

func NewGroupHandler(cs services.ChampionshipService) *GroupHandler {
	return &GroupHandler{championshipService: cs}
}

// Generate godoc
// @Summary Seed athletes into groups and schedule the round robins
// @Tags groups
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /championships/{championshipID}/groups [post]
func (h *GroupHandler) Generate(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GenerateGroups(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetManual godoc
// @Summary Use a hand-made group assignment
// @Tags groups
// @Accept json
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Param input body services.ManualGroupsInput true "Athlete ids per group"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /championships/{championshipID}/groups [put]
func (h *GroupHandler) SetManual(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ManualGroupsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.SetManualGroups(r.Context(), championshipID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Standings godoc
// @Summary Current standings of a group
// @Tags groups
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Param groupID path string true "Group ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /championships/{championshipID}/groups/{groupID}/standings [get]
func (h *GroupHandler) Standings(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := idFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.championshipService.GetGroupStandings(r.Context(), championshipID, groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
