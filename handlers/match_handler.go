package handlers

import (
	"net/http"

	"github.com/Dosada05/tt-championship/models"
	"github.com/Dosada05/tt-championship/services"
)

type MatchHandler struct {
	championshipService services.ChampionshipService
}

func NewMatchHandler(cs services.ChampionshipService) *MatchHandler {
	return &MatchHandler{championshipService: cs}
}

type resultInput struct {
	Sets             []models.SetResult `json:"sets"`
	Timeouts         *models.Timeouts   `json:"timeouts,omitempty"`
	IsWalkover       bool               `json:"is_walkover"`
	WalkoverWinnerID string             `json:"walkover_winner_id,omitempty"`
}

// SubmitResult godoc
// @Summary Record or replace a match result
// @Description Partial results keep the match open for live scoring.
// @Tags matches
// @Accept json
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Param matchID path string true "Match ID"
// @Param input body resultInput true "Sets, timeouts or walkover"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Match locked"
// @Failure 422 {object} map[string]interface{}
// @Router /championships/{championshipID}/matches/{matchID}/result [put]
func (h *MatchHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := idFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input resultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.SubmitResult(r.Context(), championshipID, models.MatchResult{
		MatchID:          matchID,
		Sets:             input.Sets,
		Timeouts:         input.Timeouts,
		IsWalkover:       input.IsWalkover,
		WalkoverWinnerID: input.WalkoverWinnerID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	match, _ := championship.FindMatch(matchID)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match, "championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateKnockout godoc
// @Summary Close the groups and draw the knockout brackets
// @Tags matches
// @Produce json
// @Param championshipID path string true "Championship ID"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Groups incomplete or wrong status"
// @Failure 422 {object} map[string]interface{}
// @Router /championships/{championshipID}/knockout [post]
func (h *MatchHandler) GenerateKnockout(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GenerateKnockout(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
