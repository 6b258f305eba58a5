package http

import (
	"net/http"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
)

type GoalsHandler struct {
	Goals *service.GoalService
}

type goalRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	TargetDate         *time.Time `json:"target_date"`
	Status             string     `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
}

//	@Summary	Create a goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		goalRequest	true	"Goal"
//	@Success	201		{object}	GoalResponse
//	@Router		/v1/goals [post].
func (h *GoalsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.Goals.Create(r.Context(), userID, service.GoalInput{
		Title:              req.Title,
		Description:        req.Description,
		TargetDate:         req.TargetDate,
		Status:             req.Status,
		ProgressPercentage: req.ProgressPercentage,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGoalResponse(g))
}

//	@Summary	List own goals
//	@Tags		Goals
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	GoalResponse
//	@Router		/v1/goals [get].
func (h *GoalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	gs, err := h.Goals.List(r.Context(), store.ListByUserQuery{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]GoalResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGoalResponse(g))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

//	@Summary	Get a goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Goal id"
//	@Success	200	{object}	GoalResponse
//	@Router		/v1/goals/{id} [get].
func (h *GoalsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	g, err := h.Goals.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGoalResponse(g))
}

type goalUpdateRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	TargetDate         *time.Time `json:"target_date"`
	Status             *string    `json:"status"`
	ProgressPercentage *int       `json:"progress_percentage"`
}

//	@Summary	Update a goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Goal id"
//	@Param		request	body		goalUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	GoalResponse
//	@Router		/v1/goals/{id} [put].
func (h *GoalsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req goalUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.Goals.Update(r.Context(), userID, r.PathValue("id"), domain.GoalUpdate{
		Title:              req.Title,
		Description:        req.Description,
		TargetDate:         req.TargetDate,
		Status:             req.Status,
		ProgressPercentage: req.ProgressPercentage,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGoalResponse(g))
}

//	@Summary	Delete a goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Goal id"
//	@Success	204
//	@Router		/v1/goals/{id} [delete].
func (h *GoalsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	if err := h.Goals.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
