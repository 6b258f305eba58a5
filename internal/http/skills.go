package http

import (
	"net/http"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
)

type SkillsHandler struct {
	Skills *service.SkillService
}

type skillRequest struct {
	Name             string `json:"name"`
	ProficiencyLevel int    `json:"proficiency_level"`
	Category         string `json:"category"`
}

//	@Summary	Create a skill
//	@Tags		Skills
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		skillRequest	true	"Skill"
//	@Success	201		{object}	SkillResponse
//	@Router		/v1/skills [post].
func (h *SkillsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req skillRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sk, err := h.Skills.Create(r.Context(), userID, service.SkillInput{
		Name:             req.Name,
		ProficiencyLevel: req.ProficiencyLevel,
		Category:         req.Category,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSkillResponse(sk))
}

//	@Summary	List own skills
//	@Tags		Skills
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	SkillResponse
//	@Router		/v1/skills [get].
func (h *SkillsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	sks, err := h.Skills.List(r.Context(), store.ListByUserQuery{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]SkillResponse, 0, len(sks))
	for _, sk := range sks {
		out = append(out, toSkillResponse(sk))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

//	@Summary	Get a skill
//	@Tags		Skills
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Skill id"
//	@Success	200	{object}	SkillResponse
//	@Router		/v1/skills/{id} [get].
func (h *SkillsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	sk, err := h.Skills.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSkillResponse(sk))
}

type skillUpdateRequest struct {
	Name             *string `json:"name"`
	ProficiencyLevel *int    `json:"proficiency_level"`
	Category         *string `json:"category"`
}

//	@Summary	Update a skill
//	@Tags		Skills
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Skill id"
//	@Param		request	body		skillUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	SkillResponse
//	@Router		/v1/skills/{id} [put].
func (h *SkillsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req skillUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sk, err := h.Skills.Update(r.Context(), userID, r.PathValue("id"), domain.SkillUpdate{
		Name:             req.Name,
		ProficiencyLevel: req.ProficiencyLevel,
		Category:         req.Category,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSkillResponse(sk))
}

//	@Summary	Delete a skill
//	@Tags		Skills
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Skill id"
//	@Success	204
//	@Router		/v1/skills/{id} [delete].
func (h *SkillsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	if err := h.Skills.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
