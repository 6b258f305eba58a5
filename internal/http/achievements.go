package http

import (
	"net/http"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
)

type AchievementsHandler struct {
	Achievements *service.AchievementService
}

type achievementRequest struct {
	CategoryID      string     `json:"category_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DateAchieved    *time.Time `json:"date_achieved"`
	ImportanceLevel int        `json:"importance_level"`
	IsPublic        bool       `json:"is_public"`
}

//	@Summary	Create an achievement
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		achievementRequest	true	"Achievement"
//	@Success	201		{object}	AchievementResponse
//	@Router		/v1/achievements [post].
func (h *AchievementsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req achievementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.Achievements.Create(r.Context(), userID, service.AchievementInput{
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		DateAchieved:    req.DateAchieved,
		ImportanceLevel: req.ImportanceLevel,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAchievementResponse(a))
}

//	@Summary	List own achievements
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Produce	json
//	@Param		category_id	query		string	false	"Filter by category"
//	@Param		limit		query		int		false	"Page size"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{array}		AchievementResponse
//	@Router		/v1/achievements [get].
func (h *AchievementsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	as, err := h.Achievements.List(r.Context(), store.ListByUserQuery{
		UserID:     userID,
		CategoryID: r.URL.Query().Get("category_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAchievementResponses(as))
}

//	@Summary	Get an achievement
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Achievement id"
//	@Success	200	{object}	AchievementResponse
//	@Failure	403	{object}	APIError	"Not yours and not public"
//	@Router		/v1/achievements/{id} [get].
func (h *AchievementsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	a, err := h.Achievements.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAchievementResponse(a))
}

type achievementUpdateRequest struct {
	CategoryID      *string    `json:"category_id"`
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	DateAchieved    *time.Time `json:"date_achieved"`
	ImportanceLevel *int       `json:"importance_level"`
	IsPublic        *bool      `json:"is_public"`
}

//	@Summary	Update an achievement
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Achievement id"
//	@Param		request	body		achievementUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	AchievementResponse
//	@Router		/v1/achievements/{id} [put].
func (h *AchievementsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req achievementUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.Achievements.Update(r.Context(), userID, r.PathValue("id"), domain.AchievementUpdate{
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		DateAchieved:    req.DateAchieved,
		ImportanceLevel: req.ImportanceLevel,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAchievementResponse(a))
}

//	@Summary	Delete an achievement
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Achievement id"
//	@Success	204
//	@Router		/v1/achievements/{id} [delete].
func (h *AchievementsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	if err := h.Achievements.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type mediaRequest struct {
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	Caption  string `json:"caption"`
}

//	@Summary	Attach media to an achievement
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Achievement id"
//	@Param		request	body		mediaRequest	true	"File details"
//	@Success	201		{object}	MediaResponse
//	@Router		/v1/achievements/{id}/media [post].
func (h *AchievementsHandler) HandleAddMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req mediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.Achievements.AddMedia(r.Context(), userID, r.PathValue("id"), service.MediaInput{
		FileURL:  req.FileURL,
		FileType: req.FileType,
		Caption:  req.Caption,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMediaResponse(m))
}

//	@Summary	List an achievement's media
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"Achievement id"
//	@Success	200	{array}	MediaResponse
//	@Router		/v1/achievements/{id}/media [get].
func (h *AchievementsHandler) HandleListMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	ms, err := h.Achievements.ListMedia(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]MediaResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMediaResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

//	@Summary	Delete a media attachment
//	@Tags		Achievements
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Media id"
//	@Success	204
//	@Router		/v1/media/{id} [delete].
func (h *AchievementsHandler) HandleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	if err := h.Achievements.DeleteMedia(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
