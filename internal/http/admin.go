package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

type AdminHandler struct {
	Admin *service.AdminService
}

//	@Summary	List users
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		search	query	string	false	"Match email or name"
//	@Param		limit	query	int		false	"Page size"
//	@Param		offset	query	int		false	"Page offset"
//	@Success	200		{array}	AdminUserResponse
//	@Router		/v1/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	summaries, err := h.Admin.ListUsers(r.Context(), store.ListUsersQuery{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]AdminUserResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toAdminUserResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

//	@Summary	Get a user
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	UserResponse
//	@Router		/v1/admin/users/{id} [get].
func (h *AdminHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Admin.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type adminUserUpdateRequest struct {
	FullName              *string    `json:"full_name"`
	IsActive              *bool      `json:"is_active"`
	IsAdmin               *bool      `json:"is_admin"`
	EmailVerified         *bool      `json:"email_verified"`
	PhoneVerified         *bool      `json:"phone_verified"`
	SubscriptionTier      *string    `json:"subscription_tier"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at"`
}

//	@Summary	Update a user
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User id"
//	@Param		request	body		adminUserUpdateRequest	true	"Fields to change"
//	@Success	200		{object}	UserResponse
//	@Router		/v1/admin/users/{id} [put].
func (h *AdminHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUserUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Admin.UpdateUser(r.Context(), r.PathValue("id"), domain.AdminUserUpdate{
		FullName:              req.FullName,
		IsActive:              req.IsActive,
		IsAdmin:               req.IsAdmin,
		EmailVerified:         req.EmailVerified,
		PhoneVerified:         req.PhoneVerified,
		SubscriptionTier:      req.SubscriptionTier,
		SubscriptionExpiresAt: req.SubscriptionExpiresAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("admin updated user", "target_user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

//	@Summary	Delete a user
//	@Tags		Admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User id"
//	@Success	204
//	@Failure	400	{object}	APIError	"Cannot delete yourself"
//	@Router		/v1/admin/users/{id} [delete].
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	targetID := r.PathValue("id")
	if err := h.Admin.DeleteUser(r.Context(), callerID, targetID); err != nil {
		writeServiceError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("admin deleted user", "target_user_id", targetID)
	w.WriteHeader(http.StatusNoContent)
}

type statsOverviewResponse struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	VerifiedUsers     int64 `json:"verified_users"`
	ProUsers          int64 `json:"pro_users"`
	TotalAchievements int64 `json:"total_achievements"`
	TotalSkills       int64 `json:"total_skills"`
	TotalGoals        int64 `json:"total_goals"`
	UsersCreatedToday int64 `json:"users_created_today"`
}

//	@Summary	System statistics
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	statsOverviewResponse
//	@Router		/v1/admin/stats/overview [get].
func (h *AdminHandler) HandleStatsOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.StatsOverview(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, statsOverviewResponse{
		TotalUsers:        stats.TotalUsers,
		ActiveUsers:       stats.ActiveUsers,
		VerifiedUsers:     stats.VerifiedUsers,
		ProUsers:          stats.ProUsers,
		TotalAchievements: stats.TotalAchievements,
		TotalSkills:       stats.TotalSkills,
		TotalGoals:        stats.TotalGoals,
		UsersCreatedToday: stats.UsersCreatedToday,
	})
}

type growthPointResponse struct {
	Date       string `json:"date"`
	NewUsers   int64  `json:"new_users"`
	TotalUsers int64  `json:"total_users"`
}

//	@Summary	Signup growth series
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		days	query	int	false	"Trailing window, default 30"
//	@Success	200		{array}	growthPointResponse
//	@Router		/v1/admin/stats/growth [get].
func (h *AdminHandler) HandleStatsGrowth(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			ErrBadRequest.WriteError(w)
			return
		}
		days = n
	}

	points, err := h.Admin.UserGrowth(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]growthPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, growthPointResponse{Date: p.Date, NewUsers: p.NewUsers, TotalUsers: p.TotalUsers})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

//	@Summary	List all achievements
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query	int	false	"Page size"
//	@Param		offset	query	int	false	"Page offset"
//	@Success	200		{array}	AchievementResponse
//	@Router		/v1/admin/achievements [get].
func (h *AdminHandler) HandleListAllAchievements(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	as, err := h.Admin.ListAllAchievements(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAchievementResponses(as))
}
