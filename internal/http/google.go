package http

import (
	"net/http"
	"time"

	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/pkg/httpx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

type GoogleAuthHandler struct {
	Google    *service.GoogleAuthService
	AccessTTL time.Duration
}

type googleLoginResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

// HandleLogin returns the provider redirect URL for the client to open.
//
//	@Summary	Start Google sign-in
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	googleLoginResponse
//	@Router		/v1/auth/google/login [get].
func (h *GoogleAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	url, state := h.Google.LoginURL()
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, googleLoginResponse{AuthorizationURL: url, State: state})
}

type googleCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// HandleCallback exchanges the provider code and signs the user in,
// creating the account on first sign-in.
//
//	@Summary	Complete Google sign-in
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		googleCallbackRequest	true	"Authorization code"
//	@Success	200		{object}	TokenResponse
//	@Failure	502		{object}	APIError	"Provider exchange failed"
//	@Router		/v1/auth/google/callback [post].
func (h *GoogleAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var req googleCallbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Code == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	user, token, err := h.Google.Callback(r.Context(), req.Code)
	if err != nil {
		slogx.FromContext(r.Context()).Warn("google callback failed", "err", err)
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.AccessTTL.Seconds()),
		User:        toUserResponse(user),
	})
}
