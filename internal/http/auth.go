package http

import (
	"net/http"
	"time"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/pkg/httpx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

type AuthHandler struct {
	Auth      *service.AuthService
	Users     *service.UserService
	AccessTTL time.Duration
}

func (h *AuthHandler) tokenResponse(user domain.User, token string) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.AccessTTL.Seconds()),
		User:        toUserResponse(user),
	}
}

type requestOTPRequest struct {
	Email string `json:"email"`
}

// HandleRequestRegistrationOTP sends a signup verification code.
//
//	@Summary	Request a registration code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		requestOTPRequest	true	"Email to verify"
//	@Success	202		{object}	map[string]string
//	@Failure	409		{object}	APIError	"Email already registered"
//	@Router		/v1/auth/register/request-otp [post].
func (h *AuthHandler) HandleRequestRegistrationOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	if err := h.Auth.RequestRegistrationOTP(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "verification code sent"})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	OTPCode  string `json:"otp_code"`
}

// HandleRegister creates the account once the emailed code checks out.
//
//	@Summary	Register with a verified email
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		registerRequest	true	"Registration details"
//	@Success	201		{object}	TokenResponse
//	@Failure	400		{object}	APIError	"Invalid code or weak password"
//	@Router		/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.OTPCode == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	user, token, err := h.Auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Code:     req.OTPCode,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", user.ID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, h.tokenResponse(user, token))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin exchanges credentials for a session token.
//
//	@Summary	Log in
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		loginRequest	true	"Credentials"
//	@Success	200		{object}	TokenResponse
//	@Failure	401		{object}	APIError	"Incorrect email or password"
//	@Router		/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	user, token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, h.tokenResponse(user, token))
}

// HandleForgotPassword kicks off the reset flow. The response is the
// same whether or not the address exists.
//
//	@Summary	Request a password reset code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		requestOTPRequest	true	"Account email"
//	@Success	202		{object}	map[string]string
//	@Router		/v1/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	if err := h.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		slogx.FromContext(r.Context()).Error("forgot-password failed", "err", err)
	}
	httpx.WriteJSON(w, http.StatusAccepted, map[string]string{
		"message": "If the email exists, a reset code has been sent",
	})
}

type verifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

type verifyOTPResponse struct {
	ResetTicket string `json:"reset_ticket"`
	ExpiresIn   int    `json:"expires_in"`
}

// HandleVerifyOTP consumes a reset code and returns a single-use reset
// ticket for the reset-password call.
//
//	@Summary	Verify a password reset code
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		verifyOTPRequest	true	"Email and code"
//	@Success	200		{object}	verifyOTPResponse
//	@Failure	400		{object}	APIError	"Invalid or expired code"
//	@Router		/v1/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.OTPCode == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	ticket, err := h.Auth.VerifyResetOTP(r.Context(), req.Email, req.OTPCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, verifyOTPResponse{
		ResetTicket: ticket,
		ExpiresIn:   int(service.DefaultResetTicketTTL.Seconds()),
	})
}

type resetPasswordRequest struct {
	ResetTicket string `json:"reset_ticket"`
	NewPassword string `json:"new_password"`
}

// HandleResetPassword sets a new password against a valid reset ticket.
//
//	@Summary	Reset password
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		resetPasswordRequest	true	"Ticket and new password"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	APIError	"Invalid or expired ticket"
//	@Router		/v1/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ResetTicket == "" || req.NewPassword == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.ResetTicket, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// HandleChangePassword rotates the password of the logged-in user.
//
//	@Summary	Change password
//	@Tags		Auth
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		changePasswordRequest	true	"Current and new password"
//	@Success	200		{object}	map[string]string
//	@Failure	401		{object}	APIError	"Current password incorrect"
//	@Router		/v1/auth/change-password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		ErrBadRequest.WriteError(w)
		return
	}

	if err := h.Auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// HandleGetMe returns the authenticated user's profile.
//
//	@Summary	Get own profile
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Router		/v1/auth/me [get].
func (h *AuthHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		ErrUnauthenticated.WriteError(w)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type updateMeRequest struct {
	FullName    *string `json:"full_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phone_number"`
}

// HandleUpdateMe applies a partial profile update. Only the fields
// present in the body change; flags and tier are not reachable here.
//
//	@Summary	Update own profile
//	@Tags		Auth
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		updateMeRequest	true	"Fields to change"
//	@Success	200		{object}	UserResponse
//	@Router		/v1/auth/me [put].
func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req updateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), userID, domain.UserUpdate{
		FullName:    req.FullName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
