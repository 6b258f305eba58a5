package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/summitlog/summitlog/internal/domain"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/cryptox"
	"github.com/summitlog/summitlog/pkg/idx"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrOAuthExchange = errors.New("oauth_exchange_failed")

// GoogleAuthService signs users in through Google's OAuth2 code flow.
// Accounts created here carry a random placeholder password that can
// never be used to log in directly; the email arrives pre-verified by
// the provider.
type GoogleAuthService struct {
	Store store.Store
	Auth  *AuthService

	Config *oauth2.Config

	// UserInfoURL is overridable in tests. Empty means the Google
	// v2 userinfo endpoint.
	UserInfoURL string
}

// LoginURL returns the provider redirect URL and the state nonce baked
// into it. The client echoes the state back on callback.
func (s *GoogleAuthService) LoginURL() (url, state string) {
	state = uuid.NewString()
	return s.Config.AuthCodeURL(state, oauth2.AccessTypeOnline), state
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Callback exchanges the authorization code, fetches the profile and
// returns a session token, creating the account on first sign-in.
func (s *GoogleAuthService) Callback(ctx context.Context, code string) (domain.User, string, error) {
	tok, err := s.Config.Exchange(ctx, code)
	if err != nil {
		return domain.User{}, "", ErrOAuthExchange
	}

	info, err := s.fetchUserInfo(ctx, tok)
	if err != nil {
		return domain.User{}, "", err
	}
	if info.Email == "" || !info.VerifiedEmail {
		return domain.User{}, "", ErrOAuthExchange
	}
	email := strings.ToLower(info.Email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user, err = s.createUser(ctx, email, info)
		if err != nil {
			return domain.User{}, "", err
		}
	case err != nil:
		return domain.User{}, "", err
	}

	if !user.IsActive {
		return domain.User{}, "", ErrAccountDisabled
	}

	token, err := s.Auth.MintToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *GoogleAuthService) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (googleUserInfo, error) {
	url := s.UserInfoURL
	if url == "" {
		url = defaultUserInfoURL
	}

	client := s.Config.Client(ctx, tok)
	resp, err := client.Get(url)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return googleUserInfo{}, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}
	return info, nil
}

func (s *GoogleAuthService) createUser(ctx context.Context, email string, info googleUserInfo) (domain.User, error) {
	// Password login stays impossible: the placeholder is random and
	// never disclosed.
	placeholder, err := cryptox.GeneratePassword()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(placeholder)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:               idx.New().String(),
		Email:            email,
		PasswordHash:     hash,
		FullName:         info.Name,
		AvatarURL:        info.Picture,
		IsActive:         true,
		EmailVerified:    true,
		SubscriptionTier: domain.TierFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
