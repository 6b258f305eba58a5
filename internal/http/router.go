package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/pkg/httpx"
	"github.com/summitlog/summitlog/pkg/jwtx"
	"github.com/summitlog/summitlog/pkg/slogx"

	_ "github.com/summitlog/summitlog/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	gate         *AuthGate
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	accessTTL    time.Duration

	AuthService        *service.AuthService
	UserService        *service.UserService
	GoogleAuthService  *service.GoogleAuthService
	AchievementService *service.AchievementService
	SkillService       *service.SkillService
	GoalService        *service.GoalService
	CategoryService    *service.CategoryService
	AdminService       *service.AdminService
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	accessTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		gate:         &AuthGate{Signer: signer, Store: st},
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		accessTTL:    accessTTL,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGoogleAuth()
	r.registerAchievements()
	r.registerSkills()
	r.registerGoals()
	r.registerCategories()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SummitLog API
//	@version		0.1.0
//	@description	Personal achievement tracking API: accounts with email-verified
//	@description	registration and OTP password resets, achievements with media,
//	@description	skills, goals, categories and an admin panel.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService, Users: r.UserService, AccessTTL: r.accessTTL}

	// Unauthenticated credential endpoints get the strict limit; they
	// are the brute-force surface.
	r.Mux.Handle("POST /v1/auth/register/request-otp",
		httpx.Chain(http.HandlerFunc(h.HandleRequestRegistrationOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleGetMe),
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateMe),
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerGoogleAuth() {
	if r.GoogleAuthService == nil {
		return
	}
	h := &GoogleAuthHandler{Google: r.GoogleAuthService, AccessTTL: r.accessTTL}

	r.Mux.Handle("GET /v1/auth/google/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/google/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAchievements() {
	h := &AchievementsHandler{Achievements: r.AchievementService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /v1/achievements", secured(h.HandleCreate))
	r.Mux.Handle("GET /v1/achievements", secured(h.HandleList))
	r.Mux.Handle("GET /v1/achievements/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/achievements/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/achievements/{id}", secured(h.HandleDelete))

	r.Mux.Handle("POST /v1/achievements/{id}/media", secured(h.HandleAddMedia))
	r.Mux.Handle("GET /v1/achievements/{id}/media", secured(h.HandleListMedia))
	r.Mux.Handle("DELETE /v1/media/{id}", secured(h.HandleDeleteMedia))
}

func (r *Router) registerSkills() {
	h := &SkillsHandler{Skills: r.SkillService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /v1/skills", secured(h.HandleCreate))
	r.Mux.Handle("GET /v1/skills", secured(h.HandleList))
	r.Mux.Handle("GET /v1/skills/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/skills/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/skills/{id}", secured(h.HandleDelete))
}

func (r *Router) registerGoals() {
	h := &GoalsHandler{Goals: r.GoalService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /v1/goals", secured(h.HandleCreate))
	r.Mux.Handle("GET /v1/goals", secured(h.HandleList))
	r.Mux.Handle("GET /v1/goals/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/goals/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/goals/{id}", secured(h.HandleDelete))
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{Categories: r.CategoryService}

	// Any active user may read the catalogue; only admins write it.
	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.gate.RequireUser,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.gate.RequireUser,
			r.gate.RequireAdmin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/categories", read(h.HandleList))
	r.Mux.Handle("GET /v1/categories/{id}", read(h.HandleGet))
	r.Mux.Handle("POST /v1/categories", write(h.HandleCreate))
	r.Mux.Handle("PUT /v1/categories/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/categories/{id}", write(h.HandleDelete))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Admin: r.AdminService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.gate.RequireUser,
			r.gate.RequireAdmin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/admin/users", secured(h.HandleListUsers))
	r.Mux.Handle("GET /v1/admin/users/{id}", secured(h.HandleGetUser))
	r.Mux.Handle("PUT /v1/admin/users/{id}", secured(h.HandleUpdateUser))
	r.Mux.Handle("DELETE /v1/admin/users/{id}", secured(h.HandleDeleteUser))
	r.Mux.Handle("GET /v1/admin/stats/overview", secured(h.HandleStatsOverview))
	r.Mux.Handle("GET /v1/admin/stats/growth", secured(h.HandleStatsGrowth))
	r.Mux.Handle("GET /v1/admin/achievements", secured(h.HandleListAllAchievements))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
