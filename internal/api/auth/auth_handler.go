package auth

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	appMiddleware "github.com/FACorreiaa/realestate-ads/app/middleware"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

type AuthHandler struct {
	logger      *slog.Logger
	authService AuthService
	tokenHeader string
}

// NewAuthHandler writes issued tokens to tokenHeader, the same header the
// Gate reads them from. An empty name means Authorization.
func NewAuthHandler(authService AuthService, tokenHeader string, logger *slog.Logger) *AuthHandler {
	if tokenHeader == "" {
		tokenHeader = "Authorization"
	}
	return &AuthHandler{
		logger:      logger,
		authService: authService,
		tokenHeader: tokenHeader,
	}
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges email and password for a signed access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body types.LoginRequest true "Credentials"
// @Success      200 {object} types.TokenResponse
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login")
	defer span.End()

	l := h.logger.With(slog.String("method", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid login body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		status := api.StatusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.ErrorResponse(w, r, status, "Login failed")
			return
		}
		api.FailureResponse(w, r, status, "authentication", api.ErrUnauthenticated.Error())
		return
	}

	w.Header().Set(h.tokenHeader, "Bearer "+resp.Token)
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Register godoc
// @Summary      Register
// @Description  Creates a ROLE_USER account.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user body types.RegisterRequest true "New account"
// @Success      201 {object} types.User
// @Failure      400 {object} types.Response
// @Failure      409 {object} types.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Register")
	defer span.End()

	var req types.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		span.RecordError(err)
		status := api.StatusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "Failed to register user"
		}
		api.FailureResponse(w, r, status, "user", msg)
		return
	}

	api.AlertHeaders(w, "user", "created", user.ID.String())
	api.WriteJSONResponse(w, r, http.StatusCreated, user)
}

// RefreshToken godoc
// @Summary      Refresh token
// @Description  Re-issues a token with the same subject and role and a new expiry.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token body types.RefreshTokenRequest true "Current token"
// @Success      200 {object} types.TokenResponse
// @Failure      401 {object} types.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "RefreshToken")
	defer span.End()

	var req types.RefreshTokenRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.RefreshToken(ctx, req.Token)
	if err != nil {
		span.RecordError(err)
		status := api.StatusFor(err)
		if status == http.StatusUnauthorized {
			api.FailureResponse(w, r, status, "authentication", unauthorizedMessage)
			return
		}
		api.ErrorResponse(w, r, status, "Failed to refresh token")
		return
	}

	w.Header().Set(h.tokenHeader, "Bearer "+resp.Token)
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Me godoc
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} types.User
// @Failure      401 {object} types.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Me")
	defer span.End()

	p, ok := appMiddleware.PrincipalFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, unauthorizedMessage)
		return
	}

	user, err := h.authService.Me(ctx, p.Subject)
	if err != nil {
		span.RecordError(err)
		status := api.StatusFor(err)
		if status == http.StatusInternalServerError {
			api.ErrorResponse(w, r, status, "Failed to load current user")
			return
		}
		api.FailureResponse(w, r, status, "user", api.ErrNotFound.Error())
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, user)
}
