package user

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
)

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// SearchUsers godoc
// @Summary      Search users
// @Description  Filters active users. companyName only matches members with an accepted company verification.
// @Tags         User
// @Produce      json
// @Param        firstName query string false "First name fragment"
// @Param        lastName query string false "Last name fragment"
// @Param        email query string false "Email fragment"
// @Param        phoneNumber query string false "Phone fragment"
// @Param        companyName query string false "Company name fragment"
// @Param        page query int false "Zero-based page"
// @Param        size query int false "Page size"
// @Param        sort query string false "lastName,asc"
// @Success      200 {array} types.User
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /users/search [get]
func (h *HandlerImpl) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := search.ParseUserCriteria(q)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, "user", "")
		return
	}
	page, err := search.ParsePageable(q, search.FamilyUser)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, "user", "")
		return
	}

	result, err := h.userService.Search(r.Context(), criteria, page)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, "user", "Failed to search users")
		return
	}
	api.PaginationHeaders(w, r.URL, page.Page, page.Size, result.Total)
	api.WriteJSONResponse(w, r, http.StatusOK, result.Items)
}

// GetUser godoc
// @Summary      Get user
// @Tags         User
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} types.User
// @Failure      404 {object} types.Response "User Not Found"
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *HandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetUser"))

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		l.WarnContext(ctx, "Invalid user ID format", slog.Any("error", err))
		api.ServiceErrorResponse(w, r, h.logger, fmt.Errorf("%w: invalid user id", api.ErrValidation), "user", "")
		return
	}

	u, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, "user", "Failed to retrieve user")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, u)
}
