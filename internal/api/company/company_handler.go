package company

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
)

const entityName = "company"

type CompanyHandler struct {
	logger  *slog.Logger
	service CompanyService
}

func NewCompanyHandler(service CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{
		logger:  logger,
		service: service,
	}
}

// Search godoc
// @Summary      Search companies
// @Tags         Companies
// @Produce      json
// @Param        name query string false "Name fragment"
// @Param        email query string false "Email fragment"
// @Param        phoneNumber query string false "Phone fragment"
// @Param        country query string false "Country fragment"
// @Param        city query string false "City fragment"
// @Param        page query int false "Zero-based page"
// @Param        size query int false "Page size"
// @Param        sort query string false "name,asc"
// @Success      200 {array} types.Company
// @Failure      400 {object} types.Response
// @Security     BearerAuth
// @Router       /companies/search [get]
func (h *CompanyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := search.ParseCompanyCriteria(q)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}
	page, err := search.ParsePageable(q, search.FamilyCompany)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}

	result, err := h.service.Search(r.Context(), criteria, page)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "Failed to search companies")
		return
	}
	api.PaginationHeaders(w, r.URL, page.Page, page.Size, result.Total)
	api.WriteJSONResponse(w, r, http.StatusOK, result.Items)
}

// GetCompany godoc
// @Summary      Get company
// @Tags         Companies
// @Produce      json
// @Param        id path string true "Company ID"
// @Success      200 {object} types.Company
// @Failure      404 {object} types.Response
// @Security     BearerAuth
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, fmt.Errorf("%w: invalid company id", api.ErrValidation), entityName, "")
		return
	}
	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "Failed to load company")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, c)
}
