package announcement

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	appMiddleware "github.com/FACorreiaa/realestate-ads/app/middleware"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/search"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

const (
	entityName     = "announcement"
	maxUploadBytes = 10 << 20
)

type AnnouncementHandler struct {
	logger  *slog.Logger
	service AnnouncementService
}

func NewAnnouncementHandler(service AnnouncementService, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		logger:  logger,
		service: service,
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid announcement id", api.ErrValidation)
	}
	return id, nil
}

// Search godoc
// @Summary      Search announcements
// @Description  Filters live announcements. Every parameter is optional and present ones are combined with AND.
// @Tags         Announcements
// @Produce      json
// @Param        startPrice query number false "Minimum price"
// @Param        endPrice query number false "Maximum price"
// @Param        startArea query number false "Minimum area"
// @Param        endArea query number false "Maximum area"
// @Param        heatingType query string false "Heating type fragment"
// @Param        city query string false "City fragment"
// @Param        parking query boolean false "Has parking"
// @Param        phoneNumber query string false "Author phone fragment"
// @Param        type query string false "SALE or RENT fragment"
// @Param        authorName query string false "Author first name fragment"
// @Param        authorSurname query string false "Author last name fragment"
// @Param        propertyName query string false "Property name fragment"
// @Param        country query string false "Country fragment"
// @Param        street query string false "Street fragment"
// @Param        balcony query boolean false "Has balcony"
// @Param        furnished query boolean false "Is furnished"
// @Param        airConditioning query boolean false "Has air conditioning"
// @Param        page query int false "Zero-based page"
// @Param        size query int false "Page size"
// @Param        sort query string false "price,desc"
// @Success      200 {array} types.Announcement
// @Header       200 {string} X-Total-Count "Total matches"
// @Failure      400 {object} types.Response
// @Failure      401 {object} types.Response
// @Security     BearerAuth
// @Router       /announcements/search [get]
func (h *AnnouncementHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AnnouncementHandler").Start(r.Context(), "Search")
	defer span.End()
	r = r.WithContext(ctx)

	q := r.URL.Query()
	criteria, err := search.ParseAnnouncementCriteria(q)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}
	page, err := search.ParsePageable(q, search.FamilyAnnouncement)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}

	result, err := h.service.Search(ctx, criteria, page)
	if err != nil {
		span.RecordError(err)
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "Failed to search announcements")
		return
	}

	api.PaginationHeaders(w, r.URL, page.Page, page.Size, result.Total)
	api.WriteJSONResponse(w, r, http.StatusOK, result.Items)
}

// GetAnnouncement godoc
// @Summary      Get announcement
// @Tags         Announcements
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Success      200 {object} types.Announcement
// @Failure      404 {object} types.Response
// @Security     BearerAuth
// @Router       /announcements/{id} [get]
func (h *AnnouncementHandler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}
	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "Failed to load announcement")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, a)
}

// DeleteAnnouncement godoc
// @Summary      Delete announcement
// @Description  Soft deletes an announcement. Admin only.
// @Tags         Announcements
// @Param        id path string true "Announcement ID"
// @Success      204
// @Failure      403 {object} types.Response
// @Failure      404 {object} types.Response
// @Security     BearerAuth
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "Failed to delete announcement")
		return
	}
	api.AlertHeaders(w, entityName, "deleted", id.String())
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// ReportAnnouncement godoc
// @Summary      Report announcement
// @Tags         Announcements
// @Accept       json
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Param        report body types.CreateReportRequest true "Reason"
// @Success      201 {object} types.Report
// @Failure      400 {object} types.Response
// @Failure      404 {object} types.Response
// @Security     BearerAuth
// @Router       /announcements/{id}/reports [post]
func (h *AnnouncementHandler) ReportAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}
	reporterID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, api.ErrUnauthenticated.Error())
		return
	}

	var req types.CreateReportRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Report(ctx, id, reporterID, req.Reason)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, "report", "Failed to report announcement")
		return
	}
	api.AlertHeaders(w, "report", "created", report.ID.String())
	api.WriteJSONResponse(w, r, http.StatusCreated, report)
}

// UploadImage godoc
// @Summary      Upload announcement image
// @Description  Adds an image to an announcement. Only its author may upload.
// @Tags         Announcements
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Param        file formData file true "Image"
// @Success      201 {object} types.Image
// @Failure      400 {object} types.Response
// @Failure      403 {object} types.Response
// @Security     BearerAuth
// @Router       /announcements/{id}/images [post]
func (h *AnnouncementHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AnnouncementHandler").Start(r.Context(), "UploadImage")
	defer span.End()
	r = r.WithContext(ctx)

	id, err := parseID(r)
	if err != nil {
		api.ServiceErrorResponse(w, r, h.logger, err, entityName, "")
		return
	}
	uploaderID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, api.ErrUnauthenticated.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Unreadable file")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	image, err := h.service.UploadImage(ctx, id, uploaderID, ImageUpload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(sniff[:n]),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		span.RecordError(err)
		api.ServiceErrorResponse(w, r, h.logger, err, "image", "Failed to upload image")
		return
	}
	api.AlertHeaders(w, "image", "created", image.ID.String())
	api.WriteJSONResponse(w, r, http.StatusCreated, image)
}
