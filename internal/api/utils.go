package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AlertHeader      = "X-Realestate-Alert"
	ErrorHeader      = "X-Realestate-Error"
	ParamsHeader     = "X-Realestate-Params"
	TotalCountHeader = "X-Total-Count"
)

// ErrorResponse writes a standard JSON error response including request ID.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	reqID := middleware.GetReqID(r.Context())
	resp := map[string]interface{}{
		"success":    false,
		"error":      message,
		"request_id": reqID,
	}
	WriteJSONResponse(w, r, status, resp)
}

// FailureResponse sets the failure alert headers for entity and then writes
// the JSON error body.
func FailureResponse(w http.ResponseWriter, r *http.Request, status int, entity, message string) {
	w.Header().Set(ErrorHeader, message)
	w.Header().Set(ParamsHeader, entity)
	ErrorResponse(w, r, status, message)
}

// AlertHeaders marks a successful create/update/delete of entity.
func AlertHeaders(w http.ResponseWriter, entity, action, param string) {
	w.Header().Set(AlertHeader, fmt.Sprintf("A %s is %s with identifier %s", entity, action, param))
	w.Header().Set(ParamsHeader, param)
}

// PaginationHeaders writes X-Total-Count and an RFC 5988 Link header for
// the page that was just served.
func PaginationHeaders(w http.ResponseWriter, u *url.URL, page, size int, total int64) {
	w.Header().Set(TotalCountHeader, strconv.FormatInt(total, 10))

	lastPage := 0
	if size > 0 && total > 0 {
		lastPage = int((total - 1) / int64(size))
	}

	link := func(p int, rel string) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("size", strconv.Itoa(size))
		return fmt.Sprintf(`<%s?%s>; rel="%s"`, u.Path, q.Encode(), rel)
	}

	var links []string
	if page < lastPage {
		links = append(links, link(page+1, "next"))
	}
	if page > 0 {
		links = append(links, link(page-1, "prev"))
	}
	links = append(links, link(lastPage, "last"), link(0, "first"))
	w.Header().Set("Link", strings.Join(links, ","))
}

// WriteJSONResponse encodes the data to JSON and writes the response header and body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		reqID := middleware.GetReqID(r.Context())
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		reqID := middleware.GetReqID(r.Context())
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
	}
}

// DecodeJSONBody reads and decodes a JSON request body safely.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q (wanted %s)", unmarshalTypeError.Field, unmarshalTypeError.Type)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			fieldName = strings.Trim(fieldName, `"`)
			return fmt.Errorf("body contains unknown key %q", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(fmt.Errorf("developer error: invalid argument passed to json.Unmarshal: %w", err))

		default:
			return fmt.Errorf("error decoding JSON body: %w", err)
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func VerifyAudience(claimsAudience jwt.ClaimStrings, expectedAudience string) bool {
	if expectedAudience == "" {
		return true
	}
	for _, aud := range claimsAudience {
		if aud == expectedAudience {
			return true
		}
	}
	return false
}

// ServiceErrorResponse maps err onto its status. Known failures are reported
// with the failure alert headers for entity; anything else is logged and the
// client only sees fallback.
func ServiceErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, entity, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), fallback, slog.Any("error", err))
		ErrorResponse(w, r, status, fallback)
		return
	}
	logger.WarnContext(r.Context(), "Request rejected", slog.Int("status", status), slog.Any("error", err))
	FailureResponse(w, r, status, entity, err.Error())
}
