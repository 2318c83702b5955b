package appMiddleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireRole(slog.Default(), types.RoleAdmin)(ok)

	tests := []struct {
		name      string
		principal *Principal
		want      int
	}{
		{"no principal", nil, http.StatusUnauthorized},
		{"wrong role", &Principal{UserID: uuid.New(), Subject: "u@example.com", Role: types.RoleUser}, http.StatusForbidden},
		{"admin", &Principal{UserID: uuid.New(), Subject: "a@example.com", Role: types.RoleAdmin}, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/announcements/1", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), *tt.principal))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, api.ErrForbidden.Error(), rr.Header().Get(api.ErrorHeader))
			}
		})
	}
}

func TestPrincipalFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := PrincipalFromContext(req.Context())
	assert.False(t, ok)

	id := uuid.New()
	ctx := WithPrincipal(req.Context(), Principal{UserID: id, Subject: "x@example.com", Role: types.RoleAdvertiser})
	gotID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, gotID)
	role, ok := GetUserRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, types.RoleAdvertiser, role)
}
