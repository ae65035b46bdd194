package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
)

type stubPermissionService struct {
	maps map[user.Role]permission.Map
}

func (s *stubPermissionService) Resolve(_ context.Context, role user.Role) (permission.Map, error) {
	return s.maps[role], nil
}

func (s *stubPermissionService) PayloadFor(_ context.Context, _ user.Role) (permission.Payload, error) {
	return nil, nil
}

func newGuardRequest(t *testing.T, ja *jwtauth.JWTAuth, role string) *http.Request {
	t.Helper()
	_, tokenString, err := ja.Encode(map[string]interface{}{
		"user_id": "u1",
		"role":    role,
		"type":    "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	return req
}

func runGuarded(t *testing.T, ja *jwtauth.JWTAuth, mw func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	var called bool
	handler := jwtauth.Verifier(ja)(mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		assert.True(t, called)
	} else {
		assert.False(t, called)
	}
	return rec
}

func TestGuardRequireView(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	guard := NewGuard(&stubPermissionService{maps: map[user.Role]permission.Map{
		"manager": {
			permission.PortalHR: {
				"employees": permission.Record{View: true, Visible: true},
			},
		},
		"clerk": {
			permission.PortalHR: {
				"employees": permission.Record{View: false, Add: true},
			},
		},
	}})

	tests := []struct {
		name string
		role string
		want int
	}{
		{"viewable screen allows", "manager", http.StatusOK},
		{"add without view denies", "clerk", http.StatusForbidden},
		{"role with no permissions denies", "pending", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newGuardRequest(t, ja, tt.role)
			rec := runGuarded(t, ja, guard.RequireView(permission.PortalHR, "employees"), req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGuardRequireAction(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	guard := NewGuard(&stubPermissionService{maps: map[user.Role]permission.Map{
		"manager": {
			permission.PortalHR: {
				"employees": permission.Record{View: true, Add: true, Edit: false},
			},
		},
	}})

	req := newGuardRequest(t, ja, "manager")
	rec := runGuarded(t, ja, guard.Require(permission.PortalHR, "employees", permission.ActionAdd), req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = newGuardRequest(t, ja, "manager")
	rec = runGuarded(t, ja, guard.Require(permission.PortalHR, "employees", permission.ActionEdit), req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Wrong portal: the same screen name means nothing in inventory.
	req = newGuardRequest(t, ja, "manager")
	rec = runGuarded(t, ja, guard.Require(permission.PortalInventory, "employees", permission.ActionAdd), req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuardRequireSub(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	guard := NewGuard(&stubPermissionService{maps: map[user.Role]permission.Map{
		"manager": {
			permission.PortalHR: {
				"employees": permission.Record{
					View: true,
					Sub: map[int]permission.SubRecord{
						3: {ID: 3, View: true, Add: false},
					},
				},
			},
		},
		"blocked": {
			permission.PortalHR: {
				"employees": permission.Record{
					View: false,
					Sub: map[int]permission.SubRecord{
						3: {ID: 3, View: true},
					},
				},
			},
		},
	}})

	req := newGuardRequest(t, ja, "manager")
	rec := runGuarded(t, ja, guard.RequireSub(permission.PortalHR, "employees", 3, permission.ActionView), req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = newGuardRequest(t, ja, "manager")
	rec = runGuarded(t, ja, guard.RequireSub(permission.PortalHR, "employees", 3, permission.ActionAdd), req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Absent sub id reads as the zero sub-record.
	req = newGuardRequest(t, ja, "manager")
	rec = runGuarded(t, ja, guard.RequireSub(permission.PortalHR, "employees", 9, permission.ActionView), req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Parent view gates every sub capability.
	req = newGuardRequest(t, ja, "blocked")
	rec = runGuarded(t, ja, guard.RequireSub(permission.PortalHR, "employees", 3, permission.ActionView), req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
