package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

// Guard gates portal routes on the caller's resolved permission map. Every
// request re-resolves the role, so a permission change applies without
// re-login. Denial is always 403: an absent entry and an explicit false are
// indistinguishable to the caller.
type Guard struct {
	permissions permission.Service
}

func NewGuard(permissions permission.Service) *Guard {
	return &Guard{permissions: permissions}
}

func (g *Guard) capability(r *http.Request, portal permission.Portal, name string) (permission.Record, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return permission.Record{}, false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return permission.Record{}, false
	}

	m, err := g.permissions.Resolve(r.Context(), user.Role(roleStr))
	if err != nil {
		return permission.Record{}, false
	}
	return permission.Capability(m, portal, name), true
}

// RequireView allows the request only when the screen's view flag is set.
// View gates every other action: without it the screen does not exist for
// the caller.
func (g *Guard) RequireView(portal permission.Portal, name string) func(http.Handler) http.Handler {
	return g.Require(portal, name, permission.ActionView)
}

// Require allows the request only when the screen grants both view and the
// named action.
func (g *Guard) Require(portal permission.Portal, name string, action permission.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record, ok := g.capability(r, portal, name)
			if !ok {
				response.HandleError(w, user.ErrPermissionRequired)
				return
			}
			if !record.View || !record.Allows(action) {
				response.HandleError(w, user.ErrPermissionRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSub allows the request only when the parent screen is viewable and
// its sub-record grants the action.
func (g *Guard) RequireSub(portal permission.Portal, name string, subID int, action permission.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record, ok := g.capability(r, portal, name)
			if !ok || !record.View {
				response.HandleError(w, user.ErrPermissionRequired)
				return
			}
			if !record.Sub[subID].Allows(action) {
				response.HandleError(w, user.ErrPermissionRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
