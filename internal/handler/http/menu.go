package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/auth"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/user"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/response"
)

type MenuHandler interface {
	GetMenu(w http.ResponseWriter, r *http.Request)
}

type menuHandlerImpl struct {
	permissionService permission.Service
}

func NewMenuHandler(permissionService permission.Service) MenuHandler {
	return &menuHandlerImpl{permissionService: permissionService}
}

type portalMenuResponse struct {
	Portal permission.Portal     `json:"portal"`
	Items  []permission.MenuItem `json:"items"`
}

type menuResponse struct {
	ActivePortal permission.Portal    `json:"active_portal"`
	Portals      []portalMenuResponse `json:"portals"`
}

// GetMenu implements MenuHandler. Returns the sidebar structure for every
// portal the caller can enter, with the deterministic landing portal first.
func (h *menuHandlerImpl) GetMenu(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	m, err := h.permissionService.Resolve(r.Context(), user.Role(roleStr))
	if err != nil {
		slog.Error("GetMenu resolve error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := menuResponse{
		ActivePortal: permission.ActivePortal(m),
		Portals:      make([]portalMenuResponse, 0, 3),
	}
	for _, portal := range m.Portals() {
		resp.Portals = append(resp.Portals, portalMenuResponse{
			Portal: portal,
			Items:  permission.Menu(m, portal),
		})
	}

	response.Success(w, resp)
}
