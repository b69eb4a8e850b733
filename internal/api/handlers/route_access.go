package handlers

import (
	"net/http"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/guard"
	"github.com/ebanking/bff-gateway/middleware"
	"github.com/go-chi/render"
)

type routeAccessResponse struct {
	URL        string              `json:"url"`
	Outcome    domain.RouteOutcome `json:"outcome"`
	RedirectTo string              `json:"redirect_to,omitempty"`
	Reason     string              `json:"reason,omitempty"`
}

// RouteAccessHandler lets a client ask whether a navigation would be allowed
// for the bearer it presents.
type RouteAccessHandler struct {
	guard  *guard.Guard
	routes guard.Routes
}

func NewRouteAccessHandler(g *guard.Guard, routes guard.Routes) *RouteAccessHandler {
	return &RouteAccessHandler{guard: g, routes: routes}
}

// Check handles GET /api/route-access?url=/dashboard.
func (h *RouteAccessHandler) Check(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		sendError(w, r, http.StatusBadRequest, "request.invalid", "url query parameter is required")
		return
	}

	session := guard.NewSession(middleware.GetCredential(r.Context()))
	d := h.guard.Check(r.Context(), h.routes, target, session)

	render.JSON(w, r, routeAccessResponse{
		URL:        target,
		Outcome:    d.Outcome,
		RedirectTo: d.RedirectTo,
		Reason:     d.Reason,
	})
}
