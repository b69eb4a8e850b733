package guard

import (
	"net/url"
	"strings"

	"github.com/ebanking/bff-gateway/internal/domain"
)

// Route is one entry of the client route table. Public routes bypass the
// guard entirely.
type Route struct {
	Path   string
	Public bool
	Roles  []domain.Role
}

type Routes []Route

var (
	anyCustomerRole = []domain.Role{domain.RoleClient, domain.RoleAdmin, domain.RoleAgent}
	staffRole       = []domain.Role{domain.RoleAdmin, domain.RoleAgent}
)

// DefaultRoutes is the banking app's route table.
var DefaultRoutes = Routes{
	{Path: domain.HomeRoute, Public: true},
	{Path: "/dashboard", Roles: anyCustomerRole},
	{Path: "/transactions", Roles: anyCustomerRole},
	{Path: "/payments", Roles: anyCustomerRole},
	{Path: "/cards", Roles: anyCustomerRole},
	{Path: "/admin/dashboard", Roles: staffRole},
	{Path: "/profile", Roles: anyCustomerRole},
	{Path: domain.KycRoute, Roles: anyCustomerRole},
	{Path: "/admin/users", Roles: staffRole},
	{Path: "/admin/kyc", Roles: staffRole},
	{Path: "/security", Roles: anyCustomerRole},
}

// Lookup matches the path part of rawURL exactly. Query strings, fragments
// and a trailing slash are ignored.
func (rs Routes) Lookup(rawURL string) (Route, bool) {
	p := NormalizePath(rawURL)
	for _, r := range rs {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// NormalizePath reduces a navigation URL to its absolute path.
func NormalizePath(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
