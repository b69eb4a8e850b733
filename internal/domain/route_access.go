package domain

import "slices"

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAgent  Role = "AGENT"
	RoleAdmin  Role = "ADMIN"
)

const (
	HomeRoute = "/"
	KycRoute  = "/kyc"
)

type RouteOutcome string

const (
	RouteAllow         RouteOutcome = "allow"
	RouteRedirectLogin RouteOutcome = "redirect_login"
	RouteRedirectHome  RouteOutcome = "redirect_home"
	RouteRedirectKyc   RouteOutcome = "redirect_kyc"
)

// RouteTarget is a navigation request. An empty RequiredRoles means the
// route only needs a session. URL is the address as requested and is what a
// login redirect returns to; Path is the route table entry it matched.
type RouteTarget struct {
	URL           string
	Path          string
	RequiredRoles []Role
}

func (t RouteTarget) route() string {
	if t.Path != "" {
		return t.Path
	}
	return t.URL
}

// SessionView is what the decision needs to know about the caller.
type SessionView struct {
	LoggedIn bool
	Roles    []Role
}

func (s SessionView) HasRole(r Role) bool {
	return slices.Contains(s.Roles, r)
}

func (s SessionView) HasAnyRole(roles []Role) bool {
	for _, r := range roles {
		if s.HasRole(r) {
			return true
		}
	}
	return false
}

// KycExempt reports whether the caller may use client routes without a
// validated KYC (back-office staff).
func (s SessionView) KycExempt() bool {
	return s.HasRole(RoleAdmin) || s.HasRole(RoleAgent)
}

// KycCheck is the result of a KYC lookup. Known is false when the lookup
// itself failed; such a check never counts as validated.
type KycCheck struct {
	Known  bool
	Status KycStatus
}

func (c KycCheck) Validated() bool {
	return c.Known && c.Status == KycValidated
}

// AccessDecision is the terminal outcome of a route check. RedirectTo is the
// return URL for RouteRedirectLogin and the destination route otherwise.
type AccessDecision struct {
	Outcome    RouteOutcome
	RedirectTo string
	Reason     string
}

func (d AccessDecision) Allowed() bool {
	return d.Outcome == RouteAllow
}

// DecideRouteAccess evaluates session, role and verification in that order,
// stopping at the first terminal outcome. verify is only invoked once the
// session and role checks have passed.
func DecideRouteAccess(target RouteTarget, session SessionView, verify func() KycCheck) AccessDecision {
	// 1. Session Gate
	if !session.LoggedIn {
		return AccessDecision{
			Outcome:    RouteRedirectLogin,
			RedirectTo: target.URL,
			Reason:     "login_required",
		}
	}

	// 2. Open Route
	if len(target.RequiredRoles) == 0 {
		return AccessDecision{Outcome: RouteAllow}
	}

	// 3. Role Gate
	if !session.HasAnyRole(target.RequiredRoles) {
		return AccessDecision{
			Outcome:    RouteRedirectHome,
			RedirectTo: HomeRoute,
			Reason:     "insufficient_role",
		}
	}

	// 4. KYC Gate
	check := KycCheck{}
	if verify != nil {
		check = verify()
	}
	if check.Validated() || target.route() == KycRoute || session.KycExempt() {
		return AccessDecision{Outcome: RouteAllow}
	}

	reason := "kyc_not_validated"
	if !check.Known {
		reason = "kyc_unavailable"
	}
	return AccessDecision{
		Outcome:    RouteRedirectKyc,
		RedirectTo: KycRoute,
		Reason:     reason,
	}
}
