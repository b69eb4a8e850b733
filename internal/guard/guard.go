package guard

import (
	"context"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/logger"
)

// Guard decides whether a navigation may proceed. It holds no state between
// calls.
type Guard struct {
	kyc KycSource
}

func New(kyc KycSource) *Guard {
	return &Guard{kyc: kyc}
}

// CanActivate runs the session, role and KYC checks for target. The KYC
// lookup only happens when the first two pass, and a failed lookup counts as
// not validated.
func (g *Guard) CanActivate(ctx context.Context, target domain.RouteTarget, session Session) domain.AccessDecision {
	log := logger.Ctx(ctx).With().Str("route", target.URL).Logger()

	verify := func() domain.KycCheck {
		if g.kyc == nil {
			return domain.KycCheck{}
		}
		status, err := g.kyc.KycStatus(ctx, session.Bearer())
		if err != nil {
			log.Warn().Err(err).Msg("kyc_lookup_failed")
			return domain.KycCheck{}
		}
		return domain.KycCheck{Known: true, Status: status}
	}

	decision := domain.DecideRouteAccess(target, session.View(), verify)

	if decision.Allowed() {
		log.Debug().Msg("route_allowed")
	} else {
		log.Info().
			Str("outcome", string(decision.Outcome)).
			Str("reason", decision.Reason).
			Str("redirect_to", decision.RedirectTo).
			Msg("route_denied")
	}
	return decision
}

// Check resolves rawURL against routes before running CanActivate. Unknown
// paths resolve to home and public routes are allowed without a session.
func (g *Guard) Check(ctx context.Context, routes Routes, rawURL string, session Session) domain.AccessDecision {
	route, ok := routes.Lookup(rawURL)
	if !ok {
		return domain.AccessDecision{
			Outcome:    domain.RouteRedirectHome,
			RedirectTo: domain.HomeRoute,
			Reason:     "unknown_route",
		}
	}
	if route.Public {
		return domain.AccessDecision{Outcome: domain.RouteAllow}
	}
	return g.CanActivate(ctx, domain.RouteTarget{URL: rawURL, Path: route.Path, RequiredRoles: route.Roles}, session)
}
