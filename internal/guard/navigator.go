package guard

import (
	"context"
	"errors"
	"sync"

	"github.com/ebanking/bff-gateway/internal/domain"
)

// ErrSuperseded is returned for a navigation whose check was overtaken by a
// newer one. Its decision is discarded.
var ErrSuperseded = errors.New("navigation superseded")

// Navigator serializes navigations for one client session. Starting a
// navigation cancels the check still running for the previous one, so only
// the latest request can change the current location.
type Navigator struct {
	guard  *Guard
	routes Routes

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current string
}

func NewNavigator(g *Guard, routes Routes) *Navigator {
	return &Navigator{guard: g, routes: routes, current: domain.HomeRoute}
}

// Current is the location produced by the last applied decision.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate checks rawURL for session. Unknown paths resolve to home, public
// routes are allowed without a check, and guarded routes go through the
// Guard. A check cancelled by a newer navigation returns ErrSuperseded.
func (n *Navigator) Navigate(ctx context.Context, rawURL string, session Session) (domain.AccessDecision, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	n.seq++
	mine := n.seq
	n.cancel = cancel
	n.mu.Unlock()

	decision := n.guard.Check(ctx, n.routes, rawURL, session)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq != mine {
		return domain.AccessDecision{}, ErrSuperseded
	}
	n.cancel = nil
	if err := ctx.Err(); err != nil {
		return domain.AccessDecision{}, err
	}
	n.apply(rawURL, decision)
	return decision, nil
}

// apply must be called with mu held. A login redirect leaves the app, so the
// current location is kept.
func (n *Navigator) apply(rawURL string, d domain.AccessDecision) {
	switch d.Outcome {
	case domain.RouteAllow:
		n.current = NormalizePath(rawURL)
	case domain.RouteRedirectHome, domain.RouteRedirectKyc:
		n.current = d.RedirectTo
	}
}
