package gateway

import (
	"context"
	"errors"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/downstream"
	"github.com/ebanking/bff-gateway/internal/logger"
)

// messagePolicy decides what text a failed field shows the client.
type messagePolicy int

const (
	// fixedMessage always shows the field's fallback.
	fixedMessage messagePolicy = iota
	// forwardFirst shows the first downstream GraphQL message when it is
	// non-empty.
	forwardFirst
)

// translate maps a downstream failure to a client-facing domain error and
// logs the full cause. The returned message never carries transport detail.
func translate(ctx context.Context, field string, err error, fallback string, policy messagePolicy) error {
	kind := domain.KindUpstreamUnavailable
	message := fallback

	var gqlErr *downstream.GraphQLError
	switch {
	case errors.As(err, &gqlErr):
		kind = domain.KindUpstreamRejected
		if policy == forwardFirst && gqlErr.First() != "" {
			message = gqlErr.First()
		}
	case errors.Is(err, downstream.ErrNotFound):
		kind = domain.KindNotFound
	}

	logger.Ctx(ctx).Error().
		Err(err).
		Str("field", field).
		Str("kind", string(kind)).
		Msg("resolver_failed")

	return domain.NewError(kind, message, err)
}
