package gateway

import (
	"context"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/middleware"
)

// KycStatus answers the guard's GetKycStatus question in-process, through the
// same auth-then-profile path as the me field. It returns "" when the caller
// has no profile or no status.
func (r *Resolver) KycStatus(ctx context.Context, bearer string) (domain.KycStatus, error) {
	data, err := r.Me(middleware.WithCredential(ctx, bearer))
	if err != nil {
		return "", err
	}
	if data == nil || data.Profile == nil || data.Profile.KycStatus == nil {
		return "", nil
	}
	return domain.KycStatus(*data.Profile.KycStatus), nil
}
