package guard

import (
	"context"
	"strings"
	"time"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/downstream"
)

const DefaultKycTimeout = 5 * time.Second

var docGetKycStatus = downstream.Document{
	Name:  "GetKycStatus",
	Fresh: true,
	Query: `
query GetKycStatus {
  me {
    profile {
      kycStatus
    }
  }
}`,
}

// KycSource answers the current KYC status for the holder of bearer.
type KycSource interface {
	KycStatus(ctx context.Context, bearer string) (domain.KycStatus, error)
}

// KycLookup asks the gateway for the caller's KYC status on every call.
// Answers are never cached so a freshly validated customer is let through on
// the next navigation.
type KycLookup struct {
	endpoint string
	client   *downstream.Client
}

// NewKycLookup targets gatewayURL's /graphql endpoint. A non-positive timeout
// falls back to DefaultKycTimeout.
func NewKycLookup(gatewayURL string, timeout time.Duration) *KycLookup {
	if timeout <= 0 {
		timeout = DefaultKycTimeout
	}
	return &KycLookup{
		endpoint: strings.TrimRight(gatewayURL, "/") + "/graphql",
		client: downstream.NewClient(downstream.ClientConfig{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			ProbeTimeout: timeout,
		}),
	}
}

// KycStatus returns "" when the gateway reports no profile or no status.
func (k *KycLookup) KycStatus(ctx context.Context, bearer string) (domain.KycStatus, error) {
	var data struct {
		Me *struct {
			Profile *struct {
				KycStatus *string `json:"kycStatus"`
			} `json:"profile"`
		} `json:"me"`
	}
	if err := k.client.GraphQL(ctx, k.endpoint, "gateway", bearer, docGetKycStatus, nil, &data); err != nil {
		return "", err
	}
	if data.Me == nil || data.Me.Profile == nil || data.Me.Profile.KycStatus == nil {
		return "", nil
	}
	return domain.KycStatus(*data.Me.Profile.KycStatus), nil
}
