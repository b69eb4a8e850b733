package guard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedKyc blocks the first lookup until its context is cancelled and
// answers VALIDATED afterwards.
type scriptedKyc struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
}

func (s *scriptedKyc) KycStatus(ctx context.Context, _ string) (domain.KycStatus, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		<-ctx.Done()
		return "", ctx.Err()
	}
	return domain.KycValidated, nil
}

func TestNavigator_NewNavigationSupersedesPending(t *testing.T) {
	kyc := &scriptedKyc{started: make(chan struct{})}
	nav := NewNavigator(New(kyc), DefaultRoutes)
	s := session(t, "CLIENT")

	type result struct {
		d   domain.AccessDecision
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		d, err := nav.Navigate(context.Background(), "/payments", s)
		firstDone <- result{d, err}
	}()

	select {
	case <-kyc.started:
	case <-time.After(time.Second):
		t.Fatal("first navigation never reached the kyc lookup")
	}

	d, err := nav.Navigate(context.Background(), "/dashboard", s)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteAllow, d.Outcome)

	select {
	case r := <-firstDone:
		assert.ErrorIs(t, r.err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded navigation did not return")
	}
	assert.Equal(t, "/dashboard", nav.Current())
}

func TestNavigator_Routes(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		session     func(t *testing.T) Session
		kyc         *fakeKyc
		wantOutcome domain.RouteOutcome
		wantCurrent string
		wantLookups int32
	}{
		{
			name:        "public home needs no session",
			url:         "/",
			session:     func(*testing.T) Session { return NewSession("") },
			kyc:         &fakeKyc{},
			wantOutcome: domain.RouteAllow,
			wantCurrent: "/",
		},
		{
			name:        "unknown path redirects home",
			url:         "/nowhere",
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{},
			wantOutcome: domain.RouteRedirectHome,
			wantCurrent: "/",
		},
		{
			name:        "query and trailing slash ignored for matching",
			url:         "/profile/?tab=security",
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycValidated},
			wantOutcome: domain.RouteAllow,
			wantCurrent: "/profile",
			wantLookups: 1,
		},
		{
			name:        "unvalidated client lands on kyc",
			url:         "/cards",
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycRejected},
			wantOutcome: domain.RouteRedirectKyc,
			wantCurrent: "/kyc",
			wantLookups: 1,
		},
		{
			name:        "kyc page with trailing slash stays reachable",
			url:         "/kyc/",
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycSubmitted},
			wantOutcome: domain.RouteAllow,
			wantCurrent: "/kyc",
			wantLookups: 1,
		},
		{
			name:        "kyc page with query stays reachable",
			url:         "/kyc?step=2",
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycSubmitted},
			wantOutcome: domain.RouteAllow,
			wantCurrent: "/kyc",
			wantLookups: 1,
		},
		{
			name:        "login redirect keeps current location",
			url:         "/security",
			session:     func(*testing.T) Session { return NewSession("") },
			kyc:         &fakeKyc{},
			wantOutcome: domain.RouteRedirectLogin,
			wantCurrent: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := NewNavigator(New(tt.kyc), DefaultRoutes)

			d, err := nav.Navigate(context.Background(), tt.url, tt.session(t))

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, d.Outcome)
			assert.Equal(t, tt.wantCurrent, nav.Current())
			assert.Equal(t, tt.wantLookups, tt.kyc.calls)
		})
	}
}

func TestNavigator_CancelledByCaller(t *testing.T) {
	nav := NewNavigator(New(&fakeKyc{status: domain.KycValidated}), DefaultRoutes)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := nav.Navigate(ctx, "/dashboard", session(t, "CLIENT"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "/", nav.Current())
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/", NormalizePath("/"))
	assert.Equal(t, "/admin/kyc", NormalizePath("admin/kyc"))
	assert.Equal(t, "/admin/kyc", NormalizePath("/admin/kyc/?id=3#top"))
}
