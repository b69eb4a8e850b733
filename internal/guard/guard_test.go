package guard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, exp time.Time, realmRoles []string, clientRoles map[string][]string) string {
	t.Helper()
	resource := map[string]roleSet{}
	for client, roles := range clientRoles {
		resource[client] = roleSet{Roles: roles}
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		PreferredUsername: "ada",
		RealmAccess:       roleSet{Roles: realmRoles},
		ResourceAccess:    resource,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func session(t *testing.T, roles ...string) Session {
	t.Helper()
	return newSessionAt(signToken(t, testNow.Add(time.Hour), roles, nil), func() time.Time { return testNow })
}

type fakeKyc struct {
	calls  int32
	status domain.KycStatus
	err    error
	bearer string
}

func (f *fakeKyc) KycStatus(_ context.Context, bearer string) (domain.KycStatus, error) {
	atomic.AddInt32(&f.calls, 1)
	f.bearer = bearer
	return f.status, f.err
}

func TestSession(t *testing.T) {
	now := func() time.Time { return testNow }

	t.Run("valid token with realm and client roles", func(t *testing.T) {
		token := signToken(t, testNow.Add(time.Minute), []string{"CLIENT", "offline_access"},
			map[string][]string{"ebank-frontend": {"CLIENT", "AGENT"}})
		s := newSessionAt("Bearer "+token, now)

		assert.True(t, s.LoggedIn())
		assert.ElementsMatch(t, []domain.Role{"CLIENT", "offline_access", "AGENT"}, s.Roles())
		assert.Equal(t, "ada", s.Username())
		assert.Equal(t, "Bearer "+token, s.Bearer())
	})

	t.Run("expired token is logged out", func(t *testing.T) {
		s := newSessionAt(signToken(t, testNow.Add(-time.Second), []string{"CLIENT"}, nil), now)

		assert.False(t, s.LoggedIn())
		assert.False(t, s.View().LoggedIn)
		assert.Empty(t, s.View().Roles)
	})

	t.Run("garbage token is logged out", func(t *testing.T) {
		s := newSessionAt("not-a-jwt", now)
		assert.False(t, s.LoggedIn())
		assert.Nil(t, s.Roles())
	})

	t.Run("empty token", func(t *testing.T) {
		s := newSessionAt("", now)
		assert.False(t, s.LoggedIn())
		assert.Equal(t, "", s.Bearer())
	})
}

func TestGuard_CanActivate(t *testing.T) {
	dashboard := domain.RouteTarget{URL: "/dashboard", RequiredRoles: anyCustomerRole}
	adminUsers := domain.RouteTarget{URL: "/admin/users", RequiredRoles: staffRole}
	kyc := domain.RouteTarget{URL: domain.KycRoute, RequiredRoles: anyCustomerRole}

	tests := []struct {
		name        string
		target      domain.RouteTarget
		session     func(t *testing.T) Session
		kyc         *fakeKyc
		wantOutcome domain.RouteOutcome
		wantTo      string
		wantLookups int32
	}{
		{
			name:        "no session redirects to login with requested url",
			target:      dashboard,
			session:     func(*testing.T) Session { return NewSession("") },
			kyc:         &fakeKyc{status: domain.KycValidated},
			wantOutcome: domain.RouteRedirectLogin,
			wantTo:      "/dashboard",
		},
		{
			name:        "client on admin route goes home without kyc lookup",
			target:      adminUsers,
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycValidated},
			wantOutcome: domain.RouteRedirectHome,
			wantTo:      domain.HomeRoute,
		},
		{
			name:        "validated client allowed",
			target:      dashboard,
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycValidated},
			wantOutcome: domain.RouteAllow,
			wantLookups: 1,
		},
		{
			name:        "submitted client sent to kyc",
			target:      dashboard,
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{status: domain.KycSubmitted},
			wantOutcome: domain.RouteRedirectKyc,
			wantTo:      domain.KycRoute,
			wantLookups: 1,
		},
		{
			name:        "lookup failure fails secure",
			target:      dashboard,
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{err: errors.New("gateway down")},
			wantOutcome: domain.RouteRedirectKyc,
			wantTo:      domain.KycRoute,
			wantLookups: 1,
		},
		{
			name:        "kyc route itself is reachable",
			target:      kyc,
			session:     func(t *testing.T) Session { return session(t, "CLIENT") },
			kyc:         &fakeKyc{err: errors.New("gateway down")},
			wantOutcome: domain.RouteAllow,
			wantLookups: 1,
		},
		{
			name:        "agent exempt from kyc",
			target:      dashboard,
			session:     func(t *testing.T) Session { return session(t, "AGENT") },
			kyc:         &fakeKyc{status: domain.KycPending},
			wantOutcome: domain.RouteAllow,
			wantLookups: 1,
		},
		{
			name:        "admin on admin route",
			target:      adminUsers,
			session:     func(t *testing.T) Session { return session(t, "ADMIN") },
			kyc:         &fakeKyc{err: errors.New("no profile")},
			wantOutcome: domain.RouteAllow,
			wantLookups: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session(t)
			d := New(tt.kyc).CanActivate(context.Background(), tt.target, s)

			assert.Equal(t, tt.wantOutcome, d.Outcome)
			assert.Equal(t, tt.wantTo, d.RedirectTo)
			assert.Equal(t, tt.wantLookups, atomic.LoadInt32(&tt.kyc.calls))
			if tt.wantLookups > 0 {
				assert.Equal(t, s.Bearer(), tt.kyc.bearer)
			}
		})
	}
}

func TestGuard_Check(t *testing.T) {
	g := New(&fakeKyc{status: domain.KycSubmitted})

	for _, u := range []string{"/kyc", "/kyc/", "/kyc?step=2", "/kyc#top"} {
		t.Run(u, func(t *testing.T) {
			d := g.Check(context.Background(), DefaultRoutes, u, session(t, "CLIENT"))
			assert.Equal(t, domain.RouteAllow, d.Outcome)
		})
	}

	t.Run("unvalidated client elsewhere", func(t *testing.T) {
		d := g.Check(context.Background(), DefaultRoutes, "/payments/?amount=10", session(t, "CLIENT"))
		assert.Equal(t, domain.RouteRedirectKyc, d.Outcome)
		assert.Equal(t, "kyc_not_validated", d.Reason)
	})

	t.Run("login returns to the url as requested", func(t *testing.T) {
		d := g.Check(context.Background(), DefaultRoutes, "/kyc?step=2", NewSession(""))
		assert.Equal(t, domain.RouteRedirectLogin, d.Outcome)
		assert.Equal(t, "/kyc?step=2", d.RedirectTo)
	})
}

func TestKycLookup(t *testing.T) {
	t.Run("reads status and bypasses caches", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/graphql", r.URL.Path)
			assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var body struct {
				Query         string `json:"query"`
				OperationName string `json:"operationName"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "GetKycStatus", body.OperationName)
			assert.Contains(t, body.Query, "kycStatus")

			_, _ = w.Write([]byte(`{"data":{"me":{"profile":{"kycStatus":"VALIDATED"}}}}`))
		}))
		defer srv.Close()

		status, err := NewKycLookup(srv.URL, time.Second).KycStatus(context.Background(), "Bearer tok")

		require.NoError(t, err)
		assert.Equal(t, domain.KycValidated, status)
	})

	t.Run("null profile has no status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"me":{"profile":null}}}`))
		}))
		defer srv.Close()

		status, err := NewKycLookup(srv.URL, time.Second).KycStatus(context.Background(), "Bearer tok")

		require.NoError(t, err)
		assert.Equal(t, domain.KycStatus(""), status)
	})

	t.Run("gateway error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"me":null},"errors":[{"message":"Authentication failed"}]}`))
		}))
		defer srv.Close()

		_, err := NewKycLookup(srv.URL, time.Second).KycStatus(context.Background(), "Bearer tok")

		assert.EqualError(t, err, "Authentication failed")
	})

	t.Run("times out", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		_, err := NewKycLookup(srv.URL, 50*time.Millisecond).KycStatus(context.Background(), "Bearer tok")

		assert.Error(t, err)
	})
}
