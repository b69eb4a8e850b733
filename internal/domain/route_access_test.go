package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideRouteAccess(t *testing.T) {
	dashboard := RouteTarget{URL: "/dashboard", RequiredRoles: []Role{RoleClient, RoleAdmin, RoleAgent}}
	adminUsers := RouteTarget{URL: "/admin/users", RequiredRoles: []Role{RoleAdmin, RoleAgent}}
	kyc := RouteTarget{URL: KycRoute, RequiredRoles: []Role{RoleClient, RoleAdmin, RoleAgent}}

	client := SessionView{LoggedIn: true, Roles: []Role{RoleClient}}
	admin := SessionView{LoggedIn: true, Roles: []Role{RoleAdmin}}
	agent := SessionView{LoggedIn: true, Roles: []Role{RoleAgent}}

	validated := func() KycCheck { return KycCheck{Known: true, Status: KycValidated} }
	submitted := func() KycCheck { return KycCheck{Known: true, Status: KycSubmitted} }
	failed := func() KycCheck { return KycCheck{} }

	t.Run("No Session", func(t *testing.T) {
		called := false
		d := DecideRouteAccess(dashboard, SessionView{}, func() KycCheck {
			called = true
			return KycCheck{}
		})
		assert.Equal(t, RouteRedirectLogin, d.Outcome)
		assert.Equal(t, "/dashboard", d.RedirectTo)
		assert.Equal(t, "login_required", d.Reason)
		assert.False(t, called)
	})

	t.Run("No Required Roles", func(t *testing.T) {
		called := false
		d := DecideRouteAccess(RouteTarget{URL: "/anything"}, client, func() KycCheck {
			called = true
			return KycCheck{}
		})
		assert.True(t, d.Allowed())
		assert.False(t, called)
	})

	t.Run("Insufficient Role", func(t *testing.T) {
		d := DecideRouteAccess(adminUsers, client, validated)
		assert.Equal(t, RouteRedirectHome, d.Outcome)
		assert.Equal(t, HomeRoute, d.RedirectTo)
	})

	t.Run("Client Validated", func(t *testing.T) {
		d := DecideRouteAccess(dashboard, client, validated)
		assert.True(t, d.Allowed())
	})

	t.Run("Client Not Validated", func(t *testing.T) {
		d := DecideRouteAccess(dashboard, client, submitted)
		assert.Equal(t, RouteRedirectKyc, d.Outcome)
		assert.Equal(t, KycRoute, d.RedirectTo)
		assert.Equal(t, "kyc_not_validated", d.Reason)
	})

	t.Run("Client Lookup Failed Is Not Validated", func(t *testing.T) {
		d := DecideRouteAccess(dashboard, client, failed)
		assert.Equal(t, RouteRedirectKyc, d.Outcome)
		assert.Equal(t, "kyc_unavailable", d.Reason)
	})

	t.Run("Client On KYC Route", func(t *testing.T) {
		d := DecideRouteAccess(kyc, client, submitted)
		assert.True(t, d.Allowed())

		d = DecideRouteAccess(kyc, client, failed)
		assert.True(t, d.Allowed())

		withQuery := RouteTarget{URL: "/kyc?step=2", Path: KycRoute, RequiredRoles: kyc.RequiredRoles}
		assert.True(t, DecideRouteAccess(withQuery, client, submitted).Allowed())

		d = DecideRouteAccess(withQuery, SessionView{}, submitted)
		assert.Equal(t, "/kyc?step=2", d.RedirectTo)
	})

	t.Run("Admin And Agent Exempt", func(t *testing.T) {
		for _, s := range []SessionView{admin, agent} {
			assert.True(t, DecideRouteAccess(dashboard, s, submitted).Allowed())
			assert.True(t, DecideRouteAccess(dashboard, s, failed).Allowed())
			assert.True(t, DecideRouteAccess(adminUsers, s, failed).Allowed())
		}
	})

	t.Run("Nil Verifier Fails Secure", func(t *testing.T) {
		d := DecideRouteAccess(dashboard, client, nil)
		assert.Equal(t, RouteRedirectKyc, d.Outcome)
	})
}

func TestErrorKinds(t *testing.T) {
	err := NewError(KindAuthFailed, "Authentication failed", assert.AnError)

	assert.Equal(t, "Authentication failed", err.Error())
	assert.Equal(t, KindAuthFailed, KindOf(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, map[string]interface{}{"code": "AUTH_FAILED"}, err.Extensions())
	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
}
