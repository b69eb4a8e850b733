package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/guard"
	"github.com/ebanking/bff-gateway/middleware"
	"github.com/stretchr/testify/assert"
)

type staticKyc domain.KycStatus

func (s staticKyc) KycStatus(context.Context, string) (domain.KycStatus, error) {
	return domain.KycStatus(s), nil
}

func TestRouteAccess_Check(t *testing.T) {
	h := NewRouteAccessHandler(guard.New(staticKyc(domain.KycValidated)), guard.DefaultRoutes)

	t.Run("public route", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Check(w, httptest.NewRequest(http.MethodGet, "/api/route-access?url=/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"url":"/","outcome":"allow"}`, w.Body.String())
	})

	t.Run("unparseable bearer is logged out", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/route-access?url=/admin/kyc", nil)
		req = req.WithContext(middleware.WithCredential(req.Context(), "Bearer nope"))
		w := httptest.NewRecorder()
		h.Check(w, req)

		assert.JSONEq(t, `{"url":"/admin/kyc","outcome":"redirect_login","redirect_to":"/admin/kyc","reason":"login_required"}`, w.Body.String())
	})

	t.Run("missing url", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/route-access", nil)
		req = req.WithContext(middleware.SetRequestIDForTest(req.Context(), "rid-1"))
		w := httptest.NewRecorder()
		h.Check(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":{"code":"request.invalid","message":"url query parameter is required","request_id":"rid-1"}}`, w.Body.String())
	})
}
