package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ebanking/bff-gateway/internal/downstream"
	"github.com/ebanking/bff-gateway/internal/logger"
	"github.com/go-chi/render"
)

// ReadinessChecker checks if a collaborator is reachable.
type ReadinessChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// HTTPReadinessChecker issues a GET through the shared downstream client and
// accepts any answer below 500, so a GraphQL endpoint that rejects a bare GET
// still counts as up.
type HTTPReadinessChecker struct {
	name    string
	url     string
	client  *downstream.Client
	timeout time.Duration
}

func NewHTTPReadinessChecker(name, url string, client *downstream.Client, timeout time.Duration) *HTTPReadinessChecker {
	return &HTTPReadinessChecker{
		name:    name,
		url:     url,
		client:  client,
		timeout: timeout,
	}
}

func (c *HTTPReadinessChecker) Name() string { return c.name }

func (c *HTTPReadinessChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(ctx, req, downstream.Call{
		Collaborator: c.name,
		Operation:    "readiness",
		Timeout:      c.timeout,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return &CheckError{Status: resp.StatusCode}
	}
	return nil
}

type CheckError struct {
	Status int
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("unhealthy status %d", e.Status)
}

// checkResult is public; the underlying error only goes to the log.
type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type readinessResponse struct {
	Status string        `json:"status"`
	Checks []checkResult `json:"checks"`
}

// ReadinessHandler serves /healthz and /readyz.
type ReadinessHandler struct {
	checkers []ReadinessChecker
	timeout  time.Duration
}

func NewReadinessHandler(timeout time.Duration, checkers ...ReadinessChecker) *ReadinessHandler {
	return &ReadinessHandler{checkers: checkers, timeout: timeout}
}

// Healthz is a liveness check; it never touches collaborators.
func (h *ReadinessHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "OK")
}

// Readyz probes every collaborator concurrently.
func (h *ReadinessHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results := make([]checkResult, len(h.checkers))
	var wg sync.WaitGroup
	for i, checker := range h.checkers {
		wg.Add(1)
		go func(idx int, c ReadinessChecker) {
			defer wg.Done()
			if err := c.Check(ctx); err != nil {
				logger.Ctx(r.Context()).Warn().Err(err).Str("check", c.Name()).Msg("readiness_check_failed")
				results[idx] = checkResult{Name: c.Name(), Status: "unhealthy"}
				return
			}
			results[idx] = checkResult{Name: c.Name(), Status: "healthy"}
		}(i, checker)
	}
	wg.Wait()

	resp := readinessResponse{Status: "ready", Checks: results}
	for _, res := range results {
		if res.Status != "healthy" {
			resp.Status = "not_ready"
		}
	}

	if resp.Status != "ready" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, resp)
}
