package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const credentialKey contextKey = "credential"

// Credential stores the caller's Authorization header in the request context.
// The value is opaque to the gateway: it is never parsed or validated here,
// only forwarded verbatim to downstream collaborators. A missing header yields
// an empty credential and the request still proceeds so that public fields
// can be served.
func Credential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithCredential(r.Context(), r.Header.Get("Authorization"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithCredential returns a copy of ctx carrying the bearer credential.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey, credential)
}

// GetCredential returns the forwarded Authorization value, or "" if absent.
func GetCredential(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cred, ok := ctx.Value(credentialKey).(string)
	if !ok {
		return ""
	}
	return cred
}
