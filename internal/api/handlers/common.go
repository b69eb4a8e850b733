package handlers

import (
	"net/http"

	"github.com/ebanking/bff-gateway/middleware"
	"github.com/go-chi/render"
)

// ErrorBody is the REST error envelope:
// {"error":{"code":"...","message":"...","request_id":"..."}}
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func sendError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorBody{Error: ErrorPayload{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(r.Context()),
	}})
}
