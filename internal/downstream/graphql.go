package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ebanking/bff-gateway/internal/logger"
)

// Document is a fixed GraphQL operation sent to a collaborator. Fresh asks
// every cache between the caller and the collaborator to revalidate.
type Document struct {
	Name     string
	Query    string
	Mutation bool
	Fresh    bool
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage     `json:"data"`
	Errors []graphQLErrorEntry `json:"errors"`
}

type graphQLErrorEntry struct {
	Message string `json:"message"`
}

// GraphQLError reports a payload that carried a top-level errors array.
// Only the first message is exposed through Error; the rest are kept for
// logging.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return e.First()
}

// First returns the first message, or "" for an empty array.
func (e *GraphQLError) First() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// GraphQL posts doc to endpoint with the caller's credential and decodes the
// data object into out. Transport failures and non-2xx answers are returned
// as ErrTimeout/ErrUnavailable/*StatusError; a populated errors array is
// returned as *GraphQLError.
func (c *Client) GraphQL(ctx context.Context, endpoint, collaborator, credential string, doc Document, vars map[string]any, out any) error {
	payload, err := json.Marshal(graphQLRequest{
		Query:         doc.Query,
		OperationName: doc.Name,
		Variables:     vars,
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", doc.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}
	if doc.Fresh {
		req.Header.Set("Cache-Control", "no-cache")
	}

	timeout := c.config.ReadTimeout
	if doc.Mutation {
		timeout = c.config.WriteTimeout
	}

	logger.Ctx(ctx).Debug().
		Str("operation", doc.Name).
		Str("url", endpoint).
		Str("body", Truncate(payload)).
		Msg("downstream_graphql_call")

	resp, err := c.Do(ctx, req, Call{Collaborator: collaborator, Operation: doc.Name, Timeout: timeout})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &StatusError{StatusCode: resp.StatusCode, Body: Truncate(resp.Body)}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		logger.Ctx(ctx).Error().
			Err(err).
			Str("operation", doc.Name).
			Str("payload", Truncate(resp.Body)).
			Msg("downstream_graphql_decode_failed")
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, doc.Name, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		logger.Ctx(ctx).Warn().
			Str("operation", doc.Name).
			Str("url", endpoint).
			Int("error_count", len(messages)).
			Str("errors", strings.Join(messages, "; ")).
			Msg("downstream_graphql_errors")
		return &GraphQLError{Messages: messages}
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		logger.Ctx(ctx).Error().
			Err(err).
			Str("operation", doc.Name).
			Str("payload", Truncate(envelope.Data)).
			Msg("downstream_graphql_decode_failed")
		return fmt.Errorf("%w: decode %s data: %v", ErrUnavailable, doc.Name, err)
	}
	return nil
}
