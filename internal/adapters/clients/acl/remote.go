package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// Remote is the part of an adapter that talks to one upstream service:
// it issues the call and turns every non-2xx outcome into a domain error.
type Remote struct {
	client  *clients.Client
	service string
}

func NewRemote(client *clients.Client, service string) Remote {
	return Remote{client: client, service: service}
}

func (r *Remote) Client() *clients.Client { return r.client }

func (r *Remote) ServiceName() string { return r.service }

// call describes one upstream operation for error reporting.
type call struct {
	operation string
	entityID  string
}

// fetch GETs path and hands back the 2xx body; the caller closes it.
func (r *Remote) fetch(ctx context.Context, path string, query url.Values, op call) (io.ReadCloser, error) {
	resp, err := r.client.Get(ctx, path, query)
	return r.accept(resp, err, op)
}

// submit POSTs payload as JSON and hands back the 2xx body.
func (r *Remote) submit(ctx context.Context, path string, payload any, op call) (io.ReadCloser, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", op.operation, err)
	}

	resp, err := r.client.Post(ctx, path, buf.Bytes())

	return r.accept(resp, err, op)
}

func (r *Remote) accept(resp *http.Response, err error, op call) (io.ReadCloser, error) {
	switch {
	case err != nil:
		return nil, MapHTTPError(nil, err, r.service, op.operation, op.entityID)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		defer func() { _ = resp.Body.Close() }()
		return nil, MapHTTPError(resp, nil, r.service, op.operation, op.entityID)
	default:
		return resp.Body, nil
	}
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Message string `json:"message"`
}

// DecodeEnvelope unwraps {success, data, message} and closes body. A body
// that does not decode, or has no data, means the upstream misbehaved and is
// reported as unavailable.
func DecodeEnvelope[T any](body io.ReadCloser, service string) (*T, string, error) {
	env, err := DecodeResponse[envelope[T]](body)

	switch {
	case err != nil:
		return nil, "", domain.NewUnavailableError(service, err.Error())
	case env.Data == nil:
		return nil, "", domain.NewUnavailableError(service, "response has no data")
	}

	return env.Data, env.Message, nil
}

// DecodeResponse decodes a JSON body into a new T and closes body.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	out := new(T)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return out, nil
}

// ValidateRequired fails fast on an empty argument.
func ValidateRequired(value, field string) error {
	if value != "" {
		return nil
	}

	return domain.NewValidationError(field, "is required")
}

// Translator maps one wire item to its domain value.
type Translator[External, Domain any] func(ext External) (*Domain, error)

// TranslateSlice translates items in order and stops at the first failure.
func TranslateSlice[E, D any](items []E, translate Translator[E, D]) ([]*D, error) {
	out := make([]*D, len(items))

	for i := range items {
		d, err := translate(items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		out[i] = d
	}

	return out, nil
}
