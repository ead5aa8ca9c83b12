package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skyflyBff/internal/modules/profile/application/port"
	"skyflyBff/internal/modules/profile/domain"
	"skyflyBff/internal/platform/rest"
)

const defaultProfilePath = "/users/profile"

// ProfileHTTPClient implements ProfileGateway against the remote users API.
type ProfileHTTPClient struct {
	rest *rest.Client
	path string
}

func NewProfileHTTPClient(baseURL, path string, timeout time.Duration, client *http.Client) *ProfileHTTPClient {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultProfilePath
	}
	return &ProfileHTTPClient{rest: rest.NewClient(baseURL, timeout, client), path: path}
}

func (c *ProfileHTTPClient) GetProfile(ctx context.Context, token string) (domain.Record, error) {
	body, err := c.rest.Send(ctx, rest.Call{Method: http.MethodGet, Path: c.path, Token: token})
	if err != nil {
		return domain.Record{}, err
	}
	return decodeRecord(body)
}

func (c *ProfileHTTPClient) EditProfile(ctx context.Context, token string, update domain.Update) rest.Result {
	return c.rest.Forward(ctx, rest.Call{Method: http.MethodPut, Path: c.path, Body: update, Token: token})
}

// decodeRecord accepts the profile either flat or wrapped in a data field.
func decodeRecord(body []byte) (domain.Record, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Record{}, fmt.Errorf("decode profile: %w", err)
	}
	payload := body
	if trimmed := bytes.TrimSpace(envelope.Data); len(trimmed) > 0 && trimmed[0] == '{' {
		payload = trimmed
	}

	var record domain.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Record{}, fmt.Errorf("decode profile: %w", err)
	}
	return record, nil
}

var _ port.ProfileGateway = (*ProfileHTTPClient)(nil)
