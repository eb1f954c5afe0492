package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"syscall"

	"github.com/greenbasket/farmmarket-backend/pkg/config"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
)

const (
	predictPath = "/disease-predict"
	healthPath  = "/check-get"

	responseBodyReadLimit int64 = 1024
)

// Client wraps the external inference service. Prediction and health calls
// carry separate timeouts; the health probe is deliberately short.
type Client struct {
	predictClient *http.Client
	healthClient  *http.Client
	baseURL       string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClients overrides both underlying HTTP clients, used in tests.
func WithHTTPClients(predict, health *http.Client) Option {
	return func(c *Client) {
		if predict != nil {
			c.predictClient = predict
		}
		if health != nil {
			c.healthClient = health
		}
	}
}

// NewClient builds the inference service client from config.
func NewClient(cfg config.AIConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inference service base URL is required")
	}

	client := &Client{
		baseURL:       baseURL,
		predictClient: &http.Client{Timeout: cfg.RequestTimeout},
		healthClient:  &http.Client{Timeout: cfg.HealthTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Predict streams the image to the inference endpoint as multipart field
// "file" and returns the raw response object for normalization.
func (c *Client) Predict(ctx context.Context, filename string, file io.Reader) (map[string]any, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "inference client not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build multipart body")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy upload into request")
	}
	if err := writer.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, &body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build predict request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.predictClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamUnavailable, err, "AI service unavailable")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "detection failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamUnhealthy,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"AI service returned an error")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamUnhealthy, err, "decode predict response")
	}
	return payload, nil
}

// Health probes the inference service status endpoint. It returns the HTTP
// status when the service answered at all; a transport failure returns an
// error instead.
func (c *Client) Health(ctx context.Context) (int, error) {
	if c == nil {
		return 0, pkgerrors.New(pkgerrors.CodeInternal, "inference client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build health request")
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, responseBodyReadLimit))

	return resp.StatusCode, nil
}

func isConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
