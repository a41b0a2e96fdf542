// Package agent is the HTTP client the edge agent binary uses to talk to
// nodal's control plane: the config pull and heartbeat endpoints a node
// authenticates to with its shared secret rather than a user JWT
// (spec.md §4.4, §6 "Node agent:").
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the node agent's API client.
type Client struct {
	baseURL    string
	nodeID     uint
	secret     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) { client.httpClient.Timeout = d }
}

// NewClient creates a client for the node identified by nodeID,
// authenticating with secret on every request.
func NewClient(baseURL string, nodeID uint, secret string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		nodeID:  nodeID,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetConfig pulls this node's config and active-user projection.
func (c *Client) GetConfig(ctx context.Context) (*Config, error) {
	q := url.Values{}
	q.Set("node_id", strconv.FormatUint(uint64(c.nodeID), 10))
	q.Set("secret", c.secret)
	reqURL := fmt.Sprintf("%s/api/node/config?%s", c.baseURL, q.Encode())

	var cfg Config
	if err := c.doRequest(ctx, http.MethodGet, reqURL, nil, &cfg); err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &cfg, nil
}

// Heartbeat reports liveness and the current status/connection count.
func (c *Client) Heartbeat(ctx context.Context, status string, activeConnections *int) error {
	reqURL := c.baseURL + "/api/node/heartbeat"
	body := HeartbeatRequest{
		NodeID:            c.nodeID,
		Secret:            c.secret,
		Status:            status,
		ActiveConnections: activeConnections,
	}
	if err := c.doRequest(ctx, http.MethodPost, reqURL, body, nil); err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	return nil
}

// ReportTraffic posts one upload/download delta per user observed since
// the last report.
func (c *Client) ReportTraffic(ctx context.Context, samples []TrafficSample) error {
	reqURL := c.baseURL + "/api/node/traffic"
	body := trafficReportRequest{
		NodeID:  c.nodeID,
		Secret:  c.secret,
		Samples: samples,
	}
	if err := c.doRequest(ctx, http.MethodPost, reqURL, body, nil); err != nil {
		return fmt.Errorf("report traffic: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request and, on a 2xx response, decodes the
// body directly into result (nodal's success responses are not envelope-
// wrapped; see utils.SuccessResponse). A non-2xx response is decoded as
// the {"error":{"code","message"}} envelope and returned as an error.
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Code != "" {
			return fmt.Errorf("api error: %s: %s", apiErr.Error.Code, apiErr.Error.Message)
		}
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
