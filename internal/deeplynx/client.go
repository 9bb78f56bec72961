package deeplynx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no endpoint is configured.
const DefaultBaseURL = "http://localhost:5000"

const requestTimeout = 15 * time.Second

// Client issues GET requests against the Deep Lynx API. All requests carry
// JSON accept/content headers and are logged with a correlation id.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return NewClientWithTimeout(baseURL, requestTimeout, logger)
}

// NewClientWithTimeout creates a client with an explicit request timeout.
// A non-positive timeout falls back to the default.
func NewClientWithTimeout(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// errorBody is the shape of the service's error payloads.
type errorBody struct {
	Detail string `json:"detail"`
}

// get performs one GET round trip and returns the response body. Non-2xx
// responses become a *FetchError carrying the server detail when present.
func (c *Client) get(ctx context.Context, resource string) ([]byte, error) {
	url := c.baseURL + resource
	reqID := uuid.NewString()

	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("url", url),
	)
	log.Debug("request", zap.String("method", http.MethodGet))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Resource: resource, Detail: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, &FetchError{Resource: resource, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return nil, &FetchError{Resource: resource, StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	log.Debug("response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := resp.Status
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Detail != "" {
			detail = eb.Detail
		}
		return nil, &FetchError{Resource: resource, StatusCode: resp.StatusCode, Detail: detail}
	}

	return body, nil
}

// rawOntology defers decoding of the graph collections so absent or
// non-sequence fields can be coerced to empty slices instead of failing.
type rawOntology struct {
	Nodes         json.RawMessage `json:"nodes"`
	Relationships json.RawMessage `json:"relationships"`
}

// FetchOntology retrieves the full ontology graph. Missing or malformed
// nodes/relationships fields decode to empty collections, and relationships
// whose endpoints do not name a known node are dropped.
func (c *Client) FetchOntology(ctx context.Context) (GraphSnapshot, error) {
	const resource = "/ontology"

	body, err := c.get(ctx, resource)
	if err != nil {
		return GraphSnapshot{}, err
	}

	var raw rawOntology
	if err := json.Unmarshal(body, &raw); err != nil {
		return GraphSnapshot{}, &FetchError{Resource: resource, Detail: fmt.Sprintf("decoding body: %v", err)}
	}

	snapshot := GraphSnapshot{
		Nodes:         coerceSlice[GraphNode](raw.Nodes),
		Relationships: coerceSlice[GraphEdge](raw.Relationships),
	}

	kept := snapshot.Relationships[:0]
	for _, e := range snapshot.Relationships {
		if !snapshot.HasNode(e.Source) || !snapshot.HasNode(e.Target) {
			c.logger.Warn("dropping relationship with unknown endpoint",
				zap.String("source", e.Source),
				zap.String("target", e.Target))
			continue
		}
		kept = append(kept, e)
	}
	snapshot.Relationships = kept

	c.logger.Info("ontology fetched",
		zap.Int("nodes", len(snapshot.Nodes)),
		zap.Int("relationships", len(snapshot.Relationships)))
	return snapshot, nil
}

// coerceSlice decodes raw as []T, returning an empty slice when the field
// is absent, null, or not sequence-typed.
func coerceSlice[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

// FetchDataSources retrieves the configured data sources.
func (c *Client) FetchDataSources(ctx context.Context) ([]DataSource, error) {
	const resource = "/datasources"

	body, err := c.get(ctx, resource)
	if err != nil {
		return nil, err
	}
	var out []DataSource
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &FetchError{Resource: resource, Detail: fmt.Sprintf("decoding body: %v", err)}
	}
	if out == nil {
		out = []DataSource{}
	}
	return out, nil
}

// FetchTypeMappings retrieves the configured type mappings.
func (c *Client) FetchTypeMappings(ctx context.Context) ([]TypeMapping, error) {
	const resource = "/typemappings"

	body, err := c.get(ctx, resource)
	if err != nil {
		return nil, err
	}
	var out []TypeMapping
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &FetchError{Resource: resource, Detail: fmt.Sprintf("decoding body: %v", err)}
	}
	if out == nil {
		out = []TypeMapping{}
	}
	return out, nil
}
