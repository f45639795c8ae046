package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/whotakesshowers/wts/internal/roster"
)

// Client talks to the picker backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the default HTTP client's timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// NewClient creates a client for the backend at baseURL. The "/api" suffix is
// appended when missing.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    NormalizeBaseURL(baseURL),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NormalizeBaseURL trims trailing slashes and ensures the URL ends in /api.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasSuffix(u, "/api") {
		u += "/api"
	}
	return u
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListProjects returns every project visible to the caller.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject returns one project.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCandidates returns every candidate visible to the caller.
func (c *Client) ListCandidates(ctx context.Context) ([]Candidate, error) {
	var out []Candidate
	if err := c.do(ctx, http.MethodGet, "/candidates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListHistory returns recorded outcomes, newest first.
func (c *Client) ListHistory(ctx context.Context, q HistoryQuery) ([]History, error) {
	v := url.Values{}
	if q.ProjectID != "" {
		v.Set("project_id", q.ProjectID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/history"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out []History
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Randomize asks the backend to pick, and record, a winner for the project.
func (c *Client) Randomize(ctx context.Context, projectID string) (*RandomizeResponse, error) {
	var out RandomizeResponse
	if err := c.do(ctx, http.MethodPost, "/randomize", randomizeRequest{ProjectID: projectID}, &out); err != nil {
		return nil, err
	}
	if out.CandidateID == "" {
		return nil, fmt.Errorf("POST /randomize: response has no candidate_id")
	}
	return &out, nil
}

// ProjectRoster loads a project together with its candidates and returns a
// snapshot of the project's members, in candidate-list order.
func (c *Client) ProjectRoster(ctx context.Context, projectID string) (roster.Project, roster.Snapshot, error) {
	p, err := c.GetProject(ctx, projectID)
	if err != nil {
		return roster.Project{}, roster.Snapshot{}, err
	}
	rp, err := p.Roster()
	if err != nil {
		return roster.Project{}, roster.Snapshot{}, err
	}

	cands, err := c.ListCandidates(ctx)
	if err != nil {
		return roster.Project{}, roster.Snapshot{}, err
	}
	all := make([]roster.Candidate, len(cands))
	for i, cd := range cands {
		all[i] = cd.Roster()
	}

	return rp, roster.CaptureProject(rp, all), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: method, Path: path, Code: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error != "" {
			se.Message = eb.Error
		} else {
			se.Message = strings.TrimSpace(string(respBody))
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
