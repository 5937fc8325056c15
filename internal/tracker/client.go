// Package tracker talks to the remote project-tracking service. The service
// owns task persistence and consistency; this package only fetches task
// snapshots and applies status mutations, plus a local SQLite snapshot cache
// so matching can run offline.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tasklink/internal/logging"
	"tasklink/internal/types"
)

// Service is the narrow contract the pipeline needs from the tracker.
type Service interface {
	ListTasks(ctx context.Context, projectID string) ([]types.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status types.Status) error
}

var _ Service = (*Client)(nil)

// ClientConfig holds connection settings for the tracker API.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.tasklink.dev/v1",
		Timeout: 30 * time.Second,
	}
}

// Client is an HTTP client for the tracker API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	mu         sync.Mutex
	lastStatus int
}

// NewClient creates a tracker client with default settings.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(DefaultClientConfig(apiKey))
}

// NewClientWithConfig creates a tracker client with custom settings.
func NewClientWithConfig(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultClientConfig("").BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultClientConfig("").Timeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// listTasksResponse is the wire shape of the task-collection endpoint.
type listTasksResponse struct {
	Tasks []types.Task `json:"tasks"`
}

// updateTaskRequest is the wire shape of a status mutation.
type updateTaskRequest struct {
	Status types.Status `json:"status"`
}

// ListTasks fetches the current task snapshot for a project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]types.Task, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project id required")
	}

	url := fmt.Sprintf("%s/projects/%s/tasks", c.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()
	c.recordStatus(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError("list tasks", resp)
	}

	var out listTasksResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}

	logging.TrackerDebug("fetched %d tasks for project %s", len(out.Tasks), projectID)
	return out.Tasks, nil
}

// UpdateTaskStatus applies a status mutation to a single task.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status types.Status) error {
	if taskID == "" {
		return fmt.Errorf("task id required")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	body, err := json.Marshal(updateTaskRequest{Status: status})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks/%s", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()
	c.recordStatus(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError("update task", resp)
	}

	logging.Tracker("task %s -> %s", taskID, status)
	return nil
}

// FetchProjects fetches several projects concurrently. Fetches are bounded
// so a long project list does not stampede the API; the first error cancels
// the remaining fetches.
func (c *Client) FetchProjects(ctx context.Context, projectIDs []string) (map[string][]types.Task, error) {
	results := make(map[string][]types.Task, len(projectIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, id := range projectIDs {
		g.Go(func() error {
			tasks, err := c.ListTasks(ctx, id)
			if err != nil {
				return fmt.Errorf("project %s: %w", id, err)
			}
			mu.Lock()
			results[id] = tasks
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LastStatus returns the HTTP status of the most recent request, for
// diagnostics output.
func (c *Client) LastStatus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatus
}

func (c *Client) recordStatus(code int) {
	c.mu.Lock()
	c.lastStatus = code
	c.mu.Unlock()
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// apiError captures the status line and a truncated body for non-2xx
// responses.
func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	logging.TrackerError("%s failed: %s %s", op, resp.Status, bytes.TrimSpace(body))
	return fmt.Errorf("%s: tracker returned %s: %s", op, resp.Status, bytes.TrimSpace(body))
}
