// Package jira searches open issues through the Jira REST search endpoint.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxResults = 50

type Config struct {
	// BaseURL is the full search endpoint, e.g.
	// https://example.atlassian.net/rest/api/2/search.
	BaseURL string

	// User and Token are sent as basic auth.
	User  string
	Token string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	searchURL  string
	user       string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Task is one open issue: its summary and the API link to it.
type Task struct {
	Summary string
	Href    string
}

func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("jira: no base URL configured")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("jira: invalid base URL %q: %w", config.BaseURL, err)
	}
	if config.User == "" || config.Token == "" {
		return nil, fmt.Errorf("jira: user and personal access token are required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		searchURL:  config.BaseURL,
		user:       config.User,
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// APIError is a non-2xx response from the search endpoint.
type APIError struct {
	StatusCode int
	Messages   []string
	URL        string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("jira: %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("jira: %s returned %d: %s", e.URL, e.StatusCode, strings.Join(e.Messages, "; "))
}

// JQL joins the query fields into `key="value"` clauses combined with "and".
// Keys are sorted so the same config always yields the same query.
func JQL(query map[string]string) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, fmt.Sprintf("%s=%s", k, strconv.Quote(query[k])))
	}
	return strings.Join(clauses, " and ")
}

type searchResponse struct {
	Issues []struct {
		Self   string `json:"self"`
		Fields struct {
			Summary string `json:"summary"`
		} `json:"fields"`
	} `json:"issues"`
}

// Search returns up to 50 issues matching query. Issues without a summary or
// link are skipped.
func (c *Client) Search(ctx context.Context, query map[string]string) ([]Task, error) {
	endpoint, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("jira: invalid base URL %q: %w", c.searchURL, err)
	}
	params := endpoint.Query()
	params.Set("jql", JQL(query))
	params.Set("maxResults", strconv.Itoa(maxResults))
	endpoint.RawQuery = params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("jira: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.SetBasicAuth(c.user, c.token)

	c.logger.Info("searching jira issues", "url", c.searchURL, "jql", params.Get("jql"))

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("jira: GET %s: %w", c.searchURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response)
	}

	var body searchResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("jira: decoding response: %w", err)
	}

	tasks := make([]Task, 0, len(body.Issues))
	for _, issue := range body.Issues {
		if issue.Fields.Summary == "" || issue.Self == "" {
			continue
		}
		tasks = append(tasks, Task{Summary: issue.Fields.Summary, Href: issue.Self})
	}
	return tasks, nil
}

func parseAPIError(response *http.Response) error {
	apiErr := &APIError{StatusCode: response.StatusCode, URL: response.Request.URL.Redacted()}
	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		ErrorMessages []string `json:"errorMessages"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Messages = payload.ErrorMessages
	}
	return apiErr
}
