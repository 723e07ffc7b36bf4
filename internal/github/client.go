// Package github lists open pull requests from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	githubAPIVersion = "2022-11-28"
	defaultBaseURL   = "https://api.github.com"
	pageSize         = 50
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL defaults to https://api.github.com.
	BaseURL string

	// Token is a personal access token sent as a bearer token.
	Token string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient defaults to a client with Timeout applied.
	HTTPClient *http.Client

	Logger *slog.Logger
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("github: invalid base URL %q: %w", baseURL, err)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("github: no personal access token configured")
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
		baseURL:    baseURL,
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("github: %s returned %d: %s", e.URL, e.StatusCode, e.Message)
}

// ListOpenPulls returns every open pull request of repo ("owner/name"),
// following pagination to the last page.
func (c *Client) ListOpenPulls(ctx context.Context, repo string) ([]PullRequest, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("github: %q did not have exactly 2 components", repo)
	}

	next := fmt.Sprintf("%s/repos/%s/%s/pulls?state=open&per_page=%d",
		c.baseURL, url.PathEscape(owner), url.PathEscape(name), pageSize)

	var all []PullRequest
	for next != "" {
		c.logger.Info("fetching pull requests", "repo", repo, "url", next)

		var page []PullRequest
		link, err := c.get(ctx, next, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		next = parseLinkNext(link)
	}
	return all, nil
}

// get decodes the JSON body of endpoint into out and returns the Link header.
func (c *Client) get(ctx context.Context, endpoint string, out any) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("github: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	request.Header.Set("Authorization", "Bearer "+c.token)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("github: GET %s: %w", endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", parseAPIError(response)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return "", fmt.Errorf("github: decoding response: %w", err)
	}
	return response.Header.Get("Link"), nil
}

func parseAPIError(response *http.Response) error {
	apiErr := &APIError{StatusCode: response.StatusCode, URL: response.Request.URL.String()}
	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}
