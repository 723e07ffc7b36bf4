package github

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// PullRequest is the subset of the pulls API response the journal uses.
type PullRequest struct {
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	HTMLURL string  `json:"html_url"`
	User    User    `json:"user"`
	Labels  []Label `json:"labels"`
	Base    Base    `json:"base"`
}

type User struct {
	Login string `json:"login"`
}

type Label struct {
	Name string `json:"name"`
}

type Base struct {
	Repo Repository `json:"repo"`
}

type Repository struct {
	FullName string `json:"full_name"`
}

// Selector picks the pull requests of one repository. Empty Authors or
// Labels match everything.
type Selector struct {
	Repo    string
	Authors []string
	Labels  []string
}

// Matches reports whether pr was opened by one of the selected authors and
// carries at least one of the selected labels.
func (s Selector) Matches(pr PullRequest) bool {
	if len(s.Authors) > 0 && !slices.Contains(s.Authors, pr.User.Login) {
		return false
	}
	if len(s.Labels) > 0 && !slices.ContainsFunc(pr.Labels, func(l Label) bool {
		return slices.Contains(s.Labels, l.Name)
	}) {
		return false
	}
	return true
}

// Fetch queries every selector concurrently and returns the matching pull
// requests grouped in selector order. The first failure is returned.
func (c *Client) Fetch(ctx context.Context, selectors []Selector) ([]PullRequest, error) {
	results := make([][]PullRequest, len(selectors))
	errs := make([]error, len(selectors))

	var wg sync.WaitGroup
	for i, selector := range selectors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pulls, err := c.ListOpenPulls(ctx, selector.Repo)
			if err != nil {
				errs[i] = fmt.Errorf("fetching pull requests for %s: %w", selector.Repo, err)
				return
			}
			for _, pr := range pulls {
				if selector.Matches(pr) {
					results[i] = append(results[i], pr)
				}
			}
		}()
	}
	wg.Wait()

	var matched []PullRequest
	for i := range selectors {
		if errs[i] != nil {
			return nil, errs[i]
		}
		matched = append(matched, results[i]...)
	}
	c.logger.Info("pull requests selected", "count", len(matched), "selectors", len(selectors))
	return matched, nil
}
