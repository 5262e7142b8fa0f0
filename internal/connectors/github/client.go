package github

import (
	"context"
	"fmt"
	"sort"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

const (
	// DefaultTimeout is the HTTP request timeout for API calls.
	DefaultTimeout = 30 * time.Second

	// apiRate throttles proactively below GitHub's authenticated
	// quota of 5000 requests per hour.
	apiRate = 1.2
)

// RemoteMetadata is what the API adds on top of a local clone.
type RemoteMetadata struct {
	Description string
	Languages   []string
	Stars       int
	Topics      []string
}

// Client wraps the go-github client for repository metadata lookups.
// All requests pass through a token-bucket limiter.
type Client struct {
	gh      *gh.Client
	limiter *rate.Limiter
}

// NewClient creates an API client. With an empty token the client is
// unauthenticated and subject to GitHub's low anonymous quota, which
// is still plenty for single-repository lookups.
func NewClient(ctx context.Context, token string) *Client {
	httpClient := oauth2.NewClient(ctx, nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = DefaultTimeout

	return &Client{
		gh:      gh.NewClient(httpClient),
		limiter: rate.NewLimiter(rate.Limit(apiRate), 1),
	}
}

// RepositoryMetadata fetches description, languages and topics for a
// repository. Languages are ordered by descending byte count.
func (c *Client) RepositoryMetadata(ctx context.Context, ref domain.RepoRef) (RemoteMetadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return RemoteMetadata{}, err
	}

	repo, _, err := c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return RemoteMetadata{}, fmt.Errorf("fetching %s: %w", ref.FullName, err)
	}

	meta := RemoteMetadata{
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Topics:      repo.Topics,
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return RemoteMetadata{}, err
	}

	langs, _, err := c.gh.Repositories.ListLanguages(ctx, ref.Owner, ref.Name)
	if err != nil {
		// Languages are a nice-to-have, the description already came
		// through.
		return meta, nil
	}

	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	meta.Languages = names

	return meta, nil
}
