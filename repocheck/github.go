package repocheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// ErrInvalidRepo is returned for identifiers not of the form "owner/name".
var ErrInvalidRepo = errors.New("invalid repository identifier")

const (
	defaultTimeout   = 10 * time.Second
	defaultCacheTTL  = 5 * time.Minute
	defaultCacheSize = 1024
)

// ParseRepo splits "owner/name" into its parts.
func ParseRepo(repo string) (string, string, error) {
	owner, name, found := strings.Cut(repo, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, repo)
	}

	return owner, name, nil
}

// Option configures a GitHub checker.
type Option func(*options)

type options struct {
	token     string
	baseURL   string
	timeout   time.Duration
	cacheTTL  time.Duration
	cacheSize int
}

// WithToken authenticates requests. Anonymous requests work for public
// repositories but share a small rate limit.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithBaseURL points the checker at another API endpoint, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTimeout bounds each request. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithCache keeps repositories found to exist for ttl, remembering at most
// size of them. Missing repositories are never cached. A non-positive ttl
// or size disables the cache.
func WithCache(ttl time.Duration, size int) Option {
	return func(o *options) {
		o.cacheTTL = ttl
		o.cacheSize = size
	}
}

// GitHub checks repository existence through the GitHub REST API.
type GitHub struct {
	client *github.Client

	ttl  time.Duration
	size int
	now  func() time.Time

	mu    sync.Mutex
	found map[string]time.Time // repo -> expiry
}

// NewGitHub creates a checker.
func NewGitHub(ctx context.Context, opts ...Option) (*GitHub, error) {
	o := options{timeout: defaultTimeout, cacheTTL: defaultCacheTTL, cacheSize: defaultCacheSize}

	for _, apply := range opts {
		apply(&o)
	}

	httpClient := &http.Client{Timeout: o.timeout}

	if o.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, httpClient), ts)
	}

	client := github.NewClient(httpClient)

	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL %q: %w", o.baseURL, err)
		}

		client.BaseURL = parsed
	}

	return &GitHub{
		client: client,
		ttl:    o.cacheTTL,
		size:   o.cacheSize,
		now:    time.Now,
		found:  make(map[string]time.Time),
	}, nil
}

// Exists reports whether the repository can be seen with the configured
// credentials. A 404 answer means it does not exist; other failures are
// returned as errors. Only positive answers are cached, so a repository
// created after a miss is found on the next call.
func (g *GitHub) Exists(ctx context.Context, repo string) (bool, error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return false, err
	}

	if g.cached(repo) {
		return true, nil
	}

	_, resp, err := g.client.Repositories.Get(ctx, owner, name)

	switch {
	case err == nil:
		g.remember(repo)

		return true, nil
	case resp != nil && resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("looking up %s: %w", repo, err)
	}
}

func (g *GitHub) cached(repo string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	expiry, ok := g.found[repo]
	if !ok {
		return false
	}

	if !g.now().Before(expiry) {
		delete(g.found, repo)

		return false
	}

	return true
}

// remember caches repo, evicting expired entries and then the entry closest
// to expiry when the cache is full.
func (g *GitHub) remember(repo string) {
	if g.ttl <= 0 || g.size <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()

	if _, ok := g.found[repo]; !ok && len(g.found) >= g.size {
		for r, expiry := range g.found {
			if !now.Before(expiry) {
				delete(g.found, r)
			}
		}

		if len(g.found) >= g.size {
			oldest, first := "", time.Time{}

			for r, expiry := range g.found {
				if oldest == "" || expiry.Before(first) {
					oldest, first = r, expiry
				}
			}

			delete(g.found, oldest)
		}
	}

	g.found[repo] = now.Add(g.ttl)
}

// Cached returns how many repositories are currently cached.
func (g *GitHub) Cached() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.found)
}
