package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitfolio-core/internal/config"
)

// Client defines the subset of the GitHub API used by the user-info
// aggregation. This interface allows for easy mocking in tests.
type Client interface {
	// GetAuthenticatedUser retrieves the profile of the token's owner.
	GetAuthenticatedUser(ctx context.Context, token string) (*User, error)

	// ListRepositories retrieves one page of the user's repositories,
	// public and private.
	ListRepositories(ctx context.Context, token string, opts PageOptions) (*Page[Repository], error)

	// ListOrganizations retrieves one page of the user's organization
	// memberships.
	ListOrganizations(ctx context.Context, token string, opts PageOptions) (*Page[Organization], error)

	// SearchPullRequests retrieves one page of pull requests authored by
	// the given user. author may be "@me" to refer to the token's owner.
	SearchPullRequests(ctx context.Context, token, author string, opts PageOptions) (*Page[Issue], error)
}

// HTTPClient is the real GitHub API client
type HTTPClient struct {
	httpClient     *http.Client
	baseURL        string
	apiVersion     string
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewClient creates a new GitHub API client
func NewClient(cfg *config.GitHubConfig) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion:     cfg.APIVersion,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

// GetAuthenticatedUser fetches the authenticated user's profile
func (c *HTTPClient) GetAuthenticatedUser(ctx context.Context, token string) (*User, error) {
	var user User
	if _, err := c.getJSON(ctx, token, c.baseURL+"/user", &user); err != nil {
		return nil, err
	}
	// A profile without a login is unusable downstream.
	if user.Login == "" {
		return nil, ErrMalformed(errors.New("user response missing login field"))
	}
	return &user, nil
}

// ListRepositories fetches one page of the user's repositories
func (c *HTTPClient) ListRepositories(ctx context.Context, token string, opts PageOptions) (*Page[Repository], error) {
	pageURL := opts.Cursor
	if pageURL == "" {
		pageURL = fmt.Sprintf("%s/user/repos?per_page=%d&type=all&sort=updated", c.baseURL, opts.PerPage)
	}

	var repos []Repository
	next, err := c.getJSON(ctx, token, pageURL, &repos)
	if err != nil {
		return nil, err
	}
	return &Page[Repository]{Records: repos, NextCursor: next}, nil
}

// ListOrganizations fetches one page of the user's organizations
func (c *HTTPClient) ListOrganizations(ctx context.Context, token string, opts PageOptions) (*Page[Organization], error) {
	pageURL := opts.Cursor
	if pageURL == "" {
		pageURL = fmt.Sprintf("%s/user/orgs?per_page=%d", c.baseURL, opts.PerPage)
	}

	var orgs []Organization
	next, err := c.getJSON(ctx, token, pageURL, &orgs)
	if err != nil {
		return nil, err
	}
	return &Page[Organization]{Records: orgs, NextCursor: next}, nil
}

// SearchPullRequests fetches one page of pull requests authored by the user
func (c *HTTPClient) SearchPullRequests(ctx context.Context, token, author string, opts PageOptions) (*Page[Issue], error) {
	pageURL := opts.Cursor
	if pageURL == "" {
		query := url.QueryEscape("is:pr author:" + author)
		pageURL = fmt.Sprintf("%s/search/issues?q=%s&sort=updated&per_page=%d", c.baseURL, query, opts.PerPage)
	}

	var result searchResult
	next, err := c.getJSON(ctx, token, pageURL, &result)
	if err != nil {
		return nil, err
	}
	return &Page[Issue]{Records: result.Items, NextCursor: next}, nil
}

// getJSON performs an authenticated GET, decodes the body into out and
// returns the opaque next-page cursor, if any. Transient server failures are
// retried with exponential backoff; every other classification is returned
// to the caller on the first occurrence.
func (c *HTTPClient) getJSON(ctx context.Context, token, rawURL string, out any) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		next, err := c.getJSONOnce(ctx, token, rawURL, out)
		if err == nil {
			return next, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", classifyContextErr(ctx.Err())
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := c.backoffFor(attempt)
		log.Printf("github: transient upstream failure, retrying in %v (attempt %d/%d): %v",
			backoff.Round(time.Millisecond), attempt+1, c.maxRetries, err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return "", classifyContextErr(ctx.Err())
		}
	}

	return "", fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *HTTPClient) getJSONOnce(ctx context.Context, token, rawURL string, out any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.apiVersion != "" {
		req.Header.Set("X-GitHub-Api-Version", c.apiVersion)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportErr(err)
	}
	defer resp.Body.Close()

	if apiErr := classifyStatus(resp); apiErr != nil {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", ErrMalformed(err)
	}
	return nextPageLink(resp.Header.Get("Link")), nil
}

// classifyStatus maps a non-success HTTP status to a typed error. Returns nil
// for 2xx responses.
func classifyStatus(resp *http.Response) *APIError {
	status := resp.StatusCode
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return ErrAuth(status, "token is invalid or expired")
	case status == http.StatusForbidden:
		if isRateLimitResponse(resp) {
			return ErrRateLimited(status, rateLimitReset(resp))
		}
		return ErrAuth(status, "token lacks the required scopes")
	case status == http.StatusNotFound:
		return ErrNotFound("resource not found")
	case status == http.StatusTooManyRequests:
		return ErrRateLimited(status, rateLimitReset(resp))
	case status >= 500:
		return ErrServer(status, http.StatusText(status))
	default:
		return ErrServer(status, "unexpected status "+http.StatusText(status))
	}
}

// isRateLimitResponse distinguishes a rate-limited 403 from a scope failure
func isRateLimitResponse(resp *http.Response) bool {
	if resp.Header.Get("Retry-After") != "" {
		return true
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// rateLimitReset reads the advertised reset time from the response headers
func rateLimitReset(resp *http.Response) time.Time {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if unix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			return time.Unix(unix, 0)
		}
	}
	// No usable header; advise a conservative one-minute wait.
	return time.Now().Add(time.Minute)
}

func classifyTransportErr(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout(err)
	}
	return ErrNetwork(err)
}

func classifyContextErr(err error) *APIError {
	return ErrTimeout(err)
}

// isRetryable reports whether the failure is worth another attempt. Only
// transient server-side failures qualify; auth, rate-limit, not-found,
// malformed and timeout outcomes are returned immediately.
func isRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindServerError && (apiErr.StatusCode == 0 || apiErr.StatusCode >= 500)
}

// backoffFor computes the exponential backoff for the given attempt with
// ±10% jitter to avoid thundering herds.
func (c *HTTPClient) backoffFor(attempt int) time.Duration {
	backoff := float64(c.initialBackoff)
	for i := 0; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > float64(c.maxBackoff) {
		backoff = float64(c.maxBackoff)
	}
	backoff += backoff * 0.1 * (2*rand.Float64() - 1)
	return time.Duration(backoff)
}

// nextPageLink extracts the rel="next" URL from a Link response header. The
// returned value is treated as an opaque cursor by callers. An empty string
// means the resource is exhausted.
func nextPageLink(header string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(section[0]), "<>")
		for _, param := range section[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}
