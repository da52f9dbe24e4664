package service

import (
	"context"
	"log"
	"sync"
	"time"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/config"
	"gitfolio-core/internal/github"
)

// GitHubService aggregates a user's profile, repositories, organizations and
// pull requests from the GitHub API into one document.
type GitHubService struct {
	client           github.Client
	perPage          int
	maxPages         int
	aggregateTimeout time.Duration
}

// NewGitHubService creates a new GitHub aggregation service
func NewGitHubService(client github.Client, cfg *config.GitHubConfig) *GitHubService {
	return &GitHubService{
		client:           client,
		perPage:          cfg.PerPage,
		maxPages:         cfg.MaxPages,
		aggregateTimeout: cfg.AggregateTimeout,
	}
}

// aggregateResult holds the outcome of one collection run. Each slot is
// written by exactly one goroutine; the struct is read only after all of
// them have joined.
type aggregateResult struct {
	profile    *github.User
	profileErr error

	repositories  github.Collection[github.Repository]
	organizations github.Collection[github.Organization]
	pullRequests  github.Collection[github.Issue]
}

// failed reports whether every sub-fetch of the run came back empty-handed
func (r *aggregateResult) failed() bool {
	return r.profileErr != nil &&
		r.repositories.Err != nil &&
		r.organizations.Err != nil &&
		r.pullRequests.Err != nil
}

// GetUserInfo collects the consolidated user document for the given token.
// A rejected credential is fatal and returned as an error; any other
// sub-failure is reported through the document's warnings. The error is also
// non-nil when every sub-fetch failed, since there is no data to return.
func (s *GitHubService) GetUserInfo(ctx context.Context, token string) (*dto.UserInfoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.aggregateTimeout)
	defer cancel()

	result, err := s.collect(ctx, token)
	if err != nil {
		return nil, err
	}
	if result.failed() {
		return nil, result.profileErr
	}
	return assemble(result), nil
}

// collect runs the four sub-fetches. The profile is fetched first because it
// doubles as the credential check: a rejected token short-circuits the run
// before any collection call is issued. The three collections then run
// concurrently under the shared deadline, each paginating sequentially and
// writing only its own slot.
func (s *GitHubService) collect(ctx context.Context, token string) (*aggregateResult, error) {
	result := &aggregateResult{}

	user, err := s.client.GetAuthenticatedUser(ctx, token)
	if err != nil {
		if github.IsAuthError(err) {
			return nil, err
		}
		log.Printf("user-info: profile fetch failed, continuing with collections: %v", err)
		result.profileErr = err
	} else {
		result.profile = user
	}

	// The search API needs an author qualifier. @me resolves to the token's
	// owner when the profile itself could not be fetched.
	author := "@me"
	if result.profile != nil {
		author = result.profile.Login
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.repositories = github.CollectAll(ctx, func(ctx context.Context, cursor string) (*github.Page[github.Repository], error) {
			return s.client.ListRepositories(ctx, token, github.PageOptions{Cursor: cursor, PerPage: s.perPage})
		}, s.maxPages)
	}()

	go func() {
		defer wg.Done()
		result.organizations = github.CollectAll(ctx, func(ctx context.Context, cursor string) (*github.Page[github.Organization], error) {
			return s.client.ListOrganizations(ctx, token, github.PageOptions{Cursor: cursor, PerPage: s.perPage})
		}, s.maxPages)
	}()

	go func() {
		defer wg.Done()
		result.pullRequests = github.CollectAll(ctx, func(ctx context.Context, cursor string) (*github.Page[github.Issue], error) {
			return s.client.SearchPullRequests(ctx, token, author, github.PageOptions{Cursor: cursor, PerPage: s.perPage})
		}, s.maxPages)
	}()

	wg.Wait()

	log.Printf("user-info: collected %d repos (%d pages), %d orgs (%d pages), %d pull requests (%d pages)",
		len(result.repositories.Items), result.repositories.Pages,
		len(result.organizations.Items), result.organizations.Pages,
		len(result.pullRequests.Items), result.pullRequests.Pages)

	return result, nil
}
