package service

import (
	"strings"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/github"
)

// reasonTruncated marks a collection cut short by the page ceiling rather
// than by an upstream failure.
const reasonTruncated = "page_limit_reached"

// assemble maps a collection run to the response document. Every non-fatal
// sub-failure becomes a warning; partial collections keep whatever records
// were gathered and are never dropped.
func assemble(result *aggregateResult) *dto.UserInfoResponse {
	response := &dto.UserInfoResponse{
		Repositories:  toRepositories(result.repositories.Items),
		Organizations: toOrganizations(result.organizations.Items),
		PullRequests:  toPullRequests(result.pullRequests.Items),
		Warnings:      []dto.Warning{},
	}

	if result.profileErr != nil {
		response.Warnings = append(response.Warnings, dto.Warning{
			Resource: "profile",
			Reason:   reasonFor(result.profileErr),
		})
	} else {
		response.Profile = toProfile(result.profile)
	}

	response.Warnings = append(response.Warnings, collectionWarnings("repositories", len(result.repositories.Items), result.repositories.Exhaustive, result.repositories.Err)...)
	response.Warnings = append(response.Warnings, collectionWarnings("organizations", len(result.organizations.Items), result.organizations.Exhaustive, result.organizations.Err)...)
	response.Warnings = append(response.Warnings, collectionWarnings("pull_requests", len(result.pullRequests.Items), result.pullRequests.Exhaustive, result.pullRequests.Err)...)

	return response
}

func collectionWarnings(resource string, items int, exhaustive bool, err error) []dto.Warning {
	if err != nil {
		return []dto.Warning{{
			Resource: resource,
			Reason:   reasonFor(err),
			Partial:  items > 0,
		}}
	}
	if !exhaustive {
		return []dto.Warning{{
			Resource: resource,
			Reason:   reasonTruncated,
			Partial:  true,
		}}
	}
	return nil
}

// reasonFor condenses a sub-failure into its classification token
func reasonFor(err error) string {
	if kind := github.KindOf(err); kind != "" {
		return string(kind)
	}
	return string(github.KindServerError)
}

func toProfile(user *github.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Login:       user.Login,
		Name:        user.Name,
		Email:       user.Email,
		Bio:         user.Bio,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
	}
}

func toRepositories(repos []github.Repository) []dto.RepositoryResponse {
	out := make([]dto.RepositoryResponse, len(repos))
	for i, repo := range repos {
		out[i] = dto.RepositoryResponse{
			Name:            repo.Name,
			FullName:        repo.FullName,
			Private:         repo.Private,
			Description:     repo.Description,
			HTMLURL:         repo.HTMLURL,
			Language:        repo.Language,
			CreatedAt:       repo.CreatedAt,
			UpdatedAt:       repo.UpdatedAt,
			StargazersCount: repo.StargazersCount,
		}
	}
	return out
}

func toOrganizations(orgs []github.Organization) []dto.OrganizationResponse {
	out := make([]dto.OrganizationResponse, len(orgs))
	for i, org := range orgs {
		out[i] = dto.OrganizationResponse{
			Login:       org.Login,
			Description: org.Description,
			URL:         org.URL,
		}
	}
	return out
}

func toPullRequests(issues []github.Issue) []dto.PullRequestResponse {
	out := make([]dto.PullRequestResponse, len(issues))
	for i, issue := range issues {
		out[i] = dto.PullRequestResponse{
			Title:      issue.Title,
			State:      issue.State,
			HTMLURL:    issue.HTMLURL,
			CreatedAt:  issue.CreatedAt,
			Repository: repositoryName(issue.RepositoryURL),
		}
	}
	return out
}

// repositoryName derives "owner/repo" from a repository API URL
func repositoryName(repoURL string) string {
	if repoURL == "" {
		return "unknown"
	}
	parts := strings.Split(strings.TrimSuffix(repoURL, "/"), "/")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
