package dto

// ProfileResponse represents the account identity in API responses
type ProfileResponse struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}

// RepositoryResponse represents repository data in API responses
type RepositoryResponse struct {
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Private         bool    `json:"private"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Language        *string `json:"language"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	StargazersCount int     `json:"stargazers_count"`
}

// OrganizationResponse represents organization data in API responses
type OrganizationResponse struct {
	Login       string  `json:"login"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

// PullRequestResponse represents pull request data in API responses
type PullRequestResponse struct {
	Title      string `json:"title"`
	State      string `json:"state"`
	HTMLURL    string `json:"html_url"`
	CreatedAt  string `json:"created_at"`
	Repository string `json:"repository"`
}

// Warning reports a non-fatal sub-failure alongside an otherwise successful
// response. Partial is true when some data for the resource was gathered
// before the failure or truncation.
type Warning struct {
	Resource string `json:"resource"`
	Reason   string `json:"reason"`
	Partial  bool   `json:"partial"`
}

// UserInfoResponse is the consolidated user document
type UserInfoResponse struct {
	Profile       *ProfileResponse       `json:"profile"`
	Repositories  []RepositoryResponse   `json:"repositories"`
	Organizations []OrganizationResponse `json:"organizations"`
	PullRequests  []PullRequestResponse  `json:"pull_requests"`
	Warnings      []Warning              `json:"warnings"`
}

// ErrorDetail carries the classified failure in an error envelope
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope returned for fatal failures
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
