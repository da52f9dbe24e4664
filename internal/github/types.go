package github

// User is the authenticated user from the GitHub /user endpoint
type User struct {
	Login       string  `json:"login"`
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}

// Repository represents a GitHub repository from the API
type Repository struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	Private         bool    `json:"private"`
	Fork            bool    `json:"fork"`
	Language        *string `json:"language"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	StargazersCount int     `json:"stargazers_count"`
}

// Organization represents a GitHub organization from the API
type Organization struct {
	Login       string  `json:"login"`
	ID          int64   `json:"id"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

// Issue is one item from the GitHub /search/issues endpoint. Pull requests
// are searched through the issues API, so PR results use this shape.
type Issue struct {
	Title         string `json:"title"`
	State         string `json:"state"`
	HTMLURL       string `json:"html_url"`
	CreatedAt     string `json:"created_at"`
	RepositoryURL string `json:"repository_url"`
}

// searchResult is the envelope returned by /search/issues
type searchResult struct {
	TotalCount int     `json:"total_count"`
	Items      []Issue `json:"items"`
}

// PageOptions selects one page of a paginated resource. A zero Cursor means
// the first page; a non-zero Cursor is the opaque next-page marker returned
// by a previous call and must be passed back unmodified.
type PageOptions struct {
	Cursor  string
	PerPage int
}

// Page is one decoded page of a paginated resource. NextCursor is empty when
// the upstream reported no further pages.
type Page[T any] struct {
	Records    []T
	NextCursor string
}
