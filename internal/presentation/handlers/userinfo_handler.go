package handlers

import (
	"errors"
	"log"
	"net/http"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/application/service"
	"gitfolio-core/internal/github"
	"gitfolio-core/internal/middleware"

	"github.com/gin-gonic/gin"
)

// UserInfoHandler handles consolidated GitHub user-info requests
type UserInfoHandler struct {
	githubService *service.GitHubService
}

// NewUserInfoHandler creates a new user-info handler
func NewUserInfoHandler(githubService *service.GitHubService) *UserInfoHandler {
	return &UserInfoHandler{githubService: githubService}
}

// GetUserInfo handles GET /github/user-info
// @Summary Get consolidated GitHub user information
// @Description Returns the authenticated user's profile, repositories (public and private), organizations and pull requests in one document. Non-fatal upstream failures are reported in the warnings list alongside whatever data was gathered.
// @Tags GitHub
// @Accept json
// @Produce json
// @Security GitHubToken
// @Success 200 {object} dto.UserInfoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /github/user-info [get]
func (h *UserInfoHandler) GetUserInfo(c *gin.Context) {
	token := middleware.TokenFromContext(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: dto.ErrorDetail{
				Kind:    "auth",
				Message: "A GitHub token is required",
			},
		})
		return
	}

	response, err := h.githubService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		status, detail := mapFatalError(err)
		log.Printf("user-info: request failed (%d %s)", status, detail.Kind)
		c.JSON(status, dto.ErrorResponse{Error: detail})
		return
	}

	c.JSON(http.StatusOK, response)
}

// mapFatalError translates a fatal collection failure into an HTTP status
// and error envelope. Auth rejections keep the upstream's own status so a
// missing-scope 403 is distinguishable from a bad token 401.
func mapFatalError(err error) (int, dto.ErrorDetail) {
	switch github.KindOf(err) {
	case github.KindAuth:
		status := http.StatusUnauthorized
		var apiErr *github.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			status = http.StatusForbidden
		}
		return status, dto.ErrorDetail{
			Kind:    string(github.KindAuth),
			Message: "The provided GitHub token was rejected",
		}
	case github.KindTimeout:
		return http.StatusGatewayTimeout, dto.ErrorDetail{
			Kind:    string(github.KindTimeout),
			Message: "GitHub did not respond in time",
		}
	default:
		return http.StatusBadGateway, dto.ErrorDetail{
			Kind:    string(github.KindServerError),
			Message: "GitHub is currently unreachable",
		}
	}
}
