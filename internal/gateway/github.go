// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v84/github"
	"github.com/naka-gawa/github-repos/internal/domain"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchRepositories lists the public repositories of a user in the order
	// the API returns them. Errors are *domain.APIError, *domain.TransportError
	// or *domain.DecodeError.
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty baseURL selects DefaultBaseURL. Requests are unauthenticated.
func NewGitHubGateway(baseURL string, logger *log.Logger) (*GitHubGateway, error) {
	restClient := github.NewClient(nil)
	if baseURL != "" && baseURL != DefaultBaseURL {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
		}
		restClient.BaseURL = u
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchRepositories performs a single GET users/{username}/repos. Only the
// first page is requested and nothing is retried.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	if username == "" {
		g.logger.Println("Gateway: empty username, skipping request.")
		return nil, &domain.APIError{Username: username, StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	g.logger.Printf("Gateway: fetching repositories for %s...\n", username)

	repos, _, err := g.restClient.Repositories.ListByUser(ctx, url.PathEscape(username), nil)
	if err != nil {
		mapped := mapGHError(username, err)
		g.logger.Printf("Gateway: request for %s failed: %v\n", username, mapped)
		return nil, mapped
	}

	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, toDomain(repo))
	}
	g.logger.Printf("Gateway: fetched %d repositories for %s.\n", len(result), username)
	return result, nil
}

func toDomain(repo *github.Repository) domain.Repository {
	return domain.Repository{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		OwnerLogin:  repo.GetOwner().GetLogin(),
		HTMLURL:     repo.GetHTMLURL(),
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Language:    repo.GetLanguage(),
	}
}

// mapGHError sorts a go-github error into the domain error taxonomy.
func mapGHError(username string, err error) error {
	var (
		ghErr      *github.ErrorResponse
		rateErr    *github.RateLimitError
		abuseErr   *github.AbuseRateLimitError
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
		statusCode int
		message    string
	)
	switch {
	case errors.As(err, &ghErr):
		statusCode, message = responseStatus(ghErr.Response), ghErr.Message
	case errors.As(err, &rateErr):
		statusCode, message = responseStatus(rateErr.Response), rateErr.Message
	case errors.As(err, &abuseErr):
		statusCode, message = responseStatus(abuseErr.Response), abuseErr.Message
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return &domain.DecodeError{Err: err}
	default:
		return &domain.TransportError{Err: err}
	}
	return &domain.APIError{Username: username, StatusCode: statusCode, Message: message}
}

func responseStatus(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
