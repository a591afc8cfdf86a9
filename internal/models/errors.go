package models

import "errors"

// Error taxonomy surfaced to callers. Handlers map these to status codes
// (401/403/404); anything else is a terminal 500 for the request.
var (
	// ErrUnauthenticated means the presented token cannot identify any caller
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidCredentials means no user row matches the login credentials
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound means the requested or resolved user id has no row
	ErrUserNotFound = errors.New("user not found")

	// ErrArticleNotFound means the requested article id has no row
	ErrArticleNotFound = errors.New("article not found")

	// ErrForbidden means the resolved user lacks permission for the target
	ErrForbidden = errors.New("access forbidden")

	// ErrTitleRequired means an article draft is missing its title
	ErrTitleRequired = errors.New("title is required")
)
