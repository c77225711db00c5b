package config

import "errors"

// Validation errors returned by Config.Validate. Callers can match them with errors.Is.
var (
	ErrMissingAPIBaseURL   = errors.New("APIBaseURL is required")
	ErrMissingSite         = errors.New("site is required")
	ErrInvalidPageSize     = errors.New("invalid page size: must be between 1 and 100")
	ErrInvalidSort         = errors.New("invalid sort: must be activity, votes, creation or relevance")
	ErrInvalidOrder        = errors.New("invalid order: must be asc or desc")
	ErrInvalidColor        = errors.New("invalid color mode: must be auto, always or never")
	ErrInvalidQuestionURL  = errors.New("invalid question URL: must contain %d")
	ErrInvalidTerminalSize = errors.New("invalid terminal size: must not be negative")
	ErrInvalidTimeout      = errors.New("invalid HTTP timeout: must not be negative")
)
