package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInput         ErrorType = "INPUT"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeManifest      ErrorType = "MANIFEST"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - HTTP %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError derived from the same sentinel, so errors.Is keeps
// working after WithError/WithContext copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Input errors
var (
	ErrInvalidURL = NewAppError(TypeInput, "Invalid GitHub URL", nil).
			WithSuggestion("Use https://github.com/<owner>/<repo> or git@github.com:<owner>/<repo>.git")

	ErrEmptyURL = NewAppError(TypeInput, "No repository URL provided", nil).
			WithSuggestion("Pass the URL as an argument: repolens analyze https://github.com/<owner>/<repo>")
)

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
				WithSuggestion("Export GEMINI_API_KEY or run: repolens config set gemini_api_key <key>")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Inspect it with: repolens config show")

	ErrUnknownConfigKey = NewAppError(TypeConfiguration, "Unknown configuration key", nil).
				WithSuggestion("Valid keys: gemini_api_key, github_token, model, output_path, language, relevant_suffixes")
)

// VCS errors
var (
	ErrListingFailure = NewAppError(TypeVCS, "failed to list directory", nil)

	ErrFetchFailure = NewAppError(TypeVCS, "failed to fetch file content", nil)

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository URL and access permissions")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen run: repolens config set github_token <token>")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")
)

// Manifest errors
var (
	ErrManifestParse = NewAppError(TypeManifest, "failed to parse manifest", nil)
)

// AI errors
var (
	ErrSummaryGeneration = NewAppError(TypeAI, "summary generation failed", nil)

	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrInvalidAIOutput = NewAppError(TypeAI, "invalid AI output format", nil).
				WithSuggestion("This is likely a temporary issue, please try again")

	ErrGeminiAPIKeyInvalid = NewAppError(TypeAI, "Gemini API key is invalid", nil).
				WithSuggestion("Get a valid API key at: https://aistudio.google.com/app/apikey\nThen run: repolens config set gemini_api_key <key>")

	ErrGeminiQuotaExceeded = NewAppError(TypeAI, "Gemini API quota exceeded", nil).
				WithSuggestion("Wait for quota to reset or upgrade your Gemini plan")
)

// Internal errors
var (
	ErrWriteOutput = NewAppError(TypeInternal, "failed to write analysis result", nil).
			WithSuggestion("Check that the output directory exists and is writable")
)
