package regex

import "regexp"

var (
	// Repository URL patterns. Group 1 is the owner, group 2 the repository name
	// (possibly still carrying a ".git" suffix).
	SSHRepo   = regexp.MustCompile(`^git@(?:www\.)?github\.com:([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)/?$`)
	HTTPSRepo = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:/.*)?(?:[?#].*)?$`)
)
