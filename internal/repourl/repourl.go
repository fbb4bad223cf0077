// Package repourl extracts the owner and repository name from a GitHub URL.
package repourl

import (
	"regexp"
	"strings"

	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/regex"
)

const sshPrefix = "git@"

// Parse accepts https://github.com/owner/repo[.git][/...] and
// git@github.com:owner/repo[.git]. The SSH pattern is only tried when the URL
// starts with "git@".
func Parse(raw string) (models.RepoRef, error) {
	url := strings.TrimSpace(raw)

	var re *regexp.Regexp
	if strings.HasPrefix(url, sshPrefix) {
		re = regex.SSHRepo
	} else {
		re = regex.HTTPSRepo
	}

	matches := re.FindStringSubmatch(url)
	if len(matches) < 3 {
		return models.RepoRef{}, domainErrors.ErrInvalidURL.WithContext("url", raw)
	}

	owner := matches[1]
	name := strings.TrimSuffix(matches[2], ".git")
	if owner == "" || name == "" {
		return models.RepoRef{}, domainErrors.ErrInvalidURL.WithContext("url", raw)
	}

	return models.RepoRef{Owner: owner, Name: name}, nil
}
