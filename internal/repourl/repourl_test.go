package repourl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectedOwner string
		expectedRepo  string
		expectedError bool
	}{
		{
			name:          "HTTPS URL",
			url:           "https://github.com/foo/bar",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "HTTPS URL with .git suffix",
			url:           "https://github.com/foo/bar.git",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "HTTPS URL with trailing path",
			url:           "https://github.com/thomas-vilte/repolens/tree/main/internal",
			expectedOwner: "thomas-vilte",
			expectedRepo:  "repolens",
		},
		{
			name:          "HTTPS URL with trailing slash",
			url:           "https://github.com/foo/bar/",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "HTTPS URL with query string",
			url:           "https://github.com/foo/bar?tab=readme-ov-file",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "HTTPS URL with fragment",
			url:           "https://github.com/foo/bar.git#readme",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "HTTP and www host",
			url:           "http://www.github.com/foo/bar",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "repository name with dots",
			url:           "https://github.com/vercel/next.js",
			expectedOwner: "vercel",
			expectedRepo:  "next.js",
		},
		{
			name:          "surrounding whitespace",
			url:           "  https://github.com/foo/bar\n",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "SSH URL",
			url:           "git@github.com:foo/bar.git",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "SSH URL without .git",
			url:           "git@github.com:foo/bar",
			expectedOwner: "foo",
			expectedRepo:  "bar",
		},
		{
			name:          "missing repository segment",
			url:           "https://github.com/foo",
			expectedError: true,
		},
		{
			name:          "missing repository after slash",
			url:           "https://github.com/foo/",
			expectedError: true,
		},
		{
			name:          "repository is only .git",
			url:           "https://github.com/foo/.git",
			expectedError: true,
		},
		{
			name:          "malformed host",
			url:           "https:///foo/bar",
			expectedError: true,
		},
		{
			name:          "non GitHub host",
			url:           "https://gitlab.com/foo/bar",
			expectedError: true,
		},
		{
			name:          "SSH URL missing repository",
			url:           "git@github.com:foo",
			expectedError: true,
		},
		{
			name:          "SSH URL with nested path",
			url:           "git@github.com:foo/bar/baz.git",
			expectedError: true,
		},
		{
			name:          "empty string",
			url:           "",
			expectedError: true,
		},
		{
			name:          "not a URL",
			url:           "foo/bar",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.url)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domainErrors.ErrInvalidURL))
				assert.Equal(t, models.RepoRef{}, ref)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOwner, ref.Owner)
			assert.Equal(t, tt.expectedRepo, ref.Name)
		})
	}
}

func TestParse_ErrorCarriesURL(t *testing.T) {
	_, err := Parse("https://example.com/foo/bar")

	var appErr *domainErrors.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, "https://example.com/foo/bar", appErr.Context["url"])
		assert.Equal(t, domainErrors.TypeInput, appErr.Type)
	}
}
