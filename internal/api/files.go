package api

import (
	"strings"

	"nearfix-client/internal/common/httpclient"
)

// FilesClient resolves uploaded asset paths (photos, documents) to
// fetchable URLs.
type FilesClient struct {
	http *httpclient.Client
}

// URL turns a backend-relative file path into an absolute URL. Already
// absolute URLs pass through unchanged.
func (c *FilesClient) URL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.http.BaseURL() + "/api/files/" + strings.TrimPrefix(path, "/")
}
