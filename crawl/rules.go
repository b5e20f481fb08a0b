package crawl

// Filtering rules for discovered files and links.

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// exportExtensions are the file types a question export may arrive as.
var exportExtensions = map[string]bool{
	".json": true,
	".html": true,
	".htm":  true,
}

// IsSameDomain checks if the given URL belongs to the specified host.
func IsSameDomain(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == host
}

// IsExportFile reports whether a file path or URL points at an export.
func IsExportFile(source string) bool {
	if parsed, err := url.Parse(source); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return exportExtensions[strings.ToLower(path.Ext(parsed.Path))]
	}
	return exportExtensions[strings.ToLower(filepath.Ext(source))]
}

// IsHidden reports whether a path element is a dot-file or dot-directory.
func IsHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}
