package webstore

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/akhileshthite/chrome-extension-fetch/internal/platform"
)

// UpdateURL renders the update-check download URL for an extension.
// The parameter order matches the endpoint's documented shape, so the
// template is rendered literally rather than through url.Values (which
// would sort the keys).
func UpdateURL(endpoint, id, prodVersion string) string {
	return fmt.Sprintf("%s?response=redirect&prodversion=%s&acceptformat=crx2,crx3&x=%s",
		endpoint,
		url.QueryEscape(prodVersion),
		url.QueryEscape("id="+id+"&uc"))
}

// RequestHeader builds the impersonated request headers: a Chrome
// User-Agent embedding prodVersion and the platform token for info,
// and an accept-all content type.
func RequestHeader(prodVersion string, info *platform.Info) http.Header {
	header := http.Header{}
	header.Set("User-Agent", fmt.Sprintf(userAgentFormat, info.UserAgentToken(), prodVersion))
	header.Set("Accept", "*/*")
	return header
}

// ValidateExtensionID checks that id has the shape of a web store
// extension identifier: exactly 32 characters from the a-p alphabet.
func ValidateExtensionID(id string) error {
	if len(id) != extensionIDLength {
		return fmt.Errorf("extension ID must be %d characters, got %d", extensionIDLength, len(id))
	}
	for _, c := range id {
		if c < 'a' || c > 'p' {
			return fmt.Errorf("extension ID contains invalid character %q (IDs use only a-p)", c)
		}
	}
	return nil
}

// ParseStoreURL derives an extension ID and a friendly name from a
// Chrome Web Store detail-page URL. Both the current
// chromewebstore.google.com/detail/<name>/<id> shape and the legacy
// chrome.google.com/webstore/detail/<name>/<id> shape are accepted.
//
// The derivation assumes those fixed shapes and does not generalize to
// other vendor URL formats; anything unrecognized is an error rather
// than a guess.
func ParseStoreURL(rawURL string) (id, name string, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("parse store URL: %w", err)
	}

	segments := splitPath(parsed.Path)

	switch parsed.Host {
	case "chromewebstore.google.com":
		// /detail/<name>/<id>
		if len(segments) >= 3 && segments[0] == "detail" {
			id, name = segments[len(segments)-1], segments[len(segments)-2]
		}
	case "chrome.google.com":
		// /webstore/detail/<name>/<id>
		if len(segments) >= 4 && segments[0] == "webstore" && segments[1] == "detail" {
			id, name = segments[len(segments)-1], segments[len(segments)-2]
		}
	default:
		return "", "", fmt.Errorf("unrecognized store host %q", parsed.Host)
	}

	if id == "" {
		return "", "", fmt.Errorf("store URL %q does not match a detail-page shape", rawURL)
	}
	if err := ValidateExtensionID(id); err != nil {
		return "", "", fmt.Errorf("store URL %q: %w", rawURL, err)
	}
	return id, name, nil
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
