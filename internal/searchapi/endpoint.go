package searchapi

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Defaults for base address selection.
const (
	DefaultPagesSuffix = "github.io"
	DefaultDevAddress  = "http://127.0.0.1:5000"
)

// ErrNoBaseURL is returned when neither an override nor an origin is set.
var ErrNoBaseURL = errors.New("search service address not configured")

// Endpoint describes where the client runs and how to reach the service.
type Endpoint struct {
	// BaseURL, when set, wins over everything else.
	BaseURL string
	// Origin is the address the client is served from.
	Origin string
	// PagesSuffix marks static hosting domains that cannot serve the API.
	PagesSuffix string
	// DevAddress is used when Origin is on a static hosting domain.
	DevAddress string
}

// ResolveBaseURL picks the service address. An origin on a static pages
// domain targets the local development address; any other origin is used
// as-is so paths stay same-origin.
func ResolveBaseURL(e Endpoint) (string, error) {
	if b := strings.TrimSpace(e.BaseURL); b != "" {
		return strings.TrimRight(b, "/"), nil
	}
	origin := strings.TrimSpace(e.Origin)
	if origin == "" {
		return "", ErrNoBaseURL
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid origin %q", origin)
	}
	suffix := e.PagesSuffix
	if suffix == "" {
		suffix = DefaultPagesSuffix
	}
	if strings.HasSuffix(strings.ToLower(u.Hostname()), strings.ToLower(suffix)) {
		dev := e.DevAddress
		if dev == "" {
			dev = DefaultDevAddress
		}
		return strings.TrimRight(dev, "/"), nil
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host, "/"), nil
}
