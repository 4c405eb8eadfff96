package main

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitechat"
)

// NormalizeURL trims raw and adds an https scheme to bare hosts.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "URL required")
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "invalid URL %q", raw)
	}
	return u.String(), nil
}
