// Package transport holds the HTTP plumbing shared by the model clients.
package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrRequestFailed = errors.New("request failed")

// UserAgentRoundTripper tags every request with the compass version.
type UserAgentRoundTripper struct {
	userAgent string
	next      http.RoundTripper
}

func NewRoundTripper(version string, next http.RoundTripper) *UserAgentRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &UserAgentRoundTripper{userAgent: "compass-cli/" + version, next: next}
}

func (u *UserAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", u.userAgent)

	res, err := u.next.RoundTrip(clonedReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return res, nil
}

// NewClient returns an http.Client using UserAgentRoundTripper.
func NewClient(version string) *http.Client {
	return &http.Client{Transport: NewRoundTripper(version, nil)}
}
