package oauth

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Transport is an http.RoundTripper that authenticates requests with the
// provided TokenSource: proactive refresh via Token, reactive retry on 401
// via ForceRefresh.
type Transport struct {
	Source TokenSource

	// Base is the RoundTripper making the actual requests. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := req.Context()
	token, err := t.Source.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("oauth: cannot get token: %w", err)
	}

	req2 := cloneRequest(req)
	req2.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := base.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		slog.Warn("Got 401 Unauthorized, attempting force refresh", "url", req.URL.String())

		token, err = t.Source.ForceRefresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("oauth: force refresh failed: %w", err)
		}
		req2.Header.Set("Authorization", "Bearer "+token.AccessToken)
		return base.RoundTrip(req2)
	}

	return resp, nil
}

// cloneRequest shallow-copies the request with a deep-copied header map, so
// the caller's request is never mutated.
func cloneRequest(r *http.Request) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.Header = make(http.Header, len(r.Header))
	for k, v := range r.Header {
		r2.Header[k] = append([]string(nil), v...)
	}
	return r2
}

// NewHTTPClient builds an HTTP client whose requests carry tokens from the
// given source.
func NewHTTPClient(source TokenSource) *http.Client {
	return &http.Client{Transport: &Transport{Source: source}}
}
