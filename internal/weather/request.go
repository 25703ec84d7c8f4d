package weather

import (
	"fmt"
	"net/url"
)

const (
	// DefaultEndpoint is the OpenWeatherMap current-weather endpoint.
	DefaultEndpoint = "https://api.openweathermap.org/data/2.5/weather"
	// DefaultLocation is the city, state and country code queried by default.
	DefaultLocation = "Waltham,MA,US"
)

// Request is the immutable description of a single current-weather query.
type Request struct {
	endpoint string
	location string
	apiKey   string
}

// NewRequest builds a Request. The key is not validated; an invalid key is
// reported by the remote service in its response body.
func NewRequest(endpoint, location, apiKey string) Request {
	return Request{endpoint: endpoint, location: location, apiKey: apiKey}
}

// Endpoint returns the base URL the request targets.
func (r Request) Endpoint() string { return r.endpoint }

// Location returns the queried location.
func (r Request) Location() string { return r.location }

// URL renders the endpoint with the q and appid query parameters. Any query
// string already present on the endpoint is replaced.
func (r Request) URL() (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidEndpoint, r.endpoint)
	}

	q := url.Values{}
	q.Set("q", r.location)
	q.Set("appid", r.apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
