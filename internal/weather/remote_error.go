package weather

import (
	"bytes"
	"encoding/json"
)

// RemoteError is the error document OpenWeatherMap returns with non-2xx
// statuses, e.g. {"cod":401,"message":"Invalid API key"}. The service sends
// cod as a number or as a string depending on the endpoint.
type RemoteError struct {
	Code    string
	Message string
}

// RemoteError decodes the body as a service error document. It reports false
// when the body is not one. The body itself is left untouched.
func (r *Response) RemoteError() (RemoteError, bool) {
	var doc struct {
		Code    json.Number `json:"cod"`
		Message *string     `json:"message"`
	}

	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil || doc.Message == nil {
		return RemoteError{}, false
	}
	return RemoteError{Code: doc.Code.String(), Message: *doc.Message}, true
}
