package credential

import "errors"

var (
	// ErrMalformed is returned when the credential document is not a JSON object.
	ErrMalformed = errors.New("credential document is not a valid JSON object")
	// ErrMissingAPIKey is returned when the document has no string-valued api_key field.
	ErrMissingAPIKey = errors.New("credential document has no string api_key field")
)
