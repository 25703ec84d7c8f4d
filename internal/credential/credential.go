// Package credential reads the OpenWeatherMap API key from a local JSON document
// of the form {"api_key": "<string>"}.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultPath is the credential file looked up in the working directory when
// no other path is configured.
const DefaultPath = "openweather_api.json"

// Credential holds the API key used to authenticate with the weather service.
type Credential struct {
	APIKey string
}

// Keys shorter than this are masked completely.
const minRevealLength = 12

// String masks the key so a Credential can be logged safely. Only the last
// four characters of long keys are kept.
func (c Credential) String() string {
	runes := []rune(c.APIKey)
	if len(runes) < minRevealLength {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}

// Load opens the file at path and extracts its api_key field.
// Missing and unreadable files return errors wrapping os.ErrNotExist and
// os.ErrPermission respectively.
func Load(path string) (Credential, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credential{}, fmt.Errorf("open credential file: %w", err)
	}
	defer f.Close()

	cred, err := Parse(f)
	if err != nil {
		return Credential{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cred, nil
}

// Parse decodes a credential document from r. The reader must hold exactly one
// JSON object; trailing data makes the document malformed.
func Parse(r io.Reader) (Credential, error) {
	dec := json.NewDecoder(r)

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return Credential{}, ErrMalformed
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Credential{}, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}

	key, ok := doc["api_key"].(string)
	if !ok {
		return Credential{}, ErrMissingAPIKey
	}
	return Credential{APIKey: key}, nil
}
