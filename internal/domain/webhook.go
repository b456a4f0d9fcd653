package domain

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// WebhookPayload wraps the raw bytes of an untrusted third-party payload.
type WebhookPayload struct {
	Raw []byte
}

// Decode validates and decodes the payload as UTF-8 text.
func (p WebhookPayload) Decode() (string, error) {
	text, _, err := transform.String(encoding.UTF8Validator, string(p.Raw))
	if err != nil {
		return "", errors.Wrap(err, "decode webhook payload")
	}
	return text, nil
}

// IntegrationResponse wraps the body returned by an external integration.
type IntegrationResponse struct {
	StatusCode int
	Body       string
}

// JSON parses the response body.
func (r IntegrationResponse) JSON() (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(r.Body), &data); err != nil {
		return nil, errors.Wrap(err, "decode integration response")
	}
	return data, nil
}

// ParsePriority converts a raw priority column value to its numeric form.
func ParsePriority(value string) (int, error) {
	priority, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "parse priority %q", value)
	}
	return priority, nil
}
