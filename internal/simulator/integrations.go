package simulator

import (
	"context"
	"encoding/json"
	"net"

	"github.com/pkg/errors"

	"faultline/internal/domain"
)

// Canned third-party responses keyed by integration name. The webhook body
// carries an unquoted key exactly as the flaky upstream sends it.
var integrationResponses = map[string]string{
	"slack":   `{"ok": true, "channel": "#general"}`,
	"jira":    `{"issues": [{"key": "BUG-1", "summary": "Fix login"}]}`,
	"webhook": `{"event": "push", "ref": "main", timestamp: 1700000000}`,
}

// FetchIntegrationData fetches and decodes the response for a third-party
// integration.
func (s *Service) FetchIntegrationData(service string) (map[string]any, error) {
	raw, ok := integrationResponses[service]
	if !ok {
		raw = `{"status": "unknown"}`
	}
	resp := domain.IntegrationResponse{StatusCode: 200, Body: raw}

	data, err := resp.JSON()
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s integration data", service)
	}
	return data, nil
}

// defaultWebhookPayload is the payload an external system actually sent us
// once: latin-1 encoded, with 0xFC where UTF-8 was expected.
var defaultWebhookPayload = []byte("{\"user\": \"M\xfcller\", \"action\": \"login\"}")

// ParseIncomingWebhook decodes and parses an untrusted webhook payload.
func (s *Service) ParseIncomingWebhook(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		raw = defaultWebhookPayload
	}
	payload := domain.WebhookPayload{Raw: raw}

	text, err := payload.Decode()
	if err != nil {
		return nil, errors.Wrap(err, "ingest webhook")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, errors.Wrap(err, "parse webhook body")
	}
	return data, nil
}

// ConnectDatabase opens a connection to the project database host. The
// configured host sits behind a firewall and is unreachable from here.
func (s *Service) ConnectDatabase(ctx context.Context) error {
	dialer := net.Dialer{Timeout: s.probeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.probeAddr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s", s.probeAddr)
	}
	return conn.Close()
}
