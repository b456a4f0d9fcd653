package simulator

import (
	"context"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
)

// Notification templates by event type. Rendering is strict: a template key
// missing from the payload is an error, not "<no value>".
var notificationTemplates = map[string]string{
	"task_assigned": "You have been assigned to {{.task}}.",
	"comment_added": "New comment on {{.task}}: {{.comment}}",
}

// ProcessNotification renders and delivers a notification for the given
// event. The queued payload only carries user_id, type and ts, while every
// template also expects a task key, so the render fails for all event types.
// It is intended to run detached via the background bridge.
func (s *Service) ProcessNotification(ctx context.Context, userID int64, event string) error {
	user := s.lookupUser(userID)

	payload := map[string]any{
		"user_id": userID,
		"type":    event,
		"ts":      time.Now().Unix(),
	}

	message, err := s.renderNotification(event, payload)
	if err != nil {
		return errors.Wrapf(err, "process %s notification for user %d", event, userID)
	}

	// A real deployment would hand the message to a mail or push gateway.
	s.log.WithField("user", user.Email).Infof("notification sent: %s", message)
	return nil
}

func (s *Service) renderNotification(event string, payload map[string]any) (string, error) {
	body, ok := notificationTemplates[event]
	if !ok {
		body = notificationTemplates["task_assigned"]
	}
	tmpl, err := template.New(event).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", errors.Wrap(err, "parse notification template")
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, payload); err != nil {
		return "", errors.Wrap(err, "render notification template")
	}
	return out.String(), nil
}
