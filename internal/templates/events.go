package templates

import (
	"encoding/json"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

const (
	eventTemplateUploaded  = "template_uploaded"
	eventDocumentGenerated = "document_generated"
	eventTemplateDeleted   = "template_deleted"
)

type event struct {
	Type       string    `json:"type"`
	TemplateID string    `json:"template_id"`
	UserID     string    `json:"user_id"`
	Timestamp  time.Time `json:"ts"`
}

// publishEvent emits an audit event to the message queue. Best-effort:
// a publish failure is logged and never fails the primary operation.
func (s *service) publishEvent(logger log.Logger, eventType, templateID, userID string) {
	if s.publish == nil {
		return
	}

	message, err := json.Marshal(event{
		Type:       eventType,
		TemplateID: templateID,
		UserID:     userID,
		Timestamp:  s.nowFunc().UTC(),
	})
	if err != nil {
		level.Warn(logger).Log("msg", "marshal event", "event", eventType, "err", err)
		return
	}
	if err = s.publish(message); err != nil {
		level.Warn(logger).Log("msg", "publish event", "event", eventType, "err", err)
	}
}
