package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hrms/internal/events"
	"hrms/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeDecisionEvents turns leave and expenditure decision events into
// in-app notifications for the owning employee. Redelivered events are
// absorbed by the notification store's event-id uniqueness.
func ConsumeDecisionEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.decisions")
	log.Info("decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("decision consumer stopped")
				return
			}
			log.Error("fetch decision message failed", zap.Error(err))
			continue
		}

		in, err := notificationInput(msg)
		if err != nil {
			log.Error("decode decision event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		created, err := notificationService.Record(ctx, in)
		if err != nil {
			log.Error("record decision notification failed",
				zap.String("event_id", in.EventID),
				zap.Error(err),
			)
			continue
		}
		if !created {
			log.Warn("decision event already notified, skipping",
				zap.String("event_id", in.EventID),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit decision message failed", zap.Error(err))
			continue
		}
	}
}

func notificationInput(msg kafkago.Message) (notification.RecordInput, error) {
	switch msg.Topic {
	case events.LeaveDecidedTopic:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notification.RecordInput{}, err
		}
		body := fmt.Sprintf("Your leave request for %s to %s was %s.",
			event.StartDate, event.EndDate, statusWord(event.Status))
		if event.DecisionNote != nil && *event.DecisionNote != "" {
			body += " Note: " + *event.DecisionNote
		}
		return notification.RecordInput{
			UserID:  event.EmployeeID,
			EventID: eventID(msg),
			Title:   "Leave request " + statusWord(event.Status),
			Body:    body,
		}, nil

	case events.ExpenditureDecidedTopic:
		var event events.ExpenditureDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notification.RecordInput{}, err
		}
		body := fmt.Sprintf("Your expenditure request of %s was %s.",
			event.Amount, statusWord(event.Status))
		if event.DecisionNote != nil && *event.DecisionNote != "" {
			body += " Note: " + *event.DecisionNote
		}
		return notification.RecordInput{
			UserID:  event.EmployeeID,
			EventID: eventID(msg),
			Title:   "Expenditure request " + statusWord(event.Status),
			Body:    body,
		}, nil

	default:
		return notification.RecordInput{}, fmt.Errorf("unexpected topic: %s", msg.Topic)
	}
}

// statusWord renders the event status ("APPROVED"/"REJECTED") as the
// lowercase word used in notification text.
func statusWord(status string) string {
	return strings.ToLower(status)
}

// eventID dedupes on the outbox row id header; it stays stable across
// re-publication attempts of the same staged event. Partition/offset is
// the fallback for events published outside the outbox path.
func eventID(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "outbox_id" && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return fmt.Sprintf("%s:%d:%d", msg.Topic, msg.Partition, msg.Offset)
}
