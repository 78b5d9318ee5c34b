package events

import "time"

const (
	ExpenditureDecidedTopic = "hr.expenditure.decided.v1"

	ExpenditureApprovedEventType = "expenditure.approved"
	ExpenditureRejectedEventType = "expenditure.rejected"
)

type ExpenditureDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	ManagerID    string    `json:"manager_id"`
	Status       string    `json:"status"`
	DecisionNote *string   `json:"decision_note,omitempty"`
	Amount       string    `json:"amount"`
	OccurredAt   time.Time `json:"occurred_at"`
}
