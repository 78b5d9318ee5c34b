package events

import "time"

const (
	LeaveDecidedTopic = "hr.leave.decided.v1"

	LeaveApprovedEventType = "leave.approved"
	LeaveRejectedEventType = "leave.rejected"
)

type LeaveDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	ManagerID    string    `json:"manager_id"`
	Status       string    `json:"status"`
	DecisionNote *string   `json:"decision_note,omitempty"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
