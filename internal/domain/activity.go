package domain

import "time"

// ActionType is the coarse category assigned to a ticket log entry.
type ActionType string

const (
	ActionStatusChange     ActionType = "status_change"
	ActionAssignmentChange ActionType = "assignment_change"
	ActionRmaCreation      ActionType = "rma_creation"
	ActionTicketEdit       ActionType = "ticket_edit"
	ActionGeneral          ActionType = "general"
)

// ActivityEntryType distinguishes the two sources merged into a timeline.
type ActivityEntryType string

const (
	EntryTypeMessage ActivityEntryType = "message"
	EntryTypeLog     ActivityEntryType = "log"
)

// ActivityEntry is one row of a ticket's merged activity feed. Message
// entries carry the underlying TicketMessage; log entries carry the parsed
// line content plus its action category. Entries are ordered by Timestamp
// ascending, preserving source order on ties.
type ActivityEntry struct {
	Type      ActivityEntryType
	Timestamp time.Time
	Content   string
	Action    ActionType
	Message   *TicketMessage
}

// OwnedBy reports whether the entry should render as the viewer's own
// message. Log entries never belong to a viewer.
func (e *ActivityEntry) OwnedBy(viewerID string) bool {
	if e.Type != EntryTypeMessage || e.Message == nil || e.Message.CreatedBy == nil {
		return false
	}
	return *e.Message.CreatedBy == viewerID
}
