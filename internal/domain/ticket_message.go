package domain

import "time"

// SenderType indicates which side of the conversation authored a message.
// It is derived from the acting user's role at send time, never chosen by
// the caller.
type SenderType string

const (
	SenderTypeAgent     SenderType = "agent"
	SenderTypeRequester SenderType = "requester"
)

// MessageChannel records how a message entered the system.
type MessageChannel string

const (
	ChannelManual MessageChannel = "manual"
	ChannelEmail  MessageChannel = "email"
	ChannelSystem MessageChannel = "system"
)

// TicketMessage captures one entry in a ticket conversation thread.
// SenderName and SenderEmail are denormalized snapshots taken at send time;
// CreatedBy is nil for system-origin messages. Messages are immutable once
// created.
type TicketMessage struct {
	ID          string
	TicketID    string
	Content     string
	SenderType  SenderType
	SenderName  string
	SenderEmail string
	IsInternal  bool
	Channel     MessageChannel
	CreatedBy   *string
	Attachments []AttachmentReference
	CreatedAt   time.Time
}

// AttachmentReference stores metadata for a message attachment. Only the
// metadata lives here; file contents are handled by external storage.
type AttachmentReference struct {
	ID              string
	TicketMessageID string
	StorageKey      string
	FileName        string
	MimeType        string
	SizeBytes       int64
	CreatedAt       time.Time
}
