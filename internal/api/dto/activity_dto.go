package dto

import (
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// SendMessageRequest payload.
type SendMessageRequest struct {
	Text        string              `json:"text"`
	Attachments []AttachmentRequest `json:"attachments,omitempty"`
}

// AttachmentRequest describes attachment metadata input; the file itself is
// already in external storage.
type AttachmentRequest struct {
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// MessageResponse represents one conversation message.
type MessageResponse struct {
	ID          string                `json:"id"`
	SenderType  domain.SenderType     `json:"sender_type"`
	SenderName  string                `json:"sender_name"`
	IsInternal  bool                  `json:"is_internal"`
	Channel     domain.MessageChannel `json:"channel"`
	Attachments []AttachmentResponse  `json:"attachments"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ActivityEntryResponse is one row of the merged ticket timeline. Message
// entries carry the message metadata; log entries carry only the parsed
// content and its action category.
type ActivityEntryResponse struct {
	Type      domain.ActivityEntryType `json:"type"`
	Timestamp time.Time                `json:"timestamp"`
	Content   string                   `json:"content"`
	Action    domain.ActionType        `json:"action,omitempty"`
	IsOwn     bool                     `json:"is_own"`
	Message   *MessageResponse         `json:"message,omitempty"`
}

// ToActivityEntries maps timeline entries for the given viewer.
func ToActivityEntries(entries []domain.ActivityEntry, viewerID string) []ActivityEntryResponse {
	result := make([]ActivityEntryResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		item := ActivityEntryResponse{
			Type:      entry.Type,
			Timestamp: entry.Timestamp,
			Content:   entry.Content,
			Action:    entry.Action,
			IsOwn:     entry.OwnedBy(viewerID),
		}
		if entry.Message != nil {
			msg := toMessageResponse(entry.Message)
			item.Message = &msg
		}
		result = append(result, item)
	}
	return result
}

func toMessageResponse(msg *domain.TicketMessage) MessageResponse {
	attachments := make([]AttachmentResponse, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		attachments = append(attachments, AttachmentResponse{
			ID:        att.ID,
			FileName:  att.FileName,
			MimeType:  att.MimeType,
			SizeBytes: att.SizeBytes,
		})
	}
	return MessageResponse{
		ID:          msg.ID,
		SenderType:  msg.SenderType,
		SenderName:  msg.SenderName,
		IsInternal:  msg.IsInternal,
		Channel:     msg.Channel,
		Attachments: attachments,
		CreatedAt:   msg.CreatedAt,
	}
}
