package gmail

import (
	"encoding/base64"
	"net/mail"
	"sort"
	"strings"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
)

const unreadLabel = "UNREAD"

type MessageRef struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

type listMessagesResponse struct {
	Messages           []MessageRef `json:"messages"`
	ResultSizeEstimate int          `json:"resultSizeEstimate"`
}

// Message is the format=full representation returned by the Gmail API.
type Message struct {
	ID       string       `json:"id"`
	LabelIDs []string     `json:"labelIds"`
	Snippet  string       `json:"snippet"`
	Payload  *MessagePart `json:"payload"`
}

type MessagePart struct {
	MimeType string         `json:"mimeType"`
	Headers  []Header       `json:"headers"`
	Body     *PartBody      `json:"body"`
	Parts    []*MessagePart `json:"parts"`
}

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PartBody struct {
	Data string `json:"data"`
	Size int    `json:"size"`
}

// Normalize flattens a full Gmail message into the cached email shape.
func Normalize(msg *Message) model.Email {
	email := model.Email{
		ID:     msg.ID,
		IsRead: !containsLabel(msg.LabelIDs, unreadLabel),
	}

	if msg.Payload == nil {
		return email
	}

	email.From = headerValue(msg.Payload.Headers, "From")
	email.To = headerValue(msg.Payload.Headers, "To")
	email.Subject = headerValue(msg.Payload.Headers, "Subject")
	if email.Subject == "" {
		email.Subject = "No Subject"
	}

	if raw := headerValue(msg.Payload.Headers, "Date"); raw != "" {
		if parsed, err := mail.ParseDate(raw); err == nil {
			email.Date = parsed
		}
	}

	email.Body = ExtractBody(msg.Payload)

	return email
}

// ExtractBody finds the best readable body of a message: the first text/plain
// part, then the first text/html part, then the single-part body for messages
// without MIME structure. A message with no locatable body yields "".
func ExtractBody(payload *MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) > 0 {
		if part := findPartByMimeType(payload.Parts, "text/plain"); part != nil {
			return DecodeBody(part.Body.Data)
		}
		if part := findPartByMimeType(payload.Parts, "text/html"); part != nil {
			return DecodeBody(part.Body.Data)
		}
		return ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return DecodeBody(payload.Body.Data)
	}

	return ""
}

func findPartByMimeType(parts []*MessagePart, mimeType string) *MessagePart {
	for _, part := range parts {
		if part == nil {
			continue
		}
		if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
			return part
		}
		// multipart/alternative and friends nest the readable parts one level down
		if nested := findPartByMimeType(part.Parts, mimeType); nested != nil {
			return nested
		}
	}

	return nil
}

// DecodeBody decodes Gmail's URL-safe base64 body encoding ('-' for '+', '_'
// for '/', padding optional). Undecodable input yields "".
func DecodeBody(data string) string {
	if data == "" {
		return ""
	}

	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(data)
	if padding := len(normalized) % 4; padding != 0 {
		normalized += strings.Repeat("=", 4-padding)
	}

	decoded, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return ""
	}

	return string(decoded)
}

func headerValue(headers []Header, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}

	return ""
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}

	return false
}

// SortByDateDesc orders emails newest first regardless of provider ordering.
func SortByDateDesc(emails []model.Email) {
	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].Date.After(emails[j].Date)
	})
}
