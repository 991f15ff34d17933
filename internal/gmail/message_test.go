package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty input", "", ""},
		{"standard padded base64", "SGVsbG8=", "Hello"},
		{"url safe alphabet", base64.RawURLEncoding.EncodeToString([]byte("ÿï? yes>no")), "ÿï? yes>no"},
		{"missing padding", "SGVsbG8", "Hello"},
		{"garbage input", "!!!not base64!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeBody(tt.data); got != tt.want {
				t.Errorf("DecodeBody(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestExtractBody(t *testing.T) {
	encode := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name    string
		payload *MessagePart
		want    string
	}{
		{
			name:    "nil payload",
			payload: nil,
			want:    "",
		},
		{
			name: "prefers text/plain over text/html",
			payload: &MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*MessagePart{
					{MimeType: "text/html", Body: &PartBody{Data: encode("<p>html</p>")}},
					{MimeType: "text/plain", Body: &PartBody{Data: encode("plain text")}},
				},
			},
			want: "plain text",
		},
		{
			name: "falls back to text/html",
			payload: &MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*MessagePart{
					{MimeType: "text/html", Body: &PartBody{Data: encode("<p>html only</p>")}},
				},
			},
			want: "<p>html only</p>",
		},
		{
			name: "finds nested part inside multipart/alternative",
			payload: &MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*MessagePart{
							{MimeType: "text/plain", Body: &PartBody{Data: encode("nested plain")}},
						},
					},
				},
			},
			want: "nested plain",
		},
		{
			name: "single part message without mime structure",
			payload: &MessagePart{
				MimeType: "text/plain",
				Body:     &PartBody{Data: encode("single part body")},
			},
			want: "single part body",
		},
		{
			name: "no locatable body yields empty string",
			payload: &MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*MessagePart{
					{MimeType: "application/pdf", Body: &PartBody{}},
				},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBody(tt.payload); got != tt.want {
				t.Errorf("ExtractBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	msg := &Message{
		ID:       "m1",
		LabelIDs: []string{"INBOX", "CATEGORY_PERSONAL"},
		Payload: &MessagePart{
			MimeType: "text/plain",
			Headers: []Header{
				{Name: "From", Value: "Sender <sender@example.com>"},
				{Name: "To", Value: "me@example.com"},
				{Name: "Subject", Value: "Greetings"},
				{Name: "Date", Value: "Mon, 01 Jan 2024 10:30:00 +0000"},
			},
			Body: &PartBody{Data: "SGVsbG8="},
		},
	}

	email := Normalize(msg)

	if email.ID != "m1" {
		t.Errorf("ID = %q, want m1", email.ID)
	}
	if email.From != "Sender <sender@example.com>" {
		t.Errorf("From = %q", email.From)
	}
	if email.Subject != "Greetings" {
		t.Errorf("Subject = %q", email.Subject)
	}
	if email.Body != "Hello" {
		t.Errorf("Body = %q, want Hello", email.Body)
	}
	if !email.IsRead {
		t.Error("IsRead = false, want true for message without UNREAD label")
	}
	want := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	if !email.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", email.Date, want)
	}
}

func TestNormalizeUnreadAndMissingHeaders(t *testing.T) {
	msg := &Message{
		ID:       "m2",
		LabelIDs: []string{"INBOX", "UNREAD"},
		Payload:  &MessagePart{},
	}

	email := Normalize(msg)

	if email.IsRead {
		t.Error("IsRead = true, want false for UNREAD message")
	}
	if email.Subject != "No Subject" {
		t.Errorf("Subject = %q, want %q", email.Subject, "No Subject")
	}
	if email.Body != "" {
		t.Errorf("Body = %q, want empty", email.Body)
	}
}

func TestSortByDateDesc(t *testing.T) {
	date := func(s string) time.Time {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return parsed
	}

	emails := []model.Email{
		{ID: "a", Date: date("2024-01-01")},
		{ID: "b", Date: date("2024-03-01")},
		{ID: "c", Date: date("2024-02-01")},
	}

	SortByDateDesc(emails)

	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if emails[i].ID != want {
			t.Errorf("emails[%d].ID = %q, want %q", i, emails[i].ID, want)
		}
	}

	for i := 1; i < len(emails); i++ {
		if emails[i].Date.After(emails[i-1].Date) {
			t.Errorf("emails not in non-increasing date order at index %d", i)
		}
	}
}
