package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	"github.com/Apurer/pizzeria-console/internal/domains/notifications/ports"
	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
)

// MailRecord is the document shape read by the mail dispatcher extension.
type MailRecord struct {
	To      []string      `firestore:"to" bson:"to" json:"to"`
	Message MessageRecord `firestore:"message" bson:"message" json:"message"`
}

// MessageRecord is the body part of MailRecord.
type MessageRecord struct {
	Subject string `firestore:"subject" bson:"subject" json:"subject"`
	Text    string `firestore:"text" bson:"text" json:"text"`
	HTML    string `firestore:"html" bson:"html" json:"html"`
}

// ToRecord converts a message into its stored form.
func ToRecord(msg domain.Message) MailRecord {
	return MailRecord{
		To:      append([]string(nil), msg.To...),
		Message: MessageRecord{Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML},
	}
}

// Sink writes each message as a new document in the mail collection.
type Sink struct {
	store docstore.Store
}

// NewSink builds a Sink over store.
func NewSink(store docstore.Store) *Sink {
	return &Sink{store: store}
}

var _ ports.Sink = (*Sink)(nil)

// Write stores msg under a fresh random document name.
func (s *Sink) Write(ctx context.Context, msg domain.Message) error {
	return s.store.Set(ctx, docstore.CollectionMail, uuid.NewString(), ToRecord(msg))
}
