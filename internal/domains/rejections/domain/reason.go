package domain

import (
	"fmt"
	"strings"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// NewReasonID marks a reason the cache has not assigned an id to yet.
const NewReasonID int64 = 0

// ErrBlankReason rejects empty reason text.
var ErrBlankReason = fmt.Errorf("%w: reason text is required", result.ErrValidation)

// Reason is a saved rejection explanation offered as a suggestion.
type Reason struct {
	ID   int64
	Text string
}

// NewReason builds an unsaved reason from text.
func NewReason(text string) (Reason, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reason{}, ErrBlankReason
	}
	return Reason{ID: NewReasonID, Text: text}, nil
}

// IsNew reports whether the reason still needs an id.
func (r Reason) IsNew() bool { return r.ID == NewReasonID }
