package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type is the category of a Blink.
type Type string

const (
	TypeThought  Type = "thought"
	TypeReminder Type = "reminder"
	TypeBookmark Type = "bookmark"
	TypeQuote    Type = "quote"
)

// Types lists all categories in their display order.
var Types = []Type{TypeReminder, TypeThought, TypeBookmark, TypeQuote}

var (
	ErrInvalidType         = errors.New("invalid blink type")
	ErrEmptyTitle          = errors.New("title is required")
	ErrMissingReminderDate = errors.New("reminder date is required")
)

// ParseType converts a string into a Type, case-insensitive.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the known categories.
func (t Type) Valid() bool {
	switch t {
	case TypeThought, TypeReminder, TypeBookmark, TypeQuote:
		return true
	}
	return false
}

// Display returns the capitalized form, e.g. "Thought".
func (t Type) Display() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Blink is a captured note.
type Blink struct {
	ID           string     `json:"id"`
	Type         Type       `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Source       string     `json:"source,omitempty"`
	Author       string     `json:"author,omitempty"`
	ReminderDate *time.Time `json:"reminderDate,omitempty"`
	IsCompleted  bool       `json:"isCompleted,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedOn    time.Time  `json:"createdOn"`
}

// NewBlinkParams holds parameters for creating a new Blink.
type NewBlinkParams struct {
	Type         Type
	Title        string
	Description  string
	Source       string
	Author       string
	ReminderDate *time.Time
}

// NewBlink creates a Blink with a generated id and creation time.
// Fields that don't belong to the type are dropped.
func NewBlink(params NewBlinkParams) Blink {
	b := Blink{
		ID:          GenerateID(),
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		Source:      params.Source,
		CreatedOn:   time.Now(),
	}
	if params.Type == TypeQuote {
		b.Author = params.Author
	}
	if params.Type == TypeReminder {
		b.ReminderDate = params.ReminderDate
	}
	return b
}

// Validate checks the per-type field invariants.
func (b Blink) Validate() error {
	if !b.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, b.Type)
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if b.ReminderDate != nil && b.Type != TypeReminder {
		return fmt.Errorf("reminder date set on %s", b.Type)
	}
	if b.Author != "" && b.Type != TypeQuote {
		return fmt.Errorf("author set on %s", b.Type)
	}
	if b.CompletedAt != nil && !b.IsCompleted {
		return errors.New("completedAt set on an incomplete blink")
	}
	return nil
}

// IsReminder reports whether the Blink is a reminder.
func (b Blink) IsReminder() bool {
	return b.Type == TypeReminder
}
