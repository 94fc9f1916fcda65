package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rohit95037-cmyk/backend-repo/core"
)

// Status is the lifecycle state of an Assignment. It only ever moves
// forward: draft -> published -> completed. Completed is terminal.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether the edge s -> target is allowed.
func (s Status) CanTransition(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusPublished
	case StatusPublished:
		return target == StatusCompleted
	}
	return false // completed is terminal
}

type Assignment struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     core.Date `json:"due_date"`
	Status      Status    `json:"status"`
	CreatedAt   core.Date `json:"created_at"`
	TeacherID   int       `json:"teacher_id"`
}

// Editable reports whether the assignment may still be edited or deleted.
func (a Assignment) Editable() bool {
	return a.Status == StatusDraft
}

// Owner returns the owning teacher's id.
func (a Assignment) Owner() int { return a.TeacherID }

// Visible reports whether the assignment is student-visible.
func (a Assignment) Visible() bool { return a.Status == StatusPublished }

// Deadline returns the last instant at which a submission is still accepted.
// A due date with no time-of-day component is treated as end-of-day: the
// boundary is midnight UTC at the end of the due date, inclusive.
func (a Assignment) Deadline() time.Time {
	return a.DueDate.End()
}

// NewAssignment contains information needed to create an Assignment.
type NewAssignment struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date" validate:"required,dateonly"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.DueDate = core.CleanString(na.DueDate)
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify a
// draft Assignment. Absent fields keep their prior values.
type UpdateAssignment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,dateonly"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	ua.Title = core.CleanString(ua.Title)
	ua.Description = core.CleanString(ua.Description)
	ua.DueDate = core.CleanString(ua.DueDate)
	return validate.Struct(ua)
}
