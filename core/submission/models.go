package submission

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rohit95037-cmyk/backend-repo/core"
)

type Submission struct {
	ID              int       `json:"id"`
	AssignmentID    int       `json:"assignment_id"`
	StudentID       int       `json:"student_id"`
	StudentName     string    `json:"student_name"`
	StudentEmail    string    `json:"student_email"`
	SubmittedAnswer string    `json:"submitted_answer"`
	SubmittedFile   string    `json:"submitted_file,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"` // UTC
	IsReviewed      bool      `json:"is_reviewed"`
}

// Author returns the submitting student's id.
func (s Submission) Author() int { return s.StudentID }

// NewSubmission contains information needed to submit an answer.
// Student name and email are denormalized from the caller's identity at
// submission time and never re-synced.
type NewSubmission struct {
	AssignmentID    int    `json:"assignment_id" validate:"required"`
	SubmittedAnswer string `json:"submitted_answer" validate:"required"`
	SubmittedFile   string `json:"submitted_file"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.SubmittedAnswer = core.CleanString(ns.SubmittedAnswer)
	ns.SubmittedFile = core.CleanString(ns.SubmittedFile)
	return validate.Struct(ns)
}

type QueryFilter struct {
	AssignmentID int `query:"assignment_id"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.AssignmentID == 0
}
