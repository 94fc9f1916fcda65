package submission

import (
	"errors"
	"time"

	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/policy"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

var (
	// errors
	ErrNotFound         = errors.New("submission not found")
	ErrAlreadySubmitted = errors.New("you have already submitted this assignment")
	ErrNotPublished     = errors.New("assignment is not published")
	ErrDeadlinePassed   = errors.New("assignment submission deadline has passed")

	nowFunc = time.Now // mockable
)

type (
	// Repository owns the submission collection. The one-submission-per-
	// student-per-assignment rule is enforced inside the store's critical
	// section so that the duplicate check and the insert form one atomic
	// step.
	Repository interface {
		// CreateSubmission inserts; a second submission for the same
		// (assignment, student) pair fails with ErrAlreadySubmitted.
		CreateSubmission(s Submission) (Submission, error)
		QueryAllSubmissions() ([]Submission, error)
		QuerySubmissionsByAssignment(assignmentID int) ([]Submission, error)
		GetSubmissionByID(id int) (Submission, error)
		GetSubmissionByAssignmentAndStudent(assignmentID, studentID int) (Submission, error)
		// MarkSubmissionReviewed sets is_reviewed = true; reviewing an
		// already-reviewed submission is a no-op, not an error.
		MarkSubmissionReviewed(id int) (Submission, error)
	}

	ServiceInterface interface {
		Query(caller user.Identity, filter QueryFilter) ([]Submission, error)
		QueryByAssignment(assignmentID int, caller user.Identity) ([]Submission, error)
		GetMine(assignmentID int, caller user.Identity) (Submission, error)
		Submit(ns NewSubmission, caller user.Identity) (Submission, error)
		Review(id int, caller user.Identity) (Submission, error)
	}

	service struct {
		repo           Repository
		assignmentRepo assignment.Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, assignmentRepo assignment.Repository) *service {
	return &service{repo: repo, assignmentRepo: assignmentRepo}
}

// Query returns the submissions the caller may see: all of them for a
// teacher (optionally narrowed to one assignment), own only for a student.
func (svc *service) Query(caller user.Identity, filter QueryFilter) ([]Submission, error) {
	var subs []Submission
	var err error
	if caller.IsTeacher() && !filter.IsEmpty() {
		subs, err = svc.repo.QuerySubmissionsByAssignment(filter.AssignmentID)
	} else {
		subs, err = svc.repo.QueryAllSubmissions()
	}
	if err != nil {
		return nil, err
	}
	visible := make([]Submission, 0, len(subs))
	for _, s := range subs {
		if policy.CanSeeSubmission(caller, s) {
			visible = append(visible, s)
		}
	}
	return visible, nil
}

func (svc *service) QueryByAssignment(assignmentID int, caller user.Identity) ([]Submission, error) {
	if !policy.CanReview(caller) {
		return nil, policy.ErrDenied
	}
	return svc.repo.QuerySubmissionsByAssignment(assignmentID)
}

func (svc *service) GetMine(assignmentID int, caller user.Identity) (Submission, error) {
	if !policy.CanSubmit(caller) {
		return Submission{}, policy.ErrDenied
	}
	return svc.repo.GetSubmissionByAssignmentAndStudent(assignmentID, caller.ID)
}

// Submit records a student's answer for a published assignment. The due
// date is treated as end-of-day: the boundary instant itself is the last
// accepted moment.
func (svc *service) Submit(ns NewSubmission, caller user.Identity) (Submission, error) {
	if !policy.CanSubmit(caller) {
		return Submission{}, policy.ErrDenied
	}

	a, err := svc.assignmentRepo.GetAssignmentByID(ns.AssignmentID)
	if err != nil {
		return Submission{}, err
	}
	if a.Status != assignment.StatusPublished {
		return Submission{}, ErrNotPublished
	}
	now := nowFunc().UTC()
	if now.After(a.Deadline()) {
		return Submission{}, ErrDeadlinePassed
	}

	return svc.repo.CreateSubmission(Submission{
		AssignmentID:    ns.AssignmentID,
		StudentID:       caller.ID,
		StudentName:     caller.Name,
		StudentEmail:    caller.Email,
		SubmittedAnswer: ns.SubmittedAnswer,
		SubmittedFile:   ns.SubmittedFile,
		SubmittedAt:     now,
	})
}

func (svc *service) Review(id int, caller user.Identity) (Submission, error) {
	if !policy.CanReview(caller) {
		return Submission{}, policy.ErrDenied
	}
	return svc.repo.MarkSubmissionReviewed(id)
}
