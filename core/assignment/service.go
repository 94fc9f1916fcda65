package assignment

import (
	"errors"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/policy"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

var (
	// errors
	ErrNotFound          = errors.New("assignment not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotEditable       = errors.New("only draft assignments can be edited")
	ErrNotDeletable      = errors.New("only draft assignments can be deleted")
)

type (
	// Repository owns the assignment collection. Conditional mutations
	// (status edges, draft-only edits) are re-checked inside the store's
	// critical section so that check and write form one atomic step.
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id int) (Assignment, error)
		// UpdateAssignment saves field edits; fails with ErrNotEditable
		// unless the stored assignment is still a draft.
		UpdateAssignment(a Assignment) (Assignment, error)
		// TransitionAssignment moves the assignment along a state-machine
		// edge; fails with ErrInvalidTransition for any other pair.
		TransitionAssignment(id int, target Status) (Assignment, error)
		// DeleteAssignment removes the assignment; fails with
		// ErrNotDeletable unless it is still a draft.
		DeleteAssignment(id int) error
	}

	ServiceInterface interface {
		Query(caller user.Identity) ([]Assignment, error)
		GetByID(id int, caller user.Identity) (Assignment, error)
		Create(na NewAssignment, caller user.Identity) (Assignment, error)
		Update(id int, ua UpdateAssignment, caller user.Identity) (Assignment, error)
		Transition(id int, target Status, caller user.Identity) (Assignment, error)
		Delete(id int, caller user.Identity) error
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// Query returns the assignments the caller may see, in insertion order:
// a teacher's own assignments, or all published ones for a student.
func (svc *service) Query(caller user.Identity) ([]Assignment, error) {
	all, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}
	visible := make([]Assignment, 0, len(all))
	for _, a := range all {
		if policy.CanSeeAssignment(caller, a) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

func (svc *service) GetByID(id int, caller user.Identity) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	if !policy.CanSeeAssignment(caller, a) {
		return Assignment{}, policy.ErrDenied
	}
	return a, nil
}

func (svc *service) Create(na NewAssignment, caller user.Identity) (Assignment, error) {
	if !policy.CanCreateAssignment(caller) {
		return Assignment{}, policy.ErrDenied
	}
	due, err := core.ParseDate(na.DueDate)
	if err != nil {
		return Assignment{}, core.NewValidationError(err, core.FieldError{Field: "due_date", Error: err.Error()})
	}
	return svc.repo.CreateAssignment(Assignment{
		Title:       na.Title,
		Description: na.Description,
		DueDate:     due,
		Status:      StatusDraft,
		CreatedAt:   core.Today(),
		TeacherID:   caller.ID,
	})
}

// Update applies a partial edit: absent fields keep their prior values.
func (svc *service) Update(id int, ua UpdateAssignment, caller user.Identity) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	if !policy.CanMutateAssignment(caller, a) {
		return Assignment{}, policy.ErrDenied
	}
	if !a.Editable() {
		return Assignment{}, ErrNotEditable
	}

	if ua.Title != "" {
		a.Title = ua.Title
	}
	if ua.Description != "" {
		a.Description = ua.Description
	}
	if ua.DueDate != "" {
		due, err := core.ParseDate(ua.DueDate)
		if err != nil {
			return Assignment{}, core.NewValidationError(err, core.FieldError{Field: "due_date", Error: err.Error()})
		}
		a.DueDate = due
	}
	return svc.repo.UpdateAssignment(a)
}

func (svc *service) Transition(id int, target Status, caller user.Identity) (Assignment, error) {
	if !target.Valid() {
		return Assignment{}, ErrInvalidTransition
	}
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	if !policy.CanMutateAssignment(caller, a) {
		return Assignment{}, policy.ErrDenied
	}
	return svc.repo.TransitionAssignment(id, target)
}

func (svc *service) Delete(id int, caller user.Identity) error {
	a, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return err
	}
	if !policy.CanMutateAssignment(caller, a) {
		return policy.ErrDenied
	}
	return svc.repo.DeleteAssignment(id)
}
