// Package policy is the single home for the role/ownership/visibility rules
// consulted by the assignment and submission stores. Every rule switches
// exhaustively on the closed user.Role set.
package policy

import (
	"errors"

	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

// ErrDenied is returned by stores when the caller identity is valid but
// lacks permission for the entity or action.
var ErrDenied = errors.New("access denied")

type (
	// Assignment is the store-agnostic view of an assignment the policy needs.
	Assignment interface {
		Owner() int    // owning teacher id
		Visible() bool // student-visible, ie. published
	}

	// Submission is the store-agnostic view of a submission the policy needs.
	Submission interface {
		Author() int // submitting student id
	}
)

// CanSeeAssignment reports whether the caller may read the assignment.
// Teachers see their own assignments regardless of status; students see
// only published ones.
func CanSeeAssignment(caller user.Identity, a Assignment) bool {
	switch caller.Role {
	case user.RoleTeacher:
		return a.Owner() == caller.ID
	case user.RoleStudent:
		return a.Visible()
	}
	return false
}

// CanMutateAssignment reports whether the caller may change the assignment
// (edit, transition, delete). Status rules are the state machine's concern,
// not the policy's.
func CanMutateAssignment(caller user.Identity, a Assignment) bool {
	switch caller.Role {
	case user.RoleTeacher:
		return a.Owner() == caller.ID
	case user.RoleStudent:
		return false
	}
	return false
}

// CanCreateAssignment reports whether the caller may create assignments.
func CanCreateAssignment(caller user.Identity) bool {
	switch caller.Role {
	case user.RoleTeacher:
		return true
	case user.RoleStudent:
		return false
	}
	return false
}

// CanSeeSubmission reports whether the caller may read the submission.
// Teachers see all submissions; students see only their own.
func CanSeeSubmission(caller user.Identity, s Submission) bool {
	switch caller.Role {
	case user.RoleTeacher:
		return true
	case user.RoleStudent:
		return s.Author() == caller.ID
	}
	return false
}

// CanSubmit reports whether the caller may submit answers.
func CanSubmit(caller user.Identity) bool {
	switch caller.Role {
	case user.RoleStudent:
		return true
	case user.RoleTeacher:
		return false
	}
	return false
}

// CanViewAnalytics reports whether the caller may read the analytics
// overview (always scoped to the caller's own assignments).
func CanViewAnalytics(caller user.Identity) bool {
	switch caller.Role {
	case user.RoleTeacher:
		return true
	case user.RoleStudent:
		return false
	}
	return false
}

// CanReview reports whether the caller may mark submissions reviewed.
func CanReview(caller user.Identity) bool {
	switch caller.Role {
	case user.RoleTeacher:
		return true
	case user.RoleStudent:
		return false
	}
	return false
}
