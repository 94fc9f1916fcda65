package testutil

import (
	"testing"
	"time"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	role user.Role,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	title string,
	dueDate core.Date,
	status assignment.Status,
	teacherID int,
	createdAt ...core.Date,
) assignment.Assignment {
	created := core.Today()
	if len(createdAt) > 0 {
		created = createdAt[0]
	}
	a := assignment.Assignment{
		Title:       title,
		Description: title + " description",
		DueDate:     dueDate,
		Status:      status,
		CreatedAt:   created,
		TeacherID:   teacherID,
	}
	a, err := repo.CreateAssignment(a)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateSubmission(
	t *testing.T,
	repo submission.Repository,
	assignmentID int,
	student user.User,
	answer string,
	submittedAt ...time.Time,
) submission.Submission {
	tstamp := time.Now().UTC()
	if len(submittedAt) > 0 {
		tstamp = submittedAt[0].UTC()
	}
	sub := submission.Submission{
		AssignmentID:    assignmentID,
		StudentID:       student.ID,
		StudentName:     student.Name,
		StudentEmail:    student.Email,
		SubmittedAnswer: answer,
		SubmittedAt:     tstamp,
	}
	sub, err := repo.CreateSubmission(sub)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
