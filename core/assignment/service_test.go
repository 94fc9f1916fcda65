package assignment_test

import (
	"testing"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/policy"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
	inmemdb "github.com/rohit95037-cmyk/backend-repo/storage/database/inmem"
	testutil "github.com/rohit95037-cmyk/backend-repo/tests"
)

var (
	teacher      = user.Identity{ID: 1, Name: "Teacher", Email: "teacher@test.cd", Role: user.RoleTeacher}
	otherTeacher = user.Identity{ID: 2, Name: "Other", Email: "other@test.cd", Role: user.RoleTeacher}
	student      = user.Identity{ID: 3, Name: "Student", Email: "student@test.cd", Role: user.RoleStudent}
)

func setup(t *testing.T) (assignment.ServiceInterface, assignment.Repository) {
	t.Helper()
	repo := inmemdb.NewAssignmentRepository(inmemdb.Open())
	return assignment.NewService(repo), repo
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%s) failed: %v", s, err)
	}
	return d
}

func Test_service_Query(t *testing.T) {
	svc, repo := setup(t)

	due := mustDate(t, "2030-01-01")
	draft := testutil.CreateAssignment(t, repo, "Draft", due, assignment.StatusDraft, teacher.ID)
	published := testutil.CreateAssignment(t, repo, "Published", due, assignment.StatusPublished, teacher.ID)
	completed := testutil.CreateAssignment(t, repo, "Completed", due, assignment.StatusCompleted, teacher.ID)
	othersPublished := testutil.CreateAssignment(t, repo, "Others", due, assignment.StatusPublished, otherTeacher.ID)

	tests := []struct {
		name    string
		caller  user.Identity
		wantIDs []int
	}{
		{name: "teacher sees own, any status", caller: teacher, wantIDs: []int{draft.ID, published.ID, completed.ID}},
		{name: "other teacher sees own only", caller: otherTeacher, wantIDs: []int{othersPublished.ID}},
		{name: "student sees all published", caller: student, wantIDs: []int{published.ID, othersPublished.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Query(tt.caller)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Query() returned %d assignments, want %d", len(got), len(tt.wantIDs))
			}
			for i, a := range got {
				if a.ID != tt.wantIDs[i] {
					t.Errorf("Query()[%d].ID = %d, want %d", i, a.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func Test_service_GetByID(t *testing.T) {
	svc, repo := setup(t)

	due := mustDate(t, "2030-01-01")
	draft := testutil.CreateAssignment(t, repo, "Draft", due, assignment.StatusDraft, teacher.ID)
	published := testutil.CreateAssignment(t, repo, "Published", due, assignment.StatusPublished, teacher.ID)

	tests := []struct {
		name    string
		id      int
		caller  user.Identity
		wantErr error
	}{
		{name: "owner gets draft", id: draft.ID, caller: teacher},
		{name: "student gets published", id: published.ID, caller: student},
		{name: "student denied draft", id: draft.ID, caller: student, wantErr: policy.ErrDenied},
		{name: "other teacher denied", id: published.ID, caller: otherTeacher, wantErr: policy.ErrDenied},
		{name: "not found", id: 999, caller: teacher, wantErr: assignment.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := svc.GetByID(tt.id, tt.caller)
			if err != tt.wantErr {
				t.Fatalf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && a.ID != tt.id {
				t.Errorf("GetByID().ID = %d, want %d", a.ID, tt.id)
			}
		})
	}
}

func Test_service_Create(t *testing.T) {
	svc, _ := setup(t)

	na := assignment.NewAssignment{Title: "Algebra drills", Description: "Chapter 3", DueDate: "2030-01-01"}

	if _, err := svc.Create(na, student); err != policy.ErrDenied {
		t.Errorf("Create() as student error = %v, wantErr %v", err, policy.ErrDenied)
	}

	bad := na
	bad.DueDate = "lol"
	if _, err := svc.Create(bad, teacher); err == nil {
		t.Error("Create() accepted a malformed due date")
	} else if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Create() error = %T, want *core.ValidationError", err)
	}

	a, err := svc.Create(na, teacher)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if a.Status != assignment.StatusDraft {
		t.Errorf("Create().Status = %s, want %s", a.Status, assignment.StatusDraft)
	}
	if a.TeacherID != teacher.ID {
		t.Errorf("Create().TeacherID = %d, want %d", a.TeacherID, teacher.ID)
	}
	if a.CreatedAt.String() != core.Today().String() {
		t.Errorf("Create().CreatedAt = %s, want %s", a.CreatedAt, core.Today())
	}

	b, err := svc.Create(na, teacher)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if b.ID <= a.ID {
		t.Errorf("ids must be monotonic; got %d after %d", b.ID, a.ID)
	}
}

func Test_service_Update(t *testing.T) {
	svc, repo := setup(t)

	due := mustDate(t, "2030-01-01")
	draft := testutil.CreateAssignment(t, repo, "Draft", due, assignment.StatusDraft, teacher.ID)
	published := testutil.CreateAssignment(t, repo, "Published", due, assignment.StatusPublished, teacher.ID)

	tests := []struct {
		name    string
		id      int
		ua      assignment.UpdateAssignment
		caller  user.Identity
		wantErr error
	}{
		{name: "not found", id: 999, caller: teacher, wantErr: assignment.ErrNotFound},
		{name: "student denied", id: draft.ID, caller: student, wantErr: policy.ErrDenied},
		{name: "other teacher denied", id: draft.ID, caller: otherTeacher, wantErr: policy.ErrDenied},
		{name: "published not editable", id: published.ID, caller: teacher, wantErr: assignment.ErrNotEditable},
		{name: "partial edit", id: draft.ID, ua: assignment.UpdateAssignment{Title: "New Title"}, caller: teacher},
		{name: "full edit", id: draft.ID, ua: assignment.UpdateAssignment{Title: "T", Description: "D", DueDate: "2030-06-01"}, caller: teacher},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Update(tt.id, tt.ua, tt.caller)
			if err != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.ua.Title != "" && got.Title != tt.ua.Title {
				t.Errorf("Update().Title = %s, want %s", got.Title, tt.ua.Title)
			}
			if tt.ua.Description == "" && got.Description != draft.Description {
				t.Errorf("absent field was overwritten: Description = %s", got.Description)
			}
			if got.Status != assignment.StatusDraft {
				t.Errorf("Update() changed status to %s", got.Status)
			}
		})
	}
}

func Test_service_Transition(t *testing.T) {
	svc, repo := setup(t)

	due := mustDate(t, "2030-01-01")
	draft := testutil.CreateAssignment(t, repo, "Draft", due, assignment.StatusDraft, teacher.ID)
	completed := testutil.CreateAssignment(t, repo, "Completed", due, assignment.StatusCompleted, teacher.ID)

	tests := []struct {
		name    string
		id      int
		target  assignment.Status
		caller  user.Identity
		wantErr error
	}{
		{name: "unknown status", id: draft.ID, target: "archived", caller: teacher, wantErr: assignment.ErrInvalidTransition},
		{name: "not found", id: 999, target: assignment.StatusPublished, caller: teacher, wantErr: assignment.ErrNotFound},
		{name: "student denied", id: draft.ID, target: assignment.StatusPublished, caller: student, wantErr: policy.ErrDenied},
		{name: "skipping an edge", id: draft.ID, target: assignment.StatusCompleted, caller: teacher, wantErr: assignment.ErrInvalidTransition},
		{name: "completed is terminal", id: completed.ID, target: assignment.StatusPublished, caller: teacher, wantErr: assignment.ErrInvalidTransition},
		{name: "draft to published", id: draft.ID, target: assignment.StatusPublished, caller: teacher},
		{name: "going back", id: draft.ID, target: assignment.StatusDraft, caller: teacher, wantErr: assignment.ErrInvalidTransition},
		{name: "published to completed", id: draft.ID, target: assignment.StatusCompleted, caller: teacher},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Transition(tt.id, tt.target, tt.caller)
			if err != tt.wantErr {
				t.Fatalf("Transition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.Status != tt.target {
				t.Errorf("Transition().Status = %s, want %s", got.Status, tt.target)
			}
		})
	}
}

func Test_service_Delete(t *testing.T) {
	svc, repo := setup(t)

	due := mustDate(t, "2030-01-01")
	draft := testutil.CreateAssignment(t, repo, "Draft", due, assignment.StatusDraft, teacher.ID)
	published := testutil.CreateAssignment(t, repo, "Published", due, assignment.StatusPublished, teacher.ID)

	tests := []struct {
		name    string
		id      int
		caller  user.Identity
		wantErr error
	}{
		{name: "not found", id: 999, caller: teacher, wantErr: assignment.ErrNotFound},
		{name: "student denied", id: draft.ID, caller: student, wantErr: policy.ErrDenied},
		{name: "other teacher denied", id: draft.ID, caller: otherTeacher, wantErr: policy.ErrDenied},
		{name: "published not deletable", id: published.ID, caller: teacher, wantErr: assignment.ErrNotDeletable},
		{name: "draft deleted", id: draft.ID, caller: teacher},
		{name: "delete is not idempotent", id: draft.ID, caller: teacher, wantErr: assignment.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Delete(tt.id, tt.caller); err != tt.wantErr {
				t.Fatalf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// a deleted id is never reused
	next := testutil.CreateAssignment(t, repo, "Next", due, assignment.StatusDraft, teacher.ID)
	if next.ID <= published.ID {
		t.Errorf("deleted id was reused: got %d after %d", next.ID, published.ID)
	}
}
