package inmemdb

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%s) failed: %v", s, err)
	}
	return d
}

func Test_userRepository_emailUniqueness(t *testing.T) {
	repo := NewUserRepository(Open())

	usr, err := repo.CreateUser(user.User{Name: "Awe", Email: "awe@test.cd", Role: user.RoleStudent})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if usr.ID != 1 {
		t.Errorf("CreateUser().ID = %d, want 1", usr.ID)
	}

	if _, err := repo.CreateUser(user.User{Name: "Clone", Email: "awe@test.cd", Role: user.RoleTeacher}); err != user.ErrEmailExists {
		t.Errorf("CreateUser() error = %v, wantErr %v", err, user.ErrEmailExists)
	}
	if err := repo.CheckEmailUniqueness("awe@test.cd"); err != user.ErrEmailExists {
		t.Errorf("CheckEmailUniqueness() error = %v, wantErr %v", err, user.ErrEmailExists)
	}
	if err := repo.CheckEmailUniqueness("fresh@test.cd"); err != nil {
		t.Errorf("CheckEmailUniqueness() failed: %v", err)
	}
}

func Test_userRepository_concurrentCreate(t *testing.T) {
	repo := NewUserRepository(Open())

	// racing registrations for one email; exactly one may win
	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateUser(user.User{Name: "Awe", Email: "awe@test.cd", Role: user.RoleStudent})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
		} else if err != user.ErrEmailExists {
			t.Errorf("CreateUser() error = %v", err)
		}
	}
	if created != 1 {
		t.Errorf("%d creations succeeded, want exactly 1", created)
	}
}

func Test_assignmentRepository_idsAreMonotonic(t *testing.T) {
	repo := NewAssignmentRepository(Open())

	a1, _ := repo.CreateAssignment(assignment.Assignment{Title: "A", Status: assignment.StatusDraft})
	a2, _ := repo.CreateAssignment(assignment.Assignment{Title: "B", Status: assignment.StatusDraft})

	if err := repo.DeleteAssignment(a2.ID); err != nil {
		t.Fatalf("DeleteAssignment() failed: %v", err)
	}
	a3, _ := repo.CreateAssignment(assignment.Assignment{Title: "C", Status: assignment.StatusDraft})
	if a3.ID <= a2.ID {
		t.Errorf("deleted id was reused: got %d after deleting %d", a3.ID, a2.ID)
	}
	if a3.ID != a1.ID+2 {
		t.Errorf("CreateAssignment().ID = %d, want %d", a3.ID, a1.ID+2)
	}
}

func Test_assignmentRepository_guards(t *testing.T) {
	repo := NewAssignmentRepository(Open())

	a, _ := repo.CreateAssignment(assignment.Assignment{Title: "A", Status: assignment.StatusDraft})

	if _, err := repo.TransitionAssignment(a.ID, assignment.StatusCompleted); err != assignment.ErrInvalidTransition {
		t.Errorf("TransitionAssignment(skip) error = %v, wantErr %v", err, assignment.ErrInvalidTransition)
	}
	if _, err := repo.TransitionAssignment(a.ID, assignment.StatusPublished); err != nil {
		t.Fatalf("TransitionAssignment() failed: %v", err)
	}

	// published: frozen fields, no delete
	if _, err := repo.UpdateAssignment(assignment.Assignment{ID: a.ID, Title: "New"}); err != assignment.ErrNotEditable {
		t.Errorf("UpdateAssignment() error = %v, wantErr %v", err, assignment.ErrNotEditable)
	}
	if err := repo.DeleteAssignment(a.ID); err != assignment.ErrNotDeletable {
		t.Errorf("DeleteAssignment() error = %v, wantErr %v", err, assignment.ErrNotDeletable)
	}

	if _, err := repo.TransitionAssignment(a.ID, assignment.StatusCompleted); err != nil {
		t.Fatalf("TransitionAssignment() failed: %v", err)
	}
	if _, err := repo.TransitionAssignment(a.ID, assignment.StatusPublished); err != assignment.ErrInvalidTransition {
		t.Errorf("TransitionAssignment(back) error = %v, wantErr %v", err, assignment.ErrInvalidTransition)
	}
}

func Test_assignmentRepository_updateKeepsStatusAndOwner(t *testing.T) {
	repo := NewAssignmentRepository(Open())

	a, _ := repo.CreateAssignment(assignment.Assignment{Title: "A", Status: assignment.StatusDraft, TeacherID: 7})

	edit := a
	edit.Title = "New"
	edit.Status = assignment.StatusCompleted // must be ignored
	edit.TeacherID = 99                      // must be ignored

	got, err := repo.UpdateAssignment(edit)
	if err != nil {
		t.Fatalf("UpdateAssignment() failed: %v", err)
	}
	if got.Title != "New" {
		t.Errorf("Title = %s, want New", got.Title)
	}
	if got.Status != assignment.StatusDraft {
		t.Errorf("Status = %s, want %s", got.Status, assignment.StatusDraft)
	}
	if got.TeacherID != 7 {
		t.Errorf("TeacherID = %d, want 7", got.TeacherID)
	}
}

func Test_submissionRepository_duplicate(t *testing.T) {
	repo := NewSubmissionRepository(Open())

	if _, err := repo.CreateSubmission(submission.Submission{AssignmentID: 1, StudentID: 2}); err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	if _, err := repo.CreateSubmission(submission.Submission{AssignmentID: 1, StudentID: 2}); err != submission.ErrAlreadySubmitted {
		t.Errorf("CreateSubmission() error = %v, wantErr %v", err, submission.ErrAlreadySubmitted)
	}
	// same student, another assignment
	if _, err := repo.CreateSubmission(submission.Submission{AssignmentID: 2, StudentID: 2}); err != nil {
		t.Errorf("CreateSubmission() failed: %v", err)
	}
	// same assignment, another student
	if _, err := repo.CreateSubmission(submission.Submission{AssignmentID: 1, StudentID: 3}); err != nil {
		t.Errorf("CreateSubmission() failed: %v", err)
	}
}

func Test_submissionRepository_concurrentDuplicate(t *testing.T) {
	repo := NewSubmissionRepository(Open())

	// double-click storm; exactly one submission may land
	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateSubmission(submission.Submission{AssignmentID: 1, StudentID: 2})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
		} else if err != submission.ErrAlreadySubmitted {
			t.Errorf("CreateSubmission() error = %v", err)
		}
	}
	if created != 1 {
		t.Errorf("%d submissions landed, want exactly 1", created)
	}
}

func Test_submissionRepository_markReviewed(t *testing.T) {
	repo := NewSubmissionRepository(Open())

	sub, _ := repo.CreateSubmission(submission.Submission{AssignmentID: 1, StudentID: 2})

	got, err := repo.MarkSubmissionReviewed(sub.ID)
	if err != nil {
		t.Fatalf("MarkSubmissionReviewed() failed: %v", err)
	}
	if !got.IsReviewed {
		t.Error("MarkSubmissionReviewed() did not set the flag")
	}

	// idempotent
	got, err = repo.MarkSubmissionReviewed(sub.ID)
	if err != nil || !got.IsReviewed {
		t.Errorf("MarkSubmissionReviewed() second call = %+v, %v", got, err)
	}

	if _, err := repo.MarkSubmissionReviewed(999); err != submission.ErrNotFound {
		t.Errorf("MarkSubmissionReviewed(999) error = %v, wantErr %v", err, submission.ErrNotFound)
	}
}

func TestSeed_roundTripAndPKAdvance(t *testing.T) {
	seed := &Seed{
		Users: []SeedUser{
			{ID: 3, Name: "Awe", Email: "awe@test.cd", Role: user.RoleTeacher, PasswordHash: "x", CreatedAt: time.Now().UTC()},
		},
		Assignments: []assignment.Assignment{
			{ID: 5, Title: "A", DueDate: mustDate(t, "2030-01-01"), Status: assignment.StatusPublished, CreatedAt: mustDate(t, "2025-01-01"), TeacherID: 3},
		},
		Submissions: []submission.Submission{
			{ID: 8, AssignmentID: 5, StudentID: 4, SubmittedAnswer: "42", SubmittedAt: time.Now().UTC()},
		},
	}

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := seed.Write(path); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	got, err := ReadSeed(path)
	if err != nil {
		t.Fatalf("ReadSeed() failed: %v", err)
	}
	if len(got.Users) != 1 || len(got.Assignments) != 1 || len(got.Submissions) != 1 {
		t.Fatalf("ReadSeed() = %+v", got)
	}

	db := Open()
	db.LoadSeed(got)

	// new rows continue past the highest seeded ids
	usr, _ := NewUserRepository(db).CreateUser(user.User{Name: "New", Email: "new@test.cd", Role: user.RoleStudent})
	if usr.ID != 4 {
		t.Errorf("CreateUser().ID = %d, want 4", usr.ID)
	}
	a, _ := NewAssignmentRepository(db).CreateAssignment(assignment.Assignment{Title: "B", Status: assignment.StatusDraft})
	if a.ID != 6 {
		t.Errorf("CreateAssignment().ID = %d, want 6", a.ID)
	}
	sub, _ := NewSubmissionRepository(db).CreateSubmission(submission.Submission{AssignmentID: 5, StudentID: 99})
	if sub.ID != 9 {
		t.Errorf("CreateSubmission().ID = %d, want 9", sub.ID)
	}

	if _, err := ReadSeed(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadSeed() passed for a missing file")
	}
}
