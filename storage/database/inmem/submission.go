package inmemdb

import (
	"sort"

	"github.com/rohit95037-cmyk/backend-repo/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db.submission}
}

// query returns all rows ordered by id, ie. insertion order.
func (repo *submissionRepository) query() []submission.Submission {
	subs := make([]submission.Submission, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		subs = append(subs, *s)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs
}

func (repo *submissionRepository) CreateSubmission(s submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// unique (assignment, student) pair; the check and the insert share
	// one critical section so two racing submits cannot both pass
	for _, existing := range repo.db.table {
		if existing.AssignmentID == s.AssignmentID && existing.StudentID == s.StudentID {
			return submission.Submission{}, submission.ErrAlreadySubmitted
		}
	}

	repo.db.pk++
	s.ID = repo.db.pk
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *submissionRepository) QueryAllSubmissions() ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *submissionRepository) QuerySubmissionsByAssignment(assignmentID int) ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]submission.Submission, 0)
	for _, s := range repo.query() {
		if s.AssignmentID == assignmentID {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) GetSubmissionByID(id int) (submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return *s, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) GetSubmissionByAssignmentAndStudent(assignmentID, studentID int) (submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, s := range repo.db.table {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return *s, nil
		}
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) MarkSubmissionReviewed(id int) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.table[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	s.IsReviewed = true // one-way; idempotent
	return *s, nil
}
