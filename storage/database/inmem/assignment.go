package inmemdb

import (
	"sort"

	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

// query returns all rows ordered by id, ie. insertion order.
func (repo *assignmentRepository) query() []assignment.Assignment {
	assignments := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments
}

func (repo *assignmentRepository) CreateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pk++
	a.ID = repo.db.pk
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *assignmentRepository) GetAssignmentByID(id int) (assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) UpdateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[a.ID]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	// the draft check and the write share one critical section
	if !orig.Editable() {
		return assignment.Assignment{}, assignment.ErrNotEditable
	}

	orig.Title = a.Title
	orig.Description = a.Description
	orig.DueDate = a.DueDate
	return *orig, nil
}

func (repo *assignmentRepository) TransitionAssignment(id int, target assignment.Status) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a, ok := repo.db.table[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	// the edge check and the write share one critical section; the status
	// can never be observed moving backwards
	if !a.Status.CanTransition(target) {
		return assignment.Assignment{}, assignment.ErrInvalidTransition
	}

	a.Status = target
	return *a, nil
}

func (repo *assignmentRepository) DeleteAssignment(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a, ok := repo.db.table[id]
	if !ok {
		return assignment.ErrNotFound
	}
	if !a.Editable() {
		return assignment.ErrNotDeletable
	}

	delete(repo.db.table, id)
	return nil
}
