// Package inmemdb implements the repositories on in-memory tables.
// Each table is guarded by its own RWMutex and owns a monotonic pk counter,
// so every repository operation is a single critical section:
// check-then-mutate sequences (duplicate submissions, status edges, id
// assignment) cannot interleave.
package inmemdb

import (
	"sync"

	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

type (
	DB struct {
		user       *userTable
		assignment *assignmentTable
		submission *submissionTable
	}

	userTable struct {
		table map[int]*user.User
		pk    int
		mutex sync.RWMutex
	}

	assignmentTable struct {
		table map[int]*assignment.Assignment
		pk    int
		mutex sync.RWMutex
	}

	submissionTable struct {
		table map[int]*submission.Submission
		pk    int
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		submission: &submissionTable{table: make(map[int]*submission.Submission)},
	}
}
