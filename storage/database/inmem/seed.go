package inmemdb

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

type (
	// Seed is the JSON fixture an in-memory DB can be primed with at
	// startup. apps/admin maintains these files.
	Seed struct {
		Users       []SeedUser              `json:"users"`
		Assignments []assignment.Assignment `json:"assignments"`
		Submissions []submission.Submission `json:"submissions"`
	}

	// SeedUser mirrors user.User with the password hash exposed; the live
	// model never marshals it.
	SeedUser struct {
		ID           int       `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		Role         user.Role `json:"role"`
		PasswordHash string    `json:"password_hash"`
		CreatedAt    time.Time `json:"created_at"`
	}
)

func ReadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed file %s", path)
	}
	seed := new(Seed)
	if err = json.Unmarshal(data, seed); err != nil {
		return nil, errors.Wrapf(err, "parsing seed file %s", path)
	}
	return seed, nil
}

func (s *Seed) Write(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling seed")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing seed file %s", path)
}

// LoadSeed inserts the fixture rows and advances each table's pk counter
// past the highest seeded id.
func (db *DB) LoadSeed(seed *Seed) {
	db.user.mutex.Lock()
	for i := range seed.Users {
		su := seed.Users[i]
		usr := user.User{
			ID:           su.ID,
			Name:         su.Name,
			Email:        su.Email,
			Role:         su.Role,
			PasswordHash: []byte(su.PasswordHash),
			CreatedAt:    su.CreatedAt,
		}
		db.user.table[usr.ID] = &usr
		if usr.ID > db.user.pk {
			db.user.pk = usr.ID
		}
	}
	db.user.mutex.Unlock()

	db.assignment.mutex.Lock()
	for i := range seed.Assignments {
		a := seed.Assignments[i]
		db.assignment.table[a.ID] = &a
		if a.ID > db.assignment.pk {
			db.assignment.pk = a.ID
		}
	}
	db.assignment.mutex.Unlock()

	db.submission.mutex.Lock()
	for i := range seed.Submissions {
		sub := seed.Submissions[i]
		db.submission.table[sub.ID] = &sub
		if sub.ID > db.submission.pk {
			db.submission.pk = sub.ID
		}
	}
	db.submission.mutex.Unlock()
}
