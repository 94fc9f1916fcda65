package main

import (
	"time"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
	inmemdb "github.com/rohit95037-cmyk/backend-repo/storage/database/inmem"
)

// addUser updates or creates a user in the seed fixture.
func (cli *commandLine) addUser(name, email, pwd string, role user.Role) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	seed, err := cli.readSeed()
	if err != nil {
		return err
	}

	usr := user.User{Name: name, Email: email, Role: role}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	var found bool
	for i := range seed.Users {
		if seed.Users[i].Email == email {
			seed.Users[i].Name = name
			seed.Users[i].Role = role
			seed.Users[i].PasswordHash = string(usr.PasswordHash)
			found = true
			break
		}
	}
	if !found {
		var maxID int
		for _, su := range seed.Users {
			if su.ID > maxID {
				maxID = su.ID
			}
		}
		seed.Users = append(seed.Users, inmemdb.SeedUser{
			ID:           maxID + 1,
			Name:         name,
			Email:        email,
			Role:         role,
			PasswordHash: string(usr.PasswordHash),
			CreatedAt:    time.Now().UTC(),
		})
	}
	return seed.Write(cli.seedPath)
}
