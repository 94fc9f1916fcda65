package main

import (
	"fmt"

	echoapi "github.com/rohit95037-cmyk/backend-repo/apps/api/echo"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

// makeToken mints a signed access token for a seed user and prints it.
func (cli *commandLine) makeToken(email string) error {
	seed, err := cli.readSeed()
	if err != nil {
		return err
	}
	for _, su := range seed.Users {
		if su.Email == email {
			usr := user.User{ID: su.ID, Name: su.Name, Email: su.Email, Role: su.Role}
			token, err := echoapi.GenerateToken(cli.conf, echoapi.GetUserClaims(cli.conf, usr))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		}
	}
	return user.ErrNotFound
}
