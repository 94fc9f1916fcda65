package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
	inmemdb "github.com/rohit95037-cmyk/backend-repo/storage/database/inmem"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	seedPath string
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -email EMAIL -name NAME [-role teacher|student] - create or update a seed user")
	fmt.Println("  mktoken -email EMAIL - print a signed access token for a seed user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserRole := addUserCmd.String("role", string(user.RoleStudent), "The user's role: teacher or student.")

	mkTokenCmd := flag.NewFlagSet("mktoken", flag.ExitOnError)
	mkTokenEmail := mkTokenCmd.String("email", "", "The user's email.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		role := user.Role(core.CleanString(*addUserRole, true /* lower */))
		if !role.Valid() {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, string(pwd), role)
	case "mktoken":
		if err := mkTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *mkTokenEmail == "" {
			mkTokenCmd.Usage()
			return errHelp
		}
		return cli.makeToken(*mkTokenEmail)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readSeed() (*inmemdb.Seed, error) {
	if _, err := os.Stat(cli.seedPath); os.IsNotExist(err) {
		return new(inmemdb.Seed), nil
	}
	return inmemdb.ReadSeed(cli.seedPath)
}
