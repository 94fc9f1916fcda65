package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rohit95037-cmyk/backend-repo/core"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	seedPath := conf.SeedFile
	if !filepath.IsAbs(seedPath) {
		seedPath = filepath.Join(core.Getwd(), seedPath)
	}

	cli := commandLine{
		conf:     conf,
		seedPath: seedPath,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
