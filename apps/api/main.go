package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/rohit95037-cmyk/backend-repo/apps/api/echo"
	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/analytics"
	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
	logsvc "github.com/rohit95037-cmyk/backend-repo/services/logger"
	inmemdb "github.com/rohit95037-cmyk/backend-repo/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB & repos
	db := inmemdb.Open()
	loadSeed(db, conf, logger)

	usrRepo := inmemdb.NewUserRepository(db)
	assignmentRepo := inmemdb.NewAssignmentRepository(db)
	submissionRepo := inmemdb.NewSubmissionRepository(db)

	// set up services
	usrSvc := user.NewService(usrRepo)
	assignmentSvc := assignment.NewService(assignmentRepo)
	submissionSvc := submission.NewService(submissionRepo, assignmentRepo)
	analyticsSvc := analytics.NewService(assignmentRepo, submissionRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			UserSvc:       usrSvc,
			AssignmentSvc: assignmentSvc,
			SubmissionSvc: submissionSvc,
			AnalyticsSvc:  analyticsSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// loadSeed primes the in-memory DB with the fixture file, if present.
func loadSeed(db *inmemdb.DB, conf *core.Config, logger core.Logger) {
	path := conf.SeedFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(core.Getwd(), path)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	seed, err := inmemdb.ReadSeed(path)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading seed: %v", err), err)
	}
	db.LoadSeed(seed)
	logger.Info(fmt.Sprintf(
		"seeded %d users, %d assignments, %d submissions",
		len(seed.Users), len(seed.Assignments), len(seed.Submissions),
	))
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
