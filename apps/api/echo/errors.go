package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/policy"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			code, message = domainErrorCodeAndMessage(errors.Cause(err))
			if code == http.StatusInternalServerError {
				// any other error is a server error; keep the detail out of the response
				var caller user.Identity
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					caller, _ = claims.Identity()
				}
				msg := message.(string)
				logger.Error(msg, errors.Wrap(err, msg), caller)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		} else {
			message = echo.Map{"error": message}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// domainErrorCodeAndMessage maps the stores' sentinel errors to HTTP outcomes.
func domainErrorCodeAndMessage(cause error) (int, interface{}) {
	switch cause {
	case user.ErrNotFound, assignment.ErrNotFound, submission.ErrNotFound:
		return http.StatusNotFound, cause.Error()
	case policy.ErrDenied:
		return http.StatusForbidden, cause.Error()
	case assignment.ErrInvalidTransition,
		assignment.ErrNotEditable,
		assignment.ErrNotDeletable,
		submission.ErrAlreadySubmitted,
		submission.ErrNotPublished,
		submission.ErrDeadlinePassed,
		user.ErrEmailExists:
		return http.StatusBadRequest, cause.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
