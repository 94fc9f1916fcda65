package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohit95037-cmyk/backend-repo/core/submission"
)

type submissionApi struct {
	svc      submission.ServiceInterface
	validate *validator.Validate
}

func registerSubmissionAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc submission.ServiceInterface,
	validate *validator.Validate,
) {
	api := submissionApi{svc: svc, validate: validate}

	sg := g.Group("/submissions", jwt)

	sg.GET("", api.query)
	sg.POST("", api.submit, studentMiddleware())
	sg.GET("/assignment/:assignmentId", api.queryByAssignment, teacherMiddleware())
	sg.GET("/my/:assignmentId", api.getMine, studentMiddleware())
	sg.PATCH("/:id/review", api.review, teacherMiddleware())
}

// Handlers

func (api *submissionApi) query(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	filter := new(submission.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		filter = new(submission.QueryFilter)
	}

	subs, err := api.svc.Query(caller, *filter)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, submissionListResponse{Success: true, Submissions: subs})
}

func (api *submissionApi) queryByAssignment(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	assignmentID, err := pathID(ctx, "assignmentId")
	if err != nil {
		return err
	}

	subs, err := api.svc.QueryByAssignment(assignmentID, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, submissionListResponse{Success: true, Submissions: subs})
}

func (api *submissionApi) getMine(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	assignmentID, err := pathID(ctx, "assignmentId")
	if err != nil {
		return err
	}

	sub, err := api.svc.GetMine(assignmentID, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, submissionResponse{Success: true, Submission: sub})
}

func (api *submissionApi) submit(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Submit(data, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, submissionResponse{Success: true, Submission: sub})
}

func (api *submissionApi) review(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	sub, err := api.svc.Review(id, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, submissionResponse{Success: true, Submission: sub})
}

type (
	submissionResponse struct {
		Success    bool                  `json:"success"`
		Submission submission.Submission `json:"submission"`
	}

	submissionListResponse struct {
		Success     bool                    `json:"success"`
		Submissions []submission.Submission `json:"submissions"`
	}
)
