package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rohit95037-cmyk/backend-repo/core/analytics"
	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
)

type assignmentApi struct {
	svc          assignment.ServiceInterface
	analyticsSvc analytics.ServiceInterface
	validate     *validator.Validate
}

func registerAssignmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc assignment.ServiceInterface,
	analyticsSvc analytics.ServiceInterface,
	validate *validator.Validate,
) {
	api := assignmentApi{svc: svc, analyticsSvc: analyticsSvc, validate: validate}

	ag := g.Group("/assignments", jwt)

	ag.GET("", api.query)
	ag.GET("/analytics", api.analytics, teacherMiddleware())
	ag.POST("", api.create, teacherMiddleware())

	// detail endpoints
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update, teacherMiddleware())
	ag.PATCH("/:id/status", api.transition, teacherMiddleware())
	ag.DELETE("/:id", api.destroy, teacherMiddleware())
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	assignments, err := api.svc.Query(caller)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	pagination := new(Pagination)
	pagination.Bind(ctx)
	start, end := pagination.Slice(len(assignments))

	return ctx.JSON(http.StatusOK, assignmentListResponse{
		Success:     true,
		Assignments: assignments[start:end],
		Pagination:  pagination,
	})
}

func (api *assignmentApi) analytics(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	overview, err := api.analyticsSvc.TeacherOverview(caller)
	if err != nil {
		return errors.Wrap(err, "aggregating analytics")
	}
	return ctx.JSON(http.StatusOK, analyticsResponse{Success: true, Analytics: overview})
}

func (api *assignmentApi) create(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}

	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(data, caller)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, assignmentResponse{Success: true, Assignment: a})
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	a, err := api.svc.GetByID(id, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assignmentResponse{Success: true, Assignment: a})
}

func (api *assignmentApi) update(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Update(id, data, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assignmentResponse{Success: true, Assignment: a})
}

func (api *assignmentApi) transition(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data transitionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to transitionRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	a, err := api.svc.Transition(id, data.Status, caller)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, assignmentResponse{Success: true, Assignment: a})
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	caller, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.Delete(id, caller); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}

// pathID parses an integer path param; a malformed id can never match a
// stored entity, so it reads as not found.
func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

type (
	transitionRequest struct {
		Status assignment.Status `json:"status" validate:"required"`
	}

	assignmentResponse struct {
		Success    bool                  `json:"success"`
		Assignment assignment.Assignment `json:"assignment"`
	}

	assignmentListResponse struct {
		Success     bool                    `json:"success"`
		Assignments []assignment.Assignment `json:"assignments"`
		Pagination  *Pagination             `json:"pagination"`
	}

	analyticsResponse struct {
		Success   bool               `json:"success"`
		Analytics analytics.Overview `json:"analytics"`
	}

	successResponse struct {
		Success bool `json:"success"`
	}
)
