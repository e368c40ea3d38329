package server

import (
	"placement/internal/models"
	"placement/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListApplications handles GET /api/applications (admin sees all, a company
// sees applications to its jobs, a student sees their own)
// @Summary List applications visible to the session user
// @Tags applications
// @Produce json
// @Success 200 {array} models.Application
// @Router /applications [get]
func (s *Server) ListApplications(c *fiber.Ctx) error {
	me := s.sessionUser(c)

	var (
		apps []models.Application
		err  error
	)
	switch me.Role {
	case models.RoleAdmin:
		apps, err = s.applicationService.List(c.UserContext())
	case models.RoleCompany:
		apps, err = s.applicationService.ListByCompany(c.UserContext(), me.ID)
	default:
		apps, err = s.applicationService.ListByStudent(c.UserContext(), me.ID)
	}
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(apps)
}

// ListMyApplications handles GET /api/applications/mine (student sessions)
// @Summary List the session student's applications
// @Tags applications
// @Produce json
// @Success 200 {array} models.Application
// @Router /applications/mine [get]
func (s *Server) ListMyApplications(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	if me.Role != models.RoleStudent {
		forbidden := models.NewForbiddenError("Student access required")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}
	apps, err := s.applicationService.ListByStudent(c.UserContext(), me.ID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(apps)
}

// ListJobApplications handles GET /api/applications/job/:jobId (owning
// company or admin)
// @Summary List applications against one job
// @Tags applications
// @Produce json
// @Success 200 {array} models.Application
// @Failure 403 {object} models.ErrorResponse
// @Router /applications/job/{jobId} [get]
func (s *Server) ListJobApplications(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	jobID := c.Params("jobId")

	if err := s.requireJobOwnership(c, me, jobID); err != nil {
		return err
	}

	apps, err := s.applicationService.ListByJob(c.UserContext(), jobID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(apps)
}

// CreateApplication handles POST /api/applications (student sessions)
// @Summary Apply to a job
// @Tags applications
// @Accept json
// @Produce json
// @Success 201 {object} models.Application
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications [post]
func (s *Server) CreateApplication(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	if me.Role != models.RoleStudent {
		forbidden := models.NewForbiddenError("Only students can apply to jobs")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}

	var req struct {
		JobID string `json:"jobId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.JobID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("jobId is required"))
	}

	app, err := s.applicationService.Create(c.UserContext(), service.CreateApplicationInput{
		JobID:     req.JobID,
		StudentID: me.ID,
	})
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// UpdateApplicationStatus handles PUT /api/applications/:id/status (owning
// company or admin)
// @Summary Approve or reject an application
// @Tags applications
// @Accept json
// @Produce json
// @Success 200 {object} models.Application
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/{id}/status [put]
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	id := c.Params("id")

	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, err := s.applicationService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	if me.Role != models.RoleAdmin && !(me.Role == models.RoleCompany && app.CompanyID == me.ID) {
		forbidden := models.NewForbiddenError("You can only review applications to your own jobs")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}

	updated, err := s.applicationService.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(updated)
}
