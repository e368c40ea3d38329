package server

import (
	"placement/internal/models"
	"placement/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListJobs handles GET /api/jobs
// @Summary List every job posting
// @Tags jobs
// @Produce json
// @Success 200 {array} models.Job
// @Router /jobs [get]
func (s *Server) ListJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(jobs)
}

// ListMyJobs handles GET /api/jobs/mine (company sessions)
// @Summary List the session company's postings
// @Tags jobs
// @Produce json
// @Success 200 {array} models.Job
// @Router /jobs/mine [get]
func (s *Server) ListMyJobs(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	if me.Role != models.RoleCompany {
		forbidden := models.NewForbiddenError("Company access required")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}
	jobs, err := s.jobService.ListByCompany(c.UserContext(), me.ID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(jobs)
}

// GetJob handles GET /api/jobs/:id
// @Summary Fetch one job posting
// @Tags jobs
// @Produce json
// @Success 200 {object} models.Job
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [get]
func (s *Server) GetJob(c *fiber.Ctx) error {
	job, err := s.jobService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(job)
}

// CreateJob handles POST /api/jobs (company sessions)
// @Summary Post a new job
// @Tags jobs
// @Accept json
// @Produce json
// @Success 201 {object} models.Job
// @Failure 400 {object} models.ErrorResponse
// @Router /jobs [post]
func (s *Server) CreateJob(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	if me.Role != models.RoleCompany {
		forbidden := models.NewForbiddenError("Only companies can post jobs")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}

	var req struct {
		Title        string         `json:"title"`
		Description  string         `json:"description"`
		Requirements []string       `json:"requirements"`
		Location     string         `json:"location"`
		Salary       string         `json:"salary"`
		Type         models.JobType `json:"type"`
		Deadline     string         `json:"deadline"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.Create(c.UserContext(), service.CreateJobInput{
		CompanyID:    me.ID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Type:         req.Type,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// UpdateJob handles PUT /api/jobs/:id (owning company or admin)
// @Summary Update a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Success 200 {object} models.Job
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [put]
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	id := c.Params("id")

	if err := s.requireJobOwnership(c, me, id); err != nil {
		return err
	}

	var req struct {
		Title        *string         `json:"title"`
		Description  *string         `json:"description"`
		Requirements []string        `json:"requirements"`
		Location     *string         `json:"location"`
		Salary       *string         `json:"salary"`
		Type         *models.JobType `json:"type"`
		Deadline     *string         `json:"deadline"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	job, err := s.jobService.Update(c.UserContext(), id, service.UpdateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Type:         req.Type,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(job)
}

// DeleteJob handles DELETE /api/jobs/:id (owning company or admin)
// @Summary Delete a job posting and its applications
// @Tags jobs
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [delete]
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	id := c.Params("id")

	if err := s.requireJobOwnership(c, me, id); err != nil {
		return err
	}

	if err := s.jobService.Delete(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

// requireJobOwnership writes an error response and returns it unless the
// session user is an admin or the company that posted the job.
func (s *Server) requireJobOwnership(c *fiber.Ctx, me *models.User, jobID string) error {
	if me.Role == models.RoleAdmin {
		return nil
	}
	if me.Role != models.RoleCompany {
		forbidden := models.NewForbiddenError("Company or admin access required")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}
	job, err := s.jobService.Get(c.UserContext(), jobID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	if job.CompanyID != me.ID {
		forbidden := models.NewForbiddenError("You can only manage your own jobs")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}
	return nil
}
