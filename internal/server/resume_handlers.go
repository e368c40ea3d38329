package server

import (
	"io"

	"placement/internal/models"
	"placement/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadResume handles POST /api/resume (student sessions, multipart file
// under "resume"). The stored reference is attached to the student's
// profile in the same request, so uploading is the whole flow.
// @Summary Upload a resume PDF
// @Tags resume
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} models.ResumeRef
// @Failure 400 {object} models.ErrorResponse
// @Router /resume [post]
func (s *Server) UploadResume(c *fiber.Ctx) error {
	me := s.sessionUser(c)
	if me.Role != models.RoleStudent {
		forbidden := models.NewForbiddenError("Only students can upload resumes")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}

	header, err := c.FormFile("resume")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A resume file is required"))
	}

	file, err := header.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	ref, err := s.resumeService.Upload(c.UserContext(), service.UploadResumeInput{
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	if _, err := s.userService.SetResume(c.UserContext(), me.ID, ref); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(ref)
}
