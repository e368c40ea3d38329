package server

import (
	"placement/internal/models"
	"placement/internal/service"

	"github.com/gofiber/fiber/v2"
)

func sanitizeAll(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out
}

// ListUsers handles GET /api/users (admin only)
// @Summary List every user
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(sanitizeAll(users))
}

// ListStudents handles GET /api/users/students
// @Summary List student accounts
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users/students [get]
func (s *Server) ListStudents(c *fiber.Ctx) error {
	users, err := s.userService.Students(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(sanitizeAll(users))
}

// ListCompanies handles GET /api/users/companies
// @Summary List company accounts
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users/companies [get]
func (s *Server) ListCompanies(c *fiber.Ctx) error {
	users, err := s.userService.Companies(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(sanitizeAll(users))
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update the session user's profile
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	me := s.sessionUser(c)

	var req struct {
		Name     *string                `json:"name"`
		Phone    *string                `json:"phone"`
		Password *string                `json:"password"`
		Student  *models.StudentProfile `json:"student"`
		Company  *models.CompanyProfile `json:"company"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Update(c.UserContext(), me.ID, service.UpdateUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		Student:  req.Student,
		Company:  req.Company,
	})
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(user.Sanitized())
}

// SetUserActive handles PUT /api/users/:id/active (admin only)
// @Summary Activate or deactivate an account
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/active [put]
func (s *Server) SetUserActive(c *fiber.Ctx) error {
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetActive(c.UserContext(), c.Params("id"), req.Active)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(user.Sanitized())
}

// DeleteUser handles DELETE /api/users/:id (admin only)
// @Summary Delete an account and its dependent records
// @Tags users
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	if err := s.userService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
