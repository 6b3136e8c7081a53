package handlers

import (
	"loandesk-backoffice/internal/core/services"
	"loandesk-backoffice/internal/pkg/response"
	"loandesk-backoffice/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints (admin only)
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles user creation
// @Summary Create user
// @Description Create a bare user account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "User created successfully", user)
}

// GetByID handles getting a user
// @Summary Get user
// @Description Get a user account by id
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "User retrieved successfully", user)
}

// List handles listing all users
// @Summary List users
// @Description List all user accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Users retrieved successfully", users)
}

// Update handles updating a user
// @Summary Update user
// @Description Update a user's contact details and password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "User data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.Update(c.Context(), id, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "User updated successfully", user)
}

// Delete handles deleting a user and its dependent records
// @Summary Delete user
// @Description Delete a user together with its profile, loans and ledger entries
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "User deleted successfully", nil)
}
