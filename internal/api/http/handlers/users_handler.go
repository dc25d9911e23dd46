package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/keygate/auth-service/internal/api/dto"
	"github.com/keygate/auth-service/internal/service"
)

// UsersHandler exposes authenticated user endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.Me(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserResponse{User: user}})
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserListResponse{Users: users, Count: len(users)}})
}
