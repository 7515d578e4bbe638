package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /users, returning every registered user. Password
// hashes and access tokens are excluded by the model's JSON tags.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// GetSecrets handles GET /secrets, a token-gated endpoint useful for
// verifying that a client's access token works.
func (s *Server) GetSecrets(c *fiber.Ctx) error {
	user := currentUser(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "This is a secret message. You are authenticated.",
		"username": user.Username,
		"instance": s.instanceID,
	})
}
