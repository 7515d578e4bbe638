package server

import (
	"errors"
	"log/slog"

	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
)

// authFailure writes the auth endpoints' failure body. Registration and
// login report failures as {success: false, message} rather than the
// standard error envelope, so clients can branch on a single flag.
func (s *Server) authFailure(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	message := "Something went wrong"

	var appErr *models.AppError
	if errors.As(err, &appErr) && status != fiber.StatusInternalServerError {
		message = appErr.Message
	} else {
		middleware.Logger.ErrorContext(c.UserContext(), "auth request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// Register handles POST /register. It creates the user, stores a hashed
// password and a freshly generated access token, and returns the token.
func (s *Server) Register(c *fiber.Ctx) error {
	var creds service.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return s.authFailure(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), creds)
	if err != nil {
		return s.authFailure(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("username", user.Username),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          user.ID,
		"accessToken": user.AccessToken,
	})
}

// Login handles POST /login. On valid credentials it returns the user's
// stored access token; the token never rotates.
func (s *Server) Login(c *fiber.Ctx) error {
	var creds service.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return s.authFailure(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.Context(), creds)
	if err != nil {
		return s.authFailure(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":          user.ID,
		"accessToken": user.AccessToken,
	})
}
