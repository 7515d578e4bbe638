package server

import (
	"log/slog"

	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetThoughts handles GET /thoughts. The optional ?sort query selects the
// ordering: "recent" (default, newest first, capped at 20) or "popular"
// (most hearts first).
func (s *Server) GetThoughts(c *fiber.Ctx) error {
	var err error
	var thoughts interface{}

	switch c.Query("sort", "recent") {
	case "popular":
		thoughts, err = s.thoughtService.ListPopular(c.Context())
	default:
		thoughts, err = s.thoughtService.ListRecent(c.Context())
	}
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(thoughts)
}

// GetRandomThought handles GET /thoughts/random.
func (s *Server) GetRandomThought(c *fiber.Ctx) error {
	thought, err := s.thoughtService.Random(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(thought)
}

// GetLikedThoughts handles GET /thoughts/likes, listing the thoughts the
// authenticated user has liked. An empty list is a normal result here.
func (s *Server) GetLikedThoughts(c *fiber.Ctx) error {
	user := currentUser(c)

	thoughts, err := s.thoughtService.ListLikedBy(c.Context(), user.ID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(thoughts)
}

// GetThought handles GET /thoughts/:id.
func (s *Server) GetThought(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	thought, err := s.thoughtService.Get(c.Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(thought)
}

// CreateThought handles POST /thoughts.
func (s *Server) CreateThought(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.Create(c.Context(), service.CreateThoughtInput{
		User:    currentUser(c),
		Message: body.Message,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "thought created",
		slog.Uint64("thought_id", uint64(thought.ID)),
	)

	return c.Status(fiber.StatusCreated).JSON(thought)
}

// UpdateThought handles PUT /thoughts/:id. Only the owner may update an
// owned thought; anonymous thoughts are open to everyone.
func (s *Server) UpdateThought(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.UpdateMessage(c.Context(), service.UpdateThoughtInput{
		UserID:    currentUser(c).ID,
		ThoughtID: id,
		Message:   body.Message,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Thought updated",
		"thought": thought,
	})
}

// DeleteThought handles DELETE /thoughts/:id, returning the removed record.
func (s *Server) DeleteThought(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	thought, err := s.thoughtService.Delete(c.Context(), service.DeleteThoughtInput{
		UserID:    currentUser(c).ID,
		ThoughtID: id,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "thought deleted",
		slog.Uint64("thought_id", uint64(id)),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Thought deleted",
		"thought": thought,
	})
}

// LikeThought handles POST /thoughts/:id/likes. Liking is idempotent: the
// first like from a user bumps the hearts counter, repeats are no-ops, and
// both return the current state of the thought.
func (s *Server) LikeThought(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	thought, err := s.thoughtService.Like(c.Context(), currentUser(c).ID, id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(thought)
}
