package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "beulahpos/internal/log"
	"beulahpos/internal/services"
)

type ClientHandler struct {
	Clients *services.ClientService
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		return c.JSON(h.Clients.Search(q))
	}
	return c.JSON(h.Clients.List())
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	client, err := h.Clients.Add(in)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "client.create", map[string]any{"client_id": client.ID})
	return c.Status(fiber.StatusCreated).JSON(client)
}
