package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "beulahpos/internal/log"
	"beulahpos/internal/services"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Users *services.UserService
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"username": c.FormValue("username")})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "login.ok", map[string]any{"user": u.Username})
	return c.JSON(fiber.Map{"name": u.Name, "isAdmin": u.IsAdmin})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Auth.Logout(c.Cookies("sid"))
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	u, err := h.Users.Register(services.RegisterInput{
		Name:           c.FormValue("name"),
		Username:       c.FormValue("username"),
		Password:       c.FormValue("password"),
		SecretQuestion: c.FormValue("secretQuestion"),
		SecretAnswer:   c.FormValue("secretAnswer"),
	})
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"user": u.Username})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": u.ID, "username": u.Username})
}

func (h *AuthHandler) RecoveryQuestion(c *fiber.Ctx) error {
	q, err := h.Users.RecoveryQuestion(c.Query("username"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"secretQuestion": q})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	err := h.Users.ResetPassword(
		c.FormValue("username"),
		c.FormValue("answer"),
		c.FormValue("newPassword"),
	)
	if err != nil {
		applog.Security(c, "recovery.fail", map[string]any{"username": c.FormValue("username")})
		return badRequest(c, err)
	}
	applog.Audit(c, "recovery.reset", map[string]any{"username": c.FormValue("username")})
	return c.JSON(fiber.Map{"ok": true})
}

// badRequest keeps domain rejections at 400 and everything else at 500.
func badRequest(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateCode),
		errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrIncompleteName),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrStockRange),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrProductUnavail),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrEmptyPassword),
		errors.Is(err, services.ErrBadAnswer),
		errors.Is(err, services.ErrBadCreds),
		errors.Is(err, services.ErrBadConfirmation),
		errors.Is(err, services.ErrNothingToDelete),
		errors.Is(err, services.ErrProtectedUser):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrExpenseNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
