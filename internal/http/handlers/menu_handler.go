package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "beulahpos/internal/log"
	"beulahpos/internal/services"
)

// MenuHandler is the public storefront: no login, browse and order.
type MenuHandler struct {
	Menu *services.MenuService
}

func (h *MenuHandler) ListProducts(c *fiber.Ctx) error {
	category := c.Query("category", "todos")
	return c.JSON(h.Menu.Products(category, c.Query("q")))
}

func (h *MenuHandler) ViewCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.Menu.Cart.Items(),
		"total": h.Menu.Cart.Total(),
	})
}

func (h *MenuHandler) AddToCart(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("productId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	qty, _ := strconv.Atoi(c.FormValue("qty"))
	if err := h.Menu.AddToCart(productID, qty); err != nil {
		return badRequest(c, err)
	}
	return h.ViewCart(c)
}

func (h *MenuHandler) SetQuantity(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("productId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	qty, _ := strconv.Atoi(c.FormValue("qty"))
	if err := h.Menu.Cart.SetQuantity(productID, qty); err != nil {
		return badRequest(c, err)
	}
	return h.ViewCart(c)
}

func (h *MenuHandler) ClearCart(c *fiber.Ctx) error {
	h.Menu.Cart.Clear()
	return h.ViewCart(c)
}

// Checkout records the order and hands back a WhatsApp link carrying
// the order summary.
func (h *MenuHandler) Checkout(c *fiber.Ctx) error {
	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	order, err := h.Menu.Checkout(in)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "menu.checkout", map[string]any{
		"sale_id": order.Sale.ID, "client_id": order.Client.ID, "total": order.Sale.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(order)
}
