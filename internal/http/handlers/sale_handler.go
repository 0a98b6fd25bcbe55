package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"beulahpos/internal/domain"
	applog "beulahpos/internal/log"
	"beulahpos/internal/services"
)

// SaleHandler is the cashier surface: product search, the cart, and
// checkout.
type SaleHandler struct {
	Sales    *services.SaleService
	Products *services.ProductService
	Auth     *services.AuthService
}

func (h *SaleHandler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(h.Products.Search(c.Query("q")))
}

func (h *SaleHandler) ViewCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.Sales.Cart.Items(),
		"total": h.Sales.Cart.Total(),
	})
}

func (h *SaleHandler) AddToCart(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("productId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	qty, _ := strconv.Atoi(c.FormValue("qty"))
	if err := h.Sales.AddToCart(productID, qty); err != nil {
		return badRequest(c, err)
	}
	return h.ViewCart(c)
}

func (h *SaleHandler) SetQuantity(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("productId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	qty, _ := strconv.Atoi(c.FormValue("qty"))
	if err := h.Sales.Cart.SetQuantity(productID, qty); err != nil {
		return badRequest(c, err)
	}
	return h.ViewCart(c)
}

func (h *SaleHandler) ClearCart(c *fiber.Ctx) error {
	h.Sales.Cart.Clear()
	return h.ViewCart(c)
}

// Checkout finalizes the cart for the logged-in operator.
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(domain.User)
	clientID, _ := strconv.ParseInt(c.FormValue("clientId"), 10, 64)
	payment := c.FormValue("paymentMethod")
	if payment == "" {
		payment = "dinheiro"
	}

	sale, err := h.Sales.Finalize(clientID, payment, u.Name)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "sale.finalize", map[string]any{
		"sale_id": sale.ID, "total": sale.Total.String(), "operator": u.Name,
	})
	return c.Status(fiber.StatusCreated).JSON(sale)
}
