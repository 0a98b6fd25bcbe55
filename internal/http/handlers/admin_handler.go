package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "beulahpos/internal/log"
	"beulahpos/internal/services"
	"beulahpos/internal/store"
)

// AdminHandler is the back-office surface: product CRUD, expenses,
// reports, user management, sale deletion and the company logo.
type AdminHandler struct {
	Products *services.ProductService
	Expenses *services.ExpenseService
	Reports  *services.ReportService
	Users    *services.UserService
	Sales    *services.SaleService
	Store    *store.Store
}

const adminWriter = "admin"

func paramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// products

func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(h.Products.Search(c.Query("q")))
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.Products.Add(in)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "code": p.Code})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *AdminHandler) SetProductActive(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Products.SetActive(id, in.Active); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "active": in.Active})
}

func (h *AdminHandler) SetProductStock(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in struct {
		Stock int `json:"stock"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.Products.SetStock(id, in.Stock); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "stock": in.Stock})
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Products.Delete(id); err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// expenses

func (h *AdminHandler) ListExpenses(c *fiber.Ctx) error {
	return c.JSON(h.Expenses.List())
}

func (h *AdminHandler) CreateExpense(c *fiber.Ctx) error {
	var in services.ExpenseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}
	added, err := h.Expenses.Add(in)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "expense.create", map[string]any{"count": len(added)})
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (h *AdminHandler) ToggleExpense(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	status, err := h.Expenses.TogglePaymentStatus(id)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "paymentStatus": status})
}

func (h *AdminHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Expenses.Delete(id); err != nil {
		return badRequest(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ExpenseSeries(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	series, err := h.Expenses.FindSeries(id)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(series)
}

func (h *AdminHandler) DeleteExpenseSeries(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	n, err := h.Expenses.DeleteSeries(id)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "expense.delete_series", map[string]any{"expense_id": id, "removed": n})
	return c.JSON(fiber.Map{"removed": n})
}

// reports

func (h *AdminHandler) SalesReport(c *fiber.Ctx) error {
	return c.JSON(h.Reports.Sales())
}

func (h *AdminHandler) FinancialReport(c *fiber.Ctx) error {
	return c.JSON(h.Reports.Financial())
}

func (h *AdminHandler) DailyGoal(c *fiber.Ctx) error {
	daysPerWeek := c.QueryInt("daysPerWeek", 7)
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "daysPerWeek must be 1..7"})
	}
	return c.JSON(h.Reports.DailyGoal(daysPerWeek, time.Now()))
}

// users

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	return c.JSON(h.Users.List())
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Users.Delete(id); err != nil {
		return badRequest(c, err)
	}
	applog.Security(c, "user.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// sales

func (h *AdminHandler) ListSales(c *fiber.Ctx) error {
	return c.JSON(h.Sales.List())
}

func (h *AdminHandler) DeleteSalesByDate(c *fiber.Ctx) error {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}
	n, err := h.Sales.DeleteByDate(day)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Audit(c, "sale.delete_by_date", map[string]any{"date": c.Query("date"), "removed": n})
	return c.JSON(fiber.Map{"removed": n})
}

func (h *AdminHandler) DeleteAllSales(c *fiber.Ctx) error {
	var in struct {
		Confirmation string `json:"confirmation"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	n, err := h.Sales.DeleteAll(in.Confirmation)
	if err != nil {
		return badRequest(c, err)
	}
	applog.Security(c, "sale.delete_all", map[string]any{"removed": n})
	return c.JSON(fiber.Map{"removed": n})
}

// logo

func (h *AdminHandler) GetLogo(c *fiber.Ctx) error {
	data, ok := h.Store.Logo()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no logo set"})
	}
	return c.JSON(fiber.Map{"logo": data})
}

func (h *AdminHandler) SetLogo(c *fiber.Ctx) error {
	var in struct {
		Logo string `json:"logo"`
	}
	if err := c.BodyParser(&in); err != nil || in.Logo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo data required"})
	}
	if err := h.Store.SetLogo(in.Logo, adminWriter); err != nil {
		applog.Error(c, "logo.set", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store logo"})
	}
	applog.Audit(c, "logo.set", map[string]any{"bytes": len(in.Logo)})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) RemoveLogo(c *fiber.Ctx) error {
	if err := h.Store.RemoveLogo(adminWriter); err != nil {
		applog.Error(c, "logo.remove", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not remove logo"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
