package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"beulahpos/internal/config"
	"beulahpos/internal/domain"
	"beulahpos/internal/http/handlers"
	applog "beulahpos/internal/log"
	"beulahpos/internal/services"
	"beulahpos/internal/station"
	"beulahpos/internal/store"
)

func main() {
	cfg := config.Load()
	applog.Setup(cfg.LogFile)
	defer zap.L().Sync()

	kv, err := store.OpenKV(cfg.StoreDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer kv.Close()

	st := store.New(kv, store.NewBus())

	// Three stations, mirroring the legacy window layout: the POS
	// terminal opens the admin popup, the menu runs standalone.
	pos := station.Open(st, station.Config{
		Name:     "pos",
		Owns:     domain.AllFields,
		Interval: cfg.POSInterval,
	})
	admin := pos.Spawn(station.Config{
		Name:     "admin",
		Owns:     domain.AllFields,
		Interval: cfg.AdminInterval,
	})
	menu := station.Open(st, station.Config{
		Name:     "menu",
		Owns:     domain.MenuFields,
		Interval: cfg.MenuInterval,
		Watch:    func(r domain.Record) any { return r.Products },
	})

	if err := services.Initialize(pos); err != nil {
		log.Fatal(err)
	}

	// Daily snapshot of the live record.
	sched := cron.New()
	if _, err := sched.AddFunc("0 3 * * *", func() {
		if err := st.Backup(); err != nil {
			zap.L().Error("backup failed", zap.Error(err))
		} else {
			zap.L().Info("backup written")
		}
	}); err != nil {
		log.Fatal(err)
	}
	sched.Start()

	deps := handlers.NewDeps(st, cfg, pos, admin, menu)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 4 << 20 // room for base64 logos

	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		applog.Info(c, "http.request", map[string]any{
			"status": c.Response().StatusCode(),
			"ms":     time.Since(start).Milliseconds(),
		})
		return err
	})

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	})
	checkoutLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|checkout"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.checkout.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	// POS terminal
	pg := app.Group("/pos")
	pg.Post("/login", loginLimiter, deps.AuthHandler.Login)
	pg.Post("/logout", deps.AuthHandler.Logout)
	pg.Post("/register", deps.AuthHandler.Register)
	pg.Get("/recovery-question", deps.AuthHandler.RecoveryQuestion)
	pg.Post("/reset-password", deps.AuthHandler.ResetPassword)

	posAuth := pg.Group("", handlers.RequireUser(deps.Auth))
	posAuth.Get("/products", deps.SaleHandler.ListProducts)
	posAuth.Get("/clients", deps.ClientHandler.List)
	posAuth.Post("/clients", deps.ClientHandler.Create)
	posAuth.Get("/cart", deps.SaleHandler.ViewCart)
	posAuth.Post("/cart", deps.SaleHandler.AddToCart)
	posAuth.Put("/cart", deps.SaleHandler.SetQuantity)
	posAuth.Delete("/cart", deps.SaleHandler.ClearCart)
	posAuth.Post("/checkout", deps.SaleHandler.Checkout)

	// Admin popup
	ag := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	ag.Get("/products", deps.AdminHandler.ListProducts)
	ag.Post("/products", deps.AdminHandler.CreateProduct)
	ag.Put("/products/:id/active", deps.AdminHandler.SetProductActive)
	ag.Put("/products/:id/stock", deps.AdminHandler.SetProductStock)
	ag.Delete("/products/:id", deps.AdminHandler.DeleteProduct)

	ag.Get("/expenses", deps.AdminHandler.ListExpenses)
	ag.Post("/expenses", deps.AdminHandler.CreateExpense)
	ag.Put("/expenses/:id/toggle", deps.AdminHandler.ToggleExpense)
	ag.Delete("/expenses/:id", deps.AdminHandler.DeleteExpense)
	ag.Get("/expenses/:id/series", deps.AdminHandler.ExpenseSeries)
	ag.Delete("/expenses/:id/series", deps.AdminHandler.DeleteExpenseSeries)

	ag.Get("/reports/sales", deps.AdminHandler.SalesReport)
	ag.Get("/reports/financial", deps.AdminHandler.FinancialReport)
	ag.Get("/reports/daily-goal", deps.AdminHandler.DailyGoal)

	ag.Get("/users", deps.AdminHandler.ListUsers)
	ag.Delete("/users/:id", deps.AdminHandler.DeleteUser)

	ag.Get("/sales", deps.AdminHandler.ListSales)
	ag.Delete("/sales/by-date", deps.AdminHandler.DeleteSalesByDate)
	ag.Delete("/sales", deps.AdminHandler.DeleteAllSales)

	ag.Get("/logo", deps.AdminHandler.GetLogo)
	ag.Put("/logo", deps.AdminHandler.SetLogo)
	ag.Delete("/logo", deps.AdminHandler.RemoveLogo)

	// Public digital menu
	mg := app.Group("/menu")
	mg.Get("/products", deps.MenuHandler.ListProducts)
	mg.Get("/cart", deps.MenuHandler.ViewCart)
	mg.Post("/cart", deps.MenuHandler.AddToCart)
	mg.Put("/cart", deps.MenuHandler.SetQuantity)
	mg.Delete("/cart", deps.MenuHandler.ClearCart)
	mg.Post("/checkout", checkoutLimiter, deps.MenuHandler.Checkout)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	sched.Stop()
	menu.Close()
	admin.Close()
	pos.Close()
	_ = app.ShutdownWithTimeout(5 * time.Second)
}
