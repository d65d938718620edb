package devserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/milkchain/milkchain/internal/accounts"
	"github.com/milkchain/milkchain/internal/config"
	"github.com/milkchain/milkchain/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Server
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all auth routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	registerHealthRoute(app, d)

	var repo accounts.Repository
	if d.DB != nil {
		repo = accounts.NewPostgresRepository(d.DB)
	} else {
		repo = accounts.NewMemoryRepository()
	}
	svc := accounts.NewService(repo)
	h := newHandler(d.Cfg, svc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"request_id": reqID,
				"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
			},
		})
	})

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/login-phone", h.LoginPhone)
	auth.Post("/register", h.Register)
	auth.Post("/complete-payment", h.CompletePayment)

	// verify-pin requires a session token; attempts are budgeted per account.
	pinLimit := middleware.PINAttemptLimit(d.Cache, 5)
	auth.Post("/verify-pin", h.bearerAuth(), pinLimit, h.VerifyPin)

	return nil
}

func registerHealthRoute(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		redisStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				dbStatus = err.Error()
			}
		}
		if d.Cache != nil {
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				redisStatus = err.Error()
			}
		}
		status := http.StatusOK
		if dbStatus != "ok" || redisStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"postgres": dbStatus, "redis": redisStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
