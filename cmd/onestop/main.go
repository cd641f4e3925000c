package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onestop/internal/catalog"
	"onestop/internal/config"
	"onestop/internal/http/handlers"
	applog "onestop/internal/log"
	"onestop/internal/llm"
	"onestop/internal/metrics"
	"onestop/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			out = io.MultiWriter(os.Stdout, f)
			log.SetOutput(out)
		}
	}
	applog.Setup(applog.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: out})

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal(err)
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	gen := llm.New(cfg.Ollama)

	// Load the model in the background so the first shopper question is fast.
	if cfg.Ollama.Warmup {
		go func() {
			err := gen.Warmup(context.Background())
			metrics.ObserveWarmup(err)
			if err != nil {
				applog.Warn(nil, "model.warmup.fail", err, map[string]any{"model": gen.Model()})
				return
			}
			applog.Info(nil, "model.warmup.ok", map[string]any{"model": gen.Model()})
		}()
	}

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/images/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Security check failed. Please refresh and try again."})
		},
	}))

	// ---------- Static assets ----------
	log.Printf("[static] /images -> %s", cfg.ImagesDir)
	app.Get("/images/*", handlers.Images(cfg.ImagesDir))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, cat, gen)

	app.Get("/", deps.ProductHandler.Home)
	app.Get("/product/:slug", deps.ProductHandler.Detail)

	// API
	api := app.Group("/api")
	askLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimitAsk,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|ask"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.ask.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/ask", askLimiter, deps.ChatHandler.Ask)
	api.Get("/history", deps.ChatHandler.History)
	api.Post("/eta", deps.DeliveryHandler.Estimate)

	// Health, metrics & 404
	app.Get("/healthz", deps.HealthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "model": gen.Model(), "products": cat.Slugs()})
	log.Fatal(app.Listen(":" + cfg.Port))
}
