package main

import (
	"context"
	"log"
	"strings"

	"fuelpos-backend/internal/auth"
	"fuelpos-backend/internal/cache"
	"fuelpos-backend/internal/config"
	"fuelpos-backend/internal/database"
	"fuelpos-backend/internal/models"
	"fuelpos-backend/internal/payment"
	"fuelpos-backend/internal/remote"
	"fuelpos-backend/internal/shift"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	store := remote.New(cfg.HeadOfficeURL, cfg.HeadOfficeToken, cfg.StationID)
	shiftCache := cache.New(db)

	session := shift.NewSession()
	synchronizer := shift.NewSalesTotalSynchronizer(store, session)
	resolver := shift.NewResolver(store, shiftCache, session, store.Offline, synchronizer)
	controller := shift.NewController(store, shiftCache, session, synchronizer)
	payments := payment.NewManager(store, session)

	watchdog := shift.NewWatchdog(session)
	watchdog.Start()
	defer watchdog.Stop()
	defer synchronizer.Stop()

	// Pick up a shift left open across a restart.
	go func() {
		if s, err := resolver.Resolve(context.Background(), "", false); err != nil {
			log.Printf("Startup shift check failed: %v", err)
		} else if s != nil {
			log.Printf("Resumed active shift %s", s.ID)
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-manager", auth.RegisterManagerHandler(db, cfg))
	api.Post("/auth/login", auth.LoginHandler(db, cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))
	protected.Post("/operators", auth.RequireRole(models.RoleManager), auth.CreateOperatorHandler(db))

	// Shift lifecycle
	protected.Get("/shifts/active", shift.CheckActiveShiftHandler(resolver))
	protected.Get("/shifts/state", shift.StateHandler(session))
	protected.Post("/shifts/begin", shift.BeginShiftHandler(controller))
	protected.Post("/shifts/end", shift.EndShiftHandler(controller))

	// Payment reconciliation
	protected.Get("/shifts/:id/payment-methods", payment.ListPaymentMethodsHandler(payments))
	protected.Post("/shifts/:id/payment-methods", payment.AddPaymentMethodsHandler(payments))
	protected.Delete("/shifts/:id/payment-methods", payment.DeletePaymentMethodsHandler(payments))
	protected.Get("/shifts/:id/reconciliation", payment.ReconciliationHandler(payments))

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
