package main

import (
	"context"
	"log"
	"time"

	"podlearn/config"
	adminControllers "podlearn/controllers/admin"
	contentControllers "podlearn/controllers/content"
	downloadControllers "podlearn/controllers/downloads"
	paymentControllers "podlearn/controllers/payments"
	quizControllers "podlearn/controllers/quiz"
	"podlearn/database"
	"podlearn/gateway"
	adminRoutes "podlearn/routers/adminRoutes"
	contentRoutes "podlearn/routers/contentRoutes"
	downloadRoutes "podlearn/routers/downloadRoutes"
	paymentRoutes "podlearn/routers/paymentRoutes"
	quizRoutes "podlearn/routers/quizRoutes"
	"podlearn/services"
	"podlearn/storage"
	"podlearn/store"
	"podlearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	signer, err := storage.NewS3Signer(context.Background(), cfg.StorageRegion, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to set up object storage: %v", err)
	}

	st := store.NewGormStore(db)
	gw := gateway.NewClient(cfg.GatewayURL, cfg.GatewaySecretKey, cfg.GatewayWebhookSecret, cfg.SiteURL)
	mailer := utils.NewMailer(cfg)

	entitlements := services.NewEntitlementService(st)
	payments := services.NewPaymentService(st)
	quizzes := services.NewQuizService(st, st, st, st, mailer)
	downloads := services.NewDownloadService(entitlements, st, signer,
		time.Duration(cfg.DownloadURLTTLMinutes)*time.Minute)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Gateway-Signature",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	paymentRoutes.SetupPaymentRoutes(app, paymentControllers.NewPaymentController(entitlements, payments, st, gw, mailer))
	downloadRoutes.SetupDownloadRoutes(app, downloadControllers.NewDownloadController(downloads))
	quizRoutes.SetupQuizRoutes(app, quizControllers.NewQuizController(quizzes))
	contentRoutes.SetupContentRoutes(app, contentControllers.NewContentController(st, entitlements))
	adminRoutes.SetupAdminRoutes(app, adminControllers.NewAdminController(st))

	sweeper := utils.NewSubscriptionSweeper(st, mailer)
	sweeper.Start()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
