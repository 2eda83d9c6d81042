package main

import (
	"learnhub/config"
	paymentControllers "learnhub/controllers/payment"
	"learnhub/database"
	authRoutes "learnhub/routers/authRoutes"
	categoryRoutes "learnhub/routers/categoryRoutes"
	courseRoutes "learnhub/routers/courseRoutes"
	paymentRoutes "learnhub/routers/paymentRoutes"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded course attachments and lesson multimedia
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)

	// Hourly sweep that settles pending purchases against the gateway
	paymentControllers.StartReconciler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
