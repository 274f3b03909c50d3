package main

import (
	"log"

	"seminar_manager/config"
	"seminar_manager/database"
	"seminar_manager/handler"
	"seminar_manager/helper"
	"seminar_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("FRONTEND_URL", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartEmailSchedulers()
	defer helper.StopEmailSchedulers()
	helper.StartReconcileScheduler()
	defer helper.StopReconcileScheduler()
	handler.StartCapacitySubscriber()

	if helper.InitCloudinary() == nil {
		log.Println("Cloudinary not configured, recording uploads disabled")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": database.DB != nil,
		})
	})

	router.SetupRoutes(app)

	port := config.ConfigOr("PORT", "8002")
	log.Fatal(app.Listen(":" + port))
}
