package main

import (
	"os"
	"time"

	"flight-booking/database"
	"flight-booking/logger"
	"flight-booking/routes"
	"flight-booking/storage"
	"flight-booking/storage/memory"
	storagePostgres "flight-booking/storage/postgres"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

// newStore selects the storage backend once at startup. Everything above the
// storage interface is driver-agnostic; STORAGE_DRIVER is consulted nowhere
// else.
func newStore() (storage.Store, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "postgres"
	}

	switch driver {
	case "memory":
		logger.Warning("Using the in-memory storage backend; data will not survive a restart")
		return memory.New(), nil
	default:
		db, err := database.InitDB()
		if err != nil {
			return nil, err
		}
		return storagePostgres.New(db), nil
	}
}

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       1 * 1024 * 1024, // 1MB body limit
	})

	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded")
	}

	store, err := newStore()
	if err != nil {
		logger.Fatal("Failed to initialize storage: " + err.Error())
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, store)

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}

	logger.Success("Server is running on ip: " + appHost + " port: " + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Fatal("Server stopped: " + err.Error())
	}
}
