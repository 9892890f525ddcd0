package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pagebound/BookCrate/app/models"
	"github.com/pagebound/BookCrate/app/repository"
	"github.com/pagebound/BookCrate/internal/pkg/cache"
	"github.com/pagebound/BookCrate/internal/pkg/database"
	"github.com/pagebound/BookCrate/internal/pkg/env"
	"github.com/pagebound/BookCrate/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	seedAdminUser()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/bookcrate to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := "./"
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // media uploads cap at 10 MiB per file
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// seedAdminUser creates the initial admin account from the environment when
// no staff users exist yet.
func seedAdminUser() {
	repo := repository.GetGlobalRepositories().User
	count, err := repo.Count()
	if err != nil {
		log.Printf("admin seed: failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	email := env.GetEnv("ADMIN_EMAIL", "")
	password := env.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		log.Println("admin seed: ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping")
		return
	}

	user, err := models.CreateUser(env.GetEnv("ADMIN_NAME", "Administrator"), email, password, models.ROLE_ADMIN)
	if err != nil {
		log.Printf("admin seed: invalid admin account: %v", err)
		return
	}
	if err := repo.Create(user); err != nil {
		log.Printf("admin seed: failed to create admin: %v", err)
		return
	}
	log.Printf("admin seed: created initial admin %s", email)
}
