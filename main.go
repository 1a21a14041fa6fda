package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"voltguard-streak-system/handlers"
	"voltguard-streak-system/middleware"
	"voltguard-streak-system/models"
	"voltguard-streak-system/services"
	"voltguard-streak-system/utils"
	"voltguard-streak-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — reward image uploads
	})

	// Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DailyUsage{},
		&models.UserStreak{},
		&models.TierReward{},
		&models.UserReward{},
		&models.PetState{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Every tier must project to a pet — a hole here is a config error and
	// must kill the boot, not a request.
	if err := services.VerifyProjection(); err != nil {
		log.Fatal("pet projection incomplete:", err)
	}

	cfg := services.LoadConfig()

	rewardService := services.NewRewardService(db)
	if err := rewardService.SeedCatalog(); err != nil {
		log.Fatal("failed to seed reward catalog:", err)
	}

	petService := services.NewPetService(db)
	weeklyService := services.NewWeeklyService(db, cfg)
	streakService := services.NewStreakService(db, weeklyService, petService)
	usageService := services.NewUsageService(db, cfg, rewardService, petService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repairWorker := workers.NewBootstrapRepairWorker(db, streakService)
	go repairWorker.Run(ctx, 5*time.Minute)

	petService.StartReconcileScheduler(15 * time.Minute)

	handlers.SetupStreakRoutes(app, streakService, usageService, weeklyService, rewardService)
	handlers.SetupAdminRoutes(app, rewardService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("Server running on http://localhost:5300")
	log.Println("Bootstrap repair worker running (every 5m)")
	log.Println("Pet reconcile job running (every 15m)")
	log.Printf("Qualifying score: %d, demotion grace: %d day(s)", cfg.QualifyingScore, cfg.DemotionGraceDays)
	log.Printf("CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
