// handlers/streak_routes.go
package handlers

import (
	"errors"
	"log"

	"voltguard-streak-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStreakRoutes(app *fiber.App, streaks *services.StreakService, usage *services.UsageService, weekly *services.WeeklyService, rewards *services.RewardService) {
	api := app.Group("/api")

	api.Get("/streaks/:userId", func(c *fiber.Ctx) error {
		overview, err := streaks.GetOverview(c.Params("userId"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(overview)
	})

	api.Get("/usage/weekly/:userId", func(c *fiber.Ctx) error {
		asOf := c.Query("asOf", services.Today())
		summary, err := weekly.Summary(c.Params("userId"), asOf)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"weeklyUsage": summary.WeeklyUsage})
	})

	api.Post("/usage/daily", func(c *fiber.Ctx) error {
		var req services.DailyUsageInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON body",
				"code":  "VALIDATION_ERROR",
			})
		}

		result, err := usage.RecordDailyUsage(&req)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"success":       true,
			"streakUpdated": result.StreakUpdated,
			"newTier":       result.NewTier,
			"tierChanged":   result.TierChanged,
		})
	})

	api.Post("/streaks/initialize/:userId", func(c *fiber.Ctx) error {
		if err := streaks.InitializeUser(c.Params("userId")); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "User streak and pet initialized",
		})
	})

	api.Get("/rewards/:userId", func(c *fiber.Ctx) error {
		earned, err := rewards.GetUserRewards(c.Params("userId"))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"rewards": earned})
	})
}

// errorResponse maps the service error taxonomy to HTTP. Internal error
// text never leaks into 500 bodies — those get a stable code and a generic
// message, with the detail logged server-side.
func errorResponse(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Msg,
			"code":  "VALIDATION_ERROR",
		})
	}

	var nfe *services.NotFoundError
	if errors.As(err, &nfe) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": nfe.Msg,
			"code":  "NOT_FOUND",
		})
	}

	var ce *services.ConsistencyError
	if errors.As(err, &ce) {
		log.Printf("[API] consistency violation on %s: %v", c.Path(), ce)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal state inconsistency",
			"code":  "CONSISTENCY_ERROR",
		})
	}

	var te *services.TransientStorageError
	if errors.As(err, &te) {
		log.Printf("[API] storage retries exhausted on %s: %v", c.Path(), te)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "storage temporarily unavailable",
			"code":  "STORAGE_ERROR",
		})
	}

	log.Printf("[API] unhandled error on %s: %v", c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
		"code":  "INTERNAL_ERROR",
	})
}
