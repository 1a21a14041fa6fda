// handlers/admin_routes.go
package handlers

import (
	"fmt"
	"path/filepath"

	"voltguard-streak-system/services"
	"voltguard-streak-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SetupAdminRoutes registers catalog asset management. These sit behind the
// same gateway token as everything else; the gateway decides who is admin.
func SetupAdminRoutes(app *fiber.App, rewards *services.RewardService) {
	admin := app.Group("/api/admin")

	admin.Post("/rewards/:tier/image", func(c *fiber.Ctx) error {
		tier := c.Params("tier")

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "image file is required",
				"code":  "VALIDATION_ERROR",
			})
		}

		ext := filepath.Ext(fileHeader.Filename)
		key := fmt.Sprintf("rewards/%s-%s%s", slug.Make(tier), uuid.NewString()[:8], ext)

		url, err := utils.UploadAssetToR2(fileHeader, key)
		if err != nil {
			return errorResponse(c, err)
		}

		if err := rewards.SetRewardImage(tier, url); err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"tier":     tier,
			"imageUrl": url,
		})
	})
}
