package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/game"
	"rightsquest/backend/models"
	"rightsquest/backend/utils"
)

type LevelsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLevelsController(db *gorm.DB, cfg *config.Config) *LevelsController {
	return &LevelsController{DB: db, Cfg: cfg}
}

// GetLevels godoc
// @Summary Level map
// @Description Returns the level catalog with locked/unlocked/completed
// states derived from the server-recorded progress
// @Tags levels
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /levels [get]
func (lc *LevelsController) GetLevels(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var user models.User
	if err := lc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	completed, err := lc.completedLevelIDs(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"levels": game.DeriveStates(completed, user.IsTeen()),
	})
}

// completedLevelIDs reads the authoritative completion record. The client
// keeps its own cached copy of this list, but unlock decisions here never
// consult it.
func (lc *LevelsController) completedLevelIDs(userID uint) ([]int, error) {
	var ids []int
	err := lc.DB.Model(&models.LevelProgress{}).
		Joins("JOIN game_progresses ON game_progresses.id = level_progresses.game_progress_id").
		Where("game_progresses.user_id = ? AND level_progresses.completed = ?", userID, true).
		Pluck("level_progresses.level_id", &ids).Error
	return ids, err
}
