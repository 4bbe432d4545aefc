package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rightsquest/backend/config"
	"rightsquest/backend/models"
	"rightsquest/backend/utils"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// ProgressInput defines the request body for a level-attempt submission.
type ProgressInput struct {
	LevelID          int  `json:"levelId" validate:"required,min=1"`
	Score            int  `json:"score" validate:"min=0"`
	TotalQuestions   int  `json:"totalQuestions" validate:"required,min=1"`
	CorrectAnswers   int  `json:"correctAnswers" validate:"min=0"`
	IsLevelCompleted bool `json:"isLevelCompleted"`
}

// GetGameProgress godoc
// @Summary Get game progress
// @Description Returns the caller's progress document, or a zeroed template
// if no level has been attempted yet
// @Tags progress
// @Produce json
// @Success 200 {object} models.GameProgress
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /game-progress [get]
func (pc *ProgressController) GetGameProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var progress models.GameProgress
	if err := pc.DB.Preload("Levels").Where("user_id = ?", userID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(models.EmptyGameProgress(userID))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(progress)
}

// UpdateGameProgress godoc
// @Summary Submit a level attempt
// @Description Records one quiz run: creates the per-level entry if it is
// missing, then applies the counters
// @Tags progress
// @Accept json
// @Produce json
// @Param input body ProgressInput true "Attempt result"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /game-progress [post]
func (pc *ProgressController) UpdateGameProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	progress, err := pc.ensureLevelEntry(userID, input.LevelID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}

	if err := pc.applyAttempt(progress, input); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// ensureLevelEntry creates the progress row and the zeroed per-level row if
// either is missing. Both inserts are guarded by unique indexes with
// ON CONFLICT DO NOTHING, so concurrent first attempts for the same
// (user, level) can never produce two entries.
func (pc *ProgressController) ensureLevelEntry(userID uint, levelID int) (*models.GameProgress, error) {
	progress := models.GameProgress{UserID: userID}
	if err := pc.DB.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&progress).Error; err != nil {
		return nil, err
	}
	// Re-read: the insert is a no-op when the row already exists.
	if err := pc.DB.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}

	entry := models.LevelProgress{
		GameProgressID: progress.ID,
		LevelID:        levelID,
	}
	if err := pc.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_progress_id"}, {Name: "level_id"}},
			DoNothing: true,
		}).
		Create(&entry).Error; err != nil {
		return nil, err
	}

	return &progress, nil
}

// applyAttempt applies one submission's counters. Account totals and the
// attempt count accumulate; the per-level correct/incorrect counts are
// overwritten with the latest submission's values, so a weaker re-run
// lowers them. That matches the recorded contract and is pinned by tests.
// The two steps are not wrapped in a transaction.
func (pc *ProgressController) applyAttempt(progress *models.GameProgress, input ProgressInput) error {
	totals := map[string]interface{}{
		"total_questions_answered": gorm.Expr("total_questions_answered + ?", input.TotalQuestions),
		"total_correct_answers":    gorm.Expr("total_correct_answers + ?", input.CorrectAnswers),
		"total_points":             gorm.Expr("total_points + ?", input.Score),
	}
	if input.IsLevelCompleted {
		totals["total_levels_completed"] = gorm.Expr("total_levels_completed + ?", 1)
	}

	if err := pc.DB.Model(&models.GameProgress{}).
		Where("id = ?", progress.ID).
		Updates(totals).Error; err != nil {
		return err
	}

	levelUpdates := map[string]interface{}{
		"attempts":          gorm.Expr("attempts + ?", 1),
		"correct_answers":   input.CorrectAnswers,
		"incorrect_answers": input.TotalQuestions - input.CorrectAnswers,
	}
	if input.IsLevelCompleted {
		levelUpdates["completed"] = true
		levelUpdates["completed_at"] = time.Now()
	}

	return pc.DB.Model(&models.LevelProgress{}).
		Where("game_progress_id = ? AND level_id = ?", progress.ID, input.LevelID).
		Updates(levelUpdates).Error
}
