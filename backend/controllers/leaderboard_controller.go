package controllers

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/utils"
)

type LeaderboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLeaderboardController(db *gorm.DB, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{DB: db, Cfg: cfg}
}

// LeaderboardEntry is one row of the ranking.
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	UserID          uint   `json:"userId"`
	Username        string `json:"username"`
	Initial         string `json:"initial"`
	CompletedLevels int    `json:"completedLevels"`
	Points          int    `json:"points"`
	IsYou           bool   `json:"isYou"`
}

// GetLeaderboard godoc
// @Summary Top players
// @Description Returns players ranked by completed levels, then points
// @Tags leaderboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var rows []struct {
		UserID               uint
		Username             string
		TotalLevelsCompleted int
		TotalPoints          int
	}
	err = lc.DB.Table("game_progresses").
		Select("game_progresses.user_id, users.username, game_progresses.total_levels_completed, game_progresses.total_points").
		Joins("JOIN users ON users.id = game_progresses.user_id").
		Order("game_progresses.total_levels_completed DESC, game_progresses.total_points DESC").
		Limit(20).
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:            i + 1,
			UserID:          row.UserID,
			Username:        row.Username,
			Initial:         initialOf(row.Username),
			CompletedLevels: row.TotalLevelsCompleted,
			Points:          row.TotalPoints,
			IsYou:           row.UserID == userID,
		})
	}

	return c.JSON(fiber.Map{
		"players": entries,
	})
}

func initialOf(username string) string {
	r, _ := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
