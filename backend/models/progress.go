package models

import (
	"time"

	"gorm.io/gorm"
)

// GameProgress holds one row per user with account-wide totals.
// Per-level counters live in LevelProgress child rows.
type GameProgress struct {
	gorm.Model
	UserID                 uint            `gorm:"uniqueIndex;not null" json:"userId"`
	TotalLevelsCompleted   int             `gorm:"default:0" json:"totalLevelsCompleted"`
	TotalPoints            int             `gorm:"default:0" json:"totalPoints"`
	TotalQuestionsAnswered int             `gorm:"default:0" json:"totalQuestionsAnswered"`
	TotalCorrectAnswers    int             `gorm:"default:0" json:"totalCorrectAnswers"`
	Levels                 []LevelProgress `gorm:"foreignKey:GameProgressID" json:"levels"`
}

// LevelProgress is unique per (progress, level). The composite index backs
// the insert-if-absent step of every progress update.
type LevelProgress struct {
	gorm.Model       `json:"-"`
	GameProgressID   uint       `gorm:"uniqueIndex:idx_progress_level;not null" json:"-"`
	LevelID          int        `gorm:"uniqueIndex:idx_progress_level;not null" json:"levelId"`
	Completed        bool       `gorm:"default:false" json:"completed"`
	Attempts         int        `gorm:"default:0" json:"attempts"`
	Score            int        `gorm:"default:0" json:"score"`
	CorrectAnswers   int        `gorm:"default:0" json:"correctAnswers"`
	IncorrectAnswers int        `gorm:"default:0" json:"incorrectAnswers"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// EmptyGameProgress is the zeroed template returned when a user has not
// attempted any level yet.
func EmptyGameProgress(userID uint) GameProgress {
	return GameProgress{
		UserID: userID,
		Levels: []LevelProgress{},
	}
}
