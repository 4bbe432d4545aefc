package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rightsquest/backend/models"
)

// The replies relation hangs off PostID rather than the default column
// name, so migration and preloading of it must keep working.
func TestForumRepliesRelation(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.ForumPost{}, &models.ForumReply{}))

	post := models.ForumPost{
		UserID:   1,
		UserName: "alice",
		Title:    "What does the right to play mean?",
		Text:     "We talked about it in class today.",
		Replies: []models.ForumReply{
			{UserID: 2, UserName: "bob", Text: "It means you get time to rest and have fun."},
		},
	}
	require.NoError(t, db.Create(&post).Error)

	var got models.ForumPost
	require.NoError(t, db.Preload("Replies").First(&got, post.ID).Error)
	require.Len(t, got.Replies, 1)
	assert.Equal(t, post.ID, got.Replies[0].PostID)
	assert.Equal(t, "bob", got.Replies[0].UserName)
}
