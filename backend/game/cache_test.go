package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkCompletedIdempotent(t *testing.T) {
	var pc ProgressCache

	pc.MarkCompleted(1)
	pc.MarkCompleted(1)
	pc.MarkCompleted(2)

	assert.Equal(t, []string{"1", "2"}, pc.CompletedLevels)
	assert.Equal(t, []int{1, 2}, pc.CompletedIDs())
}

func TestQuizStateLifecycle(t *testing.T) {
	var pc ProgressCache

	pc.SaveQuizState(3, 2, 4)
	state, ok := pc.InProgress["level_3"]
	assert.True(t, ok)
	assert.Equal(t, 2, state.Score)
	assert.Equal(t, 4, state.CurrentQuestion)

	pc.ClearQuizState(3)
	_, ok = pc.InProgress["level_3"]
	assert.False(t, ok)
}

// Reconcile rebuilds the mirror from the server record; only the transient
// quiz cursors survive.
func TestReconcileFromServer(t *testing.T) {
	pc := ProgressCache{
		CompletedLevels:   []string{"1", "2", "3"},
		TotalPoints:       300,
		QuestionsAnswered: 15,
		CorrectAnswers:    12,
	}
	pc.SaveQuizState(4, 1, 2)

	pc.Reconcile([]int{1, 2}, 200, 10, 8)

	assert.Equal(t, []string{"1", "2"}, pc.CompletedLevels)
	assert.Equal(t, 200, pc.TotalPoints)
	assert.Equal(t, 10, pc.QuestionsAnswered)
	assert.Equal(t, 8, pc.CorrectAnswers)

	_, ok := pc.InProgress["level_4"]
	assert.True(t, ok)
}
