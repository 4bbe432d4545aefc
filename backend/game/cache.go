package game

import "strconv"

// ProgressCache mirrors the progress snapshot the web client keeps locally
// (completed level ids as strings plus running totals, and the in-flight
// quiz cursor per level). It is an optimistic projection only: the server
// record stays authoritative and the cache is rebuilt from it on fetch,
// never consulted for unlock decisions.
type ProgressCache struct {
	CompletedLevels   []string             `json:"completedLevels"`
	TotalPoints       int                  `json:"totalPoints"`
	QuestionsAnswered int                  `json:"questionsAnswered"`
	CorrectAnswers    int                  `json:"correctAnswers"`
	InProgress        map[string]QuizState `json:"gameProgress,omitempty"`
}

// QuizState is the transient cursor for a quiz the user is in the middle of.
type QuizState struct {
	Score           int `json:"score"`
	CurrentQuestion int `json:"currentQuestion"`
}

// MarkCompleted appends a level id to the completed list. The append is
// idempotent: marking the same level twice leaves a single entry.
func (pc *ProgressCache) MarkCompleted(levelID int) {
	id := strconv.Itoa(levelID)
	for _, v := range pc.CompletedLevels {
		if v == id {
			return
		}
	}
	pc.CompletedLevels = append(pc.CompletedLevels, id)
}

// CompletedIDs converts the cached string ids back to ints, skipping
// anything unparseable.
func (pc *ProgressCache) CompletedIDs() []int {
	ids := make([]int, 0, len(pc.CompletedLevels))
	for _, v := range pc.CompletedLevels {
		if id, err := strconv.Atoi(v); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// SaveQuizState records the in-flight cursor for a level.
func (pc *ProgressCache) SaveQuizState(levelID int, score, currentQuestion int) {
	if pc.InProgress == nil {
		pc.InProgress = make(map[string]QuizState)
	}
	pc.InProgress["level_"+strconv.Itoa(levelID)] = QuizState{
		Score:           score,
		CurrentQuestion: currentQuestion,
	}
}

// ClearQuizState drops the cursor once a level's quiz is finished.
func (pc *ProgressCache) ClearQuizState(levelID int) {
	delete(pc.InProgress, "level_"+strconv.Itoa(levelID))
}

// Reconcile replaces the cached snapshot with the server-recorded one.
// Completed level ids and all totals come from the server; only the
// transient quiz cursors survive, since the server never sees those.
func (pc *ProgressCache) Reconcile(completed []int, totalPoints, questionsAnswered, correctAnswers int) {
	pc.CompletedLevels = pc.CompletedLevels[:0]
	for _, id := range completed {
		pc.MarkCompleted(id)
	}
	pc.TotalPoints = totalPoints
	pc.QuestionsAnswered = questionsAnswered
	pc.CorrectAnswers = correctAnswers
}
