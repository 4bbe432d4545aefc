// Package game holds the level catalog and the unlock rules for the quiz
// worlds. The rules are pure: they read a completed-levels list and derive
// lock states, they never touch storage themselves.
package game

// LevelState is the per-level position in the unlock state machine.
type LevelState string

const (
	// StateLocked means the preceding level has not been completed yet.
	StateLocked LevelState = "locked"
	// StateUnlocked means the level is playable but not finished.
	StateUnlocked LevelState = "unlocked"
	// StateCompleted means every question of the level's quiz was answered,
	// regardless of how many answers were correct.
	StateCompleted LevelState = "completed"
)

// Level is one quiz level in a world.
type Level struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	World        string `json:"world"`
	TeensOnly    bool   `json:"teensOnly"`
	PointsToEarn int    `json:"pointsToEarn"`
}

// LevelView is a catalog level together with its derived state for one user.
type LevelView struct {
	Level
	State LevelState `json:"state"`
}

// Catalog is the fixed level set: the kids world followed by the teens
// world. IDs are sequential because unlocking walks id-1.
var Catalog = []Level{
	{ID: 1, Title: "Bullying", World: "kids", PointsToEarn: 100},
	{ID: 2, Title: "Right to Education", World: "kids", PointsToEarn: 100},
	{ID: 3, Title: "Good touch Bad touch", World: "kids", PointsToEarn: 100},
	{ID: 4, Title: "Right to privacy", World: "teens", TeensOnly: true, PointsToEarn: 100},
	{ID: 5, Title: "Cyber Bullying", World: "teens", TeensOnly: true, PointsToEarn: 100},
	{ID: 6, Title: "Right to Participation", World: "teens", TeensOnly: true, PointsToEarn: 100},
	{ID: 7, Title: "Consent & Boundaries", World: "teens", TeensOnly: true, PointsToEarn: 100},
	{ID: 8, Title: "Mental Health Matters", World: "teens", TeensOnly: true, PointsToEarn: 100},
	{ID: 9, Title: "Health & Reproductive Rights", World: "teens", TeensOnly: true, PointsToEarn: 100},
}

// IsUnlocked reports whether a level is playable: the first level is never
// locked, any other level unlocks once the level before it is completed.
// Completion is not gated on score - an all-wrong run still unlocks the
// next level.
func IsUnlocked(levelID int, completed []int) bool {
	if levelID <= 1 {
		return true
	}
	return contains(completed, levelID-1)
}

// StateOf derives the state machine position for one level.
func StateOf(levelID int, completed []int) LevelState {
	if contains(completed, levelID) {
		return StateCompleted
	}
	if IsUnlocked(levelID, completed) {
		return StateUnlocked
	}
	return StateLocked
}

// DeriveStates maps the whole catalog to per-level states for a user.
// Teens-only levels stay locked for younger users no matter what has been
// completed before them.
func DeriveStates(completed []int, isTeen bool) []LevelView {
	views := make([]LevelView, 0, len(Catalog))
	for _, lvl := range Catalog {
		state := StateOf(lvl.ID, completed)
		if lvl.TeensOnly && !isTeen {
			state = StateLocked
		}
		views = append(views, LevelView{Level: lvl, State: state})
	}
	return views
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
