package spaced_repetition

import (
	"math"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// StreakBonusMultiplier stretches the interval for confident answers on a
// running correct streak.
const StreakBonusMultiplier = 1.1

// MinStreakForBonus is the streak length at which the bonus starts to apply.
const MinStreakForBonus = 3

// Items in earlier rooms are reviewed more often, mastered ones less.
var roomMultipliers = map[models.Room]float64{
	models.RoomIntake:     0.6,
	models.RoomCritical:   0.7,
	models.RoomDeveloping: 0.85,
	models.RoomMastered:   1.15,
}

var difficultyMultipliers = map[models.Difficulty]float64{
	models.DifficultyHard:   0.85,
	models.DifficultyEasy:   1.1,
	models.DifficultyMedium: 1.0,
}

// RoomMultiplier returns the interval multiplier for a mastery room.
// Unrecognized rooms are neutral.
func RoomMultiplier(room models.Room) float64 {
	if m, ok := roomMultipliers[room]; ok {
		return m
	}
	return 1.0
}

// DifficultyMultiplier returns the interval multiplier for an item
// difficulty. Unrecognized difficulties are neutral.
func DifficultyMultiplier(difficulty models.Difficulty) float64 {
	if m, ok := difficultyMultipliers[difficulty]; ok {
		return m
	}
	return 1.0
}

// AdjustInterval scales the base interval by the mastery-room and difficulty
// multipliers, then grants the streak bonus. streak is the value after the
// current attempt has been counted. The result is never below one day.
func AdjustInterval(base int, rctx models.ReviewContext, quality, streak int) int {
	adjusted := int(math.Round(float64(base) * RoomMultiplier(rctx.Room) * DifficultyMultiplier(rctx.Difficulty)))
	if adjusted < 1 {
		adjusted = 1
	}
	if rctx.Correct && quality >= 4 && streak >= MinStreakForBonus {
		adjusted = int(math.Round(float64(adjusted) * StreakBonusMultiplier))
	}
	return adjusted
}
