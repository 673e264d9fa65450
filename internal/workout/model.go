package workout

import "time"

type Category string

const (
	CategoryResistance Category = "resistance"
	CategorySpeed      Category = "speed"
	CategoryTechnique  Category = "technique"
	CategoryStrength   Category = "strength"
)

var Categories = []Category{CategoryResistance, CategorySpeed, CategoryTechnique, CategoryStrength}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type RoutineType string

const (
	RoutineWarmup   RoutineType = "warmup"
	RoutineCooldown RoutineType = "cooldown"
)

type Workout struct {
	ID             string     `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Description    *string    `db:"description" json:"description"`
	Category       Category   `db:"category" json:"category"`
	Duration       int        `db:"duration" json:"duration"`
	Difficulty     Difficulty `db:"difficulty" json:"difficulty"`
	ExercisesCount int        `db:"exercises_count" json:"exercises_count"`
	IsPremium      bool       `db:"is_premium" json:"is_premium"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type WarmupRoutine struct {
	ID             string      `db:"id" json:"id"`
	Title          string      `db:"title" json:"title"`
	Duration       int         `db:"duration" json:"duration"`
	ExercisesCount int         `db:"exercises_count" json:"exercises_count"`
	Difficulty     Difficulty  `db:"difficulty" json:"difficulty"`
	RoutineType    RoutineType `db:"routine_type" json:"routine_type"`
	IsPremium      bool        `db:"is_premium" json:"is_premium"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}

// CountByCategory returns how many workouts fall in each category; every
// category is present in the result.
func CountByCategory(workouts []Workout) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, w := range workouts {
		counts[w.Category]++
	}
	return counts
}

// SplitRoutines separates warm-up from cool-down routines, keeping order.
func SplitRoutines(routines []WarmupRoutine) (warmups, cooldowns []WarmupRoutine) {
	warmups, cooldowns = []WarmupRoutine{}, []WarmupRoutine{}
	for _, r := range routines {
		switch r.RoutineType {
		case RoutineWarmup:
			warmups = append(warmups, r)
		case RoutineCooldown:
			cooldowns = append(cooldowns, r)
		}
	}
	return warmups, cooldowns
}
