// Package fitness provides pure, deterministic body-metric calculations:
// BMI, Mifflin-St Jeor BMR, TDEE, daily calorie goals, and macro splits.
//
// The package performs no input validation by design. Callers are expected
// to reject non-positive weights/heights and unparseable values before
// invoking these functions; every function here is a total computation over
// well-formed input. Unknown categorical inputs (activity level, goal) fall
// back to documented defaults instead of erroring.
package fitness

import (
	"math"
	"strings"
)

// BMI categories returned by Category.
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// Goal values understood by CalorieGoal and Macros. Any other value is
// treated as GoalMaintain.
const (
	GoalLose     = "lose"
	GoalGain     = "gain"
	GoalMaintain = "maintain"
)

// activityMultipliers maps activity levels to TDEE multipliers. Unknown
// levels resolve to the sedentary multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Macros is a daily macro split in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// Profile bundles every derived fitness metric for one set of body inputs.
// It is recomputed fresh on each request and carries no persisted identity.
type Profile struct {
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category"`
	BMR         float64 `json:"bmr"`
	TDEE        float64 `json:"tdee"`
	CalorieGoal float64 `json:"calorie_goal"`
	Macros      Macros  `json:"macros"`
}

// BMI returns the Body Mass Index for a weight in kilograms and a height in
// centimeters, rounded to 2 decimals. Undefined for non-positive inputs;
// callers must guard.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return round2(weightKg / (heightM * heightM))
}

// Category maps a BMI value onto the standard WHO buckets using the fixed
// thresholds 18.5, 25, and 30.
func Category(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// BMR returns the Basal Metabolic Rate per the Mifflin-St Jeor equation,
// rounded to 2 decimals.
//
// Gender is a two-valued input: "male" (case-insensitive) adds the +5
// constant, every other value takes the female branch (-161). This binary
// simplification is intentional and matches the formula's published form;
// extending it to further categories is an open product question, not a fix
// to make silently.
func BMR(age int, weightKg, heightCm float64, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		return round2(base + 5)
	}
	return round2(base - 161)
}

// TDEE returns the Total Daily Energy Expenditure: BMR scaled by a fixed
// activity multiplier, rounded to 2 decimals. Unknown activity levels default
// to sedentary (1.2) rather than erroring.
func TDEE(bmr float64, activityLevel string) float64 {
	m, ok := activityMultipliers[strings.ToLower(activityLevel)]
	if !ok {
		m = 1.2
	}
	return round2(bmr * m)
}

// CalorieGoal applies a flat offset to the TDEE: -500 for "lose", +500 for
// "gain", and no change otherwise, rounded to 2 decimals. The fixed rate
// targets roughly half a kilogram of change per week.
func CalorieGoal(tdee float64, goal string) float64 {
	switch strings.ToLower(goal) {
	case GoalLose:
		return round2(tdee - 500)
	case GoalGain:
		return round2(tdee + 500)
	default:
		return round2(tdee)
	}
}

// MacroSplit divides a calorie budget into protein/carb/fat grams using
// goal-keyed ratios (lose 35/35/30, gain 30/45/25, otherwise 30/40/30) and
// the 4/4/9 kcal-per-gram constants. Each value is rounded to 1 decimal.
func MacroSplit(calories float64, goal string) Macros {
	var proteinRatio, carbsRatio, fatRatio float64
	switch strings.ToLower(goal) {
	case GoalLose:
		proteinRatio, carbsRatio, fatRatio = 0.35, 0.35, 0.30
	case GoalGain:
		proteinRatio, carbsRatio, fatRatio = 0.30, 0.45, 0.25
	default:
		proteinRatio, carbsRatio, fatRatio = 0.30, 0.40, 0.30
	}
	return Macros{
		Protein: round1(calories * proteinRatio / 4),
		Carbs:   round1(calories * carbsRatio / 4),
		Fats:    round1(calories * fatRatio / 9),
	}
}

// CompleteProfile composes BMI, Category, BMR, TDEE, CalorieGoal, and
// MacroSplit into a single Profile. It has no error paths; invalid numeric
// input must be rejected by the caller before invocation.
func CompleteProfile(age int, weightKg, heightCm float64, gender, activityLevel, goal string) Profile {
	bmi := BMI(weightKg, heightCm)
	bmr := BMR(age, weightKg, heightCm, gender)
	tdee := TDEE(bmr, activityLevel)
	goalCals := CalorieGoal(tdee, goal)
	return Profile{
		BMI:         bmi,
		BMICategory: Category(bmi),
		BMR:         bmr,
		TDEE:        tdee,
		CalorieGoal: goalCals,
		Macros:      MacroSplit(goalCals, goal),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
