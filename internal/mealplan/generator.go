package mealplan

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Slot calorie shares of the daily goal.
const (
	breakfastShare = 0.25
	lunchShare     = 0.35
	dinnerShare    = 0.30
	snackShare     = 0.10
)

// Picker selects an index in [0, n). It abstracts the source of randomness so
// generation is testable; n is always >= 1 when called.
type Picker interface {
	Pick(n int) int
}

// randPicker is the production Picker backed by math/rand.
type randPicker struct{ r *rand.Rand }

func (p randPicker) Pick(n int) int { return p.r.Intn(n) }

// NewRandomPicker returns a Picker seeded from the current time. Plan
// generation is request-scoped and not required to be reproducible.
func NewRandomPicker() Picker {
	return randPicker{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// DailyTotal aggregates the four scaled slots of a day.
type DailyTotal struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DayPlan is one day of a meal plan: four scaled meals plus their sum.
// DailyTotal is always the literal sum of the four slots; independent
// rounding means it may drift slightly from the requested calorie goal.
type DayPlan struct {
	Day        int        `json:"day"`
	Breakfast  Meal       `json:"breakfast"`
	Lunch      Meal       `json:"lunch"`
	Dinner     Meal       `json:"dinner"`
	Snack      Meal       `json:"snack"`
	DailyTotal DailyTotal `json:"daily_total"`
}

// Slot returns the scaled meal stored in the named slot.
func (d *DayPlan) Slot(slot string) Meal {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	default:
		return d.Snack
	}
}

// SetSlot replaces the named slot and recomputes the daily total.
func (d *DayPlan) SetSlot(slot string, m Meal) {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = m
	case SlotLunch:
		d.Lunch = m
	case SlotDinner:
		d.Dinner = m
	case SlotSnack:
		d.Snack = m
	}
	d.DailyTotal = sumSlots(d.Breakfast, d.Lunch, d.Dinner, d.Snack)
}

// Generator produces meal plans from a catalog. The zero value is not usable;
// construct with NewGenerator.
type Generator struct {
	catalog *Catalog
	picker  Picker
}

// NewGenerator returns a Generator over the given catalog. A nil catalog uses
// DefaultCatalog; a nil picker uses a time-seeded random source.
func NewGenerator(catalog *Catalog, picker Picker) *Generator {
	if catalog == nil {
		catalog = &DefaultCatalog
	}
	if picker == nil {
		picker = NewRandomPicker()
	}
	return &Generator{catalog: catalog, picker: picker}
}

// FilterByRestrictions keeps only meals whose tag set contains every
// requested restriction. If nothing survives the filter, the full input list
// is returned instead: a slot must never be left unfillable, so the policy is
// to fall back rather than fail. Stricter behavior here would be a behavior
// change, not a bug fix.
func FilterByRestrictions(meals []Meal, restrictions []string) []Meal {
	if len(restrictions) == 0 {
		return meals
	}
	filtered := make([]Meal, 0, len(meals))
	for _, m := range meals {
		if m.HasTags(restrictions) {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return meals
	}
	return filtered
}

// ScaleMeal returns a copy of meal with calories and macros multiplied by
// targetCalories / meal.Calories. Calories round to the nearest integer,
// macros to 1 decimal. A zero-calorie meal is returned unscaled to avoid
// division by zero. Tags are not carried onto scaled instances.
func ScaleMeal(meal Meal, targetCalories float64) Meal {
	if meal.Calories == 0 {
		return meal
	}
	factor := targetCalories / meal.Calories
	return Meal{
		Name:     meal.Name,
		Calories: math.Round(meal.Calories * factor),
		Protein:  round1(meal.Protein * factor),
		Carbs:    round1(meal.Carbs * factor),
		Fats:     round1(meal.Fats * factor),
	}
}

// Generate builds an ordered plan of the requested number of days. The daily
// calorie goal is split 25% breakfast / 35% lunch / 30% dinner / 10% snack;
// each slot is drawn uniformly at random from the restriction-filtered
// catalog and scaled to its share. Days are sampled independently, so repeats
// across days are possible. days <= 0 defaults to 7.
func (g *Generator) Generate(calorieGoal float64, restrictions []string, days int) []DayPlan {
	if days <= 0 {
		days = 7
	}

	budgets := []struct {
		slot  string
		share float64
	}{
		{SlotBreakfast, breakfastShare},
		{SlotLunch, lunchShare},
		{SlotDinner, dinnerShare},
		{SlotSnack, snackShare},
	}

	plan := make([]DayPlan, 0, days)
	for day := 1; day <= days; day++ {
		dp := DayPlan{Day: day}
		for _, b := range budgets {
			options := FilterByRestrictions(g.catalog.Slot(b.slot), restrictions)
			chosen := options[g.picker.Pick(len(options))]
			scaled := ScaleMeal(chosen, calorieGoal*b.share)
			switch b.slot {
			case SlotBreakfast:
				dp.Breakfast = scaled
			case SlotLunch:
				dp.Lunch = scaled
			case SlotDinner:
				dp.Dinner = scaled
			case SlotSnack:
				dp.Snack = scaled
			}
		}
		dp.DailyTotal = sumSlots(dp.Breakfast, dp.Lunch, dp.Dinner, dp.Snack)
		plan = append(plan, dp)
	}
	return plan
}

// SwapSlot regenerates exactly one slot of an existing plan in place: a fresh
// one-day plan supplies the replacement meal, and only that day's total is
// recomputed. day is 1-based. Out-of-range days or unknown slots are no-ops.
func (g *Generator) SwapSlot(plan []DayPlan, day int, slot string, calorieGoal float64, restrictions []string) (Meal, bool) {
	if day < 1 || day > len(plan) {
		return Meal{}, false
	}
	switch slot {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
	default:
		return Meal{}, false
	}
	fresh := g.Generate(calorieGoal, restrictions, 1)
	replacement := fresh[0].Slot(slot)
	plan[day-1].SetSlot(slot, replacement)
	return replacement, true
}

// GroceryList returns the deduplicated, alphabetically sorted names of every
// meal selected across the plan. Meal names stand in for ingredients; true
// ingredient breakdowns are out of scope for the static catalog.
func GroceryList(plan []DayPlan) []string {
	seen := make(map[string]struct{})
	for i := range plan {
		for _, slot := range []string{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack} {
			seen[plan[i].Slot(slot).Name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sumSlots(meals ...Meal) DailyTotal {
	var t DailyTotal
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fats += m.Fats
	}
	t.Protein = round1(t.Protein)
	t.Carbs = round1(t.Carbs)
	t.Fats = round1(t.Fats)
	return t
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
