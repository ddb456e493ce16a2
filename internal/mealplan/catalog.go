// Package mealplan generates multi-day meal plans from a static catalog of
// meals, filtered by dietary restrictions and scaled to a calorie goal.
//
// The catalog is a process-wide constant table loaded once at init, never
// mutated. Meal selection goes through an injectable Picker so tests can
// assert distributional properties without relying on global process state.
package mealplan

// Diet labels used as meal tags and restriction filters.
const (
	TagVegetarian  = "vegetarian"
	TagVegan       = "vegan"
	TagHalal       = "halal"
	TagLactoseFree = "lactose_free"
)

// Meal slot names within a day plan.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotDinner    = "dinner"
	SlotSnack     = "snack"
)

// Slots lists the slot names in day order.
var Slots = []string{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// Meal is a catalog entry or a scaled copy of one. Catalog entries are
// immutable templates; scaling always returns a fresh value.
type Meal struct {
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fats     float64  `json:"fats"`
	Tags     []string `json:"tags,omitempty"`
}

// HasTags reports whether the meal carries every tag in want.
func (m Meal) HasTags(want []string) bool {
	for _, tag := range want {
		found := false
		for _, have := range m.Tags {
			if have == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Catalog holds the per-slot meal templates the generator selects from.
type Catalog struct {
	Breakfast []Meal
	Lunch     []Meal
	Dinner    []Meal
	Snacks    []Meal
}

// Slot returns the catalog entries for a slot name, or nil for unknown slots.
func (c *Catalog) Slot(slot string) []Meal {
	switch slot {
	case SlotBreakfast:
		return c.Breakfast
	case SlotLunch:
		return c.Lunch
	case SlotDinner:
		return c.Dinner
	case SlotSnack:
		return c.Snacks
	}
	return nil
}

// DefaultCatalog is the built-in meal database. Nutrition values are per
// unscaled serving; tags mark which dietary restrictions each meal satisfies.
var DefaultCatalog = Catalog{
	Breakfast: []Meal{
		{Name: "Oatmeal with Berries and Almonds", Calories: 350, Protein: 12, Carbs: 55, Fats: 10,
			Tags: []string{TagVegetarian, TagVegan, TagHalal}},
		{Name: "Scrambled Eggs with Whole Wheat Toast", Calories: 400, Protein: 25, Carbs: 35, Fats: 15,
			Tags: []string{TagVegetarian, TagHalal}},
		{Name: "Greek Yogurt Parfait with Granola", Calories: 380, Protein: 20, Carbs: 50, Fats: 10,
			Tags: []string{TagVegetarian, TagHalal}},
		{Name: "Avocado Toast with Chickpeas", Calories: 420, Protein: 15, Carbs: 45, Fats: 18,
			Tags: []string{TagVegetarian, TagVegan, TagHalal}},
		{Name: "Smoothie Bowl with Banana and Chia Seeds", Calories: 360, Protein: 10, Carbs: 60, Fats: 8,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Whole Grain Pancakes with Maple Syrup", Calories: 450, Protein: 14, Carbs: 70, Fats: 12,
			Tags: []string{TagVegetarian, TagHalal}},
		{Name: "Protein Smoothie with Almond Milk", Calories: 320, Protein: 25, Carbs: 35, Fats: 8,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
	},
	Lunch: []Meal{
		{Name: "Quinoa Salad with Roasted Vegetables", Calories: 480, Protein: 18, Carbs: 65, Fats: 15,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Grilled Chicken Wrap with Hummus", Calories: 520, Protein: 35, Carbs: 50, Fats: 18,
			Tags: []string{TagHalal}},
		{Name: "Lentil Soup with Whole Grain Bread", Calories: 450, Protein: 22, Carbs: 70, Fats: 8,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Chickpea and Spinach Curry with Rice", Calories: 500, Protein: 20, Carbs: 75, Fats: 12,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Veggie Burger with Sweet Potato Fries", Calories: 550, Protein: 25, Carbs: 68, Fats: 20,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Tuna Salad with Mixed Greens", Calories: 420, Protein: 35, Carbs: 25, Fats: 20,
			Tags: []string{TagHalal, TagLactoseFree}},
		{Name: "Falafel Bowl with Tahini Sauce", Calories: 510, Protein: 18, Carbs: 60, Fats: 22,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
	},
	Dinner: []Meal{
		{Name: "Baked Salmon with Asparagus and Brown Rice", Calories: 580, Protein: 40, Carbs: 55, Fats: 18,
			Tags: []string{TagHalal, TagLactoseFree}},
		{Name: "Stir-Fried Tofu with Vegetables and Noodles", Calories: 520, Protein: 25, Carbs: 65, Fats: 15,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Grilled Chicken Breast with Roasted Potatoes", Calories: 550, Protein: 45, Carbs: 50, Fats: 15,
			Tags: []string{TagHalal, TagLactoseFree}},
		{Name: "Vegetable Lasagna with Marinara", Calories: 500, Protein: 22, Carbs: 60, Fats: 18,
			Tags: []string{TagVegetarian, TagHalal}},
		{Name: "Black Bean and Sweet Potato Enchiladas", Calories: 530, Protein: 20, Carbs: 75, Fats: 16,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Mushroom Risotto with Garden Salad", Calories: 490, Protein: 15, Carbs: 70, Fats: 16,
			Tags: []string{TagVegetarian, TagHalal}},
		{Name: "Grilled Portobello Mushroom Steaks", Calories: 460, Protein: 18, Carbs: 55, Fats: 20,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
	},
	Snacks: []Meal{
		{Name: "Apple with Almond Butter", Calories: 200, Protein: 5, Carbs: 25, Fats: 10,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Hummus with Carrot Sticks", Calories: 150, Protein: 6, Carbs: 18, Fats: 6,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Trail Mix with Dried Fruits", Calories: 180, Protein: 5, Carbs: 22, Fats: 9,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Protein Bar", Calories: 220, Protein: 15, Carbs: 25, Fats: 8,
			Tags: []string{TagVegetarian, TagHalal}},
		{Name: "Rice Cakes with Peanut Butter", Calories: 190, Protein: 7, Carbs: 20, Fats: 9,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
		{Name: "Fresh Fruit Salad", Calories: 120, Protein: 2, Carbs: 30, Fats: 1,
			Tags: []string{TagVegetarian, TagVegan, TagHalal, TagLactoseFree}},
	},
}
