package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/wellnesshub/go-wellness-backend/internal/mealplan"
)

// PlanDocument is everything the meal-plan PDF needs: the profile the plan
// was generated from, its calculated headline values, the generated days,
// and the combined grocery list.
type PlanDocument struct {
	Age           int
	Weight        float64
	Height        float64
	Gender        string
	ActivityLevel string
	Goal          string
	Restrictions  []string
	BMI           float64
	BMR           float64
	CalorieGoal   float64
	Days          []mealplan.DayPlan
	Groceries     []string
}

// PlanPDF renders a meal plan as a one-document PDF: profile summary, one
// table per day, then the grocery list.
func PlanPDF(doc PlanDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weekly Meal Plan", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Weekly Meal Plan", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Profile summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Your Profile", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	profile := []string{
		fmt.Sprintf("Age: %d   Weight: %.1f kg   Height: %.1f cm", doc.Age, doc.Weight, doc.Height),
		fmt.Sprintf("Gender: %s   Activity: %s   Goal: %s", titleCaser.String(doc.Gender), doc.ActivityLevel, doc.Goal),
		fmt.Sprintf("BMI: %.2f   BMR: %.2f kcal   Daily target: %.0f kcal", doc.BMI, doc.BMR, doc.CalorieGoal),
	}
	if len(doc.Restrictions) > 0 {
		profile = append(profile, "Dietary restrictions: "+strings.Join(doc.Restrictions, ", "))
	}
	for _, line := range profile {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// One compact table per day
	for _, day := range doc.Days {
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, fmt.Sprintf("Day %d", day.Day), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(28, 6, "Meal", "1", 0, "L", true, 0, "")
		pdf.CellFormat(92, 6, "Dish", "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 6, "Kcal", "1", 0, "R", true, 0, "")
		pdf.CellFormat(16, 6, "P (g)", "1", 0, "R", true, 0, "")
		pdf.CellFormat(16, 6, "C (g)", "1", 0, "R", true, 0, "")
		pdf.CellFormat(16, 6, "F (g)", "1", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, slot := range mealplan.Slots {
			meal := day.Slot(slot)
			pdf.CellFormat(28, 6, titleCaser.String(slot), "1", 0, "L", false, 0, "")
			pdf.CellFormat(92, 6, meal.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%.0f", meal.Calories), "1", 0, "R", false, 0, "")
			pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", meal.Protein), "1", 0, "R", false, 0, "")
			pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", meal.Carbs), "1", 0, "R", false, 0, "")
			pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", meal.Fats), "1", 1, "R", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(120, 6, "Daily total", "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.0f", day.DailyTotal.Calories), "1", 0, "R", false, 0, "")
		pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", day.DailyTotal.Protein), "1", 0, "R", false, 0, "")
		pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", day.DailyTotal.Carbs), "1", 0, "R", false, 0, "")
		pdf.CellFormat(16, 6, fmt.Sprintf("%.1f", day.DailyTotal.Fats), "1", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	// Grocery list
	if len(doc.Groceries) > 0 {
		if pdf.GetY() > 230 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Grocery List", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range doc.Groceries {
			pdf.CellFormat(0, 6, "- "+item, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
