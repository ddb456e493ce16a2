// Package services – PlannerService
//
// This file implements PlannerService, which owns the fitness profile
// calculation and the meal-plan lifecycle: generation, persistence, single
// slot swaps, grocery lists, and the PDF rendering payload. Plans are stored
// with their day payloads serialized as JSON; this service is the only place
// that knows the payload shape.
package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/export"
	"github.com/wellnesshub/go-wellness-backend/internal/fitness"
	"github.com/wellnesshub/go-wellness-backend/internal/mealplan"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PlannerRepo defines the repository contract required by PlannerService.
type PlannerRepo interface {
	CreateMealPlan(ctx context.Context, db *gorm.DB, p *domain.MealPlan) (*domain.MealPlan, error)
	GetMealPlan(ctx context.Context, db *gorm.DB, id, userID string) (*domain.MealPlan, error)
	ListMealPlans(ctx context.Context, db *gorm.DB, userID string) ([]domain.MealPlan, error)
	UpdateMealPlanBody(ctx context.Context, db *gorm.DB, id, userID, plan string) error
	DeleteMealPlan(ctx context.Context, db *gorm.DB, id, userID string) error
}

// ProfileInput carries the body profile from the transport layer.
type ProfileInput struct {
	Age           int
	Weight        float64
	Height        float64
	Gender        string
	ActivityLevel string
	Goal          string
	Restrictions  []string
}

// PlanResult is a fully materialized meal plan: the stored row joined with
// its deserialized days and the derived grocery list.
type PlanResult struct {
	ID           string             `json:"id"`
	Profile      fitness.Profile    `json:"profile"`
	Restrictions []string           `json:"restrictions,omitempty"`
	Days         []mealplan.DayPlan `json:"days"`
	GroceryList  []string           `json:"grocery_list"`
	CreatedAt    time.Time          `json:"created_at"`
}

// PlannerService coordinates profile math and meal-plan persistence.
type PlannerService struct {
	DB   *gorm.DB
	Repo PlannerRepo
	Gen  *mealplan.Generator

	// PlanDays is the plan length; 0 means a full week.
	PlanDays int
}

// Profile computes the complete fitness profile for the given inputs without
// persisting anything.
func (s *PlannerService) Profile(in ProfileInput) (fitness.Profile, error) {
	if err := validateProfile(in); err != nil {
		return fitness.Profile{}, err
	}
	return fitness.CompleteProfile(in.Age, in.Weight, in.Height, in.Gender, in.ActivityLevel, in.Goal), nil
}

// GeneratePlan computes the profile, generates a plan against its calorie
// goal, persists the result, and returns the materialized plan.
func (s *PlannerService) GeneratePlan(ctx context.Context, userID string, in ProfileInput) (*PlanResult, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "GeneratePlan",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	profile, err := s.Profile(in)
	if err != nil {
		return nil, err
	}

	restrictions := normalizeRestrictions(in.Restrictions)
	days := s.Gen.Generate(profile.CalorieGoal, restrictions, s.days())

	planJSON, err := json.Marshal(days)
	if err != nil {
		return nil, err
	}
	restrJSON, err := json.Marshal(restrictions)
	if err != nil {
		return nil, err
	}

	row, err := s.Repo.CreateMealPlan(ctx, s.DB, &domain.MealPlan{
		UserID:        userID,
		Age:           in.Age,
		Weight:        in.Weight,
		Height:        in.Height,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
		Restrictions:  string(restrJSON),
		BMI:           profile.BMI,
		BMR:           profile.BMR,
		CalorieGoal:   profile.CalorieGoal,
		Plan:          string(planJSON),
	})
	if err != nil {
		return nil, err
	}

	return &PlanResult{
		ID:           row.ID,
		Profile:      profile,
		Restrictions: restrictions,
		Days:         days,
		GroceryList:  mealplan.GroceryList(days),
		CreatedAt:    row.CreatedAt,
	}, nil
}

// GetPlan loads and materializes one stored plan.
func (s *PlannerService) GetPlan(ctx context.Context, userID, id string) (*PlanResult, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "GetPlan",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("plan.id", id),
		),
	)
	defer span.End()

	row, err := s.Repo.GetMealPlan(ctx, s.DB, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.materialize(row)
}

// ListPlans returns the stored plan rows for a user, most recent first. The
// serialized payloads stay packed; listings only need the headline fields.
func (s *PlannerService) ListPlans(ctx context.Context, userID string) ([]domain.MealPlan, error) {
	return s.Repo.ListMealPlans(ctx, s.DB, userID)
}

// SwapMeal replaces one slot of one day with a fresh pick against the plan's
// stored calorie goal and restrictions, persists the updated payload, and
// returns the materialized plan. day is 1-based as displayed to users.
func (s *PlannerService) SwapMeal(ctx context.Context, userID, id string, day int, slot string) (*PlanResult, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "SwapMeal",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("plan.id", id),
			attribute.Int("day", day),
			attribute.String("slot", slot),
		),
	)
	defer span.End()

	row, err := s.Repo.GetMealPlan(ctx, s.DB, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	res, err := s.materialize(row)
	if err != nil {
		return nil, err
	}

	if _, ok := s.Gen.SwapSlot(res.Days, day, slot, row.CalorieGoal, res.Restrictions); !ok {
		return nil, ErrInvalidSwap
	}

	planJSON, err := json.Marshal(res.Days)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateMealPlanBody(ctx, s.DB, id, userID, string(planJSON)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	res.GroceryList = mealplan.GroceryList(res.Days)
	return res, nil
}

// DeletePlan removes a stored plan owned by userID.
func (s *PlannerService) DeletePlan(ctx context.Context, userID, id string) error {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "DeletePlan",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("plan.id", id),
		),
	)
	defer span.End()

	if err := s.Repo.DeleteMealPlan(ctx, s.DB, id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// PlanPDF renders one stored plan as a PDF document.
func (s *PlannerService) PlanPDF(ctx context.Context, userID, id string) ([]byte, error) {
	tr := otel.Tracer("services/PlannerService")
	ctx, span := tr.Start(ctx, "PlanPDF",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("plan.id", id),
		),
	)
	defer span.End()

	row, err := s.Repo.GetMealPlan(ctx, s.DB, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	res, err := s.materialize(row)
	if err != nil {
		return nil, err
	}

	return export.PlanPDF(export.PlanDocument{
		Age:           row.Age,
		Weight:        row.Weight,
		Height:        row.Height,
		Gender:        row.Gender,
		ActivityLevel: row.ActivityLevel,
		Goal:          row.Goal,
		Restrictions:  res.Restrictions,
		BMI:           row.BMI,
		BMR:           row.BMR,
		CalorieGoal:   row.CalorieGoal,
		Days:          res.Days,
		Groceries:     res.GroceryList,
	})
}

// materialize unpacks a stored row into a PlanResult.
func (s *PlannerService) materialize(row *domain.MealPlan) (*PlanResult, error) {
	var days []mealplan.DayPlan
	if err := json.Unmarshal([]byte(row.Plan), &days); err != nil {
		return nil, err
	}
	var restrictions []string
	if row.Restrictions != "" {
		if err := json.Unmarshal([]byte(row.Restrictions), &restrictions); err != nil {
			return nil, err
		}
	}
	return &PlanResult{
		ID:           row.ID,
		Profile:      fitness.CompleteProfile(row.Age, row.Weight, row.Height, row.Gender, row.ActivityLevel, row.Goal),
		Restrictions: restrictions,
		Days:         days,
		GroceryList:  mealplan.GroceryList(days),
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (s *PlannerService) days() int {
	if s.PlanDays > 0 {
		return s.PlanDays
	}
	return 7
}

func validateProfile(in ProfileInput) error {
	if in.Age <= 0 || in.Weight <= 0 || in.Height <= 0 {
		return ErrInvalidProfile
	}
	return nil
}

// normalizeRestrictions lowercases and deduplicates restriction tags,
// dropping blanks.
func normalizeRestrictions(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, r := range in {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
