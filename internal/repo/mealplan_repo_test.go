package repo

import (
	"context"
	"testing"
	"time"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
)

func TestCreateMealPlan_Success(t *testing.T) {
	db := newRepoDB(t, &domain.MealPlan{})
	ctx := context.Background()

	p, err := CreateMealPlan(ctx, db, &domain.MealPlan{
		UserID: "u1", Age: 25, Weight: 70, Height: 175,
		Gender: "male", ActivityLevel: "moderate", Goal: "maintain",
		Restrictions: `["vegetarian"]`,
		BMI:          22.86, BMR: 1673.75, CalorieGoal: 2594.31,
		Plan: `[{"day":"Monday"}]`,
	})
	if err != nil {
		t.Fatalf("CreateMealPlan: %v", err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("identity fields unset: %+v", p)
	}

	got, err := GetMealPlan(ctx, db, p.ID, "u1")
	if err != nil {
		t.Fatalf("GetMealPlan: %v", err)
	}
	if got.CalorieGoal != 2594.31 || got.Plan != `[{"day":"Monday"}]` {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestGetMealPlan_NotFoundAndWrongOwner(t *testing.T) {
	db := newRepoDB(t, &domain.MealPlan{})
	ctx := context.Background()

	if _, err := GetMealPlan(ctx, db, "missing", "u1"); err == nil {
		t.Fatalf("expected ErrRecordNotFound")
	}

	p, err := CreateMealPlan(ctx, db, &domain.MealPlan{UserID: "owner", Plan: `[]`, Gender: "female", ActivityLevel: "light", Goal: "lose"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := GetMealPlan(ctx, db, p.ID, "intruder"); err == nil {
		t.Fatalf("expected ErrRecordNotFound for wrong owner")
	}
}

func TestListMealPlans_NewestFirst(t *testing.T) {
	db := newRepoDB(t, &domain.MealPlan{})

	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"p1", "p2", "p3"} {
		p := domain.MealPlan{
			ID: id, UserID: "u1", Plan: `[]`,
			Gender: "male", ActivityLevel: "moderate", Goal: "maintain",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
	other := domain.MealPlan{ID: "px", UserID: "u2", Plan: `[]`, Gender: "male", ActivityLevel: "light", Goal: "gain", CreatedAt: base}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed px: %v", err)
	}

	list, err := ListMealPlans(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("ListMealPlans: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(list))
	}
	if list[0].ID != "p3" || list[2].ID != "p1" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestUpdateMealPlanBody_SuccessAndNotFound(t *testing.T) {
	db := newRepoDB(t, &domain.MealPlan{})
	ctx := context.Background()

	p, err := CreateMealPlan(ctx, db, &domain.MealPlan{UserID: "u1", Plan: `[]`, Gender: "male", ActivityLevel: "moderate", Goal: "maintain"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := UpdateMealPlanBody(ctx, db, p.ID, "u1", `[{"day":"Tuesday"}]`); err != nil {
		t.Fatalf("UpdateMealPlanBody: %v", err)
	}
	got, err := GetMealPlan(ctx, db, p.ID, "u1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Plan != `[{"day":"Tuesday"}]` {
		t.Fatalf("plan body not updated: %q", got.Plan)
	}

	if err := UpdateMealPlanBody(ctx, db, p.ID, "other", `[]`); err == nil {
		t.Fatalf("expected ErrRecordNotFound when user mismatches")
	}
	if err := UpdateMealPlanBody(ctx, db, "missing", "u1", `[]`); err == nil {
		t.Fatalf("expected ErrRecordNotFound when id missing")
	}
}

func TestDeleteMealPlan_SoftDelete(t *testing.T) {
	db := newRepoDB(t, &domain.MealPlan{})
	ctx := context.Background()

	p, err := CreateMealPlan(ctx, db, &domain.MealPlan{UserID: "u1", Plan: `[]`, Gender: "female", ActivityLevel: "active", Goal: "gain"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := DeleteMealPlan(ctx, db, p.ID, "u1"); err != nil {
		t.Fatalf("DeleteMealPlan: %v", err)
	}
	if _, err := GetMealPlan(ctx, db, p.ID, "u1"); err == nil {
		t.Fatalf("deleted plan still visible")
	}
	if err := DeleteMealPlan(ctx, db, p.ID, "u1"); err == nil {
		t.Fatalf("expected ErrRecordNotFound on double delete")
	}
}
