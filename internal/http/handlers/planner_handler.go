// Planner HTTP handlers.
//
// This file exposes REST endpoints for fitness profiles and meal plans:
//   - POST /fitness/profile         (compute profile, no persistence)
//   - POST /fitness/plans           (generate and store a plan)
//   - GET  /fitness/plans           (list stored plans)
//   - GET  /fitness/plans/{id}      (materialized plan with grocery list)
//   - POST /fitness/plans/{id}/swap (replace one meal slot)
//   - DELETE /fitness/plans/{id}    (delete a stored plan)
//   - GET  /fitness/plans/{id}/pdf  (PDF download)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wellnesshub/go-wellness-backend/internal/domain"
	"github.com/wellnesshub/go-wellness-backend/internal/services"
)

//
// DTOs
//

// ProfileRequest is the JSON payload for profile and plan endpoints.
type ProfileRequest struct {
	// Age in years.
	Age int `json:"age" binding:"required,min=1" example:"25"`
	// Weight in kilograms.
	Weight float64 `json:"weight" binding:"required,gt=0" example:"70"`
	// Height in centimeters.
	Height float64 `json:"height" binding:"required,gt=0" example:"175"`
	// Gender ("male" or "female").
	Gender string `json:"gender" example:"male"`
	// ActivityLevel: sedentary, light, moderate, active, or very_active.
	ActivityLevel string `json:"activity_level" example:"moderate"`
	// Goal: lose, maintain, or gain.
	Goal string `json:"goal" example:"maintain"`
	// Restrictions are dietary tags such as vegetarian or gluten_free.
	Restrictions []string `json:"restrictions" example:"vegetarian"`
}

// SwapMealRequest is the JSON payload for swapping one meal slot.
type SwapMealRequest struct {
	// Day of the plan, 1-based.
	Day int `json:"day" binding:"required,min=1" example:"3"`
	// Slot to replace: breakfast, lunch, dinner, or snack.
	Slot string `json:"slot" binding:"required" example:"lunch"`
}

// ListPlansResponse wraps the user's stored plans, most recent first. The
// serialized day payloads are omitted; fetch a single plan for the full week.
type ListPlansResponse struct {
	Plans []domain.MealPlan `json:"plans"`
	Total int               `json:"total"`
}

func (h *Handlers) bindProfile(c *gin.Context) (services.ProfileInput, bool) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return services.ProfileInput{}, false
	}
	return services.ProfileInput{
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		Restrictions:  req.Restrictions,
	}, true
}

//
// Handlers
//

// CalculateProfile godoc
// @ID          calculateProfile
// @Summary     Calculate a fitness profile
// @Description Computes BMI, BMR, TDEE, calorie goal, and macro split from body metrics. Nothing is stored.
// @Tags        Fitness
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ProfileRequest  true  "Body metrics payload"
//
// @Success     200  {object}  fitness.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /fitness/profile [post]
func (h *Handlers) CalculateProfile(c *gin.Context) {
	in, okReq := h.bindProfile(c)
	if !okReq {
		return
	}

	p, err := h.plannerSvc.Profile(in)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "age, weight, and height must be positive")
		return
	}
	ok(c, http.StatusOK, p)
}

// GeneratePlan godoc
// @ID          generateMealPlan
// @Summary     Generate a meal plan
// @Description Computes the profile, builds a week of meals against its calorie goal, and stores the plan.
// @Tags        Fitness
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.ProfileRequest  true  "Body metrics payload"
//
// @Success     201  {object}  services.PlanResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /fitness/plans [post]
func (h *Handlers) GeneratePlan(c *gin.Context) {
	in, okReq := h.bindProfile(c)
	if !okReq {
		return
	}

	res, err := h.plannerSvc.GeneratePlan(c.Request.Context(), userID(c), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProfile) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "age, weight, and height must be positive")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, res)
}

// ListPlans godoc
// @ID          listMealPlans
// @Summary     List stored meal plans
// @Description Returns the user's stored plans, most recent first, without the day payloads.
// @Tags        Fitness
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object} handlers.ListPlansResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /fitness/plans [get]
func (h *Handlers) ListPlans(c *gin.Context) {
	plans, err := h.plannerSvc.ListPlans(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if plans == nil {
		plans = []domain.MealPlan{}
	}
	ok(c, http.StatusOK, ListPlansResponse{Plans: plans, Total: len(plans)})
}

// GetPlan godoc
// @ID          getMealPlan
// @Summary     Get a meal plan
// @Description Returns one stored plan with its days, profile, and grocery list.
// @Tags        Fitness
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Plan ID (UUID)"         format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     200  {object} services.PlanResult
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Plan not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /fitness/plans/{id} [get]
func (h *Handlers) GetPlan(c *gin.Context) {
	planID := c.Param("id")
	if _, err := uuid.Parse(planID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "plan id must be a UUID")
		return
	}

	res, err := h.plannerSvc.GetPlan(c.Request.Context(), userID(c), planID)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}

// SwapMeal godoc
// @ID          swapMeal
// @Summary     Swap one meal slot
// @Description Replaces one slot of one day with a fresh pick against the plan's calorie goal and restrictions.
// @Tags        Fitness
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Plan ID (UUID)"         format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
// @Param       body       body    handlers.SwapMealRequest  true  "Swap payload"
//
// @Success     200  {object} services.PlanResult
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Plan not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /fitness/plans/{id}/swap [post]
func (h *Handlers) SwapMeal(c *gin.Context) {
	planID := c.Param("id")
	if _, err := uuid.Parse(planID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "plan id must be a UUID")
		return
	}

	var req SwapMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "day and slot required")
		return
	}

	res, err := h.plannerSvc.SwapMeal(c.Request.Context(), userID(c), planID, req.Day, req.Slot)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
		case errors.Is(err, services.ErrInvalidSwap):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "day or slot out of range")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, res)
}

// DeletePlan godoc
// @ID          deleteMealPlan
// @Summary     Delete a meal plan
// @Description Deletes one stored plan owned by the current user.
// @Tags        Fitness
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Plan ID (UUID)"         format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Plan not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /fitness/plans/{id} [delete]
func (h *Handlers) DeletePlan(c *gin.Context) {
	planID := c.Param("id")
	if _, err := uuid.Parse(planID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "plan id must be a UUID")
		return
	}

	if err := h.plannerSvc.DeletePlan(c.Request.Context(), userID(c), planID); err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ExportPlanPDF godoc
// @ID          exportPlanPDF
// @Summary     Export a meal plan as PDF
// @Description Downloads one stored plan as a PDF document with the profile, week of meals, and grocery list.
// @Tags        Fitness
// @Produce     plain
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Plan ID (UUID)"         format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     200  {string} string "PDF document"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Plan not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /fitness/plans/{id}/pdf [get]
func (h *Handlers) ExportPlanPDF(c *gin.Context) {
	planID := c.Param("id")
	if _, err := uuid.Parse(planID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "plan id must be a UUID")
		return
	}

	data, err := h.plannerSvc.PlanPDF(c.Request.Context(), userID(c), planID)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "plan not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="meal_plan.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
