package main

import (
	"math"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// Fixed prediction constants: lifetime expenses are extrapolated linearly
// onto a 30-day month and compared against a 50000 threshold.
const (
	predictionDays      = 30
	predictionThreshold = 50000

	onTrackMessage = "You're on track."
	warningMessage = "⚠️ Warning: You may exceed your monthly limit!"
)

// CategoryStatus compares one budget row against actual expense spending.
type CategoryStatus struct {
	Category  string  `json:"category"`
	Limit     float64 `json:"limit"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

// BudgetStatus computes spent-vs-limit for every budget row the user owns,
// preserving budget insertion order. Transactions match a budget only on
// exact category equality (case-sensitive, no trimming). A budget with no
// matching expenses reports spent 0; remaining may go negative. Duplicate
// categories produce independent entries.
func BudgetStatus(db *gorm.DB, userID uint) ([]CategoryStatus, error) {
	var budgets []models.Budget
	if err := db.Where("user_id = ?", userID).Order("id").Find(&budgets).Error; err != nil {
		return nil, err
	}
	results := make([]CategoryStatus, 0, len(budgets))
	for _, b := range budgets {
		spent, err := sumExpenses(db, userID, &b.Category)
		if err != nil {
			return nil, err
		}
		results = append(results, CategoryStatus{
			Category:  b.Category,
			Limit:     b.LimitAmount,
			Spent:     spent,
			Remaining: b.LimitAmount - spent,
		})
	}
	return results, nil
}

// sumExpenses totals the amounts of a user's expense transactions,
// optionally limited to one exact category. Absence of rows sums to zero.
func sumExpenses(db *gorm.DB, userID uint, category *string) (float64, error) {
	q := db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, models.TypeExpense)
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	var total float64
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

// PredictionAlert is the serialized projection result.
type PredictionAlert struct {
	TotalSpent            float64 `json:"total_spent"`
	AverageDailyExpense   float64 `json:"average_daily_expense"`
	PredictedMonthExpense float64 `json:"predicted_month_expense"`
	Message               string  `json:"message"`
}

// PredictAlert divides the user's lifetime expense total by today's
// day-of-month and projects it across a 30-day month. The total is
// deliberately never windowed to the current month. The threshold check
// uses the unrounded projection; the reported rates are rounded to two
// decimals for output only.
func PredictAlert(db *gorm.DB, userID uint, today time.Time) (PredictionAlert, error) {
	total, err := sumExpenses(db, userID, nil)
	if err != nil {
		return PredictionAlert{}, err
	}
	day := today.Day()
	var avg float64
	if day != 0 { // defensive; Day is 1-31 for any valid time
		avg = total / float64(day)
	}
	predicted := avg * predictionDays
	message := onTrackMessage
	if predicted > predictionThreshold {
		message = warningMessage
	}
	return PredictionAlert{
		TotalSpent:            total,
		AverageDailyExpense:   round2(avg),
		PredictedMonthExpense: round2(predicted),
		Message:               message,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
