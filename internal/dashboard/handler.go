package dashboard

import (
	"mypocket-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func parsePeriod(c *fiber.Ctx) (month, year int, err error) {
	month = c.QueryInt("month")
	year = c.QueryInt("year")
	if month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid month. Month must be between 1 and 12.")
	}
	if year <= 0 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid year.")
	}
	return month, year, nil
}

// GET /api/dashboard/monthly-summary?month=&year=
func MonthlySummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		month, year, err := parsePeriod(c)
		if err != nil {
			return err
		}

		summary, err := svc.MonthlySummary(c.UserContext(), userID, month, year)
		if err != nil {
			return err
		}
		return c.JSON(summary)
	}
}

// GET /api/dashboard/budget-vs-actual?month=&year=
func BudgetVsActualHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		month, year, err := parsePeriod(c)
		if err != nil {
			return err
		}

		rows, err := svc.BudgetVsActual(c.UserContext(), userID, month, year)
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}
