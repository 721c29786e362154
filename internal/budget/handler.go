package budget

import (
	"errors"

	"mypocket-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	CategoryID string          `json:"categoryId"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Type       string          `json:"type"`
}

type UpdateBudgetRequest struct {
	Amount     *decimal.Decimal `json:"amount"`
	CategoryID *string          `json:"categoryId"`
	Month      *int             `json:"month"`
	Year       *int             `json:"year"`
	Type       *string          `json:"type"`
}

func mapServiceError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.NewError(fiber.StatusBadRequest, verr.Message)
	}
	return err
}

// GET /api/budgets
func ListBudgetsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		budgets, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return err
		}

		res := make([]BudgetView, 0, len(budgets))
		for i := range budgets {
			res = append(res, toBudgetView(&budgets[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/budgets/:id
func GetBudgetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		b, err := svc.GetByID(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if b == nil {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found")
		}
		return c.JSON(toBudgetView(b))
	}
}

// GET /api/budgets/:id/spending
func GetBudgetSpendingHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		view, err := svc.WithSpending(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if view == nil {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found")
		}
		return c.JSON(view)
	}
}

// GET /api/budgets/:id/category
func GetBudgetCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		view, err := svc.WithCategory(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if view == nil {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found")
		}
		return c.JSON(view)
	}
}

// GET /api/budgets/:id/details
func GetBudgetDetailsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		details, err := svc.Details(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if details == nil {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found")
		}
		return c.JSON(details)
	}
}

// GET /api/budgets/category/:categoryId
func ListBudgetsByCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		budgets, err := svc.ByCategory(c.UserContext(), c.Params("categoryId"), userID)
		if err != nil {
			return err
		}
		return c.JSON(budgets)
	}
}

// POST /api/budgets
func CreateBudgetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateBudgetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		b, err := svc.Create(c.UserContext(), userID, CreateInput{
			Amount:     body.Amount,
			CategoryID: body.CategoryID,
			Month:      body.Month,
			Year:       body.Year,
			Type:       body.Type,
		})
		if err != nil {
			return mapServiceError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toBudgetView(b))
	}
}

// PUT /api/budgets/:id
func UpdateBudgetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body UpdateBudgetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		b, err := svc.Update(c.UserContext(), c.Params("id"), userID, UpdateInput{
			Amount:     body.Amount,
			CategoryID: body.CategoryID,
			Month:      body.Month,
			Year:       body.Year,
			Type:       body.Type,
		})
		if err != nil {
			return mapServiceError(err)
		}
		if b == nil {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found")
		}
		return c.JSON(toBudgetView(b))
	}
}

// DELETE /api/budgets/:id
func DeleteBudgetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		b, err := svc.Delete(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if b == nil {
			return fiber.NewError(fiber.StatusNotFound, "Budget not found")
		}
		return c.JSON(toBudgetView(b))
	}
}
