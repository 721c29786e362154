package transaction

import (
	"errors"
	"time"

	"mypocket-backend/internal/auth"
	"mypocket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  string          `json:"categoryId"`
	Date        string          `json:"date"` // RFC 3339 or "2006-01-02"
	Description string          `json:"description"`
}

type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	CategoryID  *string          `json:"categoryId"`
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
}

type TransactionResponse struct {
	ID          string                 `json:"id"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        models.TransactionType `json:"type"`
	CategoryID  string                 `json:"categoryId"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
}

func toResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		Amount:      txn.Amount,
		Type:        txn.Type,
		CategoryID:  txn.CategoryID,
		Date:        txn.Date.UTC().Format(time.RFC3339),
		Description: txn.Description,
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func mapServiceError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.NewError(fiber.StatusBadRequest, verr.Message)
	}
	return err
}

// GET /api/transactions
func ListTransactionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		txns, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return err
		}

		res := make([]TransactionResponse, 0, len(txns))
		for i := range txns {
			res = append(res, toResponse(&txns[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/transactions/:id
func GetTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		txn, err := svc.GetByID(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if txn == nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return c.JSON(toResponse(txn))
	}
}

// POST /api/transactions
func CreateTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		date, err := parseDate(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be an ISO-8601 date")
		}

		txn, err := svc.Create(c.UserContext(), userID, CreateInput{
			Amount:      body.Amount,
			Type:        body.Type,
			CategoryID:  body.CategoryID,
			Date:        date,
			Description: body.Description,
		})
		if err != nil {
			return mapServiceError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(txn))
	}
}

// PUT /api/transactions/:id
func UpdateTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body UpdateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		in := UpdateInput{
			Amount:      body.Amount,
			Type:        body.Type,
			CategoryID:  body.CategoryID,
			Description: body.Description,
		}
		if body.Date != nil {
			date, err := parseDate(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Date must be an ISO-8601 date")
			}
			in.Date = &date
		}

		txn, err := svc.Update(c.UserContext(), c.Params("id"), userID, in)
		if err != nil {
			return mapServiceError(err)
		}
		if txn == nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return c.JSON(toResponse(txn))
	}
}

// DELETE /api/transactions/:id
func DeleteTransactionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		txn, err := svc.Delete(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return err
		}
		if txn == nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
		}
		return c.JSON(toResponse(txn))
	}
}
