package category

import (
	"errors"
	"strings"
	"time"

	"mypocket-backend/internal/auth"
	"mypocket-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		Type:      strings.ToLower(string(cat.Type)),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

func mapServiceError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.NewError(fiber.StatusBadRequest, verr.Message)
	}
	return err
}

// GET /api/categories
func ListCategoriesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		cats, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return err
		}

		res := make([]CategoryResponse, 0, len(cats))
		for i := range cats {
			res = append(res, toResponse(&cats[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/categories/:id
func GetCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		cat, err := svc.GetByID(c.UserContext(), id, userID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Category with ID "+id+" not found")
			}
			return err
		}
		return c.JSON(toResponse(cat))
	}
}

// POST /api/categories
func CreateCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		cat, err := svc.Create(c.UserContext(), userID, CreateInput{Name: body.Name, Type: body.Type})
		if err != nil {
			return mapServiceError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(cat))
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			body.Name = &name
		}

		id := c.Params("id")
		cat, err := svc.Update(c.UserContext(), id, userID, UpdateInput{Name: body.Name, Type: body.Type})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Category with ID "+id+" not found")
			}
			return mapServiceError(err)
		}
		return c.JSON(toResponse(cat))
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		cat, err := svc.Delete(c.UserContext(), id, userID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Category with ID "+id+" not found")
			}
			return err
		}
		return c.JSON(toResponse(cat))
	}
}
