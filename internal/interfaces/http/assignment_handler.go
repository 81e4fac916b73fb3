package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/assetops"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// AssignmentHandler handles asset assignment endpoints.
type AssignmentHandler struct {
	uc *assetops.AssignmentUseCase
}

// NewAssignmentHandler builds the assignment handler.
func NewAssignmentHandler(uc *assetops.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Create godoc
// @Summary      Assign an asset to a person
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentRequest  true  "assignment"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	a, err := h.uc.Assign(c.UserContext(), GetRole(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"assignment_id": a.ID})
}

// Return godoc
// @Summary      Return an assigned asset
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "assignment id"
// @Param        body  body  dto.ReturnAssignmentRequest  false  "returnDate defaults to today"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments/{id}/return [put]
func (h *AssignmentHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnAssignmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		if err := validate.Struct(in); err != nil {
			return badValidation(c, err)
		}
	}
	a, err := h.uc.Return(c.UserContext(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"assignment_id": a.ID, "returned_date": a.ReturnedDate.Format("2006-01-02")})
}

// List godoc
// @Summary      Assignment history
// @Tags         assignments
// @Produce      json
// @Param        baseId  query  string  false  "filter by base of assignment"
// @Param        active  query  bool    false  "only active assignments"
// @Success      200  {array}  dto.AssignmentListItem
// @Router       /api/assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	activeOnly := c.QueryBool("active")
	items, err := h.uc.List(c.Query("baseId"), activeOnly, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(items)
}
