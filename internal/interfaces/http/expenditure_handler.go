package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/assetops"
	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// ExpenditureHandler handles expenditure endpoints.
type ExpenditureHandler struct {
	uc *assetops.ExpenditureUseCase
}

// NewExpenditureHandler builds the expenditure handler.
func NewExpenditureHandler(uc *assetops.ExpenditureUseCase) *ExpenditureHandler {
	return &ExpenditureHandler{uc: uc}
}

// Create godoc
// @Summary      Record an expenditure
// @Tags         expenditures
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenditureRequest  true  "expenditure"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expenditures [post]
func (h *ExpenditureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenditureRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	e, err := h.uc.Record(c.UserContext(), GetRole(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"expenditure_id": e.ID})
}

// List godoc
// @Summary      Expenditure history
// @Tags         expenditures
// @Produce      json
// @Param        baseId           query  string  false  "filter by base"
// @Param        equipmentTypeId  query  string  false  "filter by equipment type"
// @Success      200  {array}  dto.ExpenditureListItem
// @Router       /api/expenditures [get]
func (h *ExpenditureHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	items, err := h.uc.List(c.Query("baseId"), c.Query("equipmentTypeId"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(items)
}
