package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/procurement"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// PurchaseHandler handles the purchase ledger endpoints.
type PurchaseHandler struct {
	uc *procurement.PurchaseUseCase
}

// NewPurchaseHandler builds the purchase handler.
func NewPurchaseHandler(uc *procurement.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Record a purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "purchase"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	p, err := h.uc.Record(c.UserContext(), GetRole(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"purchase_id": p.ID})
}

// List godoc
// @Summary      Purchase history
// @Tags         purchases
// @Produce      json
// @Param        baseId           query  string  false  "filter by receiving base"
// @Param        equipmentTypeId  query  string  false  "filter by equipment type"
// @Success      200  {array}  dto.PurchaseListItem
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
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
