package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/procurement"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// TransferHandler handles inter-base transfer endpoints.
type TransferHandler struct {
	uc *procurement.TransferUseCase
}

// NewTransferHandler builds the transfer handler.
func NewTransferHandler(uc *procurement.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Create a transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "transfer; status defaults to Completed"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	t, err := h.uc.Create(c.UserContext(), GetRole(c), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transfer_id": t.ID, "status": t.Status})
}

// UpdateStatus godoc
// @Summary      Finalize a pending transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "transfer id"
// @Param        body  body  dto.UpdateTransferStatusRequest  true  "Completed or Cancelled"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/status [put]
func (h *TransferHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransferStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	t, err := h.uc.UpdateStatus(c.UserContext(), GetRole(c), c.Params("id"), in.Status)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"transfer_id": t.ID, "status": t.Status})
}

// List godoc
// @Summary      Transfer history
// @Tags         transfers
// @Produce      json
// @Param        baseId           query  string  false  "filter by either end of the movement"
// @Param        equipmentTypeId  query  string  false  "filter by equipment type"
// @Success      200  {array}  dto.TransferListItem
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
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
