package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/usecase"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// ReferenceHandler handles base and equipment-type catalog endpoints.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewReferenceHandler builds the reference handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// CreateBase godoc
// @Summary      Create base (Admin)
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBaseRequest  true  "name"
// @Success      201   {object}  dto.BaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bases [post]
func (h *ReferenceHandler) CreateBase(c *fiber.Ctx) error {
	var in dto.CreateBaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.CreateBase(GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBases godoc
// @Summary      List bases
// @Tags         references
// @Produce      json
// @Success      200  {array}  dto.BaseResponse
// @Router       /api/bases [get]
func (h *ReferenceHandler) ListBases(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListBases(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateEquipmentType godoc
// @Summary      Create equipment type (Admin)
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentTypeRequest  true  "name"
// @Success      201   {object}  dto.EquipmentTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment-types [post]
func (h *ReferenceHandler) CreateEquipmentType(c *fiber.Ctx) error {
	var in dto.CreateEquipmentTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.CreateEquipmentType(GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEquipmentTypes godoc
// @Summary      List equipment types
// @Tags         references
// @Produce      json
// @Success      200  {array}  dto.EquipmentTypeResponse
// @Router       /api/equipment-types [get]
func (h *ReferenceHandler) ListEquipmentTypes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListEquipmentTypes(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
