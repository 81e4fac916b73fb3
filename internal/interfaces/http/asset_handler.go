package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/application/usecase"
	"github.com/seshu362/kristalball-backend/pkg/validate"
)

// AssetHandler handles the tracked-asset catalog endpoints.
type AssetHandler struct {
	uc *usecase.AssetUseCase
}

// NewAssetHandler builds the asset handler.
func NewAssetHandler(uc *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create godoc
// @Summary      Register an asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "asset"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return badValidation(c, err)
	}
	out, err := h.uc.Create(GetRole(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List assets
// @Tags         assets
// @Produce      json
// @Param        baseId           query  string  false  "filter by base"
// @Param        equipmentTypeId  query  string  false  "filter by equipment type"
// @Success      200  {array}  dto.AssetResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Query("baseId"), c.Query("equipmentTypeId"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
