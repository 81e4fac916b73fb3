package dto

// CreateBaseRequest body for POST /api/bases (Admin only).
type CreateBaseRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

// BaseResponse listing item for GET /api/bases.
type BaseResponse struct {
	BaseID   string `json:"base_id"`
	BaseName string `json:"base_name"`
}

// CreateEquipmentTypeRequest body for POST /api/equipment-types (Admin only).
type CreateEquipmentTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

// EquipmentTypeResponse listing item for GET /api/equipment-types.
type EquipmentTypeResponse struct {
	EquipmentTypeID string `json:"equipment_type_id"`
	TypeName        string `json:"type_name"`
}

// CreateAssetRequest body for POST /api/assets.
type CreateAssetRequest struct {
	EquipmentTypeID string `json:"equipmentTypeId" validate:"required"`
	BaseID          string `json:"baseId" validate:"required"`
	ModelName       string `json:"modelName" validate:"required"`
	SerialNumber    string `json:"serialNumber,omitempty"`
}

// AssetResponse listing item for GET /api/assets.
type AssetResponse struct {
	AssetID         string `json:"asset_id"`
	EquipmentTypeID string `json:"equipment_type_id"`
	BaseID          string `json:"base_id"`
	ModelName       string `json:"model_name"`
	SerialNumber    string `json:"serial_number,omitempty"`
	Status          string `json:"status"`
}
