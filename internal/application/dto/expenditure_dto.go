package dto

// CreateExpenditureRequest body for POST /api/expenditures.
type CreateExpenditureRequest struct {
	EquipmentTypeID  string `json:"equipmentTypeId" validate:"required"`
	QuantityExpended int64  `json:"quantityExpended" validate:"required"`
	ExpenditureDate  string `json:"expenditureDate" validate:"required,datetime=2006-01-02"`
	BaseID           string `json:"baseId" validate:"required"`
	Reason           string `json:"reason" validate:"required,oneof=Training 'Combat Operation' Damage Other"`
}

// ExpenditureListItem listing item for GET /api/expenditures.
type ExpenditureListItem struct {
	ExpenditureID    string `json:"expenditure_id"`
	ExpenditureDate  string `json:"expenditure_date"`
	TypeName         string `json:"type_name"`
	BaseName         string `json:"base_name"`
	QuantityExpended int64  `json:"quantity_expended"`
	Reason           string `json:"reason"`
	ReportedBy       string `json:"reported_by"`
}
