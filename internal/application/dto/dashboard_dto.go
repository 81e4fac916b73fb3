package dto

// DashboardQuery query params for GET /api/dashboard and
// GET /api/dashboard/movement-details. Dates are YYYY-MM-DD.
type DashboardQuery struct {
	StartDate       string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	BaseID          string `query:"baseId"`
	EquipmentTypeID string `query:"equipmentTypeId"`
}

// DashboardSummaryResponse the five reconciled metrics. Field names match
// the frontend contract.
type DashboardSummaryResponse struct {
	OpeningBalance int64 `json:"openingBalance"`
	ClosingBalance int64 `json:"closingBalance"`
	NetMovement    int64 `json:"netMovement"`
	AssignedAssets int64 `json:"assignedAssets"`
	ExpendedAssets int64 `json:"expendedAssets"`
}

// MovementPurchaseItem one purchase line in the net-movement drill-down.
type MovementPurchaseItem struct {
	PurchaseID   string `json:"purchase_id"`
	PurchaseDate string `json:"purchase_date"`
	TypeName     string `json:"type_name"`
	Quantity     int64  `json:"quantity"`
	BaseName     string `json:"base_name"`
}

// MovementTransferItem one transfer line in the net-movement drill-down.
// SourceBase is set on transfers-in, DestinationBase on transfers-out;
// pending transfers carry both.
type MovementTransferItem struct {
	TransferID      string `json:"transfer_id"`
	TransferDate    string `json:"transfer_date"`
	TypeName        string `json:"type_name"`
	Quantity        int64  `json:"quantity"`
	SourceBase      string `json:"source_base,omitempty"`
	DestinationBase string `json:"destination_base,omitempty"`
	Status          string `json:"status,omitempty"`
}

// MovementDetailsResponse the itemized transactions behind netMovement.
// purchases + transfersIn - transfersOut always reproduces the summary's
// netMovement for the same filters. The pending list is informational only.
type MovementDetailsResponse struct {
	Purchases    []MovementPurchaseItem `json:"purchases"`
	TransfersIn  []MovementTransferItem `json:"transfersIn"`
	TransfersOut []MovementTransferItem `json:"transfersOut"`
	Pending      []MovementTransferItem `json:"pending,omitempty"`
}
