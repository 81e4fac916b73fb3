package dto

import "github.com/shopspring/decimal"

// CreatePurchaseRequest body for POST /api/purchases. Field names follow the
// frontend form. TotalCost is optional; when present it must equal
// quantity × unitCost or the request is rejected.
type CreatePurchaseRequest struct {
	EquipmentTypeID     string           `json:"equipmentTypeId" validate:"required"`
	Quantity            int64            `json:"quantity" validate:"required,gt=0"`
	UnitCost            decimal.Decimal  `json:"unitCost"`
	TotalCost           *decimal.Decimal `json:"totalCost,omitempty"`
	PurchaseDate        string           `json:"purchaseDate" validate:"required,datetime=2006-01-02"`
	ReceivingBaseID     string           `json:"receivingBaseId" validate:"required"`
	SupplierInfo        string           `json:"supplierInfo,omitempty"`
	PurchaseOrderNumber string           `json:"purchaseOrderNumber,omitempty"`
}

// PurchaseListItem listing item for GET /api/purchases.
type PurchaseListItem struct {
	PurchaseID          string          `json:"purchase_id"`
	PurchaseDate        string          `json:"purchase_date"`
	TypeName            string          `json:"type_name"`
	BaseName            string          `json:"base_name"`
	Quantity            int64           `json:"quantity"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	SupplierInfo        string          `json:"supplier_info,omitempty"`
	PurchaseOrderNumber string          `json:"purchase_order_number,omitempty"`
	RecordedBy          string          `json:"recorded_by"`
}
