package dto

// CreateTransferRequest body for POST /api/transfers. Status is optional and
// defaults to Completed, matching the original creation flow; Pending is
// accepted for transfers finalized later via the status endpoint.
type CreateTransferRequest struct {
	EquipmentTypeID   string `json:"equipmentTypeId" validate:"required"`
	Quantity          int64  `json:"quantity" validate:"required,gt=0"`
	SourceBaseID      string `json:"sourceBaseId" validate:"required"`
	DestinationBaseID string `json:"destinationBaseId" validate:"required"`
	TransferDate      string `json:"transferDate" validate:"required,datetime=2006-01-02"`
	Reason            string `json:"reason,omitempty"`
	Status            string `json:"status,omitempty" validate:"omitempty,oneof=Pending Completed"`
}

// UpdateTransferStatusRequest body for PUT /api/transfers/:id/status.
type UpdateTransferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Completed Cancelled"`
}

// TransferListItem listing item for GET /api/transfers.
type TransferListItem struct {
	TransferID      string `json:"transfer_id"`
	TransferDate    string `json:"transfer_date"`
	TypeName        string `json:"type_name"`
	SourceBase      string `json:"source_base"`
	DestinationBase string `json:"destination_base"`
	Quantity        int64  `json:"quantity"`
	Reason          string `json:"reason,omitempty"`
	Status          string `json:"status"`
	InitiatedBy     string `json:"initiated_by"`
}
