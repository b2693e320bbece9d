package entities

// Procedure represents a canonical medical procedure in the relational store.
type Procedure struct {
	ID             int     `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	AvgPrivateCost float64 `json:"avg_private_cost" db:"avg_private_cost"`
	PmjayRate      float64 `json:"pmjay_rate" db:"pmjay_rate"`
	RecoveryDays   int     `json:"recovery_days" db:"recovery_days"`
}

// HiddenCost represents a cost line item typically absent from sticker prices.
type HiddenCost struct {
	ID          int     `json:"id" db:"id"`
	ProcedureID int     `json:"procedure_id" db:"procedure_id"`
	ItemName    string  `json:"item_name" db:"item_name"`
	AvgCost     float64 `json:"avg_cost" db:"avg_cost"`
	Description string  `json:"description" db:"description"`
	IsAvoidable bool    `json:"is_avoidable" db:"is_avoidable"`
}
