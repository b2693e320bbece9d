package entities

// Hospital represents a hospital that can be recommended for a procedure.
type Hospital struct {
	ID               int     `json:"id" db:"id"`
	Name             string  `json:"name" db:"name"`
	Location         string  `json:"location" db:"location"`
	IsPmjayEmpaneled bool    `json:"is_pmjay_empaneled" db:"is_pmjay_empaneled"`
	Rating           float64 `json:"rating" db:"rating"`
}
