package models

// Vehicle represents a row in the vehicle table.
//
// Manufacturer and CostInCredits are persisted so that every field accepted
// on create is returned by later reads. CostInCredits is free text: SWAPI
// data carries values such as "unknown".
type Vehicle struct {
	ID            int     `json:"id"              db:"id"`
	Name          string  `json:"name"            db:"name"`
	Model         *string `json:"model"           db:"model"`
	Manufacturer  *string `json:"manufacturer"    db:"manufacturer"`
	CostInCredits *string `json:"cost_in_credits" db:"cost_in_credits"`
	MaxSpeed      *int    `json:"max_speed"       db:"max_speed"`
}

// CreateVehicleRequest is the JSON body for POST /vehicle/.
type CreateVehicleRequest struct {
	Name          string `json:"name"            validate:"required"`
	Model         string `json:"model"           validate:"required"`
	Manufacturer  string `json:"manufacturer"    validate:"required"`
	CostInCredits Scalar `json:"cost_in_credits" validate:"required"`
	MaxSpeed      *int   `json:"max_speed"`
}

func (r CreateVehicleRequest) Vehicle() *Vehicle {
	cost := string(r.CostInCredits)
	return &Vehicle{
		Name:          r.Name,
		Model:         &r.Model,
		Manufacturer:  &r.Manufacturer,
		CostInCredits: &cost,
		MaxSpeed:      r.MaxSpeed,
	}
}
