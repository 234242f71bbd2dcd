package models

// Planet represents a row in the planet table.
type Planet struct {
	ID      int     `json:"id"      db:"id"`
	Name    string  `json:"name"    db:"name"`
	Climate *string `json:"climate" db:"climate"`
	Terrain *string `json:"terrain" db:"terrain"`
}

// CreatePlanetRequest is the JSON body for POST /planet/.
type CreatePlanetRequest struct {
	Name    string `json:"name"    validate:"required"`
	Climate string `json:"climate" validate:"required"`
	Terrain string `json:"terrain" validate:"required"`
}

func (r CreatePlanetRequest) Planet() *Planet {
	return &Planet{
		Name:    r.Name,
		Climate: &r.Climate,
		Terrain: &r.Terrain,
	}
}
