package models

// Character is a person from the films. Description and race are nullable.
type Character struct {
	ID          int     `json:"id"          db:"id"`
	Name        string  `json:"name"        db:"name"`
	Description *string `json:"description" db:"description"`
	Race        *string `json:"race"        db:"race"`
}

// CreateCharacterRequest is the JSON body for POST /character/.
type CreateCharacterRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	Race        string `json:"race"        validate:"required"`
}

func (r CreateCharacterRequest) Character() *Character {
	return &Character{
		Name:        r.Name,
		Description: &r.Description,
		Race:        &r.Race,
	}
}
