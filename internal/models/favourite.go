package models

// Target names the kind of entity a favourite points at. The value is also
// the column prefix in the favourite table.
type Target string

const (
	TargetCharacter Target = "character"
	TargetVehicle   Target = "vehicle"
	TargetPlanet    Target = "planet"
)

// Favourite links a user to exactly one character, vehicle or planet.
type Favourite struct {
	ID          int  `json:"id"           db:"id"`
	CharacterID *int `json:"character_id" db:"character_id"`
	VehicleID   *int `json:"vehicle_id"   db:"vehicle_id"`
	PlanetID    *int `json:"planet_id"    db:"planet_id"`
	UserID      int  `json:"user_id"      db:"user_id"`
}

// NewFavourite builds an unsaved favourite of userID for the given target.
func NewFavourite(userID int, target Target, targetID int) *Favourite {
	f := &Favourite{UserID: userID}
	switch target {
	case TargetCharacter:
		f.CharacterID = &targetID
	case TargetVehicle:
		f.VehicleID = &targetID
	case TargetPlanet:
		f.PlanetID = &targetID
	}
	return f
}

// Targets returns how many of the three target columns are set.
func (f *Favourite) Targets() int {
	n := 0
	for _, id := range []*int{f.CharacterID, f.VehicleID, f.PlanetID} {
		if id != nil {
			n++
		}
	}
	return n
}

// Points reports whether the favourite references target/id.
func (f *Favourite) Points(target Target, id int) bool {
	var ref *int
	switch target {
	case TargetCharacter:
		ref = f.CharacterID
	case TargetVehicle:
		ref = f.VehicleID
	case TargetPlanet:
		ref = f.PlanetID
	}
	return ref != nil && *ref == id
}

// FavouriteRequest is the JSON body for the /favorite/* endpoints.
type FavouriteRequest struct {
	UserID int `json:"user_id"`
}
