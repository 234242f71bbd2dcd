package store

import (
	"context"
	"errors"

	"github.com/ayush/starwars-blog-api/internal/models"
)

var (
	// ErrNotFound is returned when a row (or a row it references) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFavourite is returned when a favourite does not point at exactly one target.
	ErrInvalidFavourite = errors.New("favourite must reference exactly one target")
)

// Counts holds the number of rows per table.
type Counts struct {
	Users      int `json:"users"`
	Characters int `json:"characters"`
	Planets    int `json:"planets"`
	Vehicles   int `json:"vehicles"`
	Favourites int `json:"favourites"`
}

// Store is the persistence contract shared by PostgresStore and MemoryStore.
// Lists are ordered by id.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error

	ListCharacters(ctx context.Context) ([]models.Character, error)
	GetCharacter(ctx context.Context, id int) (*models.Character, error)
	CreateCharacter(ctx context.Context, c *models.Character) (*models.Character, error)
	DeleteCharacter(ctx context.Context, id int) error

	ListPlanets(ctx context.Context) ([]models.Planet, error)
	GetPlanet(ctx context.Context, id int) (*models.Planet, error)
	CreatePlanet(ctx context.Context, p *models.Planet) (*models.Planet, error)
	DeletePlanet(ctx context.Context, id int) error

	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*models.Vehicle, error)
	CreateVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int) error

	ListFavourites(ctx context.Context, userID int) ([]models.Favourite, error)
	ListAllFavourites(ctx context.Context) ([]models.Favourite, error)
	CreateFavourite(ctx context.Context, f *models.Favourite) (*models.Favourite, error)
	FindFavourite(ctx context.Context, userID int, target models.Target, targetID int) (*models.Favourite, error)
	DeleteFavourite(ctx context.Context, id int) error

	Counts(ctx context.Context) (Counts, error)
	Ping(ctx context.Context) error
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
