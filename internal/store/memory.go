package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/ayush/starwars-blog-api/internal/models"
)

// table is an id-ordered slice with its own sequence.
type table[T any] struct {
	rows []T
	seq  int
}

func (t *table[T]) find(id int, idOf func(*T) int) (int, bool) {
	for i := range t.rows {
		if idOf(&t.rows[i]) == id {
			return i, true
		}
	}
	return -1, false
}

func (t *table[T]) insert(row T, setID func(*T, int)) T {
	t.seq++
	setID(&row, t.seq)
	t.rows = append(t.rows, row)
	return row
}

func (t *table[T]) remove(i int) {
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

func (t *table[T]) snapshot() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

// MemoryStore keeps everything in process memory. It applies the same id,
// ordering, cascade and favourite rules as PostgresStore.
type MemoryStore struct {
	mu         sync.RWMutex
	users      table[models.User]
	characters table[models.Character]
	planets    table[models.Planet]
	vehicles   table[models.Vehicle]
	favourites table[models.Favourite]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Counts(context.Context) (Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Users:      len(s.users.rows),
		Characters: len(s.characters.rows),
		Planets:    len(s.planets.rows),
		Vehicles:   len(s.vehicles.rows),
		Favourites: len(s.favourites.rows),
	}, nil
}

func userID(u *models.User) int           { return u.ID }
func characterID(c *models.Character) int { return c.ID }
func planetID(p *models.Planet) int       { return p.ID }
func vehicleID(v *models.Vehicle) int     { return v.ID }
func favouriteID(f *models.Favourite) int { return f.ID }

// ── Users ────────────────────────────────────────────────

func (s *MemoryStore) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.snapshot(), nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.users.find(id, userID)
	if !ok {
		return nil, fmt.Errorf("get user: %w", ErrNotFound)
	}
	u := s.users.rows[i]
	return &u, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, in *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users.insert(*in, func(u *models.User, id int) { u.ID = id })
	return &u, nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.users.find(id, userID)
	if !ok {
		return fmt.Errorf("delete user: %w", ErrNotFound)
	}
	s.users.remove(i)
	s.cascade(func(f *models.Favourite) bool { return f.UserID == id })
	return nil
}

// ── Characters ───────────────────────────────────────────

func (s *MemoryStore) ListCharacters(context.Context) ([]models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.characters.snapshot(), nil
}

func (s *MemoryStore) GetCharacter(_ context.Context, id int) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.characters.find(id, characterID)
	if !ok {
		return nil, fmt.Errorf("get character: %w", ErrNotFound)
	}
	c := s.characters.rows[i]
	return &c, nil
}

func (s *MemoryStore) CreateCharacter(_ context.Context, in *models.Character) (*models.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.characters.insert(*in, func(c *models.Character, id int) { c.ID = id })
	return &c, nil
}

func (s *MemoryStore) DeleteCharacter(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.characters.find(id, characterID)
	if !ok {
		return fmt.Errorf("delete character: %w", ErrNotFound)
	}
	s.characters.remove(i)
	s.cascade(func(f *models.Favourite) bool { return f.Points(models.TargetCharacter, id) })
	return nil
}

// ── Planets ──────────────────────────────────────────────

func (s *MemoryStore) ListPlanets(context.Context) ([]models.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planets.snapshot(), nil
}

func (s *MemoryStore) GetPlanet(_ context.Context, id int) (*models.Planet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.planets.find(id, planetID)
	if !ok {
		return nil, fmt.Errorf("get planet: %w", ErrNotFound)
	}
	p := s.planets.rows[i]
	return &p, nil
}

func (s *MemoryStore) CreatePlanet(_ context.Context, in *models.Planet) (*models.Planet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.planets.insert(*in, func(p *models.Planet, id int) { p.ID = id })
	return &p, nil
}

func (s *MemoryStore) DeletePlanet(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.planets.find(id, planetID)
	if !ok {
		return fmt.Errorf("delete planet: %w", ErrNotFound)
	}
	s.planets.remove(i)
	s.cascade(func(f *models.Favourite) bool { return f.Points(models.TargetPlanet, id) })
	return nil
}

// ── Vehicles ─────────────────────────────────────────────

func (s *MemoryStore) ListVehicles(context.Context) ([]models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vehicles.snapshot(), nil
}

func (s *MemoryStore) GetVehicle(_ context.Context, id int) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.vehicles.find(id, vehicleID)
	if !ok {
		return nil, fmt.Errorf("get vehicle: %w", ErrNotFound)
	}
	v := s.vehicles.rows[i]
	return &v, nil
}

func (s *MemoryStore) CreateVehicle(_ context.Context, in *models.Vehicle) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vehicles.insert(*in, func(v *models.Vehicle, id int) { v.ID = id })
	return &v, nil
}

func (s *MemoryStore) DeleteVehicle(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.vehicles.find(id, vehicleID)
	if !ok {
		return fmt.Errorf("delete vehicle: %w", ErrNotFound)
	}
	s.vehicles.remove(i)
	s.cascade(func(f *models.Favourite) bool { return f.Points(models.TargetVehicle, id) })
	return nil
}

// ── Favourites ───────────────────────────────────────────

func (s *MemoryStore) ListFavourites(_ context.Context, uid int) ([]models.Favourite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Favourite{}
	for _, f := range s.favourites.rows {
		if f.UserID == uid {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListAllFavourites(context.Context) ([]models.Favourite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favourites.snapshot(), nil
}

func (s *MemoryStore) CreateFavourite(_ context.Context, in *models.Favourite) (*models.Favourite, error) {
	if in.Targets() != 1 {
		return nil, ErrInvalidFavourite
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users.find(in.UserID, userID); !ok {
		return nil, fmt.Errorf("create favourite: %w", ErrNotFound)
	}
	var found bool
	switch {
	case in.CharacterID != nil:
		_, found = s.characters.find(*in.CharacterID, characterID)
	case in.VehicleID != nil:
		_, found = s.vehicles.find(*in.VehicleID, vehicleID)
	case in.PlanetID != nil:
		_, found = s.planets.find(*in.PlanetID, planetID)
	}
	if !found {
		return nil, fmt.Errorf("create favourite: %w", ErrNotFound)
	}

	f := s.favourites.insert(*in, func(f *models.Favourite, id int) { f.ID = id })
	return &f, nil
}

func (s *MemoryStore) FindFavourite(_ context.Context, uid int, target models.Target, targetID int) (*models.Favourite, error) {
	switch target {
	case models.TargetCharacter, models.TargetVehicle, models.TargetPlanet:
	default:
		return nil, ErrInvalidFavourite
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.favourites.rows {
		if f.UserID == uid && f.Points(target, targetID) {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("find favourite: %w", ErrNotFound)
}

func (s *MemoryStore) DeleteFavourite(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.favourites.find(id, favouriteID)
	if !ok {
		return fmt.Errorf("delete favourite: %w", ErrNotFound)
	}
	s.favourites.remove(i)
	return nil
}

// cascade drops every favourite matching drop. Caller holds mu.
func (s *MemoryStore) cascade(drop func(*models.Favourite) bool) {
	kept := s.favourites.rows[:0]
	for i := range s.favourites.rows {
		if !drop(&s.favourites.rows[i]) {
			kept = append(kept, s.favourites.rows[i])
		}
	}
	s.favourites.rows = kept
}
