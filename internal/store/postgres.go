package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/starwars-blog-api/internal/models"
)

// PostgresStore persists every entity in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Connect opens a pool against url and verifies it with a ping.
func Connect(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id    SERIAL PRIMARY KEY,
		name  VARCHAR(250) NOT NULL,
		email VARCHAR(250) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS "character" (
		id          SERIAL PRIMARY KEY,
		name        VARCHAR(250) NOT NULL,
		description VARCHAR(250),
		race        VARCHAR(250)
	)`,
	`CREATE TABLE IF NOT EXISTS planet (
		id      SERIAL PRIMARY KEY,
		name    VARCHAR(250) NOT NULL,
		climate VARCHAR(250),
		terrain VARCHAR(250)
	)`,
	`CREATE TABLE IF NOT EXISTS vehicle (
		id              SERIAL PRIMARY KEY,
		name            VARCHAR(250) NOT NULL,
		model           VARCHAR(250),
		manufacturer    VARCHAR(250),
		cost_in_credits VARCHAR(250),
		max_speed       INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS favourite (
		id           SERIAL PRIMARY KEY,
		character_id INTEGER REFERENCES "character"(id) ON DELETE CASCADE,
		vehicle_id   INTEGER REFERENCES vehicle(id) ON DELETE CASCADE,
		planet_id    INTEGER REFERENCES planet(id) ON DELETE CASCADE,
		user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT favourite_one_target CHECK (num_nonnulls(character_id, vehicle_id, planet_id) = 1)
	)`,
	`CREATE INDEX IF NOT EXISTS favourite_user_id_idx ON favourite (user_id)`,
	// databases created before cost became free text
	`ALTER TABLE vehicle ALTER COLUMN cost_in_credits TYPE VARCHAR(250)`,
}

// Migrate creates the schema if it doesn't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM "character"),
			(SELECT count(*) FROM planet),
			(SELECT count(*) FROM vehicle),
			(SELECT count(*) FROM favourite)`,
	).Scan(&c.Users, &c.Characters, &c.Planets, &c.Vehicles, &c.Favourites)
	if err != nil {
		return Counts{}, fmt.Errorf("count rows: %w", err)
	}
	return c, nil
}

// ── Users ────────────────────────────────────────────────

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, s.pool, "list users",
		`SELECT id, name, email FROM users ORDER BY id`)
}

func (s *PostgresStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		return nil, wrap("get user", err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, in *models.User) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email)
		 VALUES ($1, $2)
		 RETURNING id, name, email`,
		in.Name, in.Email,
	).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		return nil, wrap("create user", err)
	}
	return &u, nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int) error {
	return s.delete(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

// ── Characters ───────────────────────────────────────────

func (s *PostgresStore) ListCharacters(ctx context.Context) ([]models.Character, error) {
	return list[models.Character](ctx, s.pool, "list characters",
		`SELECT id, name, description, race FROM "character" ORDER BY id`)
}

func (s *PostgresStore) GetCharacter(ctx context.Context, id int) (*models.Character, error) {
	var c models.Character
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, race FROM "character" WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Race)
	if err != nil {
		return nil, wrap("get character", err)
	}
	return &c, nil
}

func (s *PostgresStore) CreateCharacter(ctx context.Context, in *models.Character) (*models.Character, error) {
	var c models.Character
	err := s.pool.QueryRow(ctx,
		`INSERT INTO "character" (name, description, race)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, description, race`,
		in.Name, in.Description, in.Race,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Race)
	if err != nil {
		return nil, wrap("create character", err)
	}
	return &c, nil
}

func (s *PostgresStore) DeleteCharacter(ctx context.Context, id int) error {
	return s.delete(ctx, "delete character", `DELETE FROM "character" WHERE id = $1`, id)
}

// ── Planets ──────────────────────────────────────────────

func (s *PostgresStore) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	return list[models.Planet](ctx, s.pool, "list planets",
		`SELECT id, name, climate, terrain FROM planet ORDER BY id`)
}

func (s *PostgresStore) GetPlanet(ctx context.Context, id int) (*models.Planet, error) {
	var p models.Planet
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, climate, terrain FROM planet WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Climate, &p.Terrain)
	if err != nil {
		return nil, wrap("get planet", err)
	}
	return &p, nil
}

func (s *PostgresStore) CreatePlanet(ctx context.Context, in *models.Planet) (*models.Planet, error) {
	var p models.Planet
	err := s.pool.QueryRow(ctx,
		`INSERT INTO planet (name, climate, terrain)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, climate, terrain`,
		in.Name, in.Climate, in.Terrain,
	).Scan(&p.ID, &p.Name, &p.Climate, &p.Terrain)
	if err != nil {
		return nil, wrap("create planet", err)
	}
	return &p, nil
}

func (s *PostgresStore) DeletePlanet(ctx context.Context, id int) error {
	return s.delete(ctx, "delete planet", `DELETE FROM planet WHERE id = $1`, id)
}

// ── Vehicles ─────────────────────────────────────────────

const vehicleColumns = `id, name, model, manufacturer, cost_in_credits, max_speed`

func (s *PostgresStore) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return list[models.Vehicle](ctx, s.pool, "list vehicles",
		`SELECT `+vehicleColumns+` FROM vehicle ORDER BY id`)
}

func (s *PostgresStore) GetVehicle(ctx context.Context, id int) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicle WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Model, &v.Manufacturer, &v.CostInCredits, &v.MaxSpeed)
	if err != nil {
		return nil, wrap("get vehicle", err)
	}
	return &v, nil
}

func (s *PostgresStore) CreateVehicle(ctx context.Context, in *models.Vehicle) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.pool.QueryRow(ctx,
		`INSERT INTO vehicle (name, model, manufacturer, cost_in_credits, max_speed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+vehicleColumns,
		in.Name, in.Model, in.Manufacturer, in.CostInCredits, in.MaxSpeed,
	).Scan(&v.ID, &v.Name, &v.Model, &v.Manufacturer, &v.CostInCredits, &v.MaxSpeed)
	if err != nil {
		return nil, wrap("create vehicle", err)
	}
	return &v, nil
}

func (s *PostgresStore) DeleteVehicle(ctx context.Context, id int) error {
	return s.delete(ctx, "delete vehicle", `DELETE FROM vehicle WHERE id = $1`, id)
}

// ── Favourites ───────────────────────────────────────────

const favouriteColumns = `id, character_id, vehicle_id, planet_id, user_id`

func (s *PostgresStore) ListFavourites(ctx context.Context, userID int) ([]models.Favourite, error) {
	return list[models.Favourite](ctx, s.pool, "list favourites",
		`SELECT `+favouriteColumns+` FROM favourite WHERE user_id = $1 ORDER BY id`, userID)
}

func (s *PostgresStore) ListAllFavourites(ctx context.Context) ([]models.Favourite, error) {
	return list[models.Favourite](ctx, s.pool, "list all favourites",
		`SELECT `+favouriteColumns+` FROM favourite ORDER BY id`)
}

func (s *PostgresStore) CreateFavourite(ctx context.Context, in *models.Favourite) (*models.Favourite, error) {
	if in.Targets() != 1 {
		return nil, ErrInvalidFavourite
	}
	var f models.Favourite
	err := s.pool.QueryRow(ctx,
		`INSERT INTO favourite (character_id, vehicle_id, planet_id, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+favouriteColumns,
		in.CharacterID, in.VehicleID, in.PlanetID, in.UserID,
	).Scan(&f.ID, &f.CharacterID, &f.VehicleID, &f.PlanetID, &f.UserID)
	if err != nil {
		return nil, wrap("create favourite", err)
	}
	return &f, nil
}

func (s *PostgresStore) FindFavourite(ctx context.Context, userID int, target models.Target, targetID int) (*models.Favourite, error) {
	var column string
	switch target {
	case models.TargetCharacter:
		column = "character_id"
	case models.TargetVehicle:
		column = "vehicle_id"
	case models.TargetPlanet:
		column = "planet_id"
	default:
		return nil, ErrInvalidFavourite
	}

	var f models.Favourite
	err := s.pool.QueryRow(ctx,
		`SELECT `+favouriteColumns+` FROM favourite
		 WHERE user_id = $1 AND `+column+` = $2
		 ORDER BY id LIMIT 1`,
		userID, targetID,
	).Scan(&f.ID, &f.CharacterID, &f.VehicleID, &f.PlanetID, &f.UserID)
	if err != nil {
		return nil, wrap("find favourite", err)
	}
	return &f, nil
}

func (s *PostgresStore) DeleteFavourite(ctx context.Context, id int) error {
	return s.delete(ctx, "delete favourite", `DELETE FROM favourite WHERE id = $1`, id)
}

// ── helpers ──────────────────────────────────────────────

func (s *PostgresStore) delete(ctx context.Context, op, sql string, id int) error {
	tag, err := s.pool.Exec(ctx, sql, id)
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func list[T any](ctx context.Context, pool *pgxpool.Pool, op, sql string, args ...any) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, wrap(op, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// wrap maps driver errors onto the package sentinels.
func wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", op, ErrInvalidFavourite)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
