package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/geom"
)

// ErrZoneNotFound is returned by Delete for an unknown zone.
var ErrZoneNotFound = errors.New("zone not found")

// ZoneRepository stores zone models in zones, zone_points and zone_adjacencies.
type ZoneRepository struct {
	db *pgxpool.Pool
}

// NewZoneRepository creates a new ZoneRepository.
func NewZoneRepository(db *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// zoneRow — одна строка таблицы zones.
type zoneRow struct {
	id                       int
	name, shortName, useCase string
	centerX, centerY         float64
	spawnX, spawnY, spawnZ   float64
	minHeight, maxHeight     *float64
	shape                    string
	radius, sizeX, sizeY     *float64
}

// LoadAll loads every zone ordered by id. Each model is validated; a broken
// row fails the whole load.
func (r *ZoneRepository) LoadAll(ctx context.Context) ([]zone.Model, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, short_name, use_case, center_x, center_y,
		       spawn_x, spawn_y, spawn_z, min_height, max_height,
		       shape, radius, size_x, size_y
		FROM zones
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying zones: %w", err)
	}
	defer rows.Close()

	var models []zone.Model
	index := make(map[int]int)
	for rows.Next() {
		var z zoneRow
		if err := rows.Scan(&z.id, &z.name, &z.shortName, &z.useCase, &z.centerX, &z.centerY,
			&z.spawnX, &z.spawnY, &z.spawnZ, &z.minHeight, &z.maxHeight,
			&z.shape, &z.radius, &z.sizeX, &z.sizeY); err != nil {
			return nil, fmt.Errorf("scanning zone row: %w", err)
		}
		m, err := z.model()
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(models)
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone rows: %w", err)
	}

	if err := r.loadPoints(ctx, models, index); err != nil {
		return nil, err
	}
	if err := r.loadAdjacencies(ctx, models, index); err != nil {
		return nil, err
	}

	for i := range models {
		if err := models[i].Validate(); err != nil {
			return nil, fmt.Errorf("loading zones: %w", err)
		}
	}

	slog.Info("loaded zones from database", "count", len(models))
	return models, nil
}

func (z zoneRow) model() (zone.Model, error) {
	m := zone.Model{
		ID:        z.id,
		Name:      z.name,
		ShortName: z.shortName,
		Center:    geom.Vec2{X: z.centerX, Y: z.centerY},
		Spawn:     geom.Vec3{X: z.spawnX, Y: z.spawnY, Z: z.spawnZ},
		MinHeight: z.minHeight,
		MaxHeight: z.maxHeight,
	}
	if err := m.UseCase.UnmarshalText([]byte(z.useCase)); err != nil {
		return m, fmt.Errorf("zone %d: %w", z.id, err)
	}

	switch z.shape {
	case "circle":
		if z.radius == nil {
			return m, fmt.Errorf("zone %d: circle without radius", z.id)
		}
		m.Circle = &zone.CircleData{Radius: *z.radius}
	case "rectangle":
		if z.sizeX == nil || z.sizeY == nil {
			return m, fmt.Errorf("zone %d: rectangle without size", z.id)
		}
		m.Rectangle = &zone.RectangleData{SizeX: *z.sizeX, SizeY: *z.sizeY}
	case "polygon":
		m.Polygon = &zone.PolygonData{}
	default:
		return m, fmt.Errorf("zone %d: unknown shape %q", z.id, z.shape)
	}
	return m, nil
}

func (r *ZoneRepository) loadPoints(ctx context.Context, models []zone.Model, index map[int]int) error {
	rows, err := r.db.Query(ctx, `SELECT zone_id, x, y FROM zone_points ORDER BY zone_id, seq`)
	if err != nil {
		return fmt.Errorf("querying zone points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id int
			p  geom.Vec2
		)
		if err := rows.Scan(&id, &p.X, &p.Y); err != nil {
			return fmt.Errorf("scanning zone point: %w", err)
		}
		i, ok := index[id]
		if !ok || models[i].Polygon == nil {
			continue
		}
		models[i].Polygon.Points = append(models[i].Polygon.Points, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating zone points: %w", err)
	}
	return nil
}

func (r *ZoneRepository) loadAdjacencies(ctx context.Context, models []zone.Model, index map[int]int) error {
	rows, err := r.db.Query(ctx, `SELECT zone_id, target_id, weight FROM zone_adjacencies ORDER BY zone_id, seq`)
	if err != nil {
		return fmt.Errorf("querying zone adjacencies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  int
			adj zone.Adjacency
		)
		if err := rows.Scan(&id, &adj.TargetID, &adj.Weight); err != nil {
			return fmt.Errorf("scanning zone adjacency: %w", err)
		}
		if i, ok := index[id]; ok {
			models[i].Adjacencies = append(models[i].Adjacencies, adj)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating zone adjacencies: %w", err)
	}
	return nil
}

// SaveTx upserts a zone and replaces its points and adjacencies within an
// existing transaction.
func (r *ZoneRepository) SaveTx(ctx context.Context, tx pgx.Tx, m zone.Model) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var (
		shape                string
		radius, sizeX, sizeY *float64
	)
	switch m.Kind() {
	case zone.KindCircle:
		shape, radius = "circle", &m.Circle.Radius
	case zone.KindRectangle:
		shape, sizeX, sizeY = "rectangle", &m.Rectangle.SizeX, &m.Rectangle.SizeY
	case zone.KindPolygon:
		shape = "polygon"
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO zones (id, name, short_name, use_case, center_x, center_y,
		                   spawn_x, spawn_y, spawn_z, min_height, max_height,
		                   shape, radius, size_x, size_y, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			use_case = EXCLUDED.use_case,
			center_x = EXCLUDED.center_x,
			center_y = EXCLUDED.center_y,
			spawn_x = EXCLUDED.spawn_x,
			spawn_y = EXCLUDED.spawn_y,
			spawn_z = EXCLUDED.spawn_z,
			min_height = EXCLUDED.min_height,
			max_height = EXCLUDED.max_height,
			shape = EXCLUDED.shape,
			radius = EXCLUDED.radius,
			size_x = EXCLUDED.size_x,
			size_y = EXCLUDED.size_y,
			updated_at = now()
	`, m.ID, m.Name, m.ShortName, m.UseCase.String(), m.Center.X, m.Center.Y,
		m.Spawn.X, m.Spawn.Y, m.Spawn.Z, m.MinHeight, m.MaxHeight,
		shape, radius, sizeX, sizeY)
	if err != nil {
		return fmt.Errorf("upserting zone %d: %w", m.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM zone_points WHERE zone_id = $1`, m.ID); err != nil {
		return fmt.Errorf("deleting points of zone %d: %w", m.ID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM zone_adjacencies WHERE zone_id = $1`, m.ID); err != nil {
		return fmt.Errorf("deleting adjacencies of zone %d: %w", m.ID, err)
	}

	if m.Polygon != nil {
		for i, p := range m.Polygon.Points {
			if _, err := tx.Exec(ctx,
				`INSERT INTO zone_points (zone_id, seq, x, y) VALUES ($1, $2, $3, $4)`,
				m.ID, i, p.X, p.Y,
			); err != nil {
				return fmt.Errorf("inserting point %d of zone %d: %w", i, m.ID, err)
			}
		}
	}
	for i, adj := range m.Adjacencies {
		if _, err := tx.Exec(ctx,
			`INSERT INTO zone_adjacencies (zone_id, seq, target_id, weight) VALUES ($1, $2, $3, $4)`,
			m.ID, i, adj.TargetID, adj.Weight,
		); err != nil {
			return fmt.Errorf("inserting adjacency %d of zone %d: %w", adj.TargetID, m.ID, err)
		}
	}

	return nil
}

// Save saves one zone using a standalone transaction.
func (r *ZoneRepository) Save(ctx context.Context, m zone.Model) error {
	return r.SaveAll(ctx, []zone.Model{m})
}

// SaveAll saves zones in one transaction: either all of them land or none.
func (r *ZoneRepository) SaveAll(ctx context.Context, models []zone.Model) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("zone rollback failed", "zones", len(models), "error", err)
		}
	}()

	for _, m := range models {
		if err := r.SaveTx(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing zone save: %w", err)
	}
	return nil
}

// Delete removes a zone with its points and adjacencies.
func (r *ZoneRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting zone %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting zone %d: %w", id, ErrZoneNotFound)
	}
	return nil
}
