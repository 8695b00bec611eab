package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelina-cafes/cafewifi/internal/model"
)

// CafeRepo encapsulates all database queries related to cafés.
type CafeRepo struct {
	db *sql.DB
}

// NewCafeRepo constructs a CafeRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewCafeRepo(db *sql.DB) *CafeRepo {
	return &CafeRepo{db: db}
}

const cafeColumns = `id, name, map_url, img_url, location,
	has_sockets, has_toilet, has_wifi, can_take_calls, seats, coffee_price`

// scanCafe reads one café row. Seats and coffee price are nullable in
// the schema; NULL scans to the empty string, which the rest of the
// application treats as "unknown".
func scanCafe(row interface{ Scan(...any) error }) (*model.Cafe, error) {
	var (
		c      model.Cafe
		seats  sql.NullString
		coffee sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.MapURL, &c.ImgURL, &c.Location,
		&c.HasSockets, &c.HasToilet, &c.HasWifi, &c.CanTakeCalls, &seats, &coffee)
	if err != nil {
		return nil, err
	}
	c.Seats = seats.String
	c.CoffeePrice = coffee.String
	return &c, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a new café. On success the ID field is populated with
// the auto-generated value. A name collision returns ErrCafeNameExists
// and leaves the table unchanged.
func (r *CafeRepo) Create(ctx context.Context, c *model.Cafe) error {
	const q = `INSERT INTO cafes
		(name, map_url, img_url, location, has_sockets, has_toilet, has_wifi, can_take_calls, seats, coffee_price)
		VALUES (?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.MapURL, c.ImgURL, c.Location,
		c.HasSockets, c.HasToilet, c.HasWifi, c.CanTakeCalls,
		nullable(c.Seats), nullable(c.CoffeePrice))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCafeNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetByID fetches a café by id. Returns ErrCafeNotFound when no row matches.
func (r *CafeRepo) GetByID(ctx context.Context, id int64) (*model.Cafe, error) {
	const q = `SELECT ` + cafeColumns + ` FROM cafes WHERE id = ?`
	c, err := scanCafe(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCafeNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByName fetches a café by its unique name. Returns ErrCafeNotFound
// when no row matches.
func (r *CafeRepo) GetByName(ctx context.Context, name string) (*model.Cafe, error) {
	const q = `SELECT ` + cafeColumns + ` FROM cafes WHERE name = ? LIMIT 1`
	c, err := scanCafe(r.db.QueryRowContext(ctx, q, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCafeNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns all cafés in insertion order.
func (r *CafeRepo) List(ctx context.Context) ([]*model.Cafe, error) {
	const q = `SELECT ` + cafeColumns + ` FROM cafes ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Cafe
	for rows.Next() {
		c, err := scanCafe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update persists in-place mutation of an already-loaded café. Returns
// ErrCafeNotFound when the id no longer exists and ErrCafeNameExists
// when renaming collides with another café.
func (r *CafeRepo) Update(ctx context.Context, c *model.Cafe) error {
	const q = `UPDATE cafes SET
		name = ?, map_url = ?, img_url = ?, location = ?,
		has_sockets = ?, has_toilet = ?, has_wifi = ?, can_take_calls = ?,
		seats = ?, coffee_price = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.MapURL, c.ImgURL, c.Location,
		c.HasSockets, c.HasToilet, c.HasWifi, c.CanTakeCalls,
		nullable(c.Seats), nullable(c.CoffeePrice), c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCafeNameExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCafeNotFound
	}
	return nil
}

// Delete removes a café permanently. Returns ErrCafeNotFound when the
// id does not exist.
func (r *CafeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cafes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCafeNotFound
	}
	return nil
}
