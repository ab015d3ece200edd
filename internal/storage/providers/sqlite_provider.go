package providers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/model"
	"github.com/ja-he/tripplan/internal/storage"

	_ "modernc.org/sqlite"
)

// SQLiteProvider stores points and reference data in a local SQLite file.
type SQLiteProvider struct {
	db   *sql.DB
	path string
}

// NewSQLiteProvider opens (creating if needed) the database at the given path
// and migrates it.
func NewSQLiteProvider(ctx context.Context, path string) (*SQLiteProvider, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create database directory (%w)", err)
	}

	// the modernc driver registers as "sqlite"
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database '%s' (%w)", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("could not set '%s' (%w)", p, err)
		}
	}

	provider := &SQLiteProvider{db: db, path: path}
	if err := provider.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not migrate database '%s' (%w)", path, err)
	}
	log.Debug().Str("path", path).Msg("opened sqlite backend")
	return provider, nil
}

func (p *SQLiteProvider) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS points (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			date_from TEXT NOT NULL,
			date_to TEXT NOT NULL,
			destination TEXT NOT NULL,
			base_price INTEGER NOT NULL,
			is_favorite INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS point_offers (
			point_id TEXT NOT NULL REFERENCES points(id) ON DELETE CASCADE,
			offer_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY(point_id, offer_id)
		);`,
		`CREATE TABLE IF NOT EXISTS destinations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			pictures_json TEXT NOT NULL,
			latitude REAL,
			longitude REAL
		);`,
		`CREATE TABLE IF NOT EXISTS offers (
			type TEXT NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			price INTEGER NOT NULL,
			PRIMARY KEY(type, id)
		);`,
	}
	for _, st := range stmts {
		if _, err := p.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Seed replaces the reference data with the given one.
func (p *SQLiteProvider) Seed(ctx context.Context, ref storage.ReferenceData) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction (%w)", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM destinations`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM offers`); err != nil {
		return err
	}

	for _, d := range ref.Destinations {
		pictures, marshalErr := json.Marshal(d.Pictures)
		if marshalErr != nil {
			err = marshalErr
			return fmt.Errorf("could not marshal pictures of '%s' (%w)", d.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO destinations (id, name, description, pictures_json, latitude, longitude) VALUES (?, ?, ?, ?, ?, ?)`,
			string(d.ID), d.Name, d.Description, string(pictures), nullFloat(d.Latitude), nullFloat(d.Longitude),
		)
		if err != nil {
			return fmt.Errorf("could not insert destination '%s' (%w)", d.ID, err)
		}
	}
	for _, group := range ref.Offers {
		for _, o := range group.Offers {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO offers (type, id, title, price) VALUES (?, ?, ?, ?)`,
				string(group.Type), string(o.ID), o.Title, o.Price,
			)
			if err != nil {
				return fmt.Errorf("could not insert offer '%s' (%w)", o.ID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit reference data (%w)", err)
	}
	log.Info().Int("destinations", len(ref.Destinations)).Int("offer-groups", len(ref.Offers)).Msg("seeded reference data")
	return nil
}

// GetPoints returns all points in insertion order.
func (p *SQLiteProvider) GetPoints(ctx context.Context) ([]model.Point, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, type, date_from, date_to, destination, base_price, is_favorite FROM points ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not query points (%w)", err)
	}
	defer rows.Close()

	result := []model.Point{}
	index := map[model.PointID]int{}
	for rows.Next() {
		var (
			point    model.Point
			from, to string
			favorite int
		)
		if err := rows.Scan(&point.ID, &point.Type, &from, &to, &point.Destination, &point.BasePrice, &favorite); err != nil {
			return nil, fmt.Errorf("could not scan point (%w)", err)
		}
		if point.Start, err = time.Parse(time.RFC3339Nano, from); err != nil {
			return nil, fmt.Errorf("point '%s' has malformed start (%w)", point.ID, err)
		}
		if point.End, err = time.Parse(time.RFC3339Nano, to); err != nil {
			return nil, fmt.Errorf("point '%s' has malformed end (%w)", point.ID, err)
		}
		point.IsFavorite = favorite != 0
		point.Offers = []model.OfferID{}
		index[point.ID] = len(result)
		result = append(result, point)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	offerRows, err := p.db.QueryContext(ctx, `SELECT point_id, offer_id FROM point_offers ORDER BY point_id, position`)
	if err != nil {
		return nil, fmt.Errorf("could not query point offers (%w)", err)
	}
	defer offerRows.Close()
	for offerRows.Next() {
		var pointID model.PointID
		var offerID model.OfferID
		if err := offerRows.Scan(&pointID, &offerID); err != nil {
			return nil, fmt.Errorf("could not scan point offer (%w)", err)
		}
		if i, ok := index[pointID]; ok {
			result[i].Offers = append(result[i].Offers, offerID)
		}
	}
	return result, offerRows.Err()
}

// GetDestinations returns all destinations.
func (p *SQLiteProvider) GetDestinations(ctx context.Context) ([]model.Destination, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, description, pictures_json, latitude, longitude FROM destinations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not query destinations (%w)", err)
	}
	defer rows.Close()

	result := []model.Destination{}
	for rows.Next() {
		var (
			d        model.Destination
			pictures string
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &pictures, &lat, &lon); err != nil {
			return nil, fmt.Errorf("could not scan destination (%w)", err)
		}
		if err := json.Unmarshal([]byte(pictures), &d.Pictures); err != nil {
			return nil, fmt.Errorf("destination '%s' has malformed pictures (%w)", d.ID, err)
		}
		if lat.Valid && lon.Valid {
			d.Latitude, d.Longitude = &lat.Float64, &lon.Float64
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// GetOffers returns the offers grouped by point type, in insertion order.
func (p *SQLiteProvider) GetOffers(ctx context.Context) ([]model.OfferGroup, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT type, id, title, price FROM offers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not query offers (%w)", err)
	}
	defer rows.Close()

	result := []model.OfferGroup{}
	index := map[model.PointType]int{}
	for rows.Next() {
		var t model.PointType
		var o model.Offer
		if err := rows.Scan(&t, &o.ID, &o.Title, &o.Price); err != nil {
			return nil, fmt.Errorf("could not scan offer (%w)", err)
		}
		i, ok := index[t]
		if !ok {
			i = len(result)
			index[t] = i
			result = append(result, model.OfferGroup{Type: t})
		}
		result[i].Offers = append(result[i].Offers, o)
	}
	return result, rows.Err()
}

// UpdatePoint replaces the stored point with the same ID.
func (p *SQLiteProvider) UpdatePoint(ctx context.Context, point model.Point) (model.Point, error) {
	if err := point.Validate(); err != nil {
		return model.Point{}, fmt.Errorf("invalid point (%w)", err)
	}
	err := p.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE points SET type = ?, date_from = ?, date_to = ?, destination = ?, base_price = ?, is_favorite = ? WHERE id = ?`,
			string(point.Type), formatTime(point.Start), formatTime(point.End), string(point.Destination), point.BasePrice, boolInt(point.IsFavorite), string(point.ID),
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("cannot update '%s' (%w)", point.ID, storage.ErrNotFound)
		}
		return writeOffers(ctx, tx, point)
	})
	if err != nil {
		return model.Point{}, err
	}
	return point.Clone(), nil
}

// AddPoint stores the point under a new ID.
func (p *SQLiteProvider) AddPoint(ctx context.Context, point model.Point) (model.Point, error) {
	if err := point.Validate(); err != nil {
		return model.Point{}, fmt.Errorf("invalid point (%w)", err)
	}
	added := point.Clone()
	added.ID = model.PointID(uuid.NewString())

	err := p.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO points (id, type, date_from, date_to, destination, base_price, is_favorite) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(added.ID), string(added.Type), formatTime(added.Start), formatTime(added.End), string(added.Destination), added.BasePrice, boolInt(added.IsFavorite),
		)
		if err != nil {
			return err
		}
		return writeOffers(ctx, tx, added)
	})
	if err != nil {
		return model.Point{}, err
	}
	return added, nil
}

// DeletePoint removes the point and its selected offers.
func (p *SQLiteProvider) DeletePoint(ctx context.Context, id model.PointID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM points WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("could not delete '%s' (%w)", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("cannot delete '%s' (%w)", id, storage.ErrNotFound)
	}
	return nil
}

// Close closes the database.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

func (p *SQLiteProvider) inTx(ctx context.Context, f func(*sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction (%w)", err)
	}
	if err := f(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Warn().Err(rbErr).Msg("rollback failed")
		}
		return err
	}
	return tx.Commit()
}

func writeOffers(ctx context.Context, tx *sql.Tx, point model.Point) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM point_offers WHERE point_id = ?`, string(point.ID)); err != nil {
		return err
	}
	for i, offer := range point.Offers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO point_offers (point_id, offer_id, position) VALUES (?, ?, ?)`,
			string(point.ID), string(offer), i,
		)
		if err != nil {
			return fmt.Errorf("could not store offer '%s' of '%s' (%w)", offer, point.ID, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string { return t.Format(time.RFC3339Nano) }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
