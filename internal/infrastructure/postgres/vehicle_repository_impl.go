package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/pkg/apperr"
)

type VehicleRepository struct {
	pool Querier
}

func NewVehicleRepository(pool Querier) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

const vehicleColumns = `
	id, dealer_id, make, model, year, price_per_day,
	transmission, fuel, seats, city, photo_urls, created_at, updated_at`

func (r *VehicleRepository) Create(v *entity.Vehicle) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO vehicles (dealer_id, make, model, year, price_per_day,
			transmission, fuel, seats, city, photo_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, v.DealerID, v.Make, v.Model, v.Year, v.PricePerDay,
		v.Transmission, v.Fuel, v.Seats, v.City, v.PhotoURLs)

	return row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VehicleRepository) GetByID(id string) (*entity.Vehicle, error) {
	ctx := context.Background()
	v := &entity.Vehicle{}
	row := r.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	if err := scanVehicle(row, v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VehicleRepository) ListByDealer(dealerID string, limit, offset int) ([]*entity.Vehicle, error) {
	ctx := context.Background()
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE dealer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, dealerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Vehicle
	for rows.Next() {
		v := &entity.Vehicle{}
		if err := scanVehicle(rows, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VehicleRepository) Update(v *entity.Vehicle) error {
	ctx := context.Background()
	v.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, price_per_day = $4,
		    transmission = $5, fuel = $6, seats = $7, city = $8,
		    photo_urls = $9, updated_at = $10
		WHERE id = $11
	`, v.Make, v.Model, v.Year, v.PricePerDay,
		v.Transmission, v.Fuel, v.Seats, v.City, v.PhotoURLs, v.UpdatedAt, v.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row, v *entity.Vehicle) error {
	return row.Scan(
		&v.ID, &v.DealerID, &v.Make, &v.Model, &v.Year, &v.PricePerDay,
		&v.Transmission, &v.Fuel, &v.Seats, &v.City, &v.PhotoURLs,
		&v.CreatedAt, &v.UpdatedAt,
	)
}
