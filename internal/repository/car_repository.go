package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
)

type CarRepository struct {
	db DBConn
}

func NewCarRepository(db DBConn) *CarRepository {
	return &CarRepository{db: db}
}

const carColumns = "id, make, model, available, daily_rate_cents, created_at"

func (r *CarRepository) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	car.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO cars (id, make, model, available, daily_rate_cents, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		car.ID, car.Make, car.Model, car.Available, car.DailyRateCents, car.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *CarRepository) GetCarByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	query := "SELECT " + carColumns + " FROM cars WHERE id = $1"
	var c models.Car
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Make, &c.Model, &c.Available, &c.DailyRateCents, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCarNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CarRepository) ListCars(ctx context.Context) ([]models.Car, error) {
	query := "SELECT " + carColumns + " FROM cars ORDER BY created_at, id"
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		var c models.Car
		err := rows.Scan(&c.ID, &c.Make, &c.Model, &c.Available, &c.DailyRateCents, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
