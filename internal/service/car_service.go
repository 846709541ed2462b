package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/ports"
)

type carService struct {
	repo ports.CarRepository
	log  *zap.Logger
}

func NewCarService(repo ports.CarRepository, log *zap.Logger) *carService {
	return &carService{repo: repo, log: log}
}

func (s *carService) CreateCar(ctx context.Context, req *models.CarRequest) (*models.Car, error) {
	car := &models.Car{
		Make:           req.Make,
		Model:          req.Model,
		Available:      req.Available,
		DailyRateCents: req.DailyRateCents,
	}

	saved, err := s.repo.CreateCar(ctx, car)
	if err != nil {
		s.log.Error("store failure", zap.String("op", "creating car"), zap.Error(err))
		return nil, fmt.Errorf("creating car: %w", models.ErrStore)
	}

	s.log.Info("car added", zap.String("car_id", saved.ID.String()))
	return saved, nil
}

func (s *carService) ListCars(ctx context.Context) ([]models.Car, error) {
	cars, err := s.repo.ListCars(ctx)
	if err != nil {
		s.log.Error("store failure", zap.String("op", "listing cars"), zap.Error(err))
		return nil, fmt.Errorf("listing cars: %w", models.ErrStore)
	}
	return cars, nil
}
