package service

import (
	"context"
	"fmt"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/repository"
)

type CatalogService interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	CreateRoom(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error)
	SetRoomAvailability(ctx context.Context, id int64, available bool) (*domain.Room, error)
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	CreateDish(ctx context.Context, req *domain.CreateDishRequest) (*domain.Dish, error)
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	CreateOffer(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.catalogRepo.ListRooms(ctx)
}

func (s *catalogService) CreateRoom(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateRoom(ctx, req)
}

func (s *catalogService) SetRoomAvailability(ctx context.Context, id int64, available bool) (*domain.Room, error) {
	room, err := s.catalogRepo.SetRoomAvailability(ctx, id, available)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: room", domain.ErrNotFound)
	}
	return room, nil
}

func (s *catalogService) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	return s.catalogRepo.ListDishes(ctx)
}

func (s *catalogService) CreateDish(ctx context.Context, req *domain.CreateDishRequest) (*domain.Dish, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateDish(ctx, req)
}

func (s *catalogService) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	return s.catalogRepo.ListOffers(ctx)
}

func (s *catalogService) CreateOffer(ctx context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.catalogRepo.CreateOffer(ctx, req)
}
