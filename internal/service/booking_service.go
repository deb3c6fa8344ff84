package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lemans/hotel-bookings/internal/domain"
	"github.com/lemans/hotel-bookings/internal/repository"
	"github.com/lemans/hotel-bookings/pkg/events"
	"github.com/lemans/hotel-bookings/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userEmail string, req *domain.BookingRequest) (*domain.Booking, error)
	ListByUserEmail(ctx context.Context, email string) ([]domain.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
	eventBus    events.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	catalogRepo repository.CatalogRepository,
	userRepo repository.UserRepository,
	eventBus events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		eventBus:    eventBus,
	}
}

func (s *bookingService) Create(ctx context.Context, userEmail string, req *domain.BookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
	}

	var room *domain.Room
	if req.RoomID != nil {
		room, err = s.catalogRepo.FindRoomByID(ctx, *req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to find room: %w", err)
		}
		if room == nil {
			return nil, fmt.Errorf("%w: room", domain.ErrNotFound)
		}
		if !room.Available {
			return nil, fmt.Errorf("%w: room is not available", domain.ErrValidation)
		}
	}

	var dish *domain.Dish
	if req.DishID != nil {
		dish, err = s.catalogRepo.FindDishByID(ctx, *req.DishID)
		if err != nil {
			return nil, fmt.Errorf("failed to find dish: %w", err)
		}
		if dish == nil {
			return nil, fmt.Errorf("%w: dish", domain.ErrNotFound)
		}
	}

	checkIn, checkOut := req.CheckIn(), req.CheckOut()
	nights := int(checkOut.Sub(checkIn).Hours() / 24)

	// Total cost is fixed at creation time: nights at the room rate plus
	// the per-person dish price. An absent room or dish contributes zero.
	var totalCost float64
	if room != nil {
		totalCost += float64(nights) * room.Price
	}
	if dish != nil {
		totalCost += float64(req.NoOfPerson) * dish.PricePerPerson
	}

	booking := &domain.Booking{
		Reference:    uuid.NewString(),
		Status:       domain.BookingPending,
		UserID:       &user.ID,
		RoomID:       req.RoomID,
		DishID:       req.DishID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		NumPersons:   req.NoOfPerson,
		TotalCost:    totalCost,
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:    created.ID,
		Reference:    created.Reference,
		UserEmail:    user.Email,
		RoomID:       created.RoomID,
		DishID:       created.DishID,
		CheckInDate:  created.CheckInDate,
		CheckOutDate: created.CheckOutDate,
		NumPersons:   created.NumPersons,
		TotalCost:    created.TotalCost,
		CreatedAt:    created.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", created.ID)
	}

	return created, nil
}

func (s *bookingService) ListByUserEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListByStatus(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	newStatus, ok := domain.ParseBookingStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	existing, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: booking", domain.ErrNotFound)
	}

	// Any recognized status may follow any other; no transition graph is
	// enforced.
	updated, err := s.bookingRepo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: booking", domain.ErrNotFound)
	}

	if existing.Status != updated.Status {
		event := events.BookingStatusChangedEvent{
			BookingID: updated.ID,
			OldStatus: string(existing.Status),
			NewStatus: string(updated.Status),
			ChangedAt: time.Now(),
		}
		if err := s.eventBus.Publish(ctx, events.BookingStatusChanged, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish booking status changed event", "error", err, "booking_id", updated.ID)
		}
	}

	return updated, nil
}
