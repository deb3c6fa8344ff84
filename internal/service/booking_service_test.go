package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lemans/hotel-bookings/internal/domain"
)

// ---------- Mocks ----------

type mockCatalogRepo struct {
	rooms  map[int64]*domain.Room
	dishes map[int64]*domain.Dish
	offers []domain.Offer
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		rooms:  make(map[int64]*domain.Room),
		dishes: make(map[int64]*domain.Dish),
	}
}

func (m *mockCatalogRepo) ListRooms(_ context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	for _, r := range m.rooms {
		rooms = append(rooms, *r)
	}
	return rooms, nil
}

func (m *mockCatalogRepo) FindRoomByID(_ context.Context, id int64) (*domain.Room, error) {
	return m.rooms[id], nil
}

func (m *mockCatalogRepo) CreateRoom(_ context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	id := int64(len(m.rooms) + 1)
	room := &domain.Room{ID: id, RoomType: req.RoomType, Price: req.Price, Available: req.Available, CreatedAt: time.Now()}
	m.rooms[id] = room
	return room, nil
}

func (m *mockCatalogRepo) SetRoomAvailability(_ context.Context, id int64, available bool) (*domain.Room, error) {
	room := m.rooms[id]
	if room == nil {
		return nil, nil
	}
	room.Available = available
	return room, nil
}

func (m *mockCatalogRepo) ListDishes(_ context.Context) ([]domain.Dish, error) {
	var dishes []domain.Dish
	for _, d := range m.dishes {
		dishes = append(dishes, *d)
	}
	return dishes, nil
}

func (m *mockCatalogRepo) FindDishByID(_ context.Context, id int64) (*domain.Dish, error) {
	return m.dishes[id], nil
}

func (m *mockCatalogRepo) CreateDish(_ context.Context, req *domain.CreateDishRequest) (*domain.Dish, error) {
	id := int64(len(m.dishes) + 1)
	dish := &domain.Dish{ID: id, CuisineName: req.CuisineName, PricePerPerson: req.PricePerPerson, CreatedAt: time.Now()}
	m.dishes[id] = dish
	return dish, nil
}

func (m *mockCatalogRepo) ListOffers(_ context.Context) ([]domain.Offer, error) {
	return m.offers, nil
}

func (m *mockCatalogRepo) CreateOffer(_ context.Context, req *domain.CreateOfferRequest) (*domain.Offer, error) {
	offer := domain.Offer{ID: int64(len(m.offers) + 1), Title: req.Title, Description: req.Description, CreatedAt: time.Now()}
	m.offers = append(m.offers, offer)
	return &offer, nil
}

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking
	nextID   int64
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.nextID++
	stored := *b
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.bookings[stored.ID] = &stored
	return &stored, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b := m.bookings[id]
	if b == nil {
		return nil, nil
	}
	// Return a snapshot so later in-place updates don't mutate it,
	// matching a real repository's row-scan behavior.
	snapshot := *b
	return &snapshot, nil
}

func (m *mockBookingRepo) ListByUserEmail(_ context.Context, email string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.User != nil && b.User.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) ListAll(_ context.Context, _, _ int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingRepo) ListByStatus(_ context.Context, status domain.BookingStatus, _, _ int) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	b := m.bookings[id]
	if b == nil {
		return nil, nil
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return b, nil
}

// ---------- Helpers ----------

func newBookingFixture(t *testing.T) (BookingService, *mockBookingRepo, *mockCatalogRepo, *mockPublisher) {
	t.Helper()
	users := newMockUserRepo()
	if _, err := users.Create(context.Background(), "Guest", "guest@example.com", "hash", domain.RoleUser); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	bookings := newMockBookingRepo()
	catalog := newMockCatalogRepo()
	bus := &mockPublisher{}
	svc := NewBookingService(bookings, catalog, users, bus)
	return svc, bookings, catalog, bus
}

func seedRoom(catalog *mockCatalogRepo, price float64, available bool) int64 {
	id := int64(len(catalog.rooms) + 1)
	catalog.rooms[id] = &domain.Room{ID: id, RoomType: "Deluxe", Price: price, Available: available}
	return id
}

func seedDish(catalog *mockCatalogRepo, pricePerPerson float64) int64 {
	id := int64(len(catalog.dishes) + 1)
	catalog.dishes[id] = &domain.Dish{ID: id, CuisineName: "Italian", PricePerPerson: pricePerPerson}
	return id
}

func int64Ptr(v int64) *int64 { return &v }

// ---------- Tests ----------

func TestCreateBookingComputesTotalCost(t *testing.T) {
	svc, _, catalog, bus := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, true)
	dishID := seedDish(catalog, 20)

	booking, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		DishID:       int64Ptr(dishID),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 2 nights x 100 + 2 persons x 20
	if booking.TotalCost != 240 {
		t.Fatalf("expected total cost 240, got %v", booking.TotalCost)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("new booking should be %s, got %s", domain.BookingPending, booking.Status)
	}
	if booking.Reference == "" {
		t.Fatal("expected a booking reference")
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != "booking.created" {
		t.Fatalf("expected booking.created event, got %v", bus.subjects)
	}
}

func TestCreateBookingRoomOnly(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	roomID := seedRoom(catalog, 150, true)

	booking, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		CheckInDate:  "2024-05-10",
		CheckOutDate: "2024-05-11",
		NoOfPerson:   3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if booking.TotalCost != 150 {
		t.Fatalf("expected total cost 150, got %v", booking.TotalCost)
	}
}

func TestCreateBookingDishOnly(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	dishID := seedDish(catalog, 25)

	booking, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		DishID:       int64Ptr(dishID),
		CheckInDate:  "2024-05-10",
		CheckOutDate: "2024-05-12",
		NoOfPerson:   4,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if booking.TotalCost != 100 {
		t.Fatalf("expected total cost 100, got %v", booking.TotalCost)
	}
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, true)

	cases := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"checkout before checkin", "2024-01-03", "2024-01-01"},
		{"same day", "2024-01-01", "2024-01-01"},
		{"unparseable", "01/01/2024", "2024-01-03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
				RoomID:       int64Ptr(roomID),
				CheckInDate:  tc.checkIn,
				CheckOutDate: tc.checkOut,
				NoOfPerson:   2,
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateBookingRejectsNonPositivePersons(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, true)

	_, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   0,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	_, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(99),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   2,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingUnavailableRoom(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, false)

	_, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   2,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateBookingUnknownDish(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, true)

	_, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		DishID:       int64Ptr(42),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   2,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingUnknownUser(t *testing.T) {
	svc, _, catalog, _ := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, true)

	_, err := svc.Create(context.Background(), "nobody@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   2,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _, catalog, bus := newBookingFixture(t)
	roomID := seedRoom(catalog, 100, true)

	booking, err := svc.Create(context.Background(), "guest@example.com", &domain.BookingRequest{
		RoomID:       int64Ptr(roomID),
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		NoOfPerson:   2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bus.subjects = nil

	updated, err := svc.UpdateStatus(context.Background(), booking.ID, "confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.BookingConfirmed {
		t.Fatalf("expected %s, got %s", domain.BookingConfirmed, updated.Status)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != "booking.status_changed" {
		t.Fatalf("expected booking.status_changed event, got %v", bus.subjects)
	}

	// Setting the same status again is a no-op for events.
	bus.subjects = nil
	if _, err := svc.UpdateStatus(context.Background(), booking.ID, "CONFIRMED"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(bus.subjects) != 0 {
		t.Fatalf("no event expected for an unchanged status, got %v", bus.subjects)
	}
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	_, err := svc.UpdateStatus(context.Background(), 1, "SHIPPED")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	_, err := svc.UpdateStatus(context.Background(), 999, "CONFIRMED")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
