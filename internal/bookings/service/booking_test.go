package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	bookingserrors "cabroster/internal/bookings/errors"
	"cabroster/internal/bookings/validator"
	"cabroster/pkg/config"
	mongotx "cabroster/pkg/db/mongo"
	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/kafka"
	"cabroster/pkg/logger"
	"cabroster/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockBookingRepo struct {
	createFn            func(ctx context.Context, booking *model.Booking) error
	createManyFn        func(ctx context.Context, bookings []*model.Booking) error
	findByIDFn          func(ctx context.Context, id string) (*model.Booking, error)
	findAllFn           func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	findByUserFn        func(ctx context.Context, userID string) ([]*model.Booking, error)
	updateStatusFn      func(ctx context.Context, id string, status model.BookingStatus) error
	existsOnDateFn      func(ctx context.Context, userID string, shiftID, nodalPointID int, date time.Time) (bool, error)
	existsOverlappingFn func(ctx context.Context, userID string, shiftID, nodalPointID int, start, end time.Time) (bool, error)
	countFn             func(ctx context.Context) (int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepo) CreateMany(ctx context.Context, bookings []*model.Booking) error {
	if m.createManyFn != nil {
		return m.createManyFn(ctx, bookings)
	}
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepo) ExistsOnDate(ctx context.Context, userID string, shiftID, nodalPointID int, date time.Time) (bool, error) {
	if m.existsOnDateFn != nil {
		return m.existsOnDateFn(ctx, userID, shiftID, nodalPointID, date)
	}
	return false, nil
}

func (m *mockBookingRepo) ExistsOverlapping(ctx context.Context, userID string, shiftID, nodalPointID int, start, end time.Time) (bool, error) {
	if m.existsOverlappingFn != nil {
		return m.existsOverlappingFn(ctx, userID, shiftID, nodalPointID, start, end)
	}
	return false, nil
}

func (m *mockBookingRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.SessionContext(nil))
}

type mockLockRepo struct {
	createFn func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleteFn func(ctx context.Context, lockID string) error
}

func (m *mockLockRepo) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFn != nil {
		return m.createFn(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepo) Delete(ctx context.Context, lockID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, lockID)
	}
	return nil
}

type mockRoster struct {
	getShiftFn func(ctx context.Context, id int) (*model.Shift, error)
	getPointFn func(ctx context.Context, id int) (*model.NodalPoint, error)
}

func (m *mockRoster) GetShift(ctx context.Context, id int) (*model.Shift, error) {
	if m.getShiftFn != nil {
		return m.getShiftFn(ctx, id)
	}
	return &model.Shift{ID: id, ShiftTime: "10AM to 7PM"}, nil
}

func (m *mockRoster) GetNodalPoint(ctx context.Context, id int) (*model.NodalPoint, error) {
	if m.getPointFn != nil {
		return m.getPointFn(ctx, id)
	}
	return &model.NodalPoint{ID: id, LocationName: "Central Station"}, nil
}

func (m *mockRoster) ListShifts(ctx context.Context) ([]model.Shift, error) {
	return []model.Shift{
		{ID: 1, ShiftTime: "10AM to 7PM"},
		{ID: 2, ShiftTime: "12PM to 9PM"},
	}, nil
}

func (m *mockRoster) ListNodalPoints(ctx context.Context) ([]model.NodalPoint, error) {
	return []model.NodalPoint{
		{ID: 1, LocationName: "Central Station"},
		{ID: 2, LocationName: "Tech Park"},
	}, nil
}

type mockUsers struct {
	getUserFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUsers) GetUser(ctx context.Context, id string) (*model.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return &model.User{ID: id, Name: "Asha Rao"}, nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:                logger.New(logger.Config{Level: logger.ERROR}),
		BookingWindowWeeks: 3,
	}
}

func newTestService(t *testing.T, repo *mockBookingRepo, locks *mockLockRepo, pub *mockPublisher) BookingService {
	t.Helper()
	cfg := testConfig(t)
	return NewBookingService(
		repo,
		locks,
		validator.NewBookingValidator(cfg.Log),
		&mockRoster{},
		&mockUsers{},
		pub,
		cfg,
	)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	return apperrors.AsAppError(err).StatusCode()
}

func TestBookCreatesOneBookingPerDate(t *testing.T) {
	var created []*model.Booking
	repo := &mockBookingRepo{
		createManyFn: func(ctx context.Context, bookings []*model.Booking) error {
			created = bookings
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, &mockLockRepo{}, pub)

	req := &model.BookingRequest{
		UserID:       "u-1",
		BookingDates: []model.Date{model.NewDate(2025, time.January, 6), model.NewDate(2025, time.January, 7)},
		ShiftID:      1,
		NodalPointID: 2,
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 7),
	}

	bookings, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 persisted bookings, got %d", len(created))
	}
	for _, b := range bookings {
		if b.Status != model.StatusBooked {
			t.Errorf("expected status %s, got %s", model.StatusBooked, b.Status)
		}
		if b.ID == "" {
			t.Error("expected generated booking ID")
		}
		if !b.StartDate.Equal(b.BookingDate) || !b.EndDate.Equal(b.BookingDate) {
			t.Error("single-date booking must cover exactly its date")
		}
	}
	if len(pub.published) != 2 {
		t.Errorf("expected 2 published events, got %d", len(pub.published))
	}
}

func TestBookDeduplicatesDates(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(t, repo, &mockLockRepo{}, &mockPublisher{})

	req := &model.BookingRequest{
		UserID:       "u-1",
		BookingDates: []model.Date{model.NewDate(2025, time.January, 6), model.NewDate(2025, time.January, 6)},
		ShiftID:      1,
		NodalPointID: 2,
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 6),
	}

	bookings, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected duplicate date collapsed to 1 booking, got %d", len(bookings))
	}
}

func TestBookConflictOnExistingDate(t *testing.T) {
	repo := &mockBookingRepo{
		existsOnDateFn: func(ctx context.Context, userID string, shiftID, nodalPointID int, date time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepo{}, &mockPublisher{})

	req := &model.BookingRequest{
		UserID:       "u-1",
		BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
		ShiftID:      1,
		NodalPointID: 2,
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 6),
	}

	_, err := svc.Book(context.Background(), req)
	if status := statusOf(t, err); status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if msg := apperrors.AsAppError(err).Message; msg != "a booking already exists for 2025-01-06" {
		t.Errorf("unexpected conflict message: %q", msg)
	}
}

func TestBookRejectsInvalidRequest(t *testing.T) {
	svc := newTestService(t, &mockBookingRepo{}, &mockLockRepo{}, &mockPublisher{})

	tests := []struct {
		name    string
		req     *model.BookingRequest
		wantMsg string
	}{
		{
			name:    "missing user",
			req:     &model.BookingRequest{BookingDates: []model.Date{model.NewDate(2025, time.January, 6)}, ShiftID: 1, NodalPointID: 1},
			wantMsg: "invalid booking request",
		},
		{
			name:    "no dates",
			req:     &model.BookingRequest{UserID: "u-1", ShiftID: 1, NodalPointID: 1},
			wantMsg: "no dates selected",
		},
		{
			name:    "bad shift",
			req:     &model.BookingRequest{UserID: "u-1", BookingDates: []model.Date{model.NewDate(2025, time.January, 6)}, NodalPointID: 1},
			wantMsg: "invalid shift or nodal point",
		},
		{
			name:    "missing start/end dates",
			req:     &model.BookingRequest{UserID: "u-1", BookingDates: []model.Date{model.NewDate(2025, time.January, 6)}, ShiftID: 1, NodalPointID: 1},
			wantMsg: "start/end date must be provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), tt.req)
			if status := statusOf(t, err); status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
			if msg := apperrors.AsAppError(err).Message; msg != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestBookRejectsUnknownShift(t *testing.T) {
	cfg := testConfig(t)
	roster := &mockRoster{
		getShiftFn: func(ctx context.Context, id int) (*model.Shift, error) {
			return nil, nil
		},
	}
	svc := NewBookingService(&mockBookingRepo{}, &mockLockRepo{}, validator.NewBookingValidator(cfg.Log), roster, &mockUsers{}, &mockPublisher{}, cfg)

	req := &model.BookingRequest{
		UserID:       "u-1",
		BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
		ShiftID:      99,
		NodalPointID: 1,
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 6),
	}

	_, err := svc.Book(context.Background(), req)
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if msg := apperrors.AsAppError(err).Message; msg != "invalid shift or nodal point" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestBookLockContention(t *testing.T) {
	locks := &mockLockRepo{
		createFn: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestService(t, &mockBookingRepo{}, locks, &mockPublisher{})

	req := &model.BookingRequest{
		UserID:       "u-1",
		BookingDates: []model.Date{model.NewDate(2025, time.January, 6)},
		ShiftID:      1,
		NodalPointID: 1,
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 6),
	}

	_, err := svc.Book(context.Background(), req)
	if status := statusOf(t, err); status != http.StatusConflict {
		t.Fatalf("expected 409 on lock contention, got %d", status)
	}
}

func TestBookRangeConflictOnOverlap(t *testing.T) {
	repo := &mockBookingRepo{
		existsOverlappingFn: func(ctx context.Context, userID string, shiftID, nodalPointID int, start, end time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepo{}, &mockPublisher{})

	req := &model.DateRangeRequest{
		UserID:       "u-1",
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 10),
		ShiftID:      1,
		NodalPointID: 2,
	}

	_, err := svc.BookRange(context.Background(), req)
	if status := statusOf(t, err); status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if msg := apperrors.AsAppError(err).Message; msg != "there is already an existing booking within the selected date range" {
		t.Errorf("unexpected conflict message: %q", msg)
	}
}

func TestBookRangeCreatesSingleBooking(t *testing.T) {
	var created *model.Booking
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, booking *model.Booking) error {
			created = booking
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, &mockLockRepo{}, pub)

	req := &model.DateRangeRequest{
		UserID:       "u-1",
		StartDate:    model.NewDate(2025, time.January, 6),
		EndDate:      model.NewDate(2025, time.January, 10),
		ShiftID:      1,
		NodalPointID: 2,
	}

	booking, err := svc.BookRange(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected booking to be persisted")
	}
	if booking.Status != model.StatusBooked {
		t.Errorf("expected status %s, got %s", model.StatusBooked, booking.Status)
	}
	if !booking.BookingDate.Equal(booking.StartDate) {
		t.Error("range booking date must equal its start date")
	}
	if len(pub.published) != 1 {
		t.Errorf("expected 1 published event, got %d", len(pub.published))
	}
}

func TestUpdateStatus(t *testing.T) {
	booked := &model.Booking{
		ID:     "b-1",
		UserID: "u-1",
		Status: model.StatusBooked,
	}
	approved := &model.Booking{
		ID:     "b-2",
		UserID: "u-1",
		Status: model.StatusApproved,
	}

	tests := []struct {
		name       string
		id         string
		status     string
		existing   *model.Booking
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid status string",
			id:         "b-1",
			status:     "Cancelled",
			existing:   booked,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid status",
		},
		{
			name:       "lowercase status rejected",
			id:         "b-1",
			status:     "approved",
			existing:   booked,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid status",
		},
		{
			name:       "not found",
			id:         "missing",
			status:     "Approved",
			existing:   nil,
			wantStatus: http.StatusNotFound,
			wantMsg:    "booking not found",
		},
		{
			name:       "approved is terminal",
			id:         "b-2",
			status:     "Rejected",
			existing:   approved,
			wantStatus: http.StatusConflict,
		},
		{
			name:     "approve booked",
			id:       "b-1",
			status:   "Approved",
			existing: booked,
		},
		{
			name:     "reject booked",
			id:       "b-1",
			status:   "Rejected",
			existing: booked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepo{
				findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
					if tt.existing == nil || tt.existing.ID != id {
						return nil, bookingserrors.ErrNotFound
					}
					b := *tt.existing
					return &b, nil
				},
			}
			pub := &mockPublisher{}
			svc := newTestService(t, repo, &mockLockRepo{}, pub)

			booking, err := svc.UpdateStatus(context.Background(), tt.id, tt.status)

			if tt.wantStatus != 0 {
				if status := statusOf(t, err); status != tt.wantStatus {
					t.Fatalf("expected %d, got %d", tt.wantStatus, status)
				}
				if tt.wantMsg != "" {
					if msg := apperrors.AsAppError(err).Message; msg != tt.wantMsg {
						t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(booking.Status) != tt.status {
				t.Errorf("expected status %s, got %s", tt.status, booking.Status)
			}
			if len(pub.published) != 1 {
				t.Errorf("expected status event to be published, got %d", len(pub.published))
			}
		})
	}
}

func TestUpdateStatusIdempotentOnSameStatus(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.StatusApproved}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status model.BookingStatus) error {
			t.Fatal("repository update should not run when status is unchanged")
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(t, repo, &mockLockRepo{}, pub)

	booking, err := svc.UpdateStatus(context.Background(), "b-1", "Approved")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != model.StatusApproved {
		t.Errorf("expected Approved, got %s", booking.Status)
	}
	if len(pub.published) != 0 {
		t.Errorf("expected no event for unchanged status, got %d", len(pub.published))
	}
}

func TestAvailableDatesExcludesWeekendsAndBookedDays(t *testing.T) {
	today := time.Now().UTC()
	tomorrow := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	// Find the first weekday in the window to mark as booked.
	firstWeekday := tomorrow
	for firstWeekday.Weekday() == time.Saturday || firstWeekday.Weekday() == time.Sunday {
		firstWeekday = firstWeekday.AddDate(0, 0, 1)
	}

	repo := &mockBookingRepo{
		findByUserFn: func(ctx context.Context, userID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{
					ID:        "b-1",
					UserID:    userID,
					StartDate: firstWeekday,
					EndDate:   firstWeekday,
					Status:    model.StatusBooked,
				},
			}, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepo{}, &mockPublisher{})

	dates, err := svc.AvailableDates(context.Background(), "u-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookedKey := firstWeekday.Format(model.DateLayout)
	for _, d := range dates {
		parsed, err := time.Parse(model.DateLayout, d)
		if err != nil {
			t.Fatalf("unparseable date %q: %v", d, err)
		}
		if parsed.Weekday() == time.Saturday || parsed.Weekday() == time.Sunday {
			t.Errorf("weekend date %s offered", d)
		}
		if d == bookedKey {
			t.Errorf("already-booked date %s offered", d)
		}
	}

	// 3 weeks minus weekends minus the one booked day.
	if len(dates) != 3*5-1 {
		t.Errorf("expected %d available dates, got %d", 3*5-1, len(dates))
	}
}

func TestAvailableDatesHonorsRequestedWeeks(t *testing.T) {
	svc := newTestService(t, &mockBookingRepo{}, &mockLockRepo{}, &mockPublisher{})

	dates, err := svc.AvailableDates(context.Background(), "u-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One week of weekdays, no existing bookings.
	if len(dates) != 5 {
		t.Errorf("expected 5 available dates, got %d", len(dates))
	}
}

func TestGetAllJoinsDisplayLabels(t *testing.T) {
	repo := &mockBookingRepo{
		findAllFn: func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{
				{
					ID:           "b-1",
					UserID:       "u-1",
					ShiftID:      2,
					NodalPointID: 1,
					StartDate:    time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
					EndDate:      time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
					Status:       model.StatusBooked,
				},
			}, nil
		},
		countFn: func(ctx context.Context) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepo{}, &mockPublisher{})

	views, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 || len(views) != 1 {
		t.Fatalf("expected 1 view, got count=%d len=%d", count, len(views))
	}

	v := views[0]
	if v.Shift != "12PM to 9PM" {
		t.Errorf("expected shift label, got %q", v.Shift)
	}
	if v.NodalPoint != "Central Station" {
		t.Errorf("expected nodal point label, got %q", v.NodalPoint)
	}
	if v.User != "Asha Rao" {
		t.Errorf("expected user name, got %q", v.User)
	}
	if v.StartDate != "2025-01-06" {
		t.Errorf("expected formatted start date, got %q", v.StartDate)
	}
}

func TestGetStatusNotFound(t *testing.T) {
	svc := newTestService(t, &mockBookingRepo{}, &mockLockRepo{}, &mockPublisher{})

	_, err := svc.GetStatus(context.Background(), "missing")
	if status := statusOf(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if msg := apperrors.AsAppError(err).Message; msg != "booking not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestExportProducesWorkbook(t *testing.T) {
	repo := &mockBookingRepo{
		findAllFn: func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
			return []*model.Booking{
				{
					ID:           "b-1",
					UserID:       "u-1",
					ShiftID:      1,
					NodalPointID: 2,
					StartDate:    time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
					EndDate:      time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
					Status:       model.StatusApproved,
				},
			}, nil
		},
	}
	svc := newTestService(t, repo, &mockLockRepo{}, &mockPublisher{})

	data, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook")
	}
	// XLSX files are zip archives.
	if !strings.HasPrefix(string(data[:2]), "PK") {
		t.Errorf("expected zip magic bytes, got %q", data[:2])
	}
}
