package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "cabroster/internal/bookings/errors"
	"cabroster/internal/bookings/repository"
	"cabroster/internal/bookings/validator"
	"cabroster/pkg/config"
	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/kafka"
	"cabroster/pkg/model"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// RosterGateway resolves shifts and nodal points from the roster service.
type RosterGateway interface {
	GetShift(ctx context.Context, id int) (*model.Shift, error)
	GetNodalPoint(ctx context.Context, id int) (*model.NodalPoint, error)
	ListShifts(ctx context.Context) ([]model.Shift, error)
	ListNodalPoints(ctx context.Context) ([]model.NodalPoint, error)
}

// UserGateway resolves accounts from the users service.
type UserGateway interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// EventPublisher emits domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest) ([]*model.Booking, error)
	BookRange(ctx context.Context, req *model.DateRangeRequest) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.BookingView, int64, error)
	GetStatus(ctx context.Context, id string) (*model.BookingView, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	AvailableDates(ctx context.Context, userID string, weeks int) ([]string, error)
	Export(ctx context.Context) ([]byte, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	roster    RosterGateway
	users     UserGateway
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	bookingValidator *validator.BookingValidator,
	roster RosterGateway,
	users UserGateway,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: bookingValidator,
		roster:    roster,
		users:     users,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Book reserves one cab-day per requested date. All dates are committed
// in a single transaction: one conflict rejects the whole batch.
func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) ([]*model.Booking, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.verifyRosterRefs(ctx, req.ShiftID, req.NodalPointID); err != nil {
		return nil, err
	}

	dates := normalizeDates(req.BookingDates)

	lockID, err := s.acquireUserLock(ctx, req.UserID, req.ShiftID, req.NodalPointID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseUserLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	bookings := make([]*model.Booking, 0, len(dates))
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, date := range dates {
			exists, err := s.repo.ExistsOnDate(sessCtx, req.UserID, req.ShiftID, req.NodalPointID, date)
			if err != nil {
				return apperrors.Internal("Failed to check existing bookings", err)
			}
			if exists {
				return apperrors.Conflict(fmt.Sprintf("a booking already exists for %s", date.Format(model.DateLayout)))
			}
		}

		bookings = bookings[:0]
		for _, date := range dates {
			bookings = append(bookings, &model.Booking{
				ID:           uuid.NewString(),
				UserID:       req.UserID,
				ShiftID:      req.ShiftID,
				NodalPointID: req.NodalPointID,
				BookingDate:  date,
				StartDate:    date,
				EndDate:      date,
				Status:       model.StatusBooked,
			})
		}

		if err := s.repo.CreateMany(sessCtx, bookings); err != nil {
			if errors.Is(err, bookingserrors.ErrDateConflict) {
				return apperrors.Conflict(fmt.Sprintf("a booking already exists for %s", dates[0].Format(model.DateLayout)))
			}
			return apperrors.Internal("Failed to create bookings", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create bookings", "user_id", req.UserID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Bookings created successfully",
		"user_id", req.UserID,
		"shift_id", req.ShiftID,
		"nodal_point_id", req.NodalPointID,
		"count", len(bookings),
	)

	for _, booking := range bookings {
		s.publishBookingEvent(ctx, model.EventBookingCreated, booking)
	}

	return bookings, nil
}

// BookRange reserves a single booking covering [StartDate, EndDate].
func (s *bookingService) BookRange(ctx context.Context, req *model.DateRangeRequest) (*model.Booking, error) {
	if err := s.validateRangeRequest(req); err != nil {
		return nil, err
	}

	if err := s.verifyRosterRefs(ctx, req.ShiftID, req.NodalPointID); err != nil {
		return nil, err
	}

	start := req.StartDate.Day()
	end := req.EndDate.Day()

	lockID, err := s.acquireUserLock(ctx, req.UserID, req.ShiftID, req.NodalPointID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseUserLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		ShiftID:      req.ShiftID,
		NodalPointID: req.NodalPointID,
		BookingDate:  start,
		StartDate:    start,
		EndDate:      end,
		Status:       model.StatusBooked,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlaps, err := s.repo.ExistsOverlapping(sessCtx, req.UserID, req.ShiftID, req.NodalPointID, start, end)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if overlaps {
			return apperrors.Conflict("there is already an existing booking within the selected date range")
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrDateConflict) {
				return apperrors.Conflict("there is already an existing booking within the selected date range")
			}
			return apperrors.Internal("Failed to create booking", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create range booking", "user_id", req.UserID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Range booking created successfully",
		"id", booking.ID,
		"user_id", booking.UserID,
		"start_date", booking.StartDate.Format(model.DateLayout),
		"end_date", booking.EndDate.Format(model.DateLayout),
	)

	s.publishBookingEvent(ctx, model.EventBookingCreated, booking)

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.BookingView, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	views, err := s.buildViews(ctx, bookings)
	if err != nil {
		return nil, 0, err
	}

	return views, count, nil
}

func (s *bookingService) GetStatus(ctx context.Context, id string) (*model.BookingView, error) {
	if id == "" {
		return nil, apperrors.NotFound("booking")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	views, err := s.buildViews(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// UpdateStatus moves a booking through its lifecycle. Only Booked
// bookings can change, to Approved or Rejected.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	newStatus, ok := model.ParseBookingStatus(status)
	if !ok {
		return nil, apperrors.InvalidInput("invalid status")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if booking.Status == newStatus {
		return booking, nil
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.Conflict(fmt.Sprintf("booking status cannot change from %s to %s", booking.Status, newStatus))
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	booking.Status = newStatus

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"status", newStatus,
	)

	s.publishBookingEvent(ctx, model.EventBookingStatusChanged, booking)

	return booking, nil
}

// AvailableDates returns the weekdays inside the requested window that
// the user has not already booked. Weekends are excluded. A weeks value
// of zero or less falls back to the configured booking window.
func (s *bookingService) AvailableDates(ctx context.Context, userID string, weeks int) ([]string, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("invalid booking request")
	}

	if weeks <= 0 {
		weeks = s.cfg.BookingWindowWeeks
	}

	existing, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	booked := make(map[string]bool)
	for _, b := range existing {
		for d := b.StartDate; !d.After(b.EndDate); d = d.AddDate(0, 0, 1) {
			booked[d.Format(model.DateLayout)] = true
		}
	}

	today := time.Now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, weeks*7)

	var available []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		key := d.Format(model.DateLayout)
		if booked[key] {
			continue
		}
		available = append(available, key)
	}

	return available, nil
}

// Export renders every booking, with display labels, as an Excel workbook.
func (s *bookingService) Export(ctx context.Context) ([]byte, error) {
	bookings, err := s.repo.FindAll(ctx, config.DefaultPaginationLimit*100, 0)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	views, err := s.buildViews(ctx, bookings)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperrors.Internal("Failed to create export sheet", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"User", "Shift", "Nodal Point", "Start Date", "End Date", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, apperrors.Internal("Failed to write export header", err)
		}
	}

	for row, v := range views {
		values := []string{v.User, v.Shift, v.NodalPoint, v.StartDate, v.EndDate, v.Status}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, apperrors.Internal("Failed to write export row", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.Internal("Failed to render export", err)
	}

	s.cfg.Log.Info("Bookings exported", "count", len(views))

	return buf.Bytes(), nil
}

// --- Helpers ---

func (s *bookingService) validateRequest(req *model.BookingRequest) error {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.InvalidInput(validationMessage(err))
	}
	return nil
}

func (s *bookingService) validateRangeRequest(req *model.DateRangeRequest) error {
	if err := s.validator.ValidateRangeRequest(req); err != nil {
		s.cfg.Log.Warn("Range booking validation failed", "error", err)
		return apperrors.InvalidInput(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Message()
	}
	return err.Error()
}

// verifyRosterRefs confirms the shift and nodal point exist before any
// lock is taken.
func (s *bookingService) verifyRosterRefs(ctx context.Context, shiftID, nodalPointID int) error {
	shift, err := s.roster.GetShift(ctx, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return apperrors.InvalidInput("invalid shift or nodal point")
	}

	point, err := s.roster.GetNodalPoint(ctx, nodalPointID)
	if err != nil {
		return err
	}
	if point == nil {
		return apperrors.InvalidInput("invalid shift or nodal point")
	}

	return nil
}

// normalizeDates truncates to midnight UTC and drops duplicates while
// preserving request order.
func normalizeDates(dates []model.Date) []time.Time {
	seen := make(map[string]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := d.Day()
		key := day.Format(model.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, day)
	}
	return out
}

func (s *bookingService) buildViews(ctx context.Context, bookings []*model.Booking) ([]*model.BookingView, error) {
	if len(bookings) == 0 {
		return []*model.BookingView{}, nil
	}

	shifts, err := s.roster.ListShifts(ctx)
	if err != nil {
		return nil, err
	}
	points, err := s.roster.ListNodalPoints(ctx)
	if err != nil {
		return nil, err
	}

	shiftLabels := make(map[int]string, len(shifts))
	for _, shift := range shifts {
		shiftLabels[shift.ID] = shift.ShiftTime
	}
	pointLabels := make(map[int]string, len(points))
	for _, point := range points {
		pointLabels[point.ID] = point.LocationName
	}

	userNames := make(map[string]string)
	views := make([]*model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		name, ok := userNames[b.UserID]
		if !ok {
			user, err := s.users.GetUser(ctx, b.UserID)
			if err != nil {
				return nil, err
			}
			name = b.UserID
			if user != nil {
				name = user.Name
			}
			userNames[b.UserID] = name
		}

		views = append(views, &model.BookingView{
			ID:         b.ID,
			StartDate:  b.StartDate.Format(model.DateLayout),
			EndDate:    b.EndDate.Format(model.DateLayout),
			Shift:      shiftLabels[b.ShiftID],
			Status:     string(b.Status),
			User:       name,
			NodalPoint: pointLabels[b.NodalPointID],
		})
	}

	return views, nil
}

func (s *bookingService) publishBookingEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	event := model.BookingEvent{
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		ShiftID:      booking.ShiftID,
		NodalPointID: booking.NodalPointID,
		BookingDate:  booking.BookingDate.Format(model.DateLayout),
		StartDate:    booking.StartDate.Format(model.DateLayout),
		EndDate:      booking.EndDate.Format(model.DateLayout),
		Status:       string(booking.Status),
		OccurredAt:   time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSource("bookings").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

// acquireUserLock creates an advisory lock so concurrent requests for
// the same user and slot serialize before the conflict check.
func (s *bookingService) acquireUserLock(ctx context.Context, userID string, shiftID, nodalPointID int) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%d_%d", userID, shiftID, nodalPointID)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("another booking request for this user is in progress. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseUserLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
