package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	rostererrors "cabroster/internal/roster/errors"
	"cabroster/pkg/config"
	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/logger"
	"cabroster/pkg/model"
)

type mockShiftRepo struct {
	findByIDFn func(ctx context.Context, id int) (*model.Shift, error)
	findPageFn func(ctx context.Context, limit int, offset int64) ([]*model.Shift, error)
	countFn    func(ctx context.Context) (int64, error)
}

func (m *mockShiftRepo) FindByID(ctx context.Context, id int) (*model.Shift, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, rostererrors.ErrShiftNotFound
}

func (m *mockShiftRepo) FindPage(ctx context.Context, limit int, offset int64) ([]*model.Shift, error) {
	if m.findPageFn != nil {
		return m.findPageFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockShiftRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockNodalPointRepo struct {
	createFn   func(ctx context.Context, np *model.NodalPoint) error
	findByIDFn func(ctx context.Context, id int) (*model.NodalPoint, error)
	findAllFn  func(ctx context.Context) ([]*model.NodalPoint, error)
}

func (m *mockNodalPointRepo) Create(ctx context.Context, np *model.NodalPoint) error {
	if m.createFn != nil {
		return m.createFn(ctx, np)
	}
	np.ID = 1
	return nil
}

func (m *mockNodalPointRepo) FindByID(ctx context.Context, id int) (*model.NodalPoint, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, rostererrors.ErrNodalPointNotFound
}

func (m *mockNodalPointRepo) FindAll(ctx context.Context) ([]*model.NodalPoint, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:         logger.New(logger.Config{Level: logger.ERROR}),
		ReadTimeout: time.Second,
	}
}

func TestListShiftsReturnsSeededShifts(t *testing.T) {
	shifts := &mockShiftRepo{
		findPageFn: func(ctx context.Context, limit int, offset int64) ([]*model.Shift, error) {
			if offset != 0 {
				t.Fatalf("expected offset 0 for first page, got %d", offset)
			}
			return []*model.Shift{
				{ID: 1, ShiftTime: "10AM to 7PM"},
				{ID: 2, ShiftTime: "12PM to 9PM"},
			}, nil
		},
		countFn: func(ctx context.Context) (int64, error) { return 4, nil },
	}

	svc := NewRosterService(shifts, &mockNodalPointRepo{}, testConfig(t))
	got, total, err := svc.ListShifts(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 shifts, got %d", len(got))
	}
}

func TestListShiftsEmptyPageIsNotFound(t *testing.T) {
	shifts := &mockShiftRepo{
		findPageFn: func(ctx context.Context, limit int, offset int64) ([]*model.Shift, error) {
			return nil, nil
		},
		countFn: func(ctx context.Context) (int64, error) { return 4, nil },
	}

	svc := NewRosterService(shifts, &mockNodalPointRepo{}, testConfig(t))
	_, _, err := svc.ListShifts(context.Background(), 99, 10)
	if err == nil {
		t.Fatal("expected error for empty page")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", appErr.StatusCode())
	}
	if appErr.Message != "no shifts found" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestGetShiftNotFound(t *testing.T) {
	svc := NewRosterService(&mockShiftRepo{}, &mockNodalPointRepo{}, testConfig(t))
	_, err := svc.GetShift(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.AsAppError(err).StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestCreateNodalPointRejectsBlankName(t *testing.T) {
	svc := NewRosterService(&mockShiftRepo{}, &mockNodalPointRepo{}, testConfig(t))

	err := svc.CreateNodalPoint(context.Background(), &model.NodalPoint{LocationName: "   "})
	if err == nil {
		t.Fatal("expected error for blank name")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", appErr.StatusCode())
	}
	if appErr.Message != "invalid nodal point: location name cannot be empty" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestCreateNodalPointDuplicateName(t *testing.T) {
	points := &mockNodalPointRepo{
		createFn: func(ctx context.Context, np *model.NodalPoint) error {
			return rostererrors.ErrDuplicateName
		},
	}

	svc := NewRosterService(&mockShiftRepo{}, points, testConfig(t))
	err := svc.CreateNodalPoint(context.Background(), &model.NodalPoint{LocationName: "Central Station"})
	if err == nil {
		t.Fatal("expected error for duplicate name")
	}
	if apperrors.AsAppError(err).StatusCode() != http.StatusConflict {
		t.Errorf("expected 409, got %d", apperrors.AsAppError(err).StatusCode())
	}
}

func TestCreateNodalPointTrimsName(t *testing.T) {
	var created *model.NodalPoint
	points := &mockNodalPointRepo{
		createFn: func(ctx context.Context, np *model.NodalPoint) error {
			np.ID = 5
			created = np
			return nil
		},
	}

	svc := NewRosterService(&mockShiftRepo{}, points, testConfig(t))
	np := &model.NodalPoint{LocationName: "  Tech Park  "}
	if err := svc.CreateNodalPoint(context.Background(), np); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.LocationName != "Tech Park" {
		t.Errorf("expected trimmed name, got %+v", created)
	}
	if np.ID != 5 {
		t.Errorf("expected assigned id 5, got %d", np.ID)
	}
}
