package service

import (
	"context"
	"errors"
	"net/http"
	"sync"

	rostererrors "cabroster/internal/roster/errors"
	"cabroster/internal/roster/repository"
	"cabroster/pkg/config"
	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/sanitizer"

	"cabroster/pkg/model"
)

type RosterService interface {
	ListShifts(ctx context.Context, page, pageSize int) ([]*model.Shift, int64, error)
	GetShift(ctx context.Context, id int) (*model.Shift, error)
	ListNodalPoints(ctx context.Context) ([]*model.NodalPoint, error)
	GetNodalPoint(ctx context.Context, id int) (*model.NodalPoint, error)
	CreateNodalPoint(ctx context.Context, np *model.NodalPoint) error
}

type rosterService struct {
	shifts repository.ShiftRepository
	points repository.NodalPointRepository
	cfg    *config.Config
}

func NewRosterService(
	shifts repository.ShiftRepository,
	points repository.NodalPointRepository,
	cfg *config.Config,
) RosterService {
	return &rosterService{
		shifts: shifts,
		points: points,
		cfg:    cfg,
	}
}

func (s *rosterService) ListShifts(ctx context.Context, page, pageSize int) ([]*model.Shift, int64, error) {
	if page <= 0 {
		page = 1
	}
	pageSize = config.NormalizePaginationLimit(pageSize)
	offset := int64(page-1) * int64(pageSize)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var shifts []*model.Shift
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.shifts.Count(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count shifts", "error", err)
			errCount = apperrors.Internal("Failed to count shifts", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		shifts, err = s.shifts.FindPage(sharedCtx, pageSize, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list shifts",
				"page", page,
				"page_size", pageSize,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve shifts", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	if len(shifts) == 0 {
		return nil, 0, apperrors.New(apperrors.CodeNotFound, "no shifts found", http.StatusNotFound)
	}
	return shifts, count, nil
}

func (s *rosterService) GetShift(ctx context.Context, id int) (*model.Shift, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("invalid shift id")
	}

	shift, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, rostererrors.ErrShiftNotFound) {
			return nil, apperrors.NotFound("shift")
		}
		s.cfg.Log.Error("Failed to get shift", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve shift", err)
	}
	return shift, nil
}

func (s *rosterService) ListNodalPoints(ctx context.Context) ([]*model.NodalPoint, error) {
	points, err := s.points.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list nodal points", "error", err)
		return nil, apperrors.Internal("Failed to retrieve nodal points", err)
	}
	return points, nil
}

func (s *rosterService) GetNodalPoint(ctx context.Context, id int) (*model.NodalPoint, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("invalid nodal point id")
	}

	np, err := s.points.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, rostererrors.ErrNodalPointNotFound) {
			return nil, apperrors.NotFound("nodal point")
		}
		s.cfg.Log.Error("Failed to get nodal point", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve nodal point", err)
	}
	return np, nil
}

func (s *rosterService) CreateNodalPoint(ctx context.Context, np *model.NodalPoint) error {
	np.LocationName = sanitizer.TrimSpaces(np.LocationName)
	if np.LocationName == "" {
		return apperrors.InvalidInput("invalid nodal point: location name cannot be empty")
	}

	if err := s.points.Create(ctx, np); err != nil {
		if errors.Is(err, rostererrors.ErrDuplicateName) {
			return apperrors.Conflict("a nodal point with this name already exists")
		}
		s.cfg.Log.Error("Failed to create nodal point",
			"location_name", np.LocationName,
			"error", err,
		)
		return apperrors.Internal("Failed to create nodal point", err)
	}

	s.cfg.Log.Info("Nodal point created",
		"id", np.ID,
		"location_name", np.LocationName,
	)
	return nil
}
