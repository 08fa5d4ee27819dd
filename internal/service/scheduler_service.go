package service

import (
	"errors"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchedulerService plans essais against per-type daily capacity: date
// proposals, capacity checks, reservations and bounded date adjustments.
type SchedulerService interface {
	ProposeDate(typeEssai, priorite string) (time.Time, error)
	CheckCapacity(typeEssai string, date time.Time) (*CapacityCheck, error)
	Reserve(essaiID string, date time.Time, force bool) (*model.Planification, error)
	AdjustDate(essaiID string, deltaDays int) (*model.Planification, error)
	ComputeReturnDate(dateEnvoi time.Time, typeEssai, priorite string) (time.Time, error)
	Calendar(from, to time.Time) ([]*model.Planification, error)
}

// CapacityCheck reports the load of one essai type on one day.
type CapacityCheck struct {
	TypeEssai string    `json:"type_essai"`
	Date      time.Time `json:"date"`
	Capacity  int       `json:"capacity"`
	Scheduled int       `json:"scheduled"`
	Available bool      `json:"available"`
}

type schedulerService struct {
	db        *gorm.DB
	capacites repository.CapaciteRepository
	planifs   repository.PlanificationRepository
	now       func() time.Time
}

// NewSchedulerService creates the scheduler service.
func NewSchedulerService(db *gorm.DB, capacites repository.CapaciteRepository, planifs repository.PlanificationRepository) SchedulerService {
	return &schedulerService{db: db, capacites: capacites, planifs: planifs, now: time.Now}
}

// ProposeDate suggests the earliest completion date for an essai type,
// counting from today with the priority factor and the administrative
// margin applied.
func (s *schedulerService) ProposeDate(typeEssai, priorite string) (time.Time, error) {
	return workflow.ProposeDate(workflow.EssaiType(typeEssai), workflow.Priorite(priorite), s.now())
}

// CheckCapacity reports whether one more essai of the given type fits on the
// given day. A full day is a plain negative answer, never an error.
func (s *schedulerService) CheckCapacity(typeEssai string, date time.Time) (*CapacityCheck, error) {
	limit, err := s.capacityFor(s.db, typeEssai)
	if err != nil {
		return nil, err
	}
	day := dateOnly(date)
	count, err := s.planifs.CountByTypeAndDate(typeEssai, day)
	if err != nil {
		return nil, err
	}
	return &CapacityCheck{
		TypeEssai: typeEssai,
		Date:      day,
		Capacity:  limit,
		Scheduled: int(count),
		Available: int(count) < limit,
	}, nil
}

// Reserve books a planning slot for an essai on a day. A saturated day is
// refused unless force is set, in which case the override is recorded on the
// reservation. The essai's send date follows the reservation.
func (s *schedulerService) Reserve(essaiID string, date time.Time, force bool) (*model.Planification, error) {
	day := dateOnly(date)
	var planif *model.Planification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		essai, err := repository.NewEssaiRepository(tx).FindByID(essaiID)
		if err != nil {
			return translateNotFound(err, "essai %s", essaiID)
		}

		planifRepo := repository.NewPlanificationRepository(tx)
		if _, err := planifRepo.FindByEssaiID(essaiID); err == nil {
			return workflow.InvalidTransitionf("essai %s already has a reservation", essaiID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		limit, err := s.capacityFor(tx, essai.Type)
		if err != nil {
			return err
		}
		count, err := planifRepo.CountByTypeAndDate(essai.Type, day)
		if err != nil {
			return err
		}
		saturated := int(count) >= limit
		if saturated && !force {
			return workflow.CapacityExceededf("%s on %s (%d/%d)", essai.Type, day.Format("2006-01-02"), count, limit)
		}

		total, err := workflow.TotalDuration(workflow.EssaiType(essai.Type), workflow.Priorite(essai.Priorite))
		if err != nil {
			return err
		}
		now := time.Now()
		planif = &model.Planification{
			ID:             uuid.NewString(),
			EssaiID:        essaiID,
			TypeEssai:      essai.Type,
			DatePlanifiee:  day,
			DateFinPrevue:  day.AddDate(0, 0, total),
			CapaciteForcee: saturated,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := planifRepo.Save(planif); err != nil {
			return err
		}

		previous := essai.Version
		essai.DateEnvoi = &day
		essai.Version++
		essai.UpdatedAt = now
		return updateVersioned(tx, previous, essai)
	})
	if err != nil {
		return nil, err
	}
	return planif, nil
}

// AdjustDate shifts an existing reservation by up to five days either way.
// The predicted end date and the essai's send date follow.
func (s *schedulerService) AdjustDate(essaiID string, deltaDays int) (*model.Planification, error) {
	var planif *model.Planification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		planifRepo := repository.NewPlanificationRepository(tx)
		p, err := planifRepo.FindByEssaiID(essaiID)
		if err != nil {
			return translateNotFound(err, "reservation for essai %s", essaiID)
		}
		shifted, err := workflow.AdjustDate(p.DatePlanifiee, deltaDays)
		if err != nil {
			return err
		}
		p.DatePlanifiee = shifted
		p.DateFinPrevue = p.DateFinPrevue.AddDate(0, 0, deltaDays)
		p.UpdatedAt = time.Now()
		if err := planifRepo.Save(p); err != nil {
			return err
		}

		essai, err := repository.NewEssaiRepository(tx).FindByID(essaiID)
		if err != nil {
			return translateNotFound(err, "essai %s", essaiID)
		}
		previous := essai.Version
		essai.DateEnvoi = &shifted
		essai.Version++
		essai.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, essai); err != nil {
			return err
		}
		planif = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return planif, nil
}

// ComputeReturnDate predicts when results come back for an essai sent on a
// given date.
func (s *schedulerService) ComputeReturnDate(dateEnvoi time.Time, typeEssai, priorite string) (time.Time, error) {
	return workflow.ComputeReturnDate(dateEnvoi, workflow.EssaiType(typeEssai), workflow.Priorite(priorite))
}

// Calendar returns all reservations planned in a date range.
func (s *schedulerService) Calendar(from, to time.Time) ([]*model.Planification, error) {
	return s.planifs.FindByDateRange(dateOnly(from), dateOnly(to))
}

// capacityFor resolves the daily limit of an essai type: the configured row
// wins, the built-in default applies when the laboratory has not tuned it.
func (s *schedulerService) capacityFor(tx *gorm.DB, typeEssai string) (int, error) {
	if !workflow.KnownType(workflow.EssaiType(typeEssai)) {
		return 0, workflow.Validationf("unknown essai type %q", typeEssai)
	}
	cap, err := repository.NewCapaciteRepository(tx).FindByType(typeEssai)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.DefaultCapacity(workflow.EssaiType(typeEssai))
		}
		return 0, err
	}
	return cap.CapaciteQuotidienne, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
