package repository

import (
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// PlanificationRepository persists capacity reservations.
type PlanificationRepository interface {
	Save(p *model.Planification) error
	FindByEssaiID(essaiID string) (*model.Planification, error)
	CountByTypeAndDate(typeEssai string, date time.Time) (int64, error)
	FindByDateRange(from, to time.Time) ([]*model.Planification, error)
}

type planificationRepository struct {
	db *gorm.DB
}

// NewPlanificationRepository creates a planification repository.
func NewPlanificationRepository(db *gorm.DB) PlanificationRepository {
	return &planificationRepository{db: db}
}

// Save persists a planification.
func (r *planificationRepository) Save(p *model.Planification) error {
	return r.db.Save(p).Error
}

// FindByEssaiID returns the reservation held by an essai.
func (r *planificationRepository) FindByEssaiID(essaiID string) (*model.Planification, error) {
	var p model.Planification
	if err := r.db.Where("essai_id = ?", essaiID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CountByTypeAndDate counts reservations already holding a (type, date) slot.
func (r *planificationRepository) CountByTypeAndDate(typeEssai string, date time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Planification{}).
		Where("type_essai = ? AND date_planifiee = ?", typeEssai, date).
		Count(&count).Error
	return count, err
}

// FindByDateRange lists reservations between two dates inclusive.
func (r *planificationRepository) FindByDateRange(from, to time.Time) ([]*model.Planification, error) {
	var list []*model.Planification
	err := r.db.Where("date_planifiee BETWEEN ? AND ?", from, to).
		Order("date_planifiee ASC").Find(&list).Error
	return list, err
}
