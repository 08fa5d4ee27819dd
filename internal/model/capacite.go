package model

import (
	"errors"
	"time"
)

// Capacite is the daily scheduling capacity of the laboratory for one essai
// type, seeded once and consulted by the scheduler as an advisory limit.
type Capacite struct {
	ID                  string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TypeEssai           string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"type_essai"`
	CapaciteQuotidienne int       `gorm:"type:int;not null" json:"capacite_quotidienne"`
	DureeStandardJours  int       `gorm:"type:int;not null" json:"duree_standard_jours"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the table name.
func (Capacite) TableName() string {
	return "capacites_laboratoire"
}

// Validate checks the capacity record.
func (c *Capacite) Validate() error {
	if c.ID == "" {
		return errors.New("capacite ID is required")
	}
	if c.TypeEssai == "" {
		return errors.New("essai type is required")
	}
	if c.CapaciteQuotidienne <= 0 {
		return errors.New("daily capacity must be positive")
	}
	return nil
}
