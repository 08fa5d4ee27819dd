package model

import (
	"encoding/json"
	"errors"
	"time"
)

// Echantillon is a physical sample moving through the fixed pipeline
// attente → stockage → essais → decodification → traitement → validation →
// valide/rejete. It is never deleted; rejection sends it backward.
type Echantillon struct {
	ID         string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Code       string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	ClientCode string `gorm:"type:varchar(20);not null;index" json:"client_code"`

	// Physical descriptors, fixed at intake.
	Nature          string  `gorm:"type:varchar(100);not null" json:"nature"`
	ProfondeurDebut float64 `gorm:"type:decimal(6,2)" json:"profondeur_debut"`
	ProfondeurFin   float64 `gorm:"type:decimal(6,2)" json:"profondeur_fin"`
	Sondage         string  `gorm:"type:varchar(10)" json:"sondage"`
	Nappe           string  `gorm:"type:varchar(100)" json:"nappe"`

	// Requested essai types, immutable once created (JSON array of type names).
	EssaisTypes []byte `gorm:"type:jsonb;not null" json:"essais_types"`

	Statut     string `gorm:"type:varchar(20);not null;index:idx_echantillons_statut_priorite" json:"statut"`
	Priorite   string `gorm:"type:varchar(10);not null;index:idx_echantillons_statut_priorite" json:"priorite"`
	ChefProjet string `gorm:"type:varchar(200)" json:"chef_projet"`

	// Approval cursor: index into the fixed role order while Statut is
	// "validation". -1 means the chain has not started.
	NiveauValidation int `gorm:"type:int;not null;default:-1" json:"niveau_validation"`

	// Optimistic concurrency guard for stage transitions.
	Version int `gorm:"type:int;not null;default:0" json:"-"`

	QRCode        string     `gorm:"type:varchar(200);uniqueIndex;not null" json:"qr_code"`
	Photo         string     `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Stockage      string     `gorm:"type:varchar(200)" json:"stockage,omitempty"`
	DateReception time.Time  `gorm:"type:date;not null;index" json:"date_reception"`
	DateEnvoi     *time.Time `gorm:"type:date" json:"date_envoi,omitempty"`
	DateRetour    *time.Time `gorm:"type:date" json:"date_retour,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the table name.
func (Echantillon) TableName() string {
	return "echantillons"
}

// Validate checks the echantillon record.
func (e *Echantillon) Validate() error {
	if e.ID == "" {
		return errors.New("echantillon ID is required")
	}
	if e.Code == "" {
		return errors.New("echantillon code is required")
	}
	if e.ClientCode == "" {
		return errors.New("client code is required")
	}
	if e.Statut == "" {
		return errors.New("echantillon statut is required")
	}
	if len(e.EssaisTypes) == 0 {
		return errors.New("at least one essai type is required")
	}
	return nil
}

// TypesDemandes decodes the requested essai type set.
func (e *Echantillon) TypesDemandes() ([]string, error) {
	var types []string
	if err := json.Unmarshal(e.EssaisTypes, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// SetTypesDemandes encodes the requested essai type set.
func (e *Echantillon) SetTypesDemandes(types []string) error {
	data, err := json.Marshal(types)
	if err != nil {
		return err
	}
	e.EssaisTypes = data
	return nil
}
