package model

import (
	"errors"
	"time"
)

// Essai is one laboratory analysis performed on an echantillon. Execution
// status runs attente → en_cours → termine; the decoding gate then sets the
// validation status to accepted or rejected. A rejected essai goes back to
// attente for correction, but DateRejet is never cleared: the permanent
// trace is what the rejected-essais views are built on.
type Essai struct {
	ID              string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EchantillonCode string `gorm:"type:varchar(20);not null;index" json:"echantillon_code"`
	Type            string `gorm:"type:varchar(20);not null" json:"type"`
	Section         string `gorm:"type:varchar(15);not null;index:idx_essais_statut_section,priority:2" json:"section"`

	Statut           string `gorm:"type:varchar(15);not null;index:idx_essais_statut_section,priority:1" json:"statut"`
	StatutValidation string `gorm:"type:varchar(15);not null;default:pending" json:"statut_validation"`
	Priorite         string `gorm:"type:varchar(10);not null;default:normale" json:"priorite"`

	Operateur    string `gorm:"type:varchar(200)" json:"operateur"`
	DureeEstimee int    `gorm:"type:int;not null" json:"duree_estimee"`

	DateEnvoi *time.Time `gorm:"type:date;index" json:"date_envoi,omitempty"`
	DateDebut *time.Time `gorm:"type:date" json:"date_debut,omitempty"`
	DateFin   *time.Time `gorm:"type:date" json:"date_fin,omitempty"`
	DateRejet *time.Time `gorm:"type:date" json:"date_rejet,omitempty"`

	// Result payload; schema varies by Type and is validated by the workflow
	// core before the essai may reach termine.
	Resultats []byte `gorm:"type:jsonb" json:"resultats,omitempty"`

	Commentaires           string `gorm:"type:text" json:"commentaires"`
	CommentairesValidation string `gorm:"type:text" json:"commentaires_validation"`

	// Opaque reference to an attached file; upload mechanics live elsewhere.
	Fichier string `gorm:"type:varchar(255)" json:"fichier,omitempty"`

	Version int `gorm:"type:int;not null;default:0" json:"-"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the table name.
func (Essai) TableName() string {
	return "essais"
}

// Validate checks the essai record.
func (e *Essai) Validate() error {
	if e.ID == "" {
		return errors.New("essai ID is required")
	}
	if e.EchantillonCode == "" {
		return errors.New("echantillon code is required")
	}
	if e.Type == "" {
		return errors.New("essai type is required")
	}
	if e.Statut == "" {
		return errors.New("essai statut is required")
	}
	return nil
}

// WasResumed reports whether the essai was rejected at least once and has
// since been re-accepted. Display-only; it carries no lifecycle semantics.
func (e *Essai) WasResumed() bool {
	return e.DateRejet != nil && e.StatutValidation == "accepted"
}
