package workflow

import (
	"strings"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
)

// Essai execution statuses.
const (
	EssaiAttente = "attente"
	EssaiEnCours = "en_cours"
	EssaiTermine = "termine"
)

// Validation sub-statuses assigned by the decoding gate.
const (
	ValidationPending  = "pending"
	ValidationAccepted = "accepted"
	ValidationRejected = "rejected"
)

// StartEssai moves an essai from attente to en_cours, recording the operator
// and start date and computing the default end date from the type's nominal
// duration. The caller may overwrite DateFin before completion.
func StartEssai(e *model.Essai, operateur string, dateDebut time.Time) error {
	if e.Statut != EssaiAttente {
		return InvalidTransitionf("essai %s is %s, expected %s", e.ID, e.Statut, EssaiAttente)
	}
	duree, err := NominalDuration(EssaiType(e.Type))
	if err != nil {
		return err
	}
	fin := dateDebut.AddDate(0, 0, duree)
	e.Statut = EssaiEnCours
	e.Operateur = operateur
	e.DateDebut = &dateDebut
	e.DateFin = &fin
	return nil
}

// CompleteEssai moves an essai from en_cours to termine with its results.
// Results must satisfy the type-specific schema; nothing is committed on a
// schema violation.
func CompleteEssai(e *model.Essai, dateFin time.Time, resultats []byte, commentaires string) error {
	if e.Statut != EssaiEnCours {
		return InvalidTransitionf("essai %s is %s, expected %s", e.ID, e.Statut, EssaiEnCours)
	}
	if err := ValidateResultats(EssaiType(e.Type), resultats); err != nil {
		return err
	}
	e.Statut = EssaiTermine
	e.DateFin = &dateFin
	e.Resultats = resultats
	e.Commentaires = commentaires
	return nil
}

// AcceptEssai marks a termine essai as accepted for the current attempt.
// Accepting an essai whose DateRejet is set makes it a resumed essai
// (WasResumed), which is display metadata only.
func AcceptEssai(e *model.Essai, commentaire string) error {
	if e.Statut != EssaiTermine {
		return InvalidTransitionf("essai %s is %s, only %s essais can be accepted", e.ID, e.Statut, EssaiTermine)
	}
	e.StatutValidation = ValidationAccepted
	e.CommentairesValidation = commentaire
	return nil
}

// RejectEssai bounces a termine essai back to attente for correction. The
// validation status resets to pending for the next attempt; DateRejet is set
// once and never cleared afterwards, which is what keeps the rejection
// traceable across any number of resubmission cycles. Rejection escalates
// the essai to urgente so a corrected run gets scheduled first.
func RejectEssai(e *model.Essai, commentaire string, dateRejet time.Time) error {
	if strings.TrimSpace(commentaire) == "" {
		return Validationf("a rejection comment is required")
	}
	if e.Statut != EssaiTermine {
		return InvalidTransitionf("essai %s is %s, only %s essais can be rejected", e.ID, e.Statut, EssaiTermine)
	}
	e.Statut = EssaiAttente
	e.StatutValidation = ValidationRejected
	e.CommentairesValidation = commentaire
	e.Priorite = string(PrioriteUrgente)
	if e.DateRejet == nil {
		e.DateRejet = &dateRejet
	}
	return nil
}

// ResumeEssai puts a rejected essai back to work. It is the explicit entry
// of the correction loop: rejected → attente/en_cours → termine → accept.
func ResumeEssai(e *model.Essai, operateur string, dateDebut time.Time) error {
	if e.StatutValidation != ValidationRejected {
		return InvalidTransitionf("essai %s is not rejected", e.ID)
	}
	if e.Statut != EssaiAttente {
		return InvalidTransitionf("essai %s is %s, expected %s", e.ID, e.Statut, EssaiAttente)
	}
	e.StatutValidation = ValidationPending
	return StartEssai(e, operateur, dateDebut)
}
