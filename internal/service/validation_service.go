package service

import (
	"fmt"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/metrics"
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationService walks an echantillon's report through the four-level
// approval chain and keeps the audit trail of every verdict.
type ValidationService interface {
	SubmitForValidation(code string) (*model.Echantillon, error)
	Approve(code, role, commentaire string) (*model.Echantillon, error)
	Reject(code, role, commentaire string) (*model.Echantillon, error)
	History(code string) ([]*model.ValidationHistory, error)
	PendingForRole(role string) (map[string][]*model.Echantillon, error)
}

type validationService struct {
	db            *gorm.DB
	echantillons  repository.EchantillonRepository
	history       repository.ValidationHistoryRepository
	notifications NotificationService
}

// NewValidationService creates the validation service.
func NewValidationService(db *gorm.DB, echantillons repository.EchantillonRepository, history repository.ValidationHistoryRepository, notifications NotificationService) ValidationService {
	return &validationService{
		db:            db,
		echantillons:  echantillons,
		history:       history,
		notifications: notifications,
	}
}

// SubmitForValidation moves a processed echantillon into the approval chain,
// starting at the first level.
func (s *validationService) SubmitForValidation(code string) (*model.Echantillon, error) {
	var ech *model.Echantillon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		e, err := repository.NewEchantillonRepository(tx).FindByCode(code)
		if err != nil {
			return translateNotFound(err, "echantillon %s", code)
		}
		previous := e.Version
		if err := workflow.EnterValidation(e); err != nil {
			return err
		}
		e.Version++
		e.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, e); err != nil {
			return err
		}
		ech = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordStageTransition(string(workflow.StageValidation))
	s.notifications.Notify(workflow.RoleChefProjet, "info",
		"Rapport à valider",
		fmt.Sprintf("Le rapport de l'échantillon %s attend votre validation.", code),
		true, code, "")
	return ech, nil
}

// Approve records one positive verdict at the level the caller's role is
// expected at. The last level marks the echantillon valide; otherwise the
// next approver in the chain is notified.
func (s *validationService) Approve(code, role, commentaire string) (*model.Echantillon, error) {
	var ech *model.Echantillon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		e, err := repository.NewEchantillonRepository(tx).FindByCode(code)
		if err != nil {
			return translateNotFound(err, "echantillon %s", code)
		}
		niveau := e.NiveauValidation
		previous := e.Version
		if err := workflow.ApproveLevel(e, role); err != nil {
			return err
		}
		e.Version++
		e.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, e); err != nil {
			return err
		}
		entry := &model.ValidationHistory{
			ID:              uuid.NewString(),
			EchantillonCode: code,
			Niveau:          workflow.ChainOrder[niveau],
			Action:          "valide",
			Observations:    commentaire,
			CreatedAt:       time.Now(),
		}
		if err := repository.NewValidationHistoryRepository(tx).Save(entry); err != nil {
			return err
		}
		ech = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApproval("approve")
	if workflow.Stage(ech.Statut) == workflow.StageValide {
		metrics.RecordStageTransition(string(workflow.StageValide))
		s.notifications.Notify(workflow.RoleReceptionniste, "success",
			"Rapport validé",
			fmt.Sprintf("Le rapport de l'échantillon %s a été validé, le client peut être prévenu.", code),
			false, code, "")
	} else {
		s.notifications.Notify(workflow.ChainOrder[ech.NiveauValidation], "info",
			"Rapport à valider",
			fmt.Sprintf("Le rapport de l'échantillon %s attend votre validation.", code),
			true, code, "")
	}
	return ech, nil
}

// Reject records a negative verdict at any level of the chain, which
// short-circuits the echantillon to rejete. The traitement team is notified
// to rework the report.
func (s *validationService) Reject(code, role, commentaire string) (*model.Echantillon, error) {
	var ech *model.Echantillon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		e, err := repository.NewEchantillonRepository(tx).FindByCode(code)
		if err != nil {
			return translateNotFound(err, "echantillon %s", code)
		}
		niveau := e.NiveauValidation
		previous := e.Version
		if err := workflow.RejectLevel(e, role, commentaire); err != nil {
			return err
		}
		e.Version++
		e.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, e); err != nil {
			return err
		}
		entry := &model.ValidationHistory{
			ID:              uuid.NewString(),
			EchantillonCode: code,
			Niveau:          workflow.ChainOrder[niveau],
			Action:          "rejete",
			Observations:    commentaire,
			CreatedAt:       time.Now(),
		}
		if err := repository.NewValidationHistoryRepository(tx).Save(entry); err != nil {
			return err
		}
		ech = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApproval("reject")
	metrics.RecordStageTransition(string(workflow.StageRejete))
	s.notifications.Notify(workflow.RoleResponsableTraitement, "warning",
		"Rapport rejeté",
		fmt.Sprintf("Le rapport de l'échantillon %s a été rejeté : %s", code, commentaire),
		true, code, "")
	return ech, nil
}

// History returns the verdict trail of an echantillon, oldest first.
func (s *validationService) History(code string) ([]*model.ValidationHistory, error) {
	if _, err := s.echantillons.FindByCode(code); err != nil {
		return nil, translateNotFound(err, "echantillon %s", code)
	}
	return s.history.FindByEchantillonCode(code)
}

// PendingForRole returns the echantillons currently waiting on the given
// chain role, grouped by chef de projet.
func (s *validationService) PendingForRole(role string) (map[string][]*model.Echantillon, error) {
	if !workflow.KnownRole(role) {
		return nil, workflow.Forbiddenf("unknown role %q", role)
	}
	statut := string(workflow.StageValidation)
	list, err := s.echantillons.FindByFilter(&repository.EchantillonFilter{Statut: &statut})
	if err != nil {
		return nil, err
	}
	pending := make(map[string][]*model.Echantillon)
	for _, e := range list {
		expected, err := workflow.ExpectedRole(e)
		if err != nil {
			continue
		}
		if expected == role {
			pending[e.ChefProjet] = append(pending[e.ChefProjet], e)
		}
	}
	return pending, nil
}
