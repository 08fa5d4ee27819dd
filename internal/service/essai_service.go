package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/metrics"
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"gorm.io/gorm"
)

// EssaiService drives the essai lifecycle (start, complete, decodification
// accept/reject) and the aggregation that moves the owning echantillon
// forward when every requested essai has converged.
type EssaiService interface {
	Start(id string, req *StartEssaiRequest) (*model.Essai, error)
	Complete(id string, req *CompleteEssaiRequest) (*model.Essai, error)
	Accept(id string, req *DecodeEssaiRequest) (*model.Essai, error)
	Reject(id string, req *DecodeEssaiRequest) (*model.Essai, error)
	Get(id string) (*model.Essai, error)
	List(filter *repository.EssaiFilter) ([]*model.Essai, error)
	ListRejected(section string) ([]*model.Essai, error)
	AttachFile(id, reference string) (*model.Essai, error)
}

// StartEssaiRequest names the operator taking the essai and optionally
// overrides the start date.
type StartEssaiRequest struct {
	Operateur string     `json:"operateur" binding:"required"`
	DateDebut *time.Time `json:"date_debut"`
}

// CompleteEssaiRequest carries the results payload of a finished essai.
type CompleteEssaiRequest struct {
	DateFin      *time.Time      `json:"date_fin"`
	Resultats    json.RawMessage `json:"resultats" binding:"required"`
	Commentaires string          `json:"commentaires"`
}

// DecodeEssaiRequest carries the decodification verdict commentary.
type DecodeEssaiRequest struct {
	Commentaire string `json:"commentaire"`
}

type essaiService struct {
	db            *gorm.DB
	essais        repository.EssaiRepository
	notifications NotificationService
}

// NewEssaiService creates the essai service.
func NewEssaiService(db *gorm.DB, essais repository.EssaiRepository, notifications NotificationService) EssaiService {
	return &essaiService{db: db, essais: essais, notifications: notifications}
}

// Start begins an essai. A rejected essai resumes instead, which resets its
// validation verdict while keeping the rejection date. Starting the first
// essai of an echantillon also moves the echantillon into the essais stage.
func (s *essaiService) Start(id string, req *StartEssaiRequest) (*model.Essai, error) {
	if strings.TrimSpace(req.Operateur) == "" {
		return nil, workflow.Validationf("operateur is required")
	}
	start := time.Now()
	if req.DateDebut != nil {
		start = *req.DateDebut
	}

	var essai *model.Essai
	err := s.db.Transaction(func(tx *gorm.DB) error {
		es, err := repository.NewEssaiRepository(tx).FindByID(id)
		if err != nil {
			return translateNotFound(err, "essai %s", id)
		}
		previous := es.Version
		if es.StatutValidation == workflow.ValidationRejected {
			err = workflow.ResumeEssai(es, req.Operateur, start)
		} else {
			err = workflow.StartEssai(es, req.Operateur, start)
		}
		if err != nil {
			return err
		}
		es.Version++
		es.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, es); err != nil {
			return err
		}

		echRepo := repository.NewEchantillonRepository(tx)
		ech, err := echRepo.FindByCode(es.EchantillonCode)
		if err != nil {
			return translateNotFound(err, "echantillon %s", es.EchantillonCode)
		}
		stage := workflow.Stage(ech.Statut)
		if stage == workflow.StageStockage || stage == workflow.StageAttente {
			prev := ech.Version
			ech.Statut = string(workflow.StageEssais)
			ech.Version++
			ech.UpdatedAt = time.Now()
			if err := updateVersioned(tx, prev, ech); err != nil {
				return err
			}
			metrics.RecordStageTransition(string(workflow.StageEssais))
		}
		essai = es
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordEssaiTransition("start")
	return essai, nil
}

// Complete finishes an essai with validated results. When every requested
// essai of the echantillon is termine, the echantillon moves to
// decodification.
func (s *essaiService) Complete(id string, req *CompleteEssaiRequest) (*model.Essai, error) {
	end := time.Now()
	if req.DateFin != nil {
		end = *req.DateFin
	}

	var essai *model.Essai
	var readyForDecoding bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		es, err := repository.NewEssaiRepository(tx).FindByID(id)
		if err != nil {
			return translateNotFound(err, "essai %s", id)
		}
		previous := es.Version
		if err := workflow.CompleteEssai(es, end, req.Resultats, req.Commentaires); err != nil {
			return err
		}
		es.Version++
		es.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, es); err != nil {
			return err
		}

		readyForDecoding, err = s.reaggregate(tx, es.EchantillonCode, workflow.NextStageOnCompletion)
		if err != nil {
			return err
		}
		essai = es
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordEssaiTransition("complete")
	s.notifications.Notify(workflow.RoleResponsableMateriaux, "info",
		"Essai terminé",
		fmt.Sprintf("L'essai %s de l'échantillon %s est terminé.", essai.Type, essai.EchantillonCode),
		false, essai.EchantillonCode, essai.ID)
	if readyForDecoding {
		metrics.RecordStageTransition(string(workflow.StageDecodification))
		s.notifications.Notify(workflow.RoleResponsableMateriaux, "success",
			"Échantillon prêt pour décodification",
			fmt.Sprintf("Tous les essais de l'échantillon %s sont terminés.", essai.EchantillonCode),
			true, essai.EchantillonCode, "")
	}
	return essai, nil
}

// Accept records a positive decodification verdict. When every requested
// essai is accepted, the echantillon moves to traitement.
func (s *essaiService) Accept(id string, req *DecodeEssaiRequest) (*model.Essai, error) {
	var essai *model.Essai
	var sentToTraitement bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		es, err := repository.NewEssaiRepository(tx).FindByID(id)
		if err != nil {
			return translateNotFound(err, "essai %s", id)
		}
		previous := es.Version
		if err := workflow.AcceptEssai(es, req.Commentaire); err != nil {
			return err
		}
		es.Version++
		es.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, es); err != nil {
			return err
		}

		sentToTraitement, err = s.reaggregate(tx, es.EchantillonCode, workflow.NextStageOnValidation)
		if err != nil {
			return err
		}
		essai = es
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordEssaiTransition("accept")
	if sentToTraitement {
		metrics.RecordStageTransition(string(workflow.StageTraitement))
		s.notifications.Notify(workflow.RoleResponsableTraitement, "success",
			"Nouvel échantillon en traitement",
			fmt.Sprintf("Tous les essais de l'échantillon %s ont été acceptés.", essai.EchantillonCode),
			true, essai.EchantillonCode, "")
	}
	return essai, nil
}

// Reject records a negative decodification verdict, sends the essai back to
// attente and escalates the echantillon to urgente so the redo jumps the
// queue. The section operator is notified with the reviewer's comment.
func (s *essaiService) Reject(id string, req *DecodeEssaiRequest) (*model.Essai, error) {
	var essai *model.Essai
	err := s.db.Transaction(func(tx *gorm.DB) error {
		es, err := repository.NewEssaiRepository(tx).FindByID(id)
		if err != nil {
			return translateNotFound(err, "essai %s", id)
		}
		previous := es.Version
		if err := workflow.RejectEssai(es, req.Commentaire, time.Now()); err != nil {
			return err
		}
		es.Version++
		es.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, es); err != nil {
			return err
		}

		echRepo := repository.NewEchantillonRepository(tx)
		ech, err := echRepo.FindByCode(es.EchantillonCode)
		if err != nil {
			return translateNotFound(err, "echantillon %s", es.EchantillonCode)
		}
		if ech.Priorite != string(workflow.PrioriteUrgente) {
			prev := ech.Version
			ech.Priorite = string(workflow.PrioriteUrgente)
			ech.Version++
			ech.UpdatedAt = time.Now()
			if err := updateVersioned(tx, prev, ech); err != nil {
				return err
			}
		}
		essai = es
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordEssaiTransition("reject")
	role := workflow.RoleOperateurRoute
	if essai.Section == string(workflow.SectionMecanique) {
		role = workflow.RoleOperateurMecanique
	}
	s.notifications.Notify(role, "warning",
		"Essai rejeté",
		fmt.Sprintf("L'essai %s de l'échantillon %s a été rejeté : %s", essai.Type, essai.EchantillonCode, essai.CommentairesValidation),
		true, essai.EchantillonCode, essai.ID)
	return essai, nil
}

// Get returns an essai by id.
func (s *essaiService) Get(id string) (*model.Essai, error) {
	es, err := s.essais.FindByID(id)
	if err != nil {
		return nil, translateNotFound(err, "essai %s", id)
	}
	return es, nil
}

// List returns essais matching a filter, urgent first.
func (s *essaiService) List(filter *repository.EssaiFilter) ([]*model.Essai, error) {
	return s.essais.FindByFilter(filter)
}

// ListRejected returns essais that were rejected at least once, optionally
// restricted to a section.
func (s *essaiService) ListRejected(section string) ([]*model.Essai, error) {
	if section != "" && section != string(workflow.SectionRoute) && section != string(workflow.SectionMecanique) {
		return nil, workflow.Validationf("unknown section %q", section)
	}
	return s.essais.FindRejected(section)
}

// AttachFile records a report file reference on an essai.
func (s *essaiService) AttachFile(id, reference string) (*model.Essai, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, workflow.Validationf("file reference is required")
	}
	var essai *model.Essai
	err := s.db.Transaction(func(tx *gorm.DB) error {
		es, err := repository.NewEssaiRepository(tx).FindByID(id)
		if err != nil {
			return translateNotFound(err, "essai %s", id)
		}
		previous := es.Version
		es.Fichier = reference
		es.Version++
		es.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, es); err != nil {
			return err
		}
		essai = es
		return nil
	})
	if err != nil {
		return nil, err
	}
	return essai, nil
}

// reaggregate reloads the echantillon and all its essais inside the
// transaction and applies an aggregation rule. It reports whether the
// echantillon actually changed stage.
func (s *essaiService) reaggregate(tx *gorm.DB, code string, rule func(workflow.Stage, []string, []model.Essai) workflow.Stage) (bool, error) {
	echRepo := repository.NewEchantillonRepository(tx)
	ech, err := echRepo.FindByCode(code)
	if err != nil {
		return false, translateNotFound(err, "echantillon %s", code)
	}
	types, err := ech.TypesDemandes()
	if err != nil {
		return false, err
	}
	list, err := repository.NewEssaiRepository(tx).FindByEchantillonCode(code)
	if err != nil {
		return false, err
	}
	next := rule(workflow.Stage(ech.Statut), types, list)
	if next == workflow.Stage(ech.Statut) {
		return false, nil
	}
	previous := ech.Version
	ech.Statut = string(next)
	ech.Version++
	ech.UpdatedAt = time.Now()
	if err := updateVersioned(tx, previous, ech); err != nil {
		return false, err
	}
	return true, nil
}
