package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/metrics"
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"github.com/fadelsew02/maxime-app-sub000/internal/repository"
	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EchantillonService owns intake and the echantillon-level pipeline
// operations that are not driven by essai aggregation: reception, storage,
// dispatch to the sections, and the public scan-code lookup.
type EchantillonService interface {
	CreateClient(req *CreateClientRequest) (*model.Client, error)
	CreateEchantillon(req *CreateEchantillonRequest) (*model.Echantillon, error)
	Store(code, emplacement string) (*model.Echantillon, error)
	Dispatch(code string, dateEnvoi time.Time) (*model.Echantillon, error)
	Get(code string) (*model.Echantillon, error)
	List(filter *repository.EchantillonFilter) ([]*model.Echantillon, error)
	ListClients() ([]*model.Client, error)
	LookupByScanCode(scanCode string) (*ScanLookupResult, error)
	WorstStageByClient() ([]ClientOverview, error)
}

// CreateClientRequest carries the intake form of a new client.
type CreateClientRequest struct {
	Nom       string `json:"nom" binding:"required"`
	Projet    string `json:"projet"`
	Contact   string `json:"contact"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
}

// CreateEchantillonRequest carries the intake form of a new echantillon.
type CreateEchantillonRequest struct {
	ClientCode      string   `json:"client_code" binding:"required"`
	Nature          string   `json:"nature" binding:"required"`
	ProfondeurDebut float64  `json:"profondeur_debut"`
	ProfondeurFin   float64  `json:"profondeur_fin"`
	Sondage         string   `json:"sondage"`
	Nappe           string   `json:"nappe"`
	EssaisTypes     []string `json:"essais_types" binding:"required"`
	Priorite        string   `json:"priorite"`
	ChefProjet      string   `json:"chef_projet"`
	Photo           string   `json:"photo"`
}

// ScanLookupResult is the public view returned for a scan code: echantillon,
// owning client and a per-essai summary, no internal identifiers.
type ScanLookupResult struct {
	Code          string             `json:"code"`
	Nature        string             `json:"nature"`
	Statut        string             `json:"statut"`
	Priorite      string             `json:"priorite"`
	DateReception time.Time          `json:"date_reception"`
	Client        ScanClientSummary  `json:"client"`
	Essais        []ScanEssaiSummary `json:"essais"`
}

// ScanClientSummary is the client slice of the public lookup.
type ScanClientSummary struct {
	Code   string `json:"code"`
	Nom    string `json:"nom"`
	Projet string `json:"projet"`
}

// ScanEssaiSummary is the per-essai slice of the public lookup.
type ScanEssaiSummary struct {
	Type             string `json:"type"`
	Section          string `json:"section"`
	Statut           string `json:"statut"`
	StatutValidation string `json:"statut_validation"`
	WasResumed       bool   `json:"was_resumed"`
}

// ClientOverview summarizes a client's standing as the worst stage across
// all their echantillons.
type ClientOverview struct {
	ClientCode string         `json:"client_code"`
	ClientNom  string         `json:"client_nom"`
	Stage      workflow.Stage `json:"stage"`
	Count      int            `json:"count"`
}

type echantillonService struct {
	db            *gorm.DB
	clients       repository.ClientRepository
	echantillons  repository.EchantillonRepository
	essais        repository.EssaiRepository
	notifications NotificationService
}

// NewEchantillonService creates the echantillon service.
func NewEchantillonService(db *gorm.DB, clients repository.ClientRepository, echantillons repository.EchantillonRepository, essais repository.EssaiRepository, notifications NotificationService) EchantillonService {
	return &echantillonService{
		db:            db,
		clients:       clients,
		echantillons:  echantillons,
		essais:        essais,
		notifications: notifications,
	}
}

// CreateClient registers a client with the next CLI-NNN code.
func (s *echantillonService) CreateClient(req *CreateClientRequest) (*model.Client, error) {
	if strings.TrimSpace(req.Nom) == "" {
		return nil, workflow.Validationf("client name is required")
	}

	var client *model.Client
	err := s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := repository.NewClientRepository(tx).NextSequence()
		if err != nil {
			return err
		}
		now := time.Now()
		client = &model.Client{
			ID:        uuid.NewString(),
			Code:      workflow.FormatClientCode(seq),
			Nom:       req.Nom,
			Projet:    req.Projet,
			Contact:   req.Contact,
			Telephone: req.Telephone,
			Email:     req.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := client.Validate(); err != nil {
			return workflow.Validationf("%v", err)
		}
		return tx.Create(client).Error
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateEchantillon registers an echantillon at reception with its immutable
// requested essai set, generates the year-scoped code and the scan code, and
// creates one attente essai per requested type.
func (s *echantillonService) CreateEchantillon(req *CreateEchantillonRequest) (*model.Echantillon, error) {
	if len(req.EssaisTypes) == 0 {
		return nil, workflow.Validationf("at least one essai type is required")
	}
	seen := make(map[string]bool, len(req.EssaisTypes))
	for _, t := range req.EssaisTypes {
		if !workflow.KnownType(workflow.EssaiType(t)) {
			return nil, workflow.Validationf("unknown essai type %q", t)
		}
		if seen[t] {
			return nil, workflow.Validationf("essai type %q requested twice", t)
		}
		seen[t] = true
	}
	priorite := req.Priorite
	if priorite == "" {
		priorite = string(workflow.PrioriteNormale)
	}
	if priorite != string(workflow.PrioriteNormale) && priorite != string(workflow.PrioriteUrgente) {
		return nil, workflow.Validationf("unknown priorite %q", priorite)
	}

	if _, err := s.clients.FindByCode(req.ClientCode); err != nil {
		return nil, translateNotFound(err, "client %s", req.ClientCode)
	}

	var ech *model.Echantillon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		seq, err := repository.NewEchantillonRepository(tx).NextSequence(now)
		if err != nil {
			return err
		}
		code := workflow.FormatEchantillonCode(seq, now)

		ech = &model.Echantillon{
			ID:               uuid.NewString(),
			Code:             code,
			ClientCode:       req.ClientCode,
			Nature:           req.Nature,
			ProfondeurDebut:  req.ProfondeurDebut,
			ProfondeurFin:    req.ProfondeurFin,
			Sondage:          req.Sondage,
			Nappe:            req.Nappe,
			Statut:           string(workflow.StageAttente),
			Priorite:         priorite,
			ChefProjet:       req.ChefProjet,
			NiveauValidation: -1,
			QRCode:           workflow.ScanCode(code),
			Photo:            req.Photo,
			DateReception:    now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := ech.SetTypesDemandes(req.EssaisTypes); err != nil {
			return err
		}
		if err := ech.Validate(); err != nil {
			return workflow.Validationf("%v", err)
		}
		if err := tx.Create(ech).Error; err != nil {
			return err
		}

		for _, t := range req.EssaisTypes {
			section, err := workflow.SectionFor(workflow.EssaiType(t))
			if err != nil {
				return err
			}
			duree, err := workflow.NominalDuration(workflow.EssaiType(t))
			if err != nil {
				return err
			}
			essai := &model.Essai{
				ID:               uuid.NewString(),
				EchantillonCode:  code,
				Type:             t,
				Section:          string(section),
				Statut:           workflow.EssaiAttente,
				StatutValidation: workflow.ValidationPending,
				Priorite:         priorite,
				DureeEstimee:     duree,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := tx.Create(essai).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordEchantillonCree()
	s.notifications.Notify(workflow.RoleResponsableMateriaux, "info",
		"Nouvel échantillon reçu",
		fmt.Sprintf("L'échantillon %s a été enregistré à la réception.", ech.Code),
		true, ech.Code, "")
	return ech, nil
}

// Store places a received echantillon in storage (attente → stockage).
func (s *echantillonService) Store(code, emplacement string) (*model.Echantillon, error) {
	var ech *model.Echantillon
	err := s.db.Transaction(func(tx *gorm.DB) error {
		e, err := repository.NewEchantillonRepository(tx).FindByCode(code)
		if err != nil {
			return translateNotFound(err, "echantillon %s", code)
		}
		if workflow.Stage(e.Statut) != workflow.StageAttente {
			return workflow.InvalidTransitionf("echantillon %s is %s, expected %s", code, e.Statut, workflow.StageAttente)
		}
		previous := e.Version
		e.Statut = string(workflow.StageStockage)
		e.Stockage = emplacement
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
	metrics.RecordStageTransition(string(workflow.StageStockage))
	return ech, nil
}

// Dispatch records the send date of an echantillon's essais toward the
// sections and derives the predicted return date from the slowest requested
// type. The sections are notified; the stage itself only moves to essais
// when an operator actually starts the first essai.
func (s *echantillonService) Dispatch(code string, dateEnvoi time.Time) (*model.Echantillon, error) {
	var ech *model.Echantillon
	sections := make(map[string]bool)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		e, err := repository.NewEchantillonRepository(tx).FindByCode(code)
		if err != nil {
			return translateNotFound(err, "echantillon %s", code)
		}
		stage := workflow.Stage(e.Statut)
		if stage != workflow.StageStockage && stage != workflow.StageAttente {
			return workflow.InvalidTransitionf("echantillon %s is %s, cannot dispatch", code, e.Statut)
		}

		types, err := e.TypesDemandes()
		if err != nil {
			return err
		}
		var retour time.Time
		for _, t := range types {
			r, err := workflow.ComputeReturnDate(dateEnvoi, workflow.EssaiType(t), workflow.Priorite(e.Priorite))
			if err != nil {
				return err
			}
			if r.After(retour) {
				retour = r
			}
			section, err := workflow.SectionFor(workflow.EssaiType(t))
			if err != nil {
				return err
			}
			sections[string(section)] = true
		}

		previous := e.Version
		e.DateEnvoi = &dateEnvoi
		e.DateRetour = &retour
		e.Version++
		e.UpdatedAt = time.Now()
		if err := updateVersioned(tx, previous, e); err != nil {
			return err
		}

		if err := tx.Model(&model.Essai{}).
			Where("echantillon_code = ?", code).
			Updates(map[string]interface{}{"date_envoi": dateEnvoi, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		ech = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	for section := range sections {
		role := workflow.RoleOperateurRoute
		if section == string(workflow.SectionMecanique) {
			role = workflow.RoleOperateurMecanique
		}
		s.notifications.Notify(role, "info",
			"Essais à réaliser",
			fmt.Sprintf("Les essais de l'échantillon %s ont été envoyés à la section %s.", code, section),
			true, code, "")
	}
	return ech, nil
}

// Get returns an echantillon by business code.
func (s *echantillonService) Get(code string) (*model.Echantillon, error) {
	e, err := s.echantillons.FindByCode(code)
	if err != nil {
		return nil, translateNotFound(err, "echantillon %s", code)
	}
	return e, nil
}

// List returns echantillons matching a filter.
func (s *echantillonService) List(filter *repository.EchantillonFilter) ([]*model.Echantillon, error) {
	return s.echantillons.FindByFilter(filter)
}

// ListClients returns all clients.
func (s *echantillonService) ListClients() ([]*model.Client, error) {
	return s.clients.FindAll()
}

// LookupByScanCode resolves a public scan code into a summary of the
// echantillon, its client and its essais. An unknown code is a NotFound
// result; nothing about internal identifiers leaks out.
func (s *echantillonService) LookupByScanCode(scanCode string) (*ScanLookupResult, error) {
	e, err := s.echantillons.FindByQRCode(scanCode)
	if err != nil {
		return nil, translateNotFound(err, "scan code %s", scanCode)
	}
	client, err := s.clients.FindByCode(e.ClientCode)
	if err != nil {
		return nil, translateNotFound(err, "client %s", e.ClientCode)
	}
	essais, err := s.essais.FindByEchantillonCode(e.Code)
	if err != nil {
		return nil, err
	}

	result := &ScanLookupResult{
		Code:          e.Code,
		Nature:        e.Nature,
		Statut:        e.Statut,
		Priorite:      e.Priorite,
		DateReception: e.DateReception,
		Client: ScanClientSummary{
			Code:   client.Code,
			Nom:    client.Nom,
			Projet: client.Projet,
		},
	}
	for _, es := range essais {
		result.Essais = append(result.Essais, ScanEssaiSummary{
			Type:             es.Type,
			Section:          es.Section,
			Statut:           es.Statut,
			StatutValidation: es.StatutValidation,
			WasResumed:       es.WasResumed(),
		})
	}
	return result, nil
}

// WorstStageByClient rolls echantillons up per client, keeping the
// least-advanced stage. One rejected echantillon colors the whole client
// red on the dashboard.
func (s *echantillonService) WorstStageByClient() ([]ClientOverview, error) {
	clients, err := s.clients.FindAll()
	if err != nil {
		return nil, err
	}
	var overview []ClientOverview
	for _, c := range clients {
		code := c.Code
		list, err := s.echantillons.FindByFilter(&repository.EchantillonFilter{ClientCode: &code})
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			continue
		}
		stages := make([]workflow.Stage, 0, len(list))
		for _, e := range list {
			stages = append(stages, workflow.Stage(e.Statut))
		}
		overview = append(overview, ClientOverview{
			ClientCode: c.Code,
			ClientNom:  c.Nom,
			Stage:      workflow.WorstStage(stages),
			Count:      len(list),
		})
	}
	return overview, nil
}
