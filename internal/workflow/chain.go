package workflow

import (
	"strings"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
)

// Approval roles, in the fixed sign-off order. The chain walks this slice
// with a per-echantillon cursor; rejection at any level short-circuits the
// remainder, it never resets to the previous level.
const (
	RoleChefProjet         = "chef_projet"
	RoleChefService        = "chef_service"
	RoleDirecteurTechnique = "directeur_technique"
	RoleDirecteurGeneral   = "directeur_general"
)

// Operational roles outside the approval chain, used as notification targets.
const (
	RoleReceptionniste        = "receptionniste"
	RoleResponsableMateriaux  = "responsable_materiaux"
	RoleOperateurRoute        = "operateur_route"
	RoleOperateurMecanique    = "operateur_mecanique"
	RoleResponsableTraitement = "responsable_traitement"
)

// ChainOrder is the fixed role sequence of the hierarchical sign-off.
var ChainOrder = []string{
	RoleChefProjet,
	RoleChefService,
	RoleDirecteurTechnique,
	RoleDirecteurGeneral,
}

// ExpectedRole returns the role the chain expects at the echantillon's
// current cursor, or an error when the echantillon is not under validation.
func ExpectedRole(e *model.Echantillon) (string, error) {
	if Stage(e.Statut) != StageValidation {
		return "", InvalidTransitionf("echantillon %s is %s, not under validation", e.Code, e.Statut)
	}
	if e.NiveauValidation < 0 || e.NiveauValidation >= len(ChainOrder) {
		return "", InvalidTransitionf("echantillon %s has no pending approval level", e.Code)
	}
	return ChainOrder[e.NiveauValidation], nil
}

// EnterValidation moves an echantillon from traitement into the approval
// chain, pointing the cursor at the first role.
func EnterValidation(e *model.Echantillon) error {
	if Stage(e.Statut) != StageTraitement {
		return InvalidTransitionf("echantillon %s is %s, expected %s", e.Code, e.Statut, StageTraitement)
	}
	e.Statut = string(StageValidation)
	e.NiveauValidation = 0
	return nil
}

// ApproveLevel records an approval by role. The wrong role at the cursor is
// Forbidden. The last role's approval makes the echantillon valide
// (terminal); any earlier approval advances the cursor and leaves the stage
// at validation for the next role.
func ApproveLevel(e *model.Echantillon, role string) error {
	expected, err := ExpectedRole(e)
	if err != nil {
		return err
	}
	if role != expected {
		return Forbiddenf("role %s cannot approve %s, expected %s", role, e.Code, expected)
	}
	if e.NiveauValidation == len(ChainOrder)-1 {
		e.Statut = string(StageValide)
		e.NiveauValidation = len(ChainOrder)
		return nil
	}
	e.NiveauValidation++
	return nil
}

// RejectLevel records a rejection by role, requiring a non-empty comment.
// The echantillon goes straight to rejete regardless of how far the cursor
// had advanced.
func RejectLevel(e *model.Echantillon, role, commentaire string) error {
	if strings.TrimSpace(commentaire) == "" {
		return Validationf("a rejection comment is required")
	}
	expected, err := ExpectedRole(e)
	if err != nil {
		return err
	}
	if role != expected {
		return Forbiddenf("role %s cannot reject %s, expected %s", role, e.Code, expected)
	}
	e.Statut = string(StageRejete)
	e.NiveauValidation = -1
	return nil
}

// KnownRole reports whether role belongs to the approval chain.
func KnownRole(role string) bool {
	for _, r := range ChainOrder {
		if r == role {
			return true
		}
	}
	return false
}
