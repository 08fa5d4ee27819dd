package workflow

import (
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
)

// Aggregation rules derive an echantillon's pipeline stage from the
// collective state of its essais. The denominator is always the requested
// type set fixed at intake, never just the essais currently sitting in the
// termine table: an essai knocked back to attente by a rejection still
// counts against "N of M accepted".

// AllTermine reports whether every requested type has an essai with
// execution status termine.
func AllTermine(typesDemandes []string, essais []model.Essai) bool {
	return countByPredicate(typesDemandes, essais, func(e model.Essai) bool {
		return e.Statut == EssaiTermine
	})
}

// AllAccepted reports whether every requested type has an essai whose
// current validation status is accepted. A rejected essai that has not been
// re-accepted, or a pending one, blocks the echantillon in decodification
// indefinitely; there is no timeout.
func AllAccepted(typesDemandes []string, essais []model.Essai) bool {
	return countByPredicate(typesDemandes, essais, func(e model.Essai) bool {
		return e.Statut == EssaiTermine && e.StatutValidation == ValidationAccepted
	})
}

func countByPredicate(typesDemandes []string, essais []model.Essai, ok func(model.Essai) bool) bool {
	if len(typesDemandes) == 0 {
		return false
	}
	matched := make(map[string]bool, len(typesDemandes))
	for _, e := range essais {
		if ok(e) {
			matched[e.Type] = true
		}
	}
	for _, t := range typesDemandes {
		if !matched[t] {
			return false
		}
	}
	return true
}

// NextStageOnCompletion returns the stage the echantillon should hold after
// an essai reached termine: essais → decodification once every requested
// type is physically finished, no-op otherwise.
func NextStageOnCompletion(current Stage, typesDemandes []string, essais []model.Essai) Stage {
	if current == StageEssais && AllTermine(typesDemandes, essais) {
		return StageDecodification
	}
	return current
}

// NextStageOnValidation returns the stage the echantillon should hold after
// the decoding gate ruled on an essai: decodification → traitement only when
// the current validation status of every requested type is accepted.
func NextStageOnValidation(current Stage, typesDemandes []string, essais []model.Essai) Stage {
	if current == StageDecodification && AllAccepted(typesDemandes, essais) {
		return StageTraitement
	}
	return current
}
