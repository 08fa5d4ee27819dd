package workflow

// Stage is the pipeline stage of an echantillon.
type Stage string

// Pipeline stages. The nominal path is attente → stockage → essais →
// decodification → traitement → validation → valide; rejete is reachable
// from any validation level and sends the echantillon backward, never away.
const (
	StageAttente        Stage = "attente"
	StageStockage       Stage = "stockage"
	StageEssais         Stage = "essais"
	StageDecodification Stage = "decodification"
	StageTraitement     Stage = "traitement"
	StageValidation     Stage = "validation"
	StageValide         Stage = "valide"
	StageRejete         Stage = "rejete"
)

// stageRank orders stages from least to most advanced for dashboard rollups.
// rejete ranks below attente: a rejected echantillon is the worst case a
// client can be in, so it dominates the per-client summary.
var stageRank = map[Stage]int{
	StageRejete:         0,
	StageAttente:        1,
	StageStockage:       2,
	StageEssais:         3,
	StageDecodification: 4,
	StageTraitement:     5,
	StageValidation:     6,
	StageValide:         7,
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// Rank returns the position of s in the worst-first total order.
// Unknown stages rank as least advanced.
func (s Stage) Rank() int {
	return stageRank[s]
}

// WorstStage returns the least-advanced stage among stages, summarizing a
// client's overall standing as its worst case. Returns StageValide for an
// empty slice, the neutral element of the min.
func WorstStage(stages []Stage) Stage {
	worst := StageValide
	for _, s := range stages {
		if s.Rank() < worst.Rank() {
			worst = s
		}
	}
	return worst
}
