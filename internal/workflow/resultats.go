package workflow

import (
	"bytes"
	"encoding/json"
)

// Result payloads are a tagged union keyed by essai type: each type carries
// its own record with its own required fields. Values arrive from operators
// as free-form JSON; the gate here is "every required field present and
// non-null", numeric plausibility stays with the decoding reviewers.

// AGResultats is the analyse granulométrique record.
type AGResultats struct {
	Pct2mm  *float64 `json:"pct2mm"`
	Pct80um *float64 `json:"pct80um"`
	Cu      *float64 `json:"cu"`
}

// ProctorResultats is the compaction record.
type ProctorResultats struct {
	Type         *string  `json:"type"`
	DensiteOpt   *float64 `json:"densiteOpt"`
	TeneurEauOpt *float64 `json:"teneurEauOpt"`
}

// CBRResultats is the bearing ratio record.
type CBRResultats struct {
	CBR95      *float64 `json:"cbr95"`
	CBR98      *float64 `json:"cbr98"`
	CBR100     *float64 `json:"cbr100"`
	Gonflement *float64 `json:"gonflement"`
}

// OedometreResultats is the consolidation record.
type OedometreResultats struct {
	Cc *float64 `json:"cc"`
	Cs *float64 `json:"cs"`
	Gp *float64 `json:"gp"`
}

// CisaillementResultats is the shear record.
type CisaillementResultats struct {
	Cohesion *float64 `json:"cohesion"`
	Phi      *float64 `json:"phi"`
}

// requiredFields lists the fields each essai type must carry before its
// results are admissible.
var requiredFields = map[EssaiType][]string{
	TypeAG:           {"pct2mm", "pct80um", "cu"},
	TypeProctor:      {"type", "densiteOpt", "teneurEauOpt"},
	TypeCBR:          {"cbr95", "cbr98", "cbr100", "gonflement"},
	TypeOedometre:    {"cc", "cs", "gp"},
	TypeCisaillement: {"cohesion", "phi"},
}

// ValidateResultats checks a raw result payload against the schema of t.
func ValidateResultats(t EssaiType, raw []byte) error {
	fields, ok := requiredFields[t]
	if !ok {
		return Validationf("unknown essai type %q", t)
	}
	if len(raw) == 0 {
		return Validationf("results are required for essai type %s", t)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var payload map[string]json.RawMessage
	if err := dec.Decode(&payload); err != nil {
		return Validationf("results for %s are not a JSON object: %v", t, err)
	}

	for _, f := range fields {
		v, present := payload[f]
		if !present || string(v) == "null" || string(v) == `""` {
			return Validationf("essai type %s requires result field %q", t, f)
		}
	}
	return nil
}
