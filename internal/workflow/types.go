package workflow

// EssaiType identifies one of the laboratory's fixed analysis types.
type EssaiType string

// The five essai types the laboratory performs.
const (
	TypeAG           EssaiType = "AG"
	TypeProctor      EssaiType = "Proctor"
	TypeCBR          EssaiType = "CBR"
	TypeOedometre    EssaiType = "Oedometre"
	TypeCisaillement EssaiType = "Cisaillement"
)

// Section is one of the two laboratory divisions.
type Section string

const (
	SectionRoute     Section = "route"
	SectionMecanique Section = "mecanique"
)

// Priorite of an echantillon or essai.
type Priorite string

const (
	PrioriteNormale Priorite = "normale"
	PrioriteUrgente Priorite = "urgente"
)

// essaiInfo carries the fixed per-type reference data: nominal duration in
// days, section affinity, and default daily capacity.
type essaiInfo struct {
	duration int
	section  Section
	capacity int
}

var essaiCatalog = map[EssaiType]essaiInfo{
	TypeAG:           {duration: 5, section: SectionRoute, capacity: 5},
	TypeProctor:      {duration: 4, section: SectionRoute, capacity: 4},
	TypeCBR:          {duration: 5, section: SectionRoute, capacity: 4},
	TypeOedometre:    {duration: 18, section: SectionMecanique, capacity: 10},
	TypeCisaillement: {duration: 8, section: SectionMecanique, capacity: 4},
}

// EssaiTypes returns the fixed enumeration of essai types in catalog order.
func EssaiTypes() []EssaiType {
	return []EssaiType{TypeAG, TypeProctor, TypeCBR, TypeOedometre, TypeCisaillement}
}

// KnownType reports whether t is part of the fixed enumeration.
func KnownType(t EssaiType) bool {
	_, ok := essaiCatalog[t]
	return ok
}

// NominalDuration returns the fixed duration in days for t. An unknown type
// is a validation error, never a silent zero duration.
func NominalDuration(t EssaiType) (int, error) {
	info, ok := essaiCatalog[t]
	if !ok {
		return 0, Validationf("unknown essai type %q", t)
	}
	return info.duration, nil
}

// SectionFor returns the section an essai type belongs to.
func SectionFor(t EssaiType) (Section, error) {
	info, ok := essaiCatalog[t]
	if !ok {
		return "", Validationf("unknown essai type %q", t)
	}
	return info.section, nil
}

// DefaultCapacity returns the default daily scheduling capacity for t, used
// when no capacity row has been seeded in the store.
func DefaultCapacity(t EssaiType) (int, error) {
	info, ok := essaiCatalog[t]
	if !ok {
		return 0, Validationf("unknown essai type %q", t)
	}
	return info.capacity, nil
}
