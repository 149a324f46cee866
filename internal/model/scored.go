package model

// EntityKind discriminates the scored entity variants that share merge and
// scoring behavior.
type EntityKind string

const (
	KindEvent       EntityKind = "event"
	KindAssociation EntityKind = "association"
	KindCompany     EntityKind = "company"
	KindPerson      EntityKind = "person"
)

// Seed identifies the event or association a company-discovery pass was
// bootstrapped from. Only events and associations are valid seed kinds.
type Seed struct {
	Kind EntityKind
	ID   string
	Name string
}

// EventSeed builds a Seed from a stored event.
func EventSeed(e *Event) Seed {
	return Seed{Kind: KindEvent, ID: e.ID, Name: e.Name}
}

// AssociationSeed builds a Seed from a stored association.
func AssociationSeed(a *Association) Seed {
	return Seed{Kind: KindAssociation, ID: a.ID, Name: a.Name}
}
