package model

// The merge policies below are intentionally asymmetric. Companies (and the
// other seed entities) keep existing data: an incoming fact only fills a
// field that is still empty, and a score only replaces a strictly lower one.
// People take the latest data: a fresh executive search is assumed to be
// more current than whatever a previous pass stored.

// fillEmpty returns incoming when existing is empty and incoming is not,
// otherwise existing.
func fillEmpty(existing, incoming string) string {
	if existing == "" && incoming != "" {
		return incoming
	}
	return existing
}

// takeLatest returns incoming when non-empty, otherwise existing.
func takeLatest(existing, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}

// monotonicScore applies the monotonic-up score policy: the incoming score
// wins only when the existing score is unset or strictly lower. Returns the
// resulting score and whether it changed.
func monotonicScore(existing, incoming *float64) (*float64, bool) {
	if incoming == nil {
		return existing, false
	}
	if existing == nil || *incoming > *existing {
		v := *incoming
		return &v, true
	}
	return existing, false
}

// appendNotes appends incoming to an append-only notes log, separated by a
// blank line. Existing notes are never rewritten.
func appendNotes(existing, incoming string) string {
	if incoming == "" {
		return existing
	}
	if existing == "" {
		return incoming
	}
	return existing + "\n\n" + incoming
}

// MergeCompany merges a newly discovered company record into an existing one
// in place. Fact fields follow fill-empty-only, the relevance score is
// monotonic-up, and notes append. Returns true when anything changed.
func MergeCompany(existing *Company, incoming *Company) bool {
	changed := false

	apply := func(dst *string, in string) {
		if v := fillEmpty(*dst, in); v != *dst {
			*dst = v
			changed = true
		}
	}
	apply(&existing.Industry, incoming.Industry)
	apply(&existing.Description, incoming.Description)
	apply(&existing.Website, incoming.Website)
	apply(&existing.EstimatedRevenue, incoming.EstimatedRevenue)
	apply(&existing.CompanySize, incoming.CompanySize)

	if s, ok := monotonicScore(existing.RelevanceScore, incoming.RelevanceScore); ok {
		existing.RelevanceScore = s
		changed = true
	}
	if n := appendNotes(existing.Notes, incoming.Notes); n != existing.Notes {
		existing.Notes = n
		changed = true
	}
	return changed
}

// MergeEvent merges a re-discovered event into an existing one using the
// company policy (fill-empty facts, monotonic score, appended notes).
func MergeEvent(existing *Event, incoming *Event) bool {
	changed := false

	apply := func(dst *string, in string) {
		if v := fillEmpty(*dst, in); v != *dst {
			*dst = v
			changed = true
		}
	}
	apply(&existing.EventType, incoming.EventType)
	apply(&existing.Description, incoming.Description)
	apply(&existing.Website, incoming.Website)
	apply(&existing.Location, incoming.Location)

	if existing.StartDate == nil && incoming.StartDate != nil {
		existing.StartDate = incoming.StartDate
		changed = true
	}
	if existing.EndDate == nil && incoming.EndDate != nil {
		existing.EndDate = incoming.EndDate
		changed = true
	}
	if s, ok := monotonicScore(existing.RelevanceScore, incoming.RelevanceScore); ok {
		existing.RelevanceScore = s
		changed = true
	}
	if n := appendNotes(existing.Notes, incoming.Notes); n != existing.Notes {
		existing.Notes = n
		changed = true
	}
	return changed
}

// MergeAssociation merges a re-discovered association into an existing one
// using the company policy.
func MergeAssociation(existing *Association, incoming *Association) bool {
	changed := false

	apply := func(dst *string, in string) {
		if v := fillEmpty(*dst, in); v != *dst {
			*dst = v
			changed = true
		}
	}
	apply(&existing.Industry, incoming.Industry)
	apply(&existing.Description, incoming.Description)
	apply(&existing.Website, incoming.Website)

	if s, ok := monotonicScore(existing.RelevanceScore, incoming.RelevanceScore); ok {
		existing.RelevanceScore = s
		changed = true
	}
	if n := appendNotes(existing.Notes, incoming.Notes); n != existing.Notes {
		existing.Notes = n
		changed = true
	}
	return changed
}

// MergePerson merges freshly extracted executive data into an existing
// person in place, latest-wins: every non-empty incoming field overwrites,
// and an incoming score replaces the existing one unconditionally.
func MergePerson(existing *Person, incoming *Person) bool {
	changed := false

	apply := func(dst *string, in string) {
		if v := takeLatest(*dst, in); v != *dst {
			*dst = v
			changed = true
		}
	}
	apply(&existing.Title, incoming.Title)
	apply(&existing.Division, incoming.Division)
	apply(&existing.Email, incoming.Email)
	apply(&existing.Phone, incoming.Phone)
	apply(&existing.LinkedIn, incoming.LinkedIn)

	if incoming.RelevanceScore != nil {
		v := *incoming.RelevanceScore
		if existing.RelevanceScore == nil || *existing.RelevanceScore != v {
			existing.RelevanceScore = &v
			changed = true
		}
	}
	if n := appendNotes(existing.Notes, incoming.Notes); n != existing.Notes {
		existing.Notes = n
		changed = true
	}
	return changed
}
