package spoke

import (
	"strings"
)

// Predicate is a boolean test over the components of an entity.
// All parts that are set must hold. The zero value matches every entity.
type Predicate struct {
	// The entity needs to have this component type
	With *ComponentType

	// The entity must not have this component type
	Without *ComponentType

	// The entity must have this component newly added
	Added *ComponentType

	// The entity must have this component changed
	Changed *ComponentType

	// All of these predicates must match
	And []Predicate

	// At least one of these predicates must match
	Or []Predicate

	// This predicate must not match
	Not *Predicate
}

// All combines the given predicates into one predicate that matches
// only if all of them match.
func All(predicates ...Predicate) Predicate {
	var nonZero []Predicate
	for _, p := range predicates {
		if !p.IsZero() {
			nonZero = append(nonZero, p)
		}
	}

	switch len(nonZero) {
	case 0:
		return Predicate{}
	case 1:
		return nonZero[0]
	default:
		return Predicate{And: nonZero}
	}
}

// Any combines the given predicates into one predicate that matches
// if at least one of them matches.
func Any(predicates ...Predicate) Predicate {
	for _, p := range predicates {
		if p.IsZero() {
			// one predicate matches everything
			return Predicate{}
		}
	}

	return Predicate{Or: predicates}
}

// Negate returns a predicate that matches exactly if p does not match.
func Negate(p Predicate) Predicate {
	if p.Not != nil && p.With == nil && p.Without == nil && p.Added == nil && p.Changed == nil && p.And == nil && p.Or == nil {
		return *p.Not
	}

	return Predicate{Not: &p}
}

func (p Predicate) IsZero() bool {
	if p.With != nil || p.Without != nil || p.Added != nil || p.Changed != nil || p.Not != nil {
		return false
	}

	for idx := range p.And {
		if !p.And[idx].IsZero() {
			return false
		}
	}

	// an empty Or is ignored
	for idx := range p.Or {
		if !p.Or[idx].IsZero() {
			return false
		}
	}

	return true
}

// IsArchetypeOnly returns true if the predicate can be decided by looking at the
// component types of an archetype alone.
func (p Predicate) IsArchetypeOnly() bool {
	if p.Added != nil || p.Changed != nil {
		return false
	}

	if p.Not != nil && !p.Not.IsArchetypeOnly() {
		return false
	}

	for idx := range p.And {
		if !p.And[idx].IsArchetypeOnly() {
			return false
		}
	}

	for idx := range p.Or {
		if !p.Or[idx].IsArchetypeOnly() {
			return false
		}
	}

	return true
}

// MatchesArchetype returns false if no entity of the archetype can match the predicate.
// If the predicate IsArchetypeOnly, the result is exact.
func (p Predicate) MatchesArchetype(a *Archetype) bool {
	if ty := p.With; ty != nil && !a.ContainsType(ty) {
		return false
	}

	if ty := p.Without; ty != nil && a.ContainsType(ty) {
		return false
	}

	if ty := p.Added; ty != nil && !a.ContainsType(ty) {
		return false
	}

	if ty := p.Changed; ty != nil && !a.ContainsType(ty) {
		return false
	}

	if p.Not != nil && p.Not.IsArchetypeOnly() && p.Not.MatchesArchetype(a) {
		return false
	}

	for idx := range p.And {
		if !p.And[idx].MatchesArchetype(a) {
			return false
		}
	}

	if len(p.Or) == 0 {
		return true
	}

	for idx := range p.Or {
		if p.Or[idx].MatchesArchetype(a) {
			return true
		}
	}

	return false
}

// Matches evaluates the predicate against a single entity.
func (p Predicate) Matches(entity EntityRef) bool {
	if ty := p.With; ty != nil && !entity.Has(ty) {
		return false
	}

	if ty := p.Without; ty != nil && entity.Has(ty) {
		return false
	}

	if ty := p.Added; ty != nil && !entity.IsAdded(ty) {
		return false
	}

	if ty := p.Changed; ty != nil && !entity.IsChanged(ty) {
		return false
	}

	if p.Not != nil && p.Not.Matches(entity) {
		return false
	}

	for idx := range p.And {
		if !p.And[idx].Matches(entity) {
			return false
		}
	}

	if len(p.Or) == 0 {
		return true
	}

	for idx := range p.Or {
		if p.Or[idx].Matches(entity) {
			return true
		}
	}

	return false
}

func (p Predicate) String() string {
	var parts []string

	if p.With != nil {
		parts = append(parts, "With["+p.With.Name+"]")
	}

	if p.Without != nil {
		parts = append(parts, "Without["+p.Without.Name+"]")
	}

	if p.Added != nil {
		parts = append(parts, "Added["+p.Added.Name+"]")
	}

	if p.Changed != nil {
		parts = append(parts, "Changed["+p.Changed.Name+"]")
	}

	for _, and := range p.And {
		parts = append(parts, and.String())
	}

	if len(p.Or) > 0 {
		var alternatives []string
		for _, or := range p.Or {
			alternatives = append(alternatives, or.String())
		}

		parts = append(parts, "("+strings.Join(alternatives, " | ")+")")
	}

	if p.Not != nil {
		parts = append(parts, "!("+p.Not.String()+")")
	}

	if len(parts) == 0 {
		return "*"
	}

	return strings.Join(parts, " & ")
}
