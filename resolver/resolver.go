// Package resolver enforces dependency and conflict invariants over a
// selected set of capability modules. Resolution is pure with respect
// to selection order: the same set always produces the same outcome.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forgeworks/toolforge/toolkit"
)

// Violation is a single dependency or conflict failure.
type Violation struct {
	// ModuleID is the module whose declaration was violated.
	ModuleID string

	// Missing is set when a required module is absent from the
	// selection.
	Missing string

	// ConflictsWith is set when a conflicting module is present in the
	// selection.
	ConflictsWith string
}

// String renders the violation for diagnostics.
func (v Violation) String() string {
	if v.Missing != "" {
		return fmt.Sprintf("module %q requires %q, which is not selected", v.ModuleID, v.Missing)
	}
	return fmt.Sprintf("module %q conflicts with selected module %q", v.ModuleID, v.ConflictsWith)
}

// Error aggregates every violation found across the selected set. All
// violations are collected before failing so the caller sees every
// problem in one pass.
type Error struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *Error) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("resolution failed: %s", strings.Join(msgs, "; "))
}

// ResolvedSet is the validated selection with its loaded descriptors,
// in selection order.
type ResolvedSet struct {
	Modules []*toolkit.Descriptor
	Agents  []*toolkit.Descriptor
}

// Resolve loads every selected module and agent through the cache and
// verifies the module set's requires/conflicts declarations. Selected
// identifiers that do not resolve in the store are skipped here, since
// existence is the validator's concern, but declarations of the
// modules that do resolve are enforced against the full selected ID
// set. Returns *Error listing every violation when the set is
// inconsistent.
func Resolve(cache *toolkit.Cache, moduleIDs, agentIDs []string) (*ResolvedSet, error) {
	moduleIDs = dedupe(moduleIDs)
	agentIDs = dedupe(agentIDs)

	selected := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		selected[id] = true
	}

	set := &ResolvedSet{}
	var violations []Violation

	for _, id := range moduleIDs {
		desc, err := cache.Load(toolkit.KindModule, id)
		if err != nil {
			continue
		}
		set.Modules = append(set.Modules, desc)

		for _, req := range sorted(desc.Requires) {
			if !selected[req] {
				violations = append(violations, Violation{ModuleID: id, Missing: req})
			}
		}
		for _, conflict := range sorted(desc.Conflicts) {
			if selected[conflict] {
				violations = append(violations, Violation{ModuleID: id, ConflictsWith: conflict})
			}
		}
	}

	for _, id := range agentIDs {
		desc, err := cache.Load(toolkit.KindAgent, id)
		if err != nil {
			continue
		}
		set.Agents = append(set.Agents, desc)
	}

	if len(violations) > 0 {
		// Deterministic report order regardless of selection order.
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].ModuleID != violations[j].ModuleID {
				return violations[i].ModuleID < violations[j].ModuleID
			}
			if violations[i].Missing != violations[j].Missing {
				return violations[i].Missing < violations[j].Missing
			}
			return violations[i].ConflictsWith < violations[j].ConflictsWith
		})
		return nil, &Error{Violations: violations}
	}

	return set, nil
}

// dedupe preserves first occurrence order while dropping repeats.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// sorted returns a sorted copy, leaving the descriptor untouched.
func sorted(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
