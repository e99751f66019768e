// Package validate checks a project spec against the toolkit store and
// target registry before anything is rendered or written. Errors make
// the configuration invalid; warnings are advisory and never block
// generation.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/forgeworks/toolforge/match"
	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/target"
	"github.com/forgeworks/toolforge/toolkit"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation diagnostic, optionally carrying suggested
// corrections from the fuzzy matcher.
type Finding struct {
	Severity    Severity
	Message     string
	Suggestions []string
}

// String renders the finding with its suggestions inline.
func (f Finding) String() string {
	if len(f.Suggestions) == 0 {
		return f.Message
	}
	return fmt.Sprintf("%s (did you mean: %s?)", f.Message, strings.Join(f.Suggestions, ", "))
}

// Result separates fatal errors from advisory warnings.
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// Valid reports whether the configuration passed validation. Warnings
// do not affect validity.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// ErrorMessages returns every error finding rendered as a string.
func (r *Result) ErrorMessages() []string {
	return renderFindings(r.Errors)
}

// WarningMessages returns every warning finding rendered as a string.
func (r *Result) WarningMessages() []string {
	return renderFindings(r.Warnings)
}

func renderFindings(findings []Finding) []string {
	msgs := make([]string, len(findings))
	for i, f := range findings {
		msgs[i] = f.String()
	}
	return msgs
}

// permissionPattern is the Action(pattern) grammar for settings
// permission entries. The action set is closed.
var permissionPattern = regexp.MustCompile(`^(Read|Write|Edit|Bash|Glob|Grep|WebFetch|WebSearch)\(.+\)$`)

// recommendedDenyMarkers are path fragments a custom deny list should
// cover; their absence is a warning, not an error.
var recommendedDenyMarkers = []string{".env", "secrets"}

// Run validates the spec in three tiers: store integrity, descriptor
// existence, and target-specific structural rules. All findings are
// enumerated; validation never stops at the first problem except when
// the store itself is unusable.
func Run(spec *project.Spec, store *toolkit.Store, targetIDs []string) *Result {
	result := &Result{}

	// Tier 1: store integrity. Nothing downstream can succeed without
	// the store, so integrity failures short-circuit the later tiers.
	if errs := store.CheckIntegrity(); len(errs) > 0 {
		for _, err := range errs {
			result.Errors = append(result.Errors, Finding{
				Severity: SeverityError,
				Message:  err.Error(),
			})
		}
		return result
	}

	checkExistence(result, store, toolkit.KindModule, spec.Modules)
	checkExistence(result, store, toolkit.KindAgent, spec.Agents)
	checkTargets(result, spec, targetIDs)

	return result
}

// checkExistence verifies every selected identifier resolves in the
// store, attaching fuzzy suggestions to misses.
func checkExistence(result *Result, store *toolkit.Store, kind toolkit.Kind, ids []string) {
	if len(ids) == 0 {
		return
	}

	candidates, err := store.ListIDs(kind)
	if err != nil {
		result.Errors = append(result.Errors, Finding{
			Severity: SeverityError,
			Message:  fmt.Sprintf("list %ss: %v", kind, err),
		})
		return
	}

	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c] = true
	}

	for _, id := range ids {
		if known[id] {
			continue
		}
		result.Errors = append(result.Errors, Finding{
			Severity:    SeverityError,
			Message:     fmt.Sprintf("%s %q not found in toolkit", kind, id),
			Suggestions: match.SuggestDefault(id, candidates),
		})
	}
}

// checkTargets validates target identifiers, per-target permission
// overrides, and known-conflicting co-activations.
func checkTargets(result *Result, spec *project.Spec, targetIDs []string) {
	active := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		if _, ok := target.Lookup(id); !ok {
			result.Errors = append(result.Errors, Finding{
				Severity:    SeverityError,
				Message:     fmt.Sprintf("unknown target %q", id),
				Suggestions: match.SuggestDefault(id, target.IDs()),
			})
			continue
		}
		active[id] = true
	}

	for _, pair := range target.ConflictingPairs {
		if active[pair[0]] && active[pair[1]] {
			result.Warnings = append(result.Warnings, Finding{
				Severity: SeverityWarning,
				Message: fmt.Sprintf("targets %q and %q produce overlapping guidance; generated files may repeat content",
					pair[0], pair[1]),
			})
		}
	}

	for targetID, override := range spec.Overrides {
		if override.Permissions == nil || !active[targetID] {
			continue
		}
		checkPermissions(result, targetID, override.Permissions)
	}
}

// checkPermissions enforces the Action(pattern) grammar on every entry
// and warns when a custom deny list misses the recommended secret-path
// patterns.
func checkPermissions(result *Result, targetID string, perms *project.Permissions) {
	for _, entry := range perms.Allow {
		if !permissionPattern.MatchString(entry) {
			result.Errors = append(result.Errors, Finding{
				Severity: SeverityError,
				Message:  fmt.Sprintf("target %s: invalid allow permission %q, expected Action(pattern)", targetID, entry),
			})
		}
	}
	for _, entry := range perms.Deny {
		if !permissionPattern.MatchString(entry) {
			result.Errors = append(result.Errors, Finding{
				Severity: SeverityError,
				Message:  fmt.Sprintf("target %s: invalid deny permission %q, expected Action(pattern)", targetID, entry),
			})
		}
	}

	if len(perms.Deny) == 0 {
		return
	}
	for _, marker := range recommendedDenyMarkers {
		covered := false
		for _, entry := range perms.Deny {
			if strings.Contains(entry, marker) {
				covered = true
				break
			}
		}
		if !covered {
			result.Warnings = append(result.Warnings, Finding{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("target %s: deny list does not cover %q paths", targetID, marker),
			})
		}
	}
}
