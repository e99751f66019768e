package render

import (
	"encoding/json"
	"fmt"

	"github.com/forgeworks/toolforge/assemble"
)

// settingsTargetID is the target whose spec overrides feed the
// permissions document.
const settingsTargetID = "claude-settings"

// defaultAllow and defaultDeny apply when the spec carries no
// permissions override for the settings target.
var (
	defaultAllow = []string{"Read(**)"}
	defaultDeny  = []string{"Read(.env)", "Read(.env.*)", "Read(secrets/**)"}
)

// settingsDocument is the rendered settings JSON shape.
type settingsDocument struct {
	Permissions permissionsDocument `json:"permissions"`
}

type permissionsDocument struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// buildSettings renders the permissions settings document. Entries are
// emitted exactly as the spec declares them; grammar checking is the
// validator's job and happens before anything is written.
func buildSettings(vm *assemble.ViewModel) ([]byte, error) {
	doc := settingsDocument{
		Permissions: permissionsDocument{
			Allow: defaultAllow,
			Deny:  defaultDeny,
		},
	}

	if override, ok := vm.Overrides[settingsTargetID]; ok && override.Permissions != nil {
		if len(override.Permissions.Allow) > 0 {
			doc.Permissions.Allow = override.Permissions.Allow
		}
		if len(override.Permissions.Deny) > 0 {
			doc.Permissions.Deny = override.Permissions.Deny
		}
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return append(content, '\n'), nil
}

// manifestDocument is the machine-readable lockfile of the resolved
// set, consumed by downstream tooling.
type manifestDocument struct {
	Project    manifestProject    `json:"project"`
	Modules    []assemble.Summary `json:"modules"`
	Agents     []assemble.Summary `json:"agents"`
	Languages  []string           `json:"languages"`
	Frameworks []string           `json:"frameworks"`
	Targets    []string           `json:"targets"`
}

type manifestProject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// buildManifest renders the lockfile for the resolved set and the
// expanded target list.
func buildManifest(vm *assemble.ViewModel, activeTargets []string) ([]byte, error) {
	doc := manifestDocument{
		Project: manifestProject{
			Name:        vm.Project.Name,
			Description: vm.Project.Description,
			Type:        vm.Project.Type,
		},
		Modules:    emptyIfNil(vm.Modules),
		Agents:     emptyIfNil(vm.Agents),
		Languages:  emptyStringsIfNil(vm.Languages),
		Frameworks: emptyStringsIfNil(vm.Frameworks),
		Targets:    emptyStringsIfNil(activeTargets),
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(content, '\n'), nil
}

// emptyIfNil keeps JSON output stable: empty arrays, never null.
func emptyIfNil(s []assemble.Summary) []assemble.Summary {
	if s == nil {
		return []assemble.Summary{}
	}
	return s
}

func emptyStringsIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
