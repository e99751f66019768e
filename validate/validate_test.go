package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/toolkit"
)

// newTestStore builds a toolkit store containing the given module IDs.
func newTestStore(t *testing.T, moduleIDs ...string) *toolkit.Store {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "modules"), 0755))
	for _, id := range moduleIDs {
		path := filepath.Join(root, "modules", id+".md")
		require.NoError(t, os.WriteFile(path, []byte("body\n"), 0644))
	}
	return toolkit.NewStore(root, nil)
}

func TestRun_StoreIntegrityShortCircuits(t *testing.T) {
	store := toolkit.NewStore(filepath.Join(t.TempDir(), "missing"), nil)
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"also-missing"},
	}

	result := Run(spec, store, []string{"claude"})

	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "toolkit root")
}

func TestRun_MissingModuleGetsSuggestion(t *testing.T) {
	store := newTestStore(t, "tailwindcss", "alpinejs")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"tailwnd"},
	}

	result := Run(spec, store, []string{"claude"})

	assert.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "tailwnd")
	require.NotEmpty(t, result.Errors[0].Suggestions)
	assert.Equal(t, "tailwindcss", result.Errors[0].Suggestions[0])
	assert.Contains(t, result.Errors[0].String(), "did you mean")
}

func TestRun_AllProblemsEnumerated(t *testing.T) {
	store := newTestStore(t, "core")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"ghost-one", "ghost-two"},
	}

	result := Run(spec, store, []string{"claude", "bogus-target"})

	assert.Len(t, result.Errors, 3)
}

func TestRun_ValidSpec(t *testing.T) {
	store := newTestStore(t, "core", "typescript")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"core", "typescript"},
	}

	result := Run(spec, store, []string{"claude", "cursor"})

	assert.True(t, result.Valid())
	assert.Empty(t, result.Warnings)
}

func TestRun_ConflictingTargetsWarn(t *testing.T) {
	store := newTestStore(t, "core")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"core"},
	}

	result := Run(spec, store, []string{"claude", "agents-md"})

	assert.True(t, result.Valid(), "conflicting targets must warn, not fail")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "overlapping")
}

func TestRun_PermissionGrammar(t *testing.T) {
	store := newTestStore(t, "core")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"core"},
		Overrides: map[string]project.Overrides{
			"claude-settings": {
				Permissions: &project.Permissions{
					Allow: []string{"Read(src/**)", "Execute(anything)", "Bash"},
					Deny:  []string{"Read(.env)", "Read(secrets/**)"},
				},
			},
		},
	}

	result := Run(spec, store, []string{"claude-settings"})

	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Message, "Execute(anything)")
	assert.Contains(t, result.Errors[1].Message, "Bash")
	assert.Empty(t, result.Warnings, "deny list covers recommended markers")
}

func TestRun_MissingRecommendedDenyWarns(t *testing.T) {
	store := newTestStore(t, "core")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"core"},
		Overrides: map[string]project.Overrides{
			"claude-settings": {
				Permissions: &project.Permissions{
					Deny: []string{"Bash(rm *)"},
				},
			},
		},
	}

	result := Run(spec, store, []string{"claude-settings"})

	assert.True(t, result.Valid())
	assert.Len(t, result.Warnings, 2, "one warning per uncovered marker")
}

func TestRun_OverrideForInactiveTargetIgnored(t *testing.T) {
	store := newTestStore(t, "core")
	spec := &project.Spec{
		Project: project.Info{Name: "p"},
		Modules: []string{"core"},
		Overrides: map[string]project.Overrides{
			"claude-settings": {
				Permissions: &project.Permissions{
					Allow: []string{"not-a-permission"},
				},
			},
		},
	}

	result := Run(spec, store, []string{"cursor"})

	assert.True(t, result.Valid())
}
