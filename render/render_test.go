package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/toolforge/assemble"
	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/target"
)

func testViewModel() *assemble.ViewModel {
	return &assemble.ViewModel{
		Project: project.Info{
			Name:        "acme-shop",
			Description: "Storefront for Acme",
			Type:        "web-app",
		},
		Modules: []assemble.Summary{
			{ID: "typescript", Name: "TypeScript", Description: "Strict typing", Version: "2.0.0", Body: "Enable strict mode."},
			{ID: "react", Name: "react", Description: "Guidance for react", Version: "1.0.0", Body: "Use hooks."},
		},
		Agents: []assemble.Summary{
			{ID: "reviewer", Name: "Reviewer", Description: "Reviews changes", Version: "1.0.0", Body: "Be thorough."},
		},
		Languages:   []string{"TypeScript", "Markdown"},
		Frameworks:  []string{"React"},
		HasFrontend: true,
	}
}

func TestRenderAll_AllTargets(t *testing.T) {
	targets := target.Expand([]string{"claude", "cursor", "manifest"})
	r := NewRenderer(targets, nil)

	artifacts, failures := r.RenderAll(testViewModel())
	require.Empty(t, failures)

	assert.Contains(t, artifacts, "CLAUDE.md")
	assert.Contains(t, artifacts, ".claude/settings.json")
	assert.Contains(t, artifacts, ".claude/agents/reviewer.md")
	assert.Contains(t, artifacts, ".cursor/rules/main.mdc")
	assert.Contains(t, artifacts, "toolforge.lock.json")
}

func TestRenderAll_Deterministic(t *testing.T) {
	targets := target.Expand([]string{"claude", "agents-md", "manifest"})
	vm := testViewModel()

	first, failures := NewRenderer(targets, nil).RenderAll(vm)
	require.Empty(t, failures)

	second, failures := NewRenderer(targets, nil).RenderAll(vm)
	require.Empty(t, failures)

	require.Equal(t, len(first), len(second))
	for path, content := range first {
		assert.Equal(t, string(content), string(second[path]), "artifact %s differs between runs", path)
	}
}

func TestRenderAll_FailureIsolation(t *testing.T) {
	targets := []string{"claude", "no-such-target", "cursor"}
	r := NewRenderer(targets, nil)

	artifacts, failures := r.RenderAll(testViewModel())

	require.Len(t, failures, 1)
	assert.Equal(t, "no-such-target", failures[0].TargetID)

	assert.Contains(t, artifacts, "CLAUDE.md")
	assert.Contains(t, artifacts, ".cursor/rules/main.mdc")
}

func TestRenderTarget_UnknownTemplate(t *testing.T) {
	desc := target.Descriptor{
		ID:       "broken",
		Template: target.Template("bogus"),
	}

	_, err := RenderTarget(desc, testViewModel(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template registered")
}

func TestBuildGuide_Sections(t *testing.T) {
	guide := buildGuide(testViewModel())

	assert.True(t, strings.HasPrefix(guide, "# acme-shop\n"))
	assert.Contains(t, guide, "Storefront for Acme")
	assert.Contains(t, guide, "- **Type:** web-app")
	assert.Contains(t, guide, "- **Languages:** TypeScript, Markdown")
	assert.Contains(t, guide, "## Front-End Conventions")
	assert.NotContains(t, guide, "## Content Management")
	assert.Contains(t, guide, "### TypeScript (v2.0.0)")
	assert.Contains(t, guide, "Enable strict mode.")
	assert.Contains(t, guide, "## Agents")
	assert.Contains(t, guide, "**Reviewer:** Reviews changes")
}

func TestBuildGuide_FrameworkContent(t *testing.T) {
	vm := testViewModel()
	vm.FrameworkEnabled = true
	vm.FrameworkContent = "Always follow the doctrine."

	guide := buildGuide(vm)
	assert.Contains(t, guide, "## Framework")
	assert.Contains(t, guide, "Always follow the doctrine.")
}

func TestBuildAgentFiles_EmptyAgents(t *testing.T) {
	vm := testViewModel()
	vm.Agents = nil

	artifacts := buildAgentFiles(".claude/agents", vm)
	assert.Empty(t, artifacts)
}

func TestBuildAgentFiles_PathsAndContent(t *testing.T) {
	artifacts := buildAgentFiles(".claude/agents", testViewModel())
	require.Len(t, artifacts, 1)

	content, ok := artifacts[".claude/agents/reviewer.md"]
	require.True(t, ok)
	assert.Contains(t, string(content), "name: reviewer")
	assert.Contains(t, string(content), "# Reviewer")
	assert.Contains(t, string(content), "Be thorough.")
}

func TestBuildSettings_Defaults(t *testing.T) {
	content, err := buildSettings(testViewModel())
	require.NoError(t, err)

	var doc struct {
		Permissions struct {
			Allow []string `json:"allow"`
			Deny  []string `json:"deny"`
		} `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(content, &doc))

	assert.Equal(t, defaultAllow, doc.Permissions.Allow)
	assert.Equal(t, defaultDeny, doc.Permissions.Deny)
}

func TestBuildSettings_Overrides(t *testing.T) {
	vm := testViewModel()
	vm.Overrides = map[string]project.Overrides{
		"claude-settings": {
			Permissions: &project.Permissions{
				Allow: []string{"Read(src/**)"},
				Deny:  []string{"Bash(rm *)"},
			},
		},
	}

	content, err := buildSettings(vm)
	require.NoError(t, err)

	var doc settingsDocument
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Equal(t, []string{"Read(src/**)"}, doc.Permissions.Allow)
	assert.Equal(t, []string{"Bash(rm *)"}, doc.Permissions.Deny)
}

func TestBuildManifest(t *testing.T) {
	content, err := buildManifest(testViewModel(), []string{"claude", "manifest"})
	require.NoError(t, err)

	var doc manifestDocument
	require.NoError(t, json.Unmarshal(content, &doc))

	assert.Equal(t, "acme-shop", doc.Project.Name)
	require.Len(t, doc.Modules, 2)
	assert.Equal(t, "typescript", doc.Modules[0].ID)
	assert.Equal(t, []string{"claude", "manifest"}, doc.Targets)
}
