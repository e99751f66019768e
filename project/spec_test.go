package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	content := `
project:
  name: acme-shop
  description: Storefront for Acme
  type: web-app
modules:
  - typescript
  - react
  - typescript
agents:
  - reviewer
framework:
  doctrine: true
  playbooks: false
targets:
  - claude
  - cursor
perTargetOverrides:
  claude-settings:
    permissions:
      allow:
        - Read(src/**)
      deny:
        - Read(.env)
unknownField: ignored
`
	path := filepath.Join(t.TempDir(), "toolforge.spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	spec, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "acme-shop", spec.Project.Name)
	assert.Equal(t, []string{"typescript", "react"}, spec.Modules)
	assert.Equal(t, []string{"reviewer"}, spec.Agents)
	assert.True(t, spec.Framework.Enabled)
	assert.True(t, spec.Framework.Segments["doctrine"])
	assert.False(t, spec.Framework.Segments["playbooks"])
	assert.Equal(t, []string{"claude", "cursor"}, spec.Targets)

	override, ok := spec.Overrides["claude-settings"]
	require.True(t, ok)
	require.NotNil(t, override.Permissions)
	assert.Equal(t, []string{"Read(src/**)"}, override.Permissions.Allow)
}

func TestFrameworkSelection_BooleanFalse(t *testing.T) {
	content := `
project:
  name: p
framework: false
targets: [claude]
`
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	spec, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.False(t, spec.Framework.Enabled)
	assert.Nil(t, spec.Framework.EnabledSegments())
}

func TestFrameworkSelection_AllSegmentsDisabled(t *testing.T) {
	content := `
project:
  name: p
framework:
  doctrine: false
targets: [claude]
`
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	spec, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, spec.Framework.Enabled)
}

func TestNormalize_BaselineModuleDefault(t *testing.T) {
	spec := &Spec{}
	spec.Normalize()
	assert.Equal(t, []string{BaselineModule}, spec.Modules)
}

func TestValidate(t *testing.T) {
	valid := &Spec{
		Project: Info{Name: "p"},
		Targets: []string{"claude"},
	}
	assert.NoError(t, valid.Validate())

	noName := &Spec{Targets: []string{"claude"}}
	assert.Error(t, noName.Validate())

	noTargets := &Spec{Project: Info{Name: "p"}}
	assert.Error(t, noTargets.Validate())
}
