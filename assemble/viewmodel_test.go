package assemble

import (
	"testing"

	"github.com/forgeworks/toolforge/project"
	"github.com/forgeworks/toolforge/resolver"
	"github.com/forgeworks/toolforge/toolkit"
)

func testSet() *resolver.ResolvedSet {
	return &resolver.ResolvedSet{
		Modules: []*toolkit.Descriptor{
			{ID: "typescript", Kind: toolkit.KindModule, Name: "TypeScript", Description: "Strict typing", Version: "2.0.0", Body: "ts body"},
			{ID: "react", Kind: toolkit.KindModule, Body: "react body"},
			{ID: "sanity-cms", Kind: toolkit.KindModule, Name: "Sanity", Body: "cms body"},
		},
		Agents: []*toolkit.Descriptor{
			{ID: "reviewer", Kind: toolkit.KindAgent, Body: "review body"},
		},
	}
}

func TestBuild_SummaryFallbacks(t *testing.T) {
	spec := &project.Spec{Project: project.Info{Name: "p"}}
	vm := Build(spec, testSet(), nil, "/toolkit")

	if len(vm.Modules) != 3 {
		t.Fatalf("got %d module summaries, want 3", len(vm.Modules))
	}

	ts := vm.Modules[0]
	if ts.Name != "TypeScript" || ts.Version != "2.0.0" || ts.Description != "Strict typing" {
		t.Errorf("explicit metadata not preserved: %+v", ts)
	}

	react := vm.Modules[1]
	if react.Name != "react" {
		t.Errorf("Name fallback = %q, want id %q", react.Name, "react")
	}
	if react.Version != DefaultVersion {
		t.Errorf("Version fallback = %q, want %q", react.Version, DefaultVersion)
	}
	if react.Description != "Guidance for react" {
		t.Errorf("Description fallback = %q", react.Description)
	}
}

func TestBuild_InferredLanguagesAndFrameworks(t *testing.T) {
	spec := &project.Spec{Project: project.Info{Name: "p"}}
	vm := Build(spec, testSet(), nil, "/toolkit")

	wantLangs := []string{"TypeScript", BaseLanguageTag}
	if len(vm.Languages) != len(wantLangs) {
		t.Fatalf("Languages = %v, want %v", vm.Languages, wantLangs)
	}
	for i := range wantLangs {
		if vm.Languages[i] != wantLangs[i] {
			t.Errorf("Languages[%d] = %q, want %q", i, vm.Languages[i], wantLangs[i])
		}
	}

	if len(vm.Frameworks) != 1 || vm.Frameworks[0] != "React" {
		t.Errorf("Frameworks = %v, want [React]", vm.Frameworks)
	}
}

func TestBuild_ExplicitListsTakePrecedence(t *testing.T) {
	spec := &project.Spec{
		Project:    project.Info{Name: "p"},
		Languages:  []string{"Elixir"},
		Frameworks: []string{"Phoenix"},
	}
	vm := Build(spec, testSet(), nil, "/toolkit")

	if len(vm.Languages) != 1 || vm.Languages[0] != "Elixir" {
		t.Errorf("Languages = %v, want [Elixir]", vm.Languages)
	}
	if len(vm.Frameworks) != 1 || vm.Frameworks[0] != "Phoenix" {
		t.Errorf("Frameworks = %v, want [Phoenix]", vm.Frameworks)
	}
}

func TestBuild_DerivedFlags(t *testing.T) {
	spec := &project.Spec{Project: project.Info{Name: "p"}}
	vm := Build(spec, testSet(), nil, "/toolkit")

	if !vm.HasCMS {
		t.Error("HasCMS = false, want true (sanity-cms selected)")
	}
	if !vm.HasFrontend {
		t.Error("HasFrontend = false, want true (react selected)")
	}

	bare := Build(spec, &resolver.ResolvedSet{
		Modules: []*toolkit.Descriptor{{ID: "core", Kind: toolkit.KindModule}},
	}, nil, "/toolkit")
	if bare.HasCMS || bare.HasFrontend {
		t.Errorf("flags for core-only selection = CMS %v frontend %v, want false/false",
			bare.HasCMS, bare.HasFrontend)
	}
}

func TestBuild_FrameworkContent(t *testing.T) {
	spec := &project.Spec{Project: project.Info{Name: "p"}}

	bundle := &toolkit.FrameworkBundle{
		Enabled: true,
		Segments: []toolkit.FrameworkSegment{
			{Name: "doctrine", Content: "doctrine text"},
			{Name: "playbooks", Content: "playbook text"},
		},
	}

	vm := Build(spec, testSet(), bundle, "/toolkit")
	if !vm.FrameworkEnabled {
		t.Error("FrameworkEnabled = false, want true")
	}
	if vm.FrameworkContent != "doctrine text\n\nplaybook text" {
		t.Errorf("FrameworkContent = %q", vm.FrameworkContent)
	}

	off := Build(spec, testSet(), nil, "/toolkit")
	if off.FrameworkEnabled || off.FrameworkContent != "" {
		t.Error("disabled bundle must yield empty framework content")
	}
}

func TestInferLanguages_BaseTagAlways(t *testing.T) {
	got := InferLanguages(nil)
	if len(got) != 1 || got[0] != BaseLanguageTag {
		t.Errorf("InferLanguages(nil) = %v, want [%s]", got, BaseLanguageTag)
	}
}

func TestInferTags_NoDuplicates(t *testing.T) {
	got := InferFrameworks([]string{"react-patterns", "react-testing"})
	if len(got) != 1 || got[0] != "React" {
		t.Errorf("InferFrameworks = %v, want [React]", got)
	}
}
