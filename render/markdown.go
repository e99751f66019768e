package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/forgeworks/toolforge/assemble"
)

// buildGuide renders the full assistant guide: project metadata,
// technology context, every module's guidance, framework content, and
// the agent roster.
func buildGuide(vm *assemble.ViewModel) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(vm.Project.Name)
	sb.WriteString("\n\n")

	if vm.Project.Description != "" {
		sb.WriteString(vm.Project.Description)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Project\n\n")
	if vm.Project.Type != "" {
		sb.WriteString("- **Type:** ")
		sb.WriteString(vm.Project.Type)
		sb.WriteString("\n")
	}
	writeTagList(&sb, "Languages", vm.Languages)
	writeTagList(&sb, "Frameworks", vm.Frameworks)
	sb.WriteString("\n")

	if vm.HasFrontend {
		sb.WriteString("## Front-End Conventions\n\n")
		sb.WriteString("This project has a front-end surface; apply the component and styling guidance from the modules below.\n\n")
	}
	if vm.HasCMS {
		sb.WriteString("## Content Management\n\n")
		sb.WriteString("This project manages structured content; schema and editorial guidance appears in the modules below.\n\n")
	}

	if len(vm.Modules) > 0 {
		sb.WriteString("## Guidelines\n\n")
		for _, m := range vm.Modules {
			writeModuleSection(&sb, m)
		}
	}

	if vm.FrameworkEnabled && vm.FrameworkContent != "" {
		sb.WriteString("## Framework\n\n")
		sb.WriteString(strings.TrimSpace(vm.FrameworkContent))
		sb.WriteString("\n\n")
	}

	if len(vm.Agents) > 0 {
		sb.WriteString("## Agents\n\n")
		for _, a := range vm.Agents {
			sb.WriteString("- **")
			sb.WriteString(a.Name)
			sb.WriteString(":** ")
			sb.WriteString(a.Description)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("Generated by toolforge for %s.\n", vm.Project.Name))

	return sb.String()
}

// buildRules renders the condensed rules document used by editor rule
// files: module bodies only, without the roster and footer sections.
func buildRules(vm *assemble.ViewModel) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(vm.Project.Name)
	sb.WriteString(" — Rules\n\n")

	writeTagList(&sb, "Languages", vm.Languages)
	writeTagList(&sb, "Frameworks", vm.Frameworks)
	sb.WriteString("\n")

	for _, m := range vm.Modules {
		writeModuleSection(&sb, m)
	}

	if vm.FrameworkEnabled && vm.FrameworkContent != "" {
		sb.WriteString(strings.TrimSpace(vm.FrameworkContent))
		sb.WriteString("\n")
	}

	return sb.String()
}

// buildAgentFiles renders one markdown document per resolved agent
// under the target's path prefix. An empty agent list yields zero
// artifacts; that is not an error.
func buildAgentFiles(prefix string, vm *assemble.ViewModel) Artifacts {
	artifacts := make(Artifacts, len(vm.Agents))

	for _, a := range vm.Agents {
		var sb strings.Builder
		sb.WriteString("---\n")
		sb.WriteString("name: ")
		sb.WriteString(a.ID)
		sb.WriteString("\ndescription: ")
		sb.WriteString(a.Description)
		sb.WriteString("\n---\n\n")

		sb.WriteString("# ")
		sb.WriteString(a.Name)
		sb.WriteString("\n\n")

		body := strings.TrimSpace(a.Body)
		if body != "" {
			sb.WriteString(body)
			sb.WriteString("\n")
		}

		artifacts[path.Join(prefix, a.ID+".md")] = []byte(sb.String())
	}

	return artifacts
}

// writeModuleSection writes one module's heading and body.
func writeModuleSection(sb *strings.Builder, m assemble.Summary) {
	sb.WriteString("### ")
	sb.WriteString(m.Name)
	sb.WriteString(" (v")
	sb.WriteString(m.Version)
	sb.WriteString(")\n\n")

	body := strings.TrimSpace(m.Body)
	if body == "" {
		body = m.Description
	}
	sb.WriteString(body)
	sb.WriteString("\n\n")
}

// writeTagList writes a bolded inline list line when tags exist.
func writeTagList(sb *strings.Builder, label string, tags []string) {
	if len(tags) == 0 {
		return
	}
	sb.WriteString("- **")
	sb.WriteString(label)
	sb.WriteString(":** ")
	sb.WriteString(strings.Join(tags, ", "))
	sb.WriteString("\n")
}
