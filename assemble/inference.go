package assemble

import "strings"

// BaseLanguageTag is appended to every inferred language list; all
// generated artifacts are markdown-centric guidance.
const BaseLanguageTag = "Markdown"

// substringTag maps a module-identifier substring to a display tag.
// This is a data-driven mapping: extend the table, not the control
// flow.
type substringTag struct {
	substring string
	tag       string
}

// languageTags infer language tags from module identifiers.
var languageTags = []substringTag{
	{"typescript", "TypeScript"},
	{"javascript", "JavaScript"},
	{"python", "Python"},
	{"golang", "Go"},
	{"rust", "Rust"},
	{"ruby", "Ruby"},
	{"php", "PHP"},
}

// frameworkTags infer framework tags from module identifiers.
var frameworkTags = []substringTag{
	{"react", "React"},
	{"vue", "Vue"},
	{"svelte", "Svelte"},
	{"nextjs", "Next.js"},
	{"nuxt", "Nuxt"},
	{"astro", "Astro"},
	{"tailwind", "Tailwind CSS"},
	{"alpine", "Alpine.js"},
	{"node", "Node.js"},
	{"django", "Django"},
	{"laravel", "Laravel"},
}

// cmsMarkers flag content-management capability.
var cmsMarkers = []string{"cms", "content"}

// frontendMarkers flag front-end capability.
var frontendMarkers = []string{"react", "vue", "svelte", "tailwind", "frontend", "ui"}

// InferLanguages scans module identifiers against the language table
// and appends the base markup tag unconditionally. The result order
// follows the table, making inference deterministic.
func InferLanguages(moduleIDs []string) []string {
	tags := inferTags(moduleIDs, languageTags)
	return append(tags, BaseLanguageTag)
}

// InferFrameworks scans module identifiers against the framework table.
func InferFrameworks(moduleIDs []string) []string {
	return inferTags(moduleIDs, frameworkTags)
}

// inferTags collects each table tag whose substring appears in any
// module identifier, in table order, without duplicates.
func inferTags(moduleIDs []string, table []substringTag) []string {
	var tags []string
	for _, entry := range table {
		for _, id := range moduleIDs {
			if strings.Contains(strings.ToLower(id), entry.substring) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}
	return tags
}

// hasAnySubstring reports whether any module identifier contains any
// of the given markers.
func hasAnySubstring(moduleIDs []string, markers []string) bool {
	for _, id := range moduleIDs {
		lower := strings.ToLower(id)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}
