package playbook

import (
	"strings"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// Tag identifies a playbook section an idea profile can ask for.
type Tag string

const (
	TagHighRisk        Tag = "High Risk Ideas"
	TagMediumRisk      Tag = "Medium Risk Ideas"
	TagLowRisk         Tag = "Low Risk Ideas"
	TagLowData         Tag = "Low Data Readiness"
	TagMediumData      Tag = "Medium Data Readiness"
	TagHighData        Tag = "High Data Readiness"
	TagHighImpact      Tag = "High Impact Ideas"
	TagMediumImpact    Tag = "Medium Impact Ideas"
	TagHighEffort      Tag = "High Effort Ideas"
	TagLowMediumEffort Tag = "Low-Medium Effort Ideas"
)

// PitfallsCategory holds the general warnings appended to every tip list.
const PitfallsCategory = "Common Pitfalls to Avoid"

const maxPitfalls = 3

var allTags = []Tag{
	TagHighRisk, TagMediumRisk, TagLowRisk,
	TagLowData, TagMediumData, TagHighData,
	TagHighImpact, TagMediumImpact,
	TagHighEffort, TagLowMediumEffort,
}

var tagByTitle = func() map[string]Tag {
	m := make(map[string]Tag, len(allTags))
	for _, t := range allTags {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// TagOf maps a section title onto its tag. Titles outside the closed set
// report false and are never matched.
func TagOf(title string) (Tag, bool) {
	t, ok := tagByTitle[strings.ToLower(strings.TrimSpace(title))]
	return t, ok
}

// SelectTags returns the sections an idea's profile calls for.
func SelectTags(i idea.Idea) []Tag {
	tags := make([]Tag, 0, 4)

	switch {
	case i.Risk >= 7:
		tags = append(tags, TagHighRisk)
	case i.Risk >= 4:
		tags = append(tags, TagMediumRisk)
	default:
		tags = append(tags, TagLowRisk)
	}

	switch {
	case i.DataReadiness < 4:
		tags = append(tags, TagLowData)
	case i.DataReadiness >= 7:
		tags = append(tags, TagHighData)
	default:
		tags = append(tags, TagMediumData)
	}

	switch {
	case i.Impact >= 7:
		tags = append(tags, TagHighImpact)
	case i.Impact >= 4:
		tags = append(tags, TagMediumImpact)
	}

	if i.Effort >= 7 {
		tags = append(tags, TagHighEffort)
	} else {
		tags = append(tags, TagLowMediumEffort)
	}

	return tags
}

// RelevantTips collects every tip of the sections selected for i, in
// section order, followed by up to three general pitfalls. Tips that appear
// in several matched sections are repeated.
func RelevantTips(i idea.Idea, sections []Section) []string {
	wanted := make(map[Tag]bool)
	for _, t := range SelectTags(i) {
		wanted[t] = true
	}

	tips := []string{}
	for _, s := range sections {
		tag, ok := TagOf(s.Title)
		if !ok || !wanted[tag] {
			continue
		}
		for _, tip := range s.Tips {
			tips = append(tips, "💡 "+s.Category+": "+tip)
		}
	}

	for _, s := range sections {
		if s.Category != PitfallsCategory {
			continue
		}
		for _, tip := range s.Tips[:min(len(s.Tips), maxPitfalls)] {
			tips = append(tips, "⚠️ Pitfall: "+tip)
		}
		break
	}

	return tips
}

// Filter returns the sections whose category contains category and, when
// title is non-empty, whose title contains title. Matching ignores case.
func Filter(sections []Section, category, title string) []Section {
	category = strings.ToLower(category)
	title = strings.ToLower(title)

	out := []Section{}
	for _, s := range sections {
		if !strings.Contains(strings.ToLower(s.Category), category) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(s.Title), title) {
			continue
		}
		out = append(out, s)
	}
	return out
}
