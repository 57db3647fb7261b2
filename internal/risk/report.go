package risk

import (
	"sort"
	"strings"

	"github.com/pairsentry/pairsentry/models"
)

// ReportEntry is one indicator line in a rendered report.
type ReportEntry struct {
	Indicator models.Indicator
	Birdeye   models.Observation
	GoPlus    models.Observation
}

// ReportSection groups report entries under one tier.
type ReportSection struct {
	Level   models.RiskLevel
	Entries []ReportEntry
}

// Report is the tier-grouped, display-ordered view of a profile's
// findings. Pure formatting input; it carries no decision logic.
type Report struct {
	Sections []ReportSection
}

// BuildReport groups a profile's findings in fixed severity order
// (Critical first). Tiers with no findings are omitted entirely.
// Entries within a tier are sorted by indicator key for stable output.
func BuildReport(profile *models.SecurityProfile) Report {
	var r Report
	if profile == nil || profile.Failed() {
		return r
	}
	for _, lvl := range models.RiskLevels() {
		tier := profile.Findings[lvl]
		if len(tier) == 0 {
			continue
		}
		section := ReportSection{Level: lvl, Entries: make([]ReportEntry, 0, len(tier))}
		for _, f := range tier {
			section.Entries = append(section.Entries, ReportEntry{
				Indicator: f.Indicator,
				Birdeye:   f.Birdeye,
				GoPlus:    f.GoPlus,
			})
		}
		sort.Slice(section.Entries, func(i, j int) bool {
			return section.Entries[i].Indicator < section.Entries[j].Indicator
		})
		r.Sections = append(r.Sections, section)
	}
	return r
}

// Empty reports whether the report has no sections to render.
func (r Report) Empty() bool { return len(r.Sections) == 0 }

// String renders a plain-text report, one indicator per line, with an
// en dash standing in for an absent provider observation.
func (r Report) String() string {
	var b strings.Builder
	for i, section := range r.Sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(section.Level.Glyph())
		b.WriteByte(' ')
		b.WriteString(section.Level.Label())
		b.WriteString(":\n")
		for _, e := range section.Entries {
			b.WriteString("  ")
			b.WriteString(string(e.Indicator))
			b.WriteString(": birdeye=")
			b.WriteString(renderObservation(e.Birdeye))
			b.WriteString(" goplus=")
			b.WriteString(renderObservation(e.GoPlus))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderObservation(o models.Observation) string {
	if !o.Present {
		return "–"
	}
	return o.Value
}
