package content

import "math"

// Stats are the raw counts derived from a Generated snapshot. Cheap to
// recompute, so no caching: derive on every read.
type Stats struct {
	SectionCount       int `json:"section_count"`
	TotalWords         int `json:"total_words"`
	TotalCitations     int `json:"total_citations"`
	AvgWordsPerSection int `json:"avg_words_per_section"`
	SourcesCount       int `json:"sources_count"`
}

// QualityReport is the heuristic 0-100 rating shown to the user. The weights
// and thresholds are user-visible feedback and must stay stable.
type QualityReport struct {
	CitationScore     int    `json:"citation_score"`
	StructureScore    int    `json:"structure_score"`
	CompletenessScore int    `json:"completeness_score"`
	Total             int    `json:"total"`
	Grade             string `json:"grade"`
}

// ComputeStats derives counts from a Generated snapshot. A nil snapshot
// yields zero stats.
func ComputeStats(g *Generated) Stats {
	if g == nil {
		return Stats{}
	}

	var stats Stats
	stats.SectionCount = len(g.Sections)
	for _, s := range g.Sections {
		stats.TotalWords += s.WordCount
		stats.TotalCitations += len(s.Citations)
	}

	divisor := stats.SectionCount
	if divisor < 1 {
		divisor = 1
	}
	stats.AvgWordsPerSection = int(math.Round(float64(stats.TotalWords) / float64(divisor)))
	stats.SourcesCount = len(g.Metadata.SourcesUsed)
	return stats
}

// Score grades a Generated snapshot. Citation density is worth up to 50
// points, section structure 15 or 30, completeness 10 or 20. The total is
// computed from the unrounded components, then rounded.
func Score(g *Generated) QualityReport {
	stats := ComputeStats(g)

	divisor := stats.SectionCount
	if divisor < 1 {
		divisor = 1
	}
	citation := float64(stats.TotalCitations) / float64(divisor) * 50
	if citation > 50 {
		citation = 50
	}

	structure := 15.0
	if stats.SectionCount >= 3 {
		structure = 30
	}
	completeness := 10.0
	if stats.SectionCount >= 5 {
		completeness = 20
	}

	total := int(math.Round(citation + structure + completeness))

	return QualityReport{
		CitationScore:     int(math.Round(citation)),
		StructureScore:    int(structure),
		CompletenessScore: int(completeness),
		Total:             total,
		Grade:             grade(total),
	}
}

func grade(total int) string {
	switch {
	case total >= 80:
		return "A"
	case total >= 60:
		return "B"
	case total >= 40:
		return "C"
	default:
		return "D"
	}
}
