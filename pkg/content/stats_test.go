package content

import (
	"encoding/json"
	"testing"
)

func sections(wordCounts []int, citationCounts []int) map[string]SectionContent {
	out := make(map[string]SectionContent, len(wordCounts))
	for i, wc := range wordCounts {
		var cits []Citation
		for j := 0; j < citationCounts[i]; j++ {
			cits = append(cits, Citation{FullCitation: "[src: loc]"})
		}
		out[string(rune('a'+i))] = SectionContent{
			Title:     "Section",
			Content:   TextBody("body"),
			Citations: cits,
			WordCount: wc,
		}
	}
	return out
}

func TestComputeStats(t *testing.T) {
	g := &Generated{
		Metadata: Meta{SourcesUsed: []string{"report.pdf", "deck.pptx"}},
		Sections: sections([]int{100, 250}, []int{2, 0}),
	}

	stats := ComputeStats(g)

	if stats.SectionCount != 2 {
		t.Errorf("SectionCount = %d, want 2", stats.SectionCount)
	}
	if stats.TotalWords != 350 {
		t.Errorf("TotalWords = %d, want 350", stats.TotalWords)
	}
	if stats.AvgWordsPerSection != 175 {
		t.Errorf("AvgWordsPerSection = %d, want 175", stats.AvgWordsPerSection)
	}
	if stats.TotalCitations != 2 {
		t.Errorf("TotalCitations = %d, want 2", stats.TotalCitations)
	}
	if stats.SourcesCount != 2 {
		t.Errorf("SourcesCount = %d, want 2", stats.SourcesCount)
	}
}

func TestComputeStatsNilAndEmpty(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Errorf("nil snapshot: got %+v, want zero stats", got)
	}

	stats := ComputeStats(&Generated{})
	if stats.SectionCount != 0 || stats.AvgWordsPerSection != 0 {
		t.Errorf("empty snapshot: got %+v", stats)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name             string
		wordCounts       []int
		citationCounts   []int
		wantCitation     int
		wantStructure    int
		wantCompleteness int
		wantTotal        int
		wantGrade        string
	}{
		{
			name:             "dense citations cap at 50",
			wordCounts:       []int{10, 10, 10, 10, 10},
			citationCounts:   []int{2, 2, 2, 2, 2},
			wantCitation:     50,
			wantStructure:    30,
			wantCompleteness: 20,
			wantTotal:        100,
			wantGrade:        "A",
		},
		{
			name:             "single bare section",
			wordCounts:       []int{10},
			citationCounts:   []int{0},
			wantCitation:     0,
			wantStructure:    15,
			wantCompleteness: 10,
			wantTotal:        25,
			wantGrade:        "D",
		},
		{
			name:             "three sections one citation",
			wordCounts:       []int{10, 10, 10},
			citationCounts:   []int{1, 0, 0},
			wantCitation:     17, // 1/3*50 = 16.67, rounded for display
			wantStructure:    30,
			wantCompleteness: 10,
			wantTotal:        57, // total from unrounded parts: 16.67+30+10 = 56.67
			wantGrade:        "C",
		},
		{
			name:             "five sections moderate citations",
			wordCounts:       []int{10, 10, 10, 10, 10},
			citationCounts:   []int{1, 1, 1, 0, 0},
			wantCitation:     30,
			wantStructure:    30,
			wantCompleteness: 20,
			wantTotal:        80,
			wantGrade:        "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Generated{Sections: sections(tt.wordCounts, tt.citationCounts)}
			report := Score(g)

			if report.CitationScore != tt.wantCitation {
				t.Errorf("CitationScore = %d, want %d", report.CitationScore, tt.wantCitation)
			}
			if report.StructureScore != tt.wantStructure {
				t.Errorf("StructureScore = %d, want %d", report.StructureScore, tt.wantStructure)
			}
			if report.CompletenessScore != tt.wantCompleteness {
				t.Errorf("CompletenessScore = %d, want %d", report.CompletenessScore, tt.wantCompleteness)
			}
			if report.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", report.Total, tt.wantTotal)
			}
			if report.Grade != tt.wantGrade {
				t.Errorf("Grade = %q, want %q", report.Grade, tt.wantGrade)
			}
		})
	}
}

func TestScoreNilSnapshot(t *testing.T) {
	report := Score(nil)
	if report.Total != 25 || report.Grade != "D" {
		t.Errorf("nil snapshot: total=%d grade=%q, want 25/D", report.Total, report.Grade)
	}
}

func TestBodyDecoding(t *testing.T) {
	t.Run("prose", func(t *testing.T) {
		var sc SectionContent
		if err := json.Unmarshal([]byte(`{"content": "some prose"}`), &sc); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if sc.Content.IsList() {
			t.Error("prose decoded as list")
		}
		if sc.Content.Text != "some prose" {
			t.Errorf("text = %q", sc.Content.Text)
		}
	})

	t.Run("list", func(t *testing.T) {
		var sc SectionContent
		if err := json.Unmarshal([]byte(`{"content": ["one", "two"]}`), &sc); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !sc.Content.IsList() {
			t.Error("list decoded as prose")
		}
		if len(sc.Content.Items) != 2 {
			t.Errorf("items = %v", sc.Content.Items)
		}
	})
}
