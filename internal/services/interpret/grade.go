package interpret

import (
	"sort"
	"strings"

	"SignalDash/internal/domain/models"
)

var gradeBuckets = map[string]string{
	"A+": "grade-a-plus",
	"A":  "grade-a",
	"B+": "grade-b-plus",
	"B":  "grade-b",
	"C+": "grade-c-plus",
	"C":  "grade-c",
	"D":  "grade-d",
	"F":  "grade-f",
}

// GradeBucket maps a performance grade to its display bucket.
func GradeBucket(grade string) string {
	if b, ok := gradeBuckets[strings.ToUpper(strings.TrimSpace(grade))]; ok {
		return b
	}
	return string(TierUnknown)
}

// assessmentKeywords is checked in order; the first tier with a matching keyword wins.
var assessmentKeywords = []struct {
	tier     Tier
	keywords []string
}{
	{TierExcellent, []string{"excellent", "优秀"}},
	{TierGood, []string{"good", "良好"}},
	{TierFair, []string{"fair", "一般", "中等"}},
	{TierPoor, []string{"poor", "较差", "差"}},
}

// AssessmentTier buckets a free-text assessment by case-insensitive keyword match.
func AssessmentTier(text string) Tier {
	lower := strings.ToLower(text)
	for _, a := range assessmentKeywords {
		for _, kw := range a.keywords {
			if strings.Contains(lower, kw) {
				return a.tier
			}
		}
	}
	return TierNeutral
}

func priorityRank(p string) int {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high", "高":
		return 0
	case "medium", "中":
		return 1
	case "low", "低":
		return 2
	default:
		return 3
	}
}

// SortSuggestions orders suggestions high > medium > low, keeping input order within a priority.
func SortSuggestions(in []models.OptimizationSuggestion) []models.OptimizationSuggestion {
	out := make([]models.OptimizationSuggestion, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank(out[i].Priority) < priorityRank(out[j].Priority)
	})
	return out
}
