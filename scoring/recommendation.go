package scoring

import (
	"strings"

	"github.com/jayozer/SeoTagInspector/analyzer"
)

// keyword rules for free-text recommendations, checked in order; first match wins
var recommendationRules = []struct {
	keywords []string
	severity analyzer.Severity
}{
	{[]string{"critical", "error"}, analyzer.SeverityError},
	{[]string{"missing"}, analyzer.SeverityError},
	{[]string{"good", "properly", "optimized", "excellent"}, analyzer.SeverityGood},
}

// ClassifyText infers a severity from recommendation text.
// Text matching no rule is a warning.
func ClassifyText(text string) analyzer.Severity {
	lower := strings.ToLower(text)
	for _, rule := range recommendationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.severity
			}
		}
	}
	return analyzer.SeverityWarning
}

// ClassifyRecommendation uses the server-assigned severity of a structured
// recommendation and falls back to ClassifyText otherwise.
func ClassifyRecommendation(rec analyzer.Recommendation) analyzer.Severity {
	if rec.Structured() {
		if sev, ok := analyzer.ParseSeverity(rec.Severity); ok {
			return sev
		}
	}
	return ClassifyText(rec.Message())
}
