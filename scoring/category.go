package scoring

import (
	"math"

	"github.com/jayozer/SeoTagInspector/analyzer"
)

// CategoryScore is the pass/warn/fail tally of one group of checks
type CategoryScore struct {
	Passed   int `json:"passed" yaml:"passed"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Failed   int `json:"failed" yaml:"failed"`
	Total    int `json:"total" yaml:"total"`
	Score    int `json:"score" yaml:"score"`
}

// Tally folds severities into a CategoryScore.
// score = round(100 * sum(weight) / total), or 0 for an empty set.
func Tally(severities ...analyzer.Severity) CategoryScore {
	var c CategoryScore
	var weight float64
	for _, s := range severities {
		switch s {
		case analyzer.SeverityGood:
			c.Passed++
		case analyzer.SeverityWarning:
			c.Warnings++
		default:
			c.Failed++
		}
		weight += s.Weight()
	}
	c.Total = c.Passed + c.Warnings + c.Failed
	c.Score = percentage(weight, c.Total)
	return c
}

// weight is a sum of whole and half units, so the division rounds exactly
func percentage(weight float64, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * weight / float64(total)))
}

// Category names a fixed grouping of checks
type Category string

const (
	CategoryBasicSEO  Category = "basic_seo"
	CategorySocial    Category = "social"
	CategoryStructure Category = "structure"
	CategoryContent   Category = "content"
)

// Title returns the display name of the category
func (c Category) Title() string {
	switch c {
	case CategoryBasicSEO:
		return "Basic SEO"
	case CategorySocial:
		return "Social Media"
	case CategoryStructure:
		return "Page Structure"
	case CategoryContent:
		return "Page Content"
	}
	return string(c)
}

// AllCategories in display order
var AllCategories = []Category{CategoryBasicSEO, CategorySocial, CategoryStructure, CategoryContent}

// Categories holds the score of every category
type Categories struct {
	BasicSEO  CategoryScore `json:"basic_seo" yaml:"basic_seo"`
	Social    CategoryScore `json:"social" yaml:"social"`
	Structure CategoryScore `json:"structure" yaml:"structure"`
	Content   CategoryScore `json:"content" yaml:"content"`
}

// Get returns the score of one category
func (c Categories) Get(cat Category) CategoryScore {
	switch cat {
	case CategoryBasicSEO:
		return c.BasicSEO
	case CategorySocial:
		return c.Social
	case CategoryStructure:
		return c.Structure
	default:
		return c.Content
	}
}

// Categorize scores every category of res
func Categorize(res *analyzer.Result) Categories {
	return Categories{
		BasicSEO:  Tally(BasicSEOSeverities(res)...),
		Social:    Tally(SocialSeverities(res)...),
		Structure: Tally(StructureSeverities(res)...),
		Content:   Tally(ContentSeverities(res)...),
	}
}

// BasicSEOSeverities covers title, description, canonical, robots and, when the
// payload carries it, meta keywords.
func BasicSEOSeverities(res *analyzer.Result) []analyzer.Severity {
	out := []analyzer.Severity{
		res.Title.Status,
		res.MetaDescription.Status,
		res.Canonical.Status,
		res.Robots.Status,
	}
	if res.MetaKeywords != nil {
		out = append(out, StatusOf(res.MetaKeywords))
	}
	return out
}

// SocialSeverities lists the severity of every document-level social slot
func SocialSeverities(res *analyzer.Result) []analyzer.Severity {
	slots := SocialSlots(res)
	out := make([]analyzer.Severity, len(slots))
	for i, s := range slots {
		out[i] = s.Severity
	}
	return out
}

// StructureSeverities applies the H1 rule and the H2/H3 subheading rule
func StructureSeverities(res *analyzer.Result) []analyzer.Severity {
	return []analyzer.Severity{
		H1Status(len(res.Headings.H1)),
		SubheadingStatus(len(res.Headings.H2)),
		SubheadingStatus(len(res.Headings.H3)),
	}
}

// ContentSeverities may yield zero, one or two entries
func ContentSeverities(res *analyzer.Result) []analyzer.Severity {
	var out []analyzer.Severity
	if res.Images.WithAlt > 0 {
		out = append(out, analyzer.SeverityGood)
	}
	if res.Images.WithoutAlt > 0 {
		out = append(out, analyzer.SeverityWarning)
	}
	return out
}
