package report

import (
	"fmt"
	"strings"

	"github.com/jayozer/SeoTagInspector/analyzer"
	"github.com/jayozer/SeoTagInspector/scoring"
)

func checkCards(res *analyzer.Result) []CheckCard {
	keywordsStatus := analyzer.SeverityWarning
	keywordsMessage := "Meta keywords tag is missing. While not critical for Google, it may be useful for other search engines."
	if res.MetaKeywords != nil && res.MetaKeywords.Present() {
		keywordsStatus = analyzer.SeverityGood
		keywordsMessage = "Meta keywords tag is present. While not critical for Google, it may be useful for other search engines."
	}

	return []CheckCard{
		{Title: "Title Tag", Status: res.Title.Status, Message: titleMessage(res.Title)},
		{Title: "Meta Description", Status: res.MetaDescription.Status, Message: descriptionMessage(res.MetaDescription)},
		{Title: "Meta Keywords", Status: keywordsStatus, Message: keywordsMessage},
		{Title: "Robots Meta Tag", Status: res.Robots.Status, Message: robotsMessage(res.Robots)},
	}
}

// contentLength prefers the length reported by the server
func contentLength(c analyzer.Check) int {
	if c.Length > 0 {
		return c.Length
	}
	return len([]rune(c.Text()))
}

func titleMessage(c analyzer.Check) string {
	if !c.Present() {
		return "Your page is missing a title tag, which is critical for SEO."
	}
	n := contentLength(c)
	switch {
	case n < 30:
		return fmt.Sprintf("Your title tag is too short (%d characters). Consider making it between 50-60 characters.", n)
	case n > 60:
		return fmt.Sprintf("Your title tag is too long (%d characters). Consider making it between 50-60 characters.", n)
	default:
		return fmt.Sprintf("Your title tag length is optimal (%d characters).", n)
	}
}

func descriptionMessage(c analyzer.Check) string {
	if !c.Present() {
		return "Your page is missing a meta description, which is important for SEO."
	}
	n := contentLength(c)
	switch {
	case n < 120:
		return fmt.Sprintf("Your meta description is a bit short (%d characters). Consider expanding it to 120-155 characters.", n)
	case n > 155:
		return fmt.Sprintf("Your meta description is too long (%d characters). Consider shortening it to 120-155 characters.", n)
	default:
		return fmt.Sprintf("Your meta description length is optimal (%d characters).", n)
	}
}

func robotsMessage(c analyzer.Check) string {
	if !c.Present() {
		return "No robots meta tag found (default: index, follow)."
	}
	directives := strings.ToLower(c.Text())
	switch {
	case strings.Contains(directives, "noindex"):
		return `Your robots meta tag includes "noindex", which prevents search engines from indexing this page.`
	case strings.Contains(directives, "nofollow"):
		return `Your robots meta tag includes "nofollow", which prevents search engines from following links on this page.`
	default:
		return "Robots meta tag allows indexing and following links."
	}
}

func categorySummaries(res *analyzer.Result, cats scoring.Categories) []CategorySummary {
	h1, h2, h3 := len(res.Headings.H1), len(res.Headings.H2), len(res.Headings.H3)

	basic := []CategoryItem{
		{Name: "Title", Status: res.Title.Status},
		{Name: "Meta Description", Status: res.MetaDescription.Status},
		{Name: "Canonical URL", Status: res.Canonical.Status},
	}
	if res.MetaKeywords != nil {
		basic = append(basic, CategoryItem{Name: "Meta Keywords", Status: scoring.StatusOf(res.MetaKeywords)})
	}
	basic = append(basic, CategoryItem{Name: "Robots Meta Tag", Status: res.Robots.Status})

	headingStructure := analyzer.SeverityWarning
	if h1 == 1 && h2 > 0 {
		headingStructure = analyzer.SeverityGood
	}

	withAlt := analyzer.SeverityWarning
	if res.Images.WithAlt > 0 {
		withAlt = analyzer.SeverityGood
	}
	withoutAlt := analyzer.SeverityWarning
	if res.Images.WithoutAlt == 0 {
		withoutAlt = analyzer.SeverityGood
	}

	items := map[scoring.Category][]CategoryItem{
		scoring.CategoryBasicSEO: basic,
		scoring.CategorySocial: {
			{Name: "OG Title", Status: scoring.TagStatus(res.OGTags, "og:title")},
			{Name: "OG Description", Status: scoring.TagStatus(res.OGTags, "og:description")},
			{Name: "OG Image", Status: scoring.TagStatus(res.OGTags, "og:image")},
			{Name: "Twitter Card", Status: scoring.TagStatus(res.TwitterTags, "twitter:card")},
			{Name: "Twitter Title", Status: scoring.TagStatus(res.TwitterTags, "twitter:title")},
		},
		scoring.CategoryStructure: {
			{Name: "H1 Heading", Status: scoring.H1Status(h1)},
			{Name: "H2 Headings", Status: scoring.SubheadingStatus(h2)},
			{Name: "H3 Headings", Status: scoring.SubheadingStatus(h3)},
			{Name: "Heading Structure", Status: headingStructure},
		},
		scoring.CategoryContent: {
			{
				Name:    "Images with Alt Text",
				Status:  withAlt,
				Details: fmt.Sprintf("%d of %d images have alt text", res.Images.WithAlt, res.Images.Total),
			},
			{
				Name:    "Images Missing Alt Text",
				Status:  withoutAlt,
				Details: fmt.Sprintf("%d of %d images missing alt text", res.Images.WithoutAlt, res.Images.Total),
			},
		},
	}

	meta := map[scoring.Category]struct{ description, icon, color string }{
		scoring.CategoryBasicSEO:  {"Core meta tags that impact search rankings", "search", "primary"},
		scoring.CategorySocial:    {"Open Graph and Twitter Card tags for social sharing", "share-alt", "info"},
		scoring.CategoryStructure: {"Headings and page organization", "sitemap", "success"},
		scoring.CategoryContent:   {"Images and content accessibility", "file-alt", "warning"},
	}

	summaries := make([]CategorySummary, 0, len(scoring.AllCategories))
	for _, cat := range scoring.AllCategories {
		score := cats.Get(cat)
		summaries = append(summaries, CategorySummary{
			ID:          cat,
			Title:       cat.Title(),
			Description: meta[cat].description,
			Icon:        meta[cat].icon,
			Color:       meta[cat].color,
			Score:       score,
			Class:       scoring.Class(score.Score),
			Items:       items[cat],
		})
	}
	return summaries
}
