// Package report builds the view-model of one analysis and writes it into
// named output slots.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jayozer/SeoTagInspector/analyzer"
	"github.com/jayozer/SeoTagInspector/scoring"
)

const (
	noTitle       = "No title"
	noDescription = "No description available."
	notSet        = "Not set"
)

// Report is the complete view-model of one analysis
type Report struct {
	URL             string               `json:"url" yaml:"url"`
	Domain          string               `json:"domain" yaml:"domain"`
	Score           ScoreSection         `json:"score" yaml:"score"`
	Google          GooglePreview        `json:"google" yaml:"google"`
	Facebook        SocialPreview        `json:"facebook" yaml:"facebook"`
	Twitter         SocialPreview        `json:"twitter" yaml:"twitter"`
	Headings        []HeadingGroup       `json:"headings" yaml:"headings"`
	Checks          []CheckCard          `json:"checks" yaml:"checks"`
	OGTags          []TagRow             `json:"og_tags" yaml:"og_tags"`
	TwitterTags     []TagRow             `json:"twitter_tags" yaml:"twitter_tags"`
	Categories      []CategorySummary    `json:"categories" yaml:"categories"`
	Recommendations []RecommendationItem `json:"recommendations" yaml:"recommendations"`
	ImagesMismatch  bool                 `json:"images_mismatch,omitempty" yaml:"images_mismatch,omitempty"`
}

type ScoreSection struct {
	Overall    int                `json:"overall" yaml:"overall"`
	Label      string             `json:"label" yaml:"label"`
	Class      string             `json:"class" yaml:"class"`
	Mode       scoring.Mode       `json:"mode" yaml:"mode"`
	Passed     int                `json:"passed" yaml:"passed"`
	Warnings   int                `json:"warnings" yaml:"warnings"`
	Failed     int                `json:"failed" yaml:"failed"`
	Categories scoring.Categories `json:"categories" yaml:"categories"`
}

type GooglePreview struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

type SocialPreview struct {
	Domain      string `json:"domain" yaml:"domain"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

type HeadingGroup struct {
	Level string   `json:"level" yaml:"level"`
	Count int      `json:"count" yaml:"count"`
	Items []string `json:"items" yaml:"items"`
	Empty string   `json:"-" yaml:"-"`
}

type CheckCard struct {
	Title   string            `json:"title" yaml:"title"`
	Status  analyzer.Severity `json:"status" yaml:"status"`
	Message string            `json:"message" yaml:"message"`
}

type TagRow struct {
	Name    string            `json:"name" yaml:"name"`
	Status  analyzer.Severity `json:"status" yaml:"status"`
	Content string            `json:"content" yaml:"content"`
	Set     bool              `json:"set" yaml:"set"`
}

type CategorySummary struct {
	ID          scoring.Category      `json:"id" yaml:"id"`
	Title       string                `json:"title" yaml:"title"`
	Description string                `json:"description" yaml:"description"`
	Icon        string                `json:"-" yaml:"-"`
	Color       string                `json:"-" yaml:"-"`
	Score       scoring.CategoryScore `json:"score" yaml:"score"`
	Class       string                `json:"class" yaml:"class"`
	Items       []CategoryItem        `json:"items" yaml:"items"`
}

type CategoryItem struct {
	Name    string            `json:"name" yaml:"name"`
	Status  analyzer.Severity `json:"status" yaml:"status"`
	Details string            `json:"details,omitempty" yaml:"details,omitempty"`
}

type RecommendationItem struct {
	Title      string            `json:"title,omitempty" yaml:"title,omitempty"`
	Text       string            `json:"text" yaml:"text"`
	Severity   analyzer.Severity `json:"severity" yaml:"severity"`
	Structured bool              `json:"structured" yaml:"structured"`
}

// Build computes the view-model of res. The payload is not modified.
func Build(res *analyzer.Result, composer scoring.Composer) *Report {
	overall := composer.Compose(res)
	cats := scoring.Categorize(res)

	return &Report{
		URL:    res.URL,
		Domain: res.Domain,
		Score: ScoreSection{
			Overall:    overall.Score,
			Label:      overall.Label,
			Class:      scoring.Class(overall.Score),
			Mode:       overall.Mode,
			Passed:     overall.Counts.Passed,
			Warnings:   overall.Counts.Warnings,
			Failed:     overall.Counts.Failed,
			Categories: cats,
		},
		Google:          googlePreview(res),
		Facebook:        facebookPreview(res),
		Twitter:         twitterPreview(res),
		Headings:        headingGroups(res.Headings),
		Checks:          checkCards(res),
		OGTags:          tagRows(res.OGTags, analyzer.OGKeys),
		TwitterTags:     tagRows(res.TwitterTags, analyzer.TwitterKeys),
		Categories:      categorySummaries(res, cats),
		Recommendations: recommendationItems(res.Recommendations),
		ImagesMismatch:  !res.Images.Consistent(),
	}
}

// firstContent returns the first present check content, or fallback
func firstContent(fallback string, checks ...analyzer.Check) string {
	for _, c := range checks {
		if c.Present() {
			return c.Text()
		}
	}
	return fallback
}

func tag(tags map[string]analyzer.Check, key string) analyzer.Check {
	return tags[key]
}

func googlePreview(res *analyzer.Result) GooglePreview {
	return GooglePreview{
		Title:       firstContent(noTitle, res.Title),
		URL:         res.URL,
		Description: firstContent(noDescription, res.MetaDescription),
	}
}

func facebookPreview(res *analyzer.Result) SocialPreview {
	return SocialPreview{
		Domain:      res.Domain,
		Title:       firstContent(noTitle, tag(res.OGTags, "og:title"), res.Title),
		Description: firstContent(noDescription, tag(res.OGTags, "og:description"), res.MetaDescription),
		Image:       firstContent("", tag(res.OGTags, "og:image")),
	}
}

func twitterPreview(res *analyzer.Result) SocialPreview {
	return SocialPreview{
		Domain: res.Domain,
		Title: firstContent(noTitle,
			tag(res.TwitterTags, "twitter:title"), tag(res.OGTags, "og:title"), res.Title),
		Description: firstContent(noDescription,
			tag(res.TwitterTags, "twitter:description"), tag(res.OGTags, "og:description"), res.MetaDescription),
		Image: firstContent("", tag(res.TwitterTags, "twitter:image"), tag(res.OGTags, "og:image")),
	}
}

func headingGroups(h analyzer.Headings) []HeadingGroup {
	levels := []struct {
		name  string
		items []string
	}{{"H1", h.H1}, {"H2", h.H2}, {"H3", h.H3}}

	groups := make([]HeadingGroup, 0, len(levels))
	for _, l := range levels {
		items := l.items
		if items == nil {
			items = []string{}
		}
		groups = append(groups, HeadingGroup{
			Level: l.name,
			Count: len(items),
			Items: items,
			Empty: fmt.Sprintf("No %s headings found.", l.name),
		})
	}
	return groups
}

// tagRows lists the tags present in the payload, tracked keys first and the
// rest sorted by name
func tagRows(tags map[string]analyzer.Check, tracked []string) []TagRow {
	keys := make([]string, 0, len(tags))
	known := make(map[string]bool, len(tracked))
	for _, k := range tracked {
		known[k] = true
		if _, ok := tags[k]; ok {
			keys = append(keys, k)
		}
	}
	extra := make([]string, 0)
	for k := range tags {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	rows := make([]TagRow, 0, len(keys))
	for _, k := range keys {
		t := tags[k]
		row := TagRow{Name: k, Status: t.Status, Content: notSet}
		if t.Present() {
			row.Content = t.Text()
			row.Set = true
		}
		rows = append(rows, row)
	}
	return rows
}

func recommendationItems(recs []analyzer.Recommendation) []RecommendationItem {
	items := make([]RecommendationItem, 0, len(recs))
	for _, rec := range recs {
		if strings.TrimSpace(rec.Message()) == "" {
			continue
		}
		item := RecommendationItem{
			Text:       rec.Message(),
			Severity:   scoring.ClassifyRecommendation(rec),
			Structured: rec.Structured(),
		}
		if rec.Structured() && rec.Title != "" {
			item.Title = rec.Title
			item.Text = rec.Description
			if item.Text == "" {
				item.Text = rec.Title
			}
		}
		items = append(items, item)
	}
	return items
}
