package report

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/jayozer/SeoTagInspector/analyzer"
	"github.com/jayozer/SeoTagInspector/scoring"
)

func str(s string) *string { return &s }

func check(content string, status analyzer.Severity) analyzer.Check {
	return analyzer.Check{Content: str(content), Status: status, Length: len(content)}
}

func sampleResult() *analyzer.Result {
	return &analyzer.Result{
		URL:             "https://example.com",
		Domain:          "example.com",
		Title:           check("Example Domain", analyzer.SeverityGood),
		MetaDescription: analyzer.Check{Status: analyzer.SeverityError},
		Canonical:       check("https://example.com/", analyzer.SeverityGood),
		Robots:          check("noindex, follow", analyzer.SeverityGood),
		Headings: analyzer.Headings{
			H1: []string{"Welcome"},
			H2: []string{"About <us>"},
		},
		OGTags: map[string]analyzer.Check{
			"og:locale":      check("en_US", analyzer.SeverityGood),
			"og:title":       check("Example OG", analyzer.SeverityGood),
			"og:description": {Status: analyzer.SeverityError},
			"og:image":       check("https://example.com/og.png", analyzer.SeverityGood),
		},
		TwitterTags: map[string]analyzer.Check{},
		Images:      analyzer.Images{Total: 3, WithAlt: 2, WithoutAlt: 1},
		Recommendations: []analyzer.Recommendation{
			analyzer.TextRecommendation("Add a meta description to your page"),
			analyzer.TextRecommendation("Critical: missing title"),
			analyzer.StructuredRecommendation("Canonical", "Canonical URL is properly set", "good"),
		},
	}
}

func TestBuild(t *testing.T) {
	r := Build(sampleResult(), scoring.NewComposer(scoring.ModeFlat))

	t.Run("Score", func(t *testing.T) {
		if r.Score.Mode != scoring.ModeFlat {
			t.Errorf("Expected flat mode, got %s", r.Score.Mode)
		}
		if r.Score.Passed+r.Score.Warnings+r.Score.Failed != 5+len(analyzer.OGKeys)+len(analyzer.TwitterKeys)+1 {
			t.Errorf("Unexpected counts %+v", r.Score)
		}
		if r.Score.Label != scoring.Label(r.Score.Overall) || r.Score.Class != scoring.Class(r.Score.Overall) {
			t.Errorf("Label/class mismatch %+v", r.Score)
		}
	})

	t.Run("Previews", func(t *testing.T) {
		if r.Google.Title != "Example Domain" || r.Google.Description != "No description available." {
			t.Errorf("Unexpected google preview %+v", r.Google)
		}
		if r.Facebook.Title != "Example OG" || r.Facebook.Image != "https://example.com/og.png" {
			t.Errorf("Unexpected facebook preview %+v", r.Facebook)
		}
		if r.Twitter.Title != "Example OG" {
			t.Errorf("Twitter title should fall back to og:title, got %q", r.Twitter.Title)
		}
		if r.Twitter.Image != "https://example.com/og.png" {
			t.Errorf("Twitter image should fall back to og:image, got %q", r.Twitter.Image)
		}
		if r.Twitter.Description != "No description available." {
			t.Errorf("Unexpected twitter description %q", r.Twitter.Description)
		}
	})

	t.Run("Checks", func(t *testing.T) {
		if len(r.Checks) != 4 {
			t.Fatalf("Expected 4 checks, got %d", len(r.Checks))
		}
		if !strings.Contains(r.Checks[0].Message, "too short (14 characters)") {
			t.Errorf("Unexpected title message %q", r.Checks[0].Message)
		}
		if !strings.Contains(r.Checks[1].Message, "missing a meta description") {
			t.Errorf("Unexpected description message %q", r.Checks[1].Message)
		}
		if r.Checks[2].Status != analyzer.SeverityWarning {
			t.Errorf("Missing keywords should warn, got %v", r.Checks[2].Status)
		}
		if !strings.Contains(r.Checks[3].Message, `"noindex"`) {
			t.Errorf("Unexpected robots message %q", r.Checks[3].Message)
		}
	})

	t.Run("TagRows", func(t *testing.T) {
		names := make([]string, 0, len(r.OGTags))
		for _, row := range r.OGTags {
			names = append(names, row.Name)
		}
		expected := "og:title,og:description,og:image,og:locale"
		if got := strings.Join(names, ","); got != expected {
			t.Errorf("Expected row order %s, got %s", expected, got)
		}
		if r.OGTags[1].Set || r.OGTags[1].Content != "Not set" {
			t.Errorf("Empty tag should read Not set, got %+v", r.OGTags[1])
		}
		if len(r.TwitterTags) != 0 {
			t.Errorf("Expected no twitter rows, got %d", len(r.TwitterTags))
		}
	})

	t.Run("Categories", func(t *testing.T) {
		if len(r.Categories) != 4 {
			t.Fatalf("Expected 4 categories, got %d", len(r.Categories))
		}
		structure := r.Categories[2]
		if structure.Title != "Page Structure" || len(structure.Items) != 4 {
			t.Errorf("Unexpected structure summary %+v", structure)
		}
		if structure.Items[3].Status != analyzer.SeverityGood {
			t.Error("One H1 with an H2 should pass heading structure")
		}
		content := r.Categories[3]
		if content.Items[0].Details != "2 of 3 images have alt text" {
			t.Errorf("Unexpected details %q", content.Items[0].Details)
		}
		if len(r.Categories[0].Items) != 4 {
			t.Errorf("Basic SEO should omit keywords when absent, got %d items", len(r.Categories[0].Items))
		}
	})

	t.Run("Recommendations", func(t *testing.T) {
		expected := []analyzer.Severity{analyzer.SeverityWarning, analyzer.SeverityError, analyzer.SeverityGood}
		for i, rec := range r.Recommendations {
			if rec.Severity != expected[i] {
				t.Errorf("Recommendation %d severity = %v, expected %v", i, rec.Severity, expected[i])
			}
		}
		if r.Recommendations[2].Title != "Canonical" || r.Recommendations[2].Text != "Canonical URL is properly set" {
			t.Errorf("Unexpected structured item %+v", r.Recommendations[2])
		}
	})

	t.Run("EmptyRecommendations", func(t *testing.T) {
		var recs []analyzer.Recommendation
		if err := json.Unmarshal([]byte(`[null, "", "  ", {"severity": "error"}, "Add a title"]`), &recs); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		res := sampleResult()
		res.Recommendations = recs
		got := Build(res, scoring.NewComposer(scoring.ModeWeighted))
		if len(got.Recommendations) != 1 || got.Recommendations[0].Text != "Add a title" {
			t.Errorf("Expected only the non-empty recommendation, got %+v", got.Recommendations)
		}
	})

	t.Run("NilHeadings", func(t *testing.T) {
		res := sampleResult()
		res.Headings = analyzer.Headings{}
		got := Build(res, scoring.NewComposer(scoring.ModeWeighted))
		for _, h := range got.Headings {
			if h.Items == nil || h.Count != 0 {
				t.Errorf("Expected empty heading group, got %+v", h)
			}
		}
	})
}

type recorder struct {
	text    map[string]string
	markup  map[string]template.HTML
	visible map[string]bool
}

func newRecorder() *recorder {
	return &recorder{text: map[string]string{}, markup: map[string]template.HTML{}, visible: map[string]bool{}}
}

func (r *recorder) SetText(slot, text string)            { r.text[slot] = text }
func (r *recorder) SetHTML(slot string, m template.HTML) { r.markup[slot] = m }
func (r *recorder) Show(slot string)                     { r.visible[slot] = true }
func (r *recorder) Hide(slot string)                     { r.visible[slot] = false }

func TestRenderStates(t *testing.T) {
	out := newRecorder()

	RenderLoading(out)
	if !out.visible[SlotLoading] || out.visible[SlotResults] || out.visible[SlotError] {
		t.Errorf("Unexpected loading state %+v", out.visible)
	}

	RenderError("boom", out)
	if out.visible[SlotLoading] || out.visible[SlotResults] || !out.visible[SlotError] {
		t.Errorf("Unexpected error state %+v", out.visible)
	}
	if out.text[SlotErrorMessage] != "boom" {
		t.Errorf("Expected error message, got %q", out.text[SlotErrorMessage])
	}

	if err := Render(Build(sampleResult(), scoring.NewComposer(scoring.ModeWeighted)), out); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out.visible[SlotLoading] || !out.visible[SlotResults] || out.visible[SlotError] {
		t.Errorf("Unexpected results state %+v", out.visible)
	}
	for _, slot := range []string{SlotScore, SlotGoogleTitle, HeadingCountSlot("H1"), SlotBasicSEOScore} {
		if out.text[slot] == "" {
			t.Errorf("Slot %s was not filled", slot)
		}
	}
	for _, slot := range []string{SlotChecks, SlotOGTable, SlotCategories, SlotRecommendations, SlotTabRecommendation, HeadingTagsSlot("H2")} {
		if out.markup[slot] == "" {
			t.Errorf("Slot %s was not filled", slot)
		}
	}

	t.Run("InvalidAfterResults", func(t *testing.T) {
		out := newRecorder()
		if err := Render(Build(sampleResult(), scoring.NewComposer(scoring.ModeWeighted)), out); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		RenderInvalid(out)
		if !out.visible[SlotURLInvalid] {
			t.Error("URL field should be marked invalid")
		}
		if out.visible[SlotResults] || out.visible[SlotLoading] {
			t.Errorf("Validation error should hide results and loading, got %+v", out.visible)
		}
		if out.visible[SlotError] {
			t.Error("Validation error must not show the banner")
		}
	})

	t.Run("InvalidAfterLoading", func(t *testing.T) {
		out := newRecorder()
		RenderLoading(out)
		RenderInvalid(out)
		if !out.visible[SlotURLInvalid] || out.visible[SlotLoading] || out.visible[SlotResults] {
			t.Errorf("Unexpected state after validation error %+v", out.visible)
		}
	})

	t.Run("InvalidKeepsBanner", func(t *testing.T) {
		out := newRecorder()
		RenderError("boom", out)
		RenderInvalid(out)
		if !out.visible[SlotError] {
			t.Error("Validation error should leave the banner untouched")
		}
	})
}

func TestPageHTML(t *testing.T) {
	render := func(t *testing.T, page *Page) *goquery.Document {
		t.Helper()
		var buf bytes.Buffer
		if err := page.WriteHTML(&buf); err != nil {
			t.Fatalf("WriteHTML failed: %v", err)
		}
		doc, err := goquery.NewDocumentFromReader(&buf)
		if err != nil {
			t.Fatalf("Failed to parse page: %v", err)
		}
		return doc
	}

	t.Run("Results", func(t *testing.T) {
		r := Build(sampleResult(), scoring.NewComposer(scoring.ModeWeighted))
		page := NewPage("https://example.com")
		if err := Render(r, page); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		doc := render(t, page)

		if doc.Find("#results-section").HasClass("d-none") {
			t.Error("Results should be visible")
		}
		if !doc.Find("#error-alert").HasClass("d-none") {
			t.Error("Error banner should be hidden")
		}
		if got := strings.TrimSpace(doc.Find("#seo-score").Text()); got == "" || got != page.TextOf(SlotScore) {
			t.Errorf("Unexpected score text %q", got)
		}
		if n := doc.Find("#recommendations-container .recommendation").Length(); n != 3 {
			t.Errorf("Expected 3 recommendations, got %d", n)
		}
		if n := doc.Find("#tab-recommendations-container .recommendation").Length(); n != 3 {
			t.Errorf("Expected 3 tab recommendations, got %d", n)
		}
		if !doc.Find("#recommendations-container .recommendation").Eq(1).HasClass("alert-danger") {
			t.Error("Critical recommendation should render as danger")
		}
		if n := doc.Find("#og-tags-table tr.tag-row").Length(); n != 4 {
			t.Errorf("Expected 4 og rows, got %d", n)
		}
		if got := doc.Find("#twitter-tags-table").Text(); !strings.Contains(got, "No Twitter Card tags found") {
			t.Errorf("Expected empty twitter table message, got %q", got)
		}
		if n := doc.Find("#seo-checks-container .seo-check").Length(); n != 4 {
			t.Errorf("Expected 4 check cards, got %d", n)
		}
		if n := doc.Find("#category-summaries .category-summary-card").Length(); n != 4 {
			t.Errorf("Expected 4 category cards, got %d", n)
		}
		if got := doc.Find("#h2-tags .tag-item").Text(); got != "About <us>" {
			t.Errorf("Heading text should be escaped and preserved, got %q", got)
		}
		if got := doc.Find("#h3-tags").Text(); !strings.Contains(got, "No H3 headings found.") {
			t.Errorf("Expected H3 placeholder, got %q", got)
		}
		if src, _ := doc.Find("#facebook-image img").Attr("src"); src != "https://example.com/og.png" {
			t.Errorf("Unexpected facebook image %q", src)
		}
		if val, _ := doc.Find("#url-input").Attr("value"); val != "https://example.com" {
			t.Errorf("Form value should be echoed, got %q", val)
		}
		if !doc.Find("#images-mismatch").HasClass("d-none") {
			t.Error("Consistent image counts should not show a warning")
		}
	})

	t.Run("ImagesMismatch", func(t *testing.T) {
		res := sampleResult()
		res.Images = analyzer.Images{Total: 5, WithAlt: 2, WithoutAlt: 1}
		page := NewPage("https://example.com")
		if err := Render(Build(res, scoring.NewComposer(scoring.ModeWeighted)), page); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		doc := render(t, page)

		if doc.Find("#images-mismatch").HasClass("d-none") {
			t.Error("Inconsistent image counts should show a warning")
		}
	})

	t.Run("Error", func(t *testing.T) {
		page := NewPage("https://example.com")
		RenderError("Could not fetch the website", page)
		doc := render(t, page)

		if doc.Find("#error-alert").HasClass("d-none") {
			t.Error("Error banner should be visible")
		}
		if !doc.Find("#results-section").HasClass("d-none") {
			t.Error("Results should be hidden")
		}
		if !doc.Find("#loading-indicator").HasClass("d-none") {
			t.Error("Loading indicator should be cleared")
		}
		if got := doc.Find("#error-message").Text(); got != "Could not fetch the website" {
			t.Errorf("Unexpected error message %q", got)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		page := NewPage("   ")
		RenderInvalid(page)
		doc := render(t, page)

		if !doc.Find("#url-input").HasClass("is-invalid") {
			t.Error("URL input should be marked invalid")
		}
		if !doc.Find("#error-alert").HasClass("d-none") {
			t.Error("Validation errors must not use the banner")
		}
		if !doc.Find("#results-section").HasClass("d-none") {
			t.Error("Results should be hidden")
		}
	})
}

func TestEncode(t *testing.T) {
	color.NoColor = true
	r := Build(sampleResult(), scoring.NewComposer(scoring.ModeWeighted))

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, r, "json"); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		score := decoded["score"].(map[string]interface{})
		if score["mode"] != "weighted" {
			t.Errorf("Expected weighted mode in JSON, got %v", score["mode"])
		}
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, r, "yaml"); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		var decoded map[string]interface{}
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Invalid YAML: %v", err)
		}
		if decoded["domain"] != "example.com" {
			t.Errorf("Expected domain in YAML, got %v", decoded["domain"])
		}
		if !strings.Contains(buf.String(), "status: good") {
			t.Error("Severities should encode as status strings")
		}
	})

	t.Run("Human", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Encode(&buf, r, "human"); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"SEO REPORT: https://example.com", "CATEGORIES:", "Critical: missing title", "Canonical: Canonical URL is properly set"} {
			if !strings.Contains(out, want) {
				t.Errorf("Human output missing %q", want)
			}
		}
		if strings.Contains(out, "Image counts do not add up") {
			t.Error("Consistent image counts should not warn")
		}
	})

	t.Run("HumanImagesMismatch", func(t *testing.T) {
		res := sampleResult()
		res.Images = analyzer.Images{Total: 5, WithAlt: 2, WithoutAlt: 1}
		var buf bytes.Buffer
		if err := Encode(&buf, Build(res, scoring.NewComposer(scoring.ModeWeighted)), "human"); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if !strings.Contains(buf.String(), "Image counts do not add up") {
			t.Errorf("Expected image count warning in:\n%s", buf.String())
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if err := Encode(&bytes.Buffer{}, r, "xml"); err == nil {
			t.Error("Expected an error for unknown format")
		}
	})
}
