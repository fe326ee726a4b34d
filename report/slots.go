package report

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/jayozer/SeoTagInspector/analyzer"
)

// Slots receives rendered output. Each slot is addressed by name; a slot
// that the sink does not know is ignored.
type Slots interface {
	SetText(slot, text string)
	SetHTML(slot string, markup template.HTML)
	Show(slot string)
	Hide(slot string)
}

// Slot names
const (
	SlotLoading      = "loading-indicator"
	SlotResults      = "results-section"
	SlotError        = "error-alert"
	SlotErrorMessage = "error-message"
	SlotURLInvalid   = "url-input-invalid"

	SlotScore        = "seo-score"
	SlotScoreRating  = "seo-score-rating"
	SlotScoreClass   = "seo-score-class"
	SlotScoreMode    = "seo-score-mode"
	SlotPassedCount  = "passed-checks-count"
	SlotWarningCount = "warnings-count"
	SlotFailedCount  = "failed-checks-count"

	SlotBasicSEOScore  = "basic-seo-score"
	SlotSocialScore    = "social-score"
	SlotStructureScore = "structure-score"
	SlotContentScore   = "content-score"

	SlotGoogleTitle       = "google-title"
	SlotGoogleURL         = "google-url"
	SlotGoogleDescription = "google-description"

	SlotFacebookDomain      = "facebook-domain"
	SlotFacebookTitle       = "facebook-title"
	SlotFacebookDescription = "facebook-description"
	SlotFacebookImage       = "facebook-image"

	SlotTwitterDomain      = "twitter-domain"
	SlotTwitterTitle       = "twitter-title-preview"
	SlotTwitterDescription = "twitter-description-preview"
	SlotTwitterImage       = "twitter-image"

	SlotChecks            = "seo-checks-container"
	SlotOGTable           = "og-tags-table"
	SlotTwitterTable      = "twitter-tags-table"
	SlotCategories        = "category-summaries"
	SlotRecommendations   = "recommendations-container"
	SlotTabRecommendation = "tab-recommendations-container"
	SlotImagesMismatch    = "images-mismatch"
)

// HeadingCountSlot and HeadingTagsSlot name the per-level heading slots, e.g. h1-count
func HeadingCountSlot(level string) string { return strings.ToLower(level) + "-count" }
func HeadingTagsSlot(level string) string  { return strings.ToLower(level) + "-tags" }

type fragmentSlot struct {
	slot, name string
	data       interface{}
}

// Render writes r into out and switches to the results state
func Render(r *Report, out Slots) error {
	out.Hide(SlotURLInvalid)

	setInt(out, SlotScore, r.Score.Overall)
	out.SetText(SlotScoreRating, r.Score.Label)
	out.SetText(SlotScoreClass, r.Score.Class)
	out.SetText(SlotScoreMode, string(r.Score.Mode))
	setInt(out, SlotPassedCount, r.Score.Passed)
	setInt(out, SlotWarningCount, r.Score.Warnings)
	setInt(out, SlotFailedCount, r.Score.Failed)

	cats := r.Score.Categories
	setInt(out, SlotBasicSEOScore, cats.BasicSEO.Score)
	setInt(out, SlotSocialScore, cats.Social.Score)
	setInt(out, SlotStructureScore, cats.Structure.Score)
	setInt(out, SlotContentScore, cats.Content.Score)

	out.SetText(SlotGoogleTitle, r.Google.Title)
	out.SetText(SlotGoogleURL, r.Google.URL)
	out.SetText(SlotGoogleDescription, r.Google.Description)

	out.SetText(SlotFacebookDomain, r.Facebook.Domain)
	out.SetText(SlotFacebookTitle, r.Facebook.Title)
	out.SetText(SlotFacebookDescription, r.Facebook.Description)
	out.SetText(SlotTwitterDomain, r.Twitter.Domain)
	out.SetText(SlotTwitterTitle, r.Twitter.Title)
	out.SetText(SlotTwitterDescription, r.Twitter.Description)

	fragments := []fragmentSlot{
		{SlotFacebookImage, "social-image", r.Facebook.Image},
		{SlotTwitterImage, "social-image", r.Twitter.Image},
		{SlotChecks, "checks", r.Checks},
		{SlotOGTable, "tag-table", tagTable{Rows: r.OGTags, Empty: "No Open Graph tags found"}},
		{SlotTwitterTable, "tag-table", tagTable{Rows: r.TwitterTags, Empty: "No Twitter Card tags found"}},
		{SlotCategories, "categories", r.Categories},
		{SlotRecommendations, "recommendations", r.Recommendations},
		{SlotTabRecommendation, "recommendations", r.Recommendations},
	}
	for _, h := range r.Headings {
		setInt(out, HeadingCountSlot(h.Level), h.Count)
		fragments = append(fragments, fragmentSlot{HeadingTagsSlot(h.Level), "headings", h})
	}

	for _, f := range fragments {
		markup, err := fragment(f.name, f.data)
		if err != nil {
			return err
		}
		out.SetHTML(f.slot, markup)
	}

	if r.ImagesMismatch {
		out.Show(SlotImagesMismatch)
	} else {
		out.Hide(SlotImagesMismatch)
	}

	out.Hide(SlotLoading)
	out.Hide(SlotError)
	out.Show(SlotResults)
	return nil
}

// RenderError switches to the error state. Results are hidden.
func RenderError(message string, out Slots) {
	out.SetText(SlotErrorMessage, message)
	out.Hide(SlotLoading)
	out.Hide(SlotResults)
	out.Show(SlotError)
}

// RenderInvalid marks the URL field invalid and clears loading and results.
// The error banner is left as it was.
func RenderInvalid(out Slots) {
	out.Hide(SlotLoading)
	out.Hide(SlotResults)
	out.Show(SlotURLInvalid)
}

// RenderLoading switches to the loading state
func RenderLoading(out Slots) {
	out.Hide(SlotURLInvalid)
	out.Hide(SlotError)
	out.Hide(SlotResults)
	out.Show(SlotLoading)
}

func setInt(out Slots, slot string, v int) {
	out.SetText(slot, strconv.Itoa(v))
}

type tagTable struct {
	Rows  []TagRow
	Empty string
}

func fragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// StatusClass is the Bootstrap contextual class of a severity
func StatusClass(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityGood:
		return "success"
	case analyzer.SeverityWarning:
		return "warning"
	default:
		return "danger"
	}
}

// StatusIcon is the Font Awesome icon of a severity
func StatusIcon(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityGood:
		return "check-circle"
	case analyzer.SeverityWarning:
		return "exclamation-triangle"
	default:
		return "times-circle"
	}
}

// StatusText is the badge text of a severity
func StatusText(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityGood:
		return "Passed"
	case analyzer.SeverityWarning:
		return "Warning"
	default:
		return "Failed"
	}
}
