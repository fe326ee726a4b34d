package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Tracked Open Graph and Twitter Card keys. A tracked key that is missing from
// a tag map is scored as an error.
var (
	OGKeys      = []string{"og:title", "og:description", "og:image", "og:url", "og:type", "og:site_name"}
	TwitterKeys = []string{"twitter:card", "twitter:title", "twitter:description", "twitter:image"}
)

// Envelope is the response body of the analysis endpoint
type Envelope struct {
	Success bool    `json:"success"`
	Data    *Result `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Result is the analysis payload produced by the analysis service
type Result struct {
	URL             string           `json:"url" yaml:"url"`
	Domain          string           `json:"domain" yaml:"domain"`
	Title           Check            `json:"title" yaml:"title"`
	MetaDescription Check            `json:"meta_description" yaml:"meta_description"`
	Canonical       Check            `json:"canonical" yaml:"canonical"`
	Robots          Check            `json:"robots" yaml:"robots"`
	MetaKeywords    *Check           `json:"meta_keywords,omitempty" yaml:"meta_keywords,omitempty"`
	Headings        Headings         `json:"headings" yaml:"headings"`
	OGTags          map[string]Check `json:"og_tags" yaml:"og_tags"`
	TwitterTags     map[string]Check `json:"twitter_tags" yaml:"twitter_tags"`
	Images          Images           `json:"images" yaml:"images"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
}

// Check is a single extracted page attribute with its outcome
type Check struct {
	Content *string  `json:"content" yaml:"content"`
	Status  Severity `json:"status" yaml:"status"`
	Length  int      `json:"length,omitempty" yaml:"length,omitempty"`
}

// Present reports whether the check carries non-empty content
func (c Check) Present() bool {
	return c.Content != nil && strings.TrimSpace(*c.Content) != ""
}

// Text returns the content or an empty string
func (c Check) Text() string {
	if c.Content == nil {
		return ""
	}
	return *c.Content
}

type Headings struct {
	H1 []string `json:"h1" yaml:"h1"`
	H2 []string `json:"h2" yaml:"h2"`
	H3 []string `json:"h3" yaml:"h3"`
}

type Images struct {
	Total      int `json:"total" yaml:"total"`
	WithAlt    int `json:"with_alt" yaml:"with_alt"`
	WithoutAlt int `json:"without_alt" yaml:"without_alt"`
}

// Consistent reports whether the alt counts add up to the total
func (i Images) Consistent() bool {
	return i.WithAlt+i.WithoutAlt == i.Total
}

// Recommendation is either a plain string (legacy payloads) or a structured
// {title, description, severity} object.
type Recommendation struct {
	Text        string `json:"-" yaml:"text,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Severity    string `json:"severity,omitempty" yaml:"severity,omitempty"`
	structured  bool
}

// TextRecommendation builds a legacy string recommendation
func TextRecommendation(text string) Recommendation {
	return Recommendation{Text: text}
}

// StructuredRecommendation builds a structured recommendation
func StructuredRecommendation(title, description, severity string) Recommendation {
	return Recommendation{Title: title, Description: description, Severity: severity, structured: true}
}

// Structured reports whether the recommendation arrived in object form
func (r Recommendation) Structured() bool {
	return r.structured
}

// Message returns the human readable text of the recommendation
func (r Recommendation) Message() string {
	if !r.structured {
		return r.Text
	}
	switch {
	case r.Title != "" && r.Description != "":
		return r.Title + ": " + r.Description
	case r.Title != "":
		return r.Title
	default:
		return r.Description
	}
}

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Recommendation{}
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*r = TextRecommendation(text)
		return nil
	}

	var obj struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Severity    string `json:"severity"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("recommendation must be a string or an object: %w", err)
	}
	*r = StructuredRecommendation(obj.Title, obj.Description, obj.Severity)
	return nil
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	if !r.structured {
		return json.Marshal(r.Text)
	}
	return json.Marshal(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Severity    string `json:"severity,omitempty"`
	}{r.Title, r.Description, r.Severity})
}
