package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jayozer/SeoTagInspector/analyzer"
)

// Mode selects how the overall score is computed
type Mode string

const (
	// ModeFlat tallies every individual check, ignoring category boundaries
	ModeFlat Mode = "flat"
	// ModeWeighted blends per-category point allocations 40/30/30
	ModeWeighted Mode = "weighted"
)

// DefaultMode is used when no mode is configured
const DefaultMode = ModeWeighted

// ParseMode parses a configured mode. An empty string selects DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeFlat:
		return ModeFlat, nil
	case ModeWeighted:
		return ModeWeighted, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q (expected flat or weighted)", s)
}

// Tags tracked by the weighted social allocation
var weightedSocialTags = []string{"og:title", "og:description", "og:image", "twitter:card", "twitter:title", "twitter:image"}

// Category weights of the weighted mode, in percent
const (
	weightBasicSEO  = 40
	weightSocial    = 30
	weightStructure = 30
)

// Overall is the composed score of one analysis
type Overall struct {
	Score  int           `json:"score" yaml:"score"`
	Label  string        `json:"label" yaml:"label"`
	Mode   Mode          `json:"mode" yaml:"mode"`
	Counts CategoryScore `json:"counts" yaml:"counts"`
}

// Composer computes the overall score with a single, fixed mode
type Composer struct {
	mode Mode
}

// NewComposer returns a composer fixed to mode. Anything but flat is weighted.
func NewComposer(mode Mode) Composer {
	if mode != ModeFlat {
		mode = ModeWeighted
	}
	return Composer{mode: mode}
}

func (c Composer) Mode() Mode {
	return c.mode
}

// Compose scores res. Counts is always the flat tally of individual checks.
func (c Composer) Compose(res *analyzer.Result) Overall {
	counts := FlatTally(res)

	score := counts.Score
	if c.mode == ModeWeighted {
		score = Weighted(res).Score
	}

	return Overall{
		Score:  score,
		Label:  Label(score),
		Mode:   c.mode,
		Counts: counts,
	}
}

// FlatSeverities lists title, description, canonical, robots, the H1 rule and
// every social slot.
func FlatSeverities(res *analyzer.Result) []analyzer.Severity {
	out := []analyzer.Severity{
		res.Title.Status,
		res.MetaDescription.Status,
		res.Canonical.Status,
		res.Robots.Status,
		H1Status(len(res.Headings.H1)),
	}
	return append(out, SocialSeverities(res)...)
}

// FlatTally is the tally of FlatSeverities
func FlatTally(res *analyzer.Result) CategoryScore {
	return Tally(FlatSeverities(res)...)
}

// Breakdown holds the weighted-mode category percentages before blending
type Breakdown struct {
	BasicSEO  float64 `json:"basic_seo" yaml:"basic_seo"`
	Social    float64 `json:"social" yaml:"social"`
	Structure float64 `json:"structure" yaml:"structure"`
	Score     int     `json:"score" yaml:"score"`
}

// Weighted computes round(basic*0.4 + social*0.3 + structure*0.3)
func Weighted(res *analyzer.Result) Breakdown {
	b := Breakdown{
		BasicSEO:  basicSEOPoints(res) / 4 * 100,
		Social:    socialPoints(res) / float64(len(weightedSocialTags)) * 100,
		Structure: structurePoints(res) / 3 * 100,
	}
	blended := (weightBasicSEO*b.BasicSEO + weightSocial*b.Social + weightStructure*b.Structure) / 100
	b.Score = int(math.Round(blended))
	return b
}

func basicSEOPoints(res *analyzer.Result) float64 {
	points := 0.0
	for _, c := range []analyzer.Check{res.Title, res.MetaDescription, res.Canonical} {
		if c.Present() {
			points++
		}
	}
	if len(res.Headings.H1) == 1 {
		points++
	}
	return math.Min(points, 4)
}

func socialPoints(res *analyzer.Result) float64 {
	points := 0.0
	for _, key := range weightedSocialTags {
		tags := res.OGTags
		if strings.HasPrefix(key, "twitter:") {
			tags = res.TwitterTags
		}
		if tag, ok := tags[key]; ok && tag.Present() {
			points++
		}
	}
	return points
}

func structurePoints(res *analyzer.Result) float64 {
	points := 0.0
	if len(res.Headings.H1) >= 1 {
		points++
	}
	if len(res.Headings.H2) >= 1 {
		points++
	}
	return points + AltTextTier(res.Images)
}

// AltTextTier credits alt-text coverage: ratio >= 0.8 earns 1, >= 0.5 earns
// 0.5, anything lower earns 0. A page without images earns full credit.
func AltTextTier(images analyzer.Images) float64 {
	if images.Total <= 0 {
		return 1
	}
	ratio := float64(images.WithAlt) / float64(images.Total)
	switch {
	case ratio >= 0.8:
		return 1
	case ratio >= 0.5:
		return 0.5
	default:
		return 0
	}
}

// Label maps a score to its qualitative rating
func Label(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Average"
	default:
		return "Poor"
	}
}

// Class maps a score to the CSS class of its rating
func Class(score int) string {
	return "score-" + strings.ToLower(Label(score))
}
