// Package scoring turns an analysis payload into category scores, an overall
// score with a qualitative label, and recommendation severities. It has no
// dependency on any presentation layer.
package scoring

import (
	"sort"

	"github.com/jayozer/SeoTagInspector/analyzer"
)

// StatusOf returns the severity of a check. A nil check is an error.
func StatusOf(check *analyzer.Check) analyzer.Severity {
	if check == nil {
		return analyzer.SeverityError
	}
	return check.Status
}

// TagStatus returns the severity of a tag. A key missing from the map is an error.
func TagStatus(tags map[string]analyzer.Check, key string) analyzer.Severity {
	tag, ok := tags[key]
	if !ok {
		return analyzer.SeverityError
	}
	return tag.Status
}

// H1Status passes exactly one H1. No H1 is an error and several warn.
func H1Status(count int) analyzer.Severity {
	switch {
	case count == 1:
		return analyzer.SeverityGood
	case count == 0:
		return analyzer.SeverityError
	default:
		return analyzer.SeverityWarning
	}
}

// SubheadingStatus grades H2 and H3 counts. Any heading passes, none warns.
func SubheadingStatus(count int) analyzer.Severity {
	if count > 0 {
		return analyzer.SeverityGood
	}
	return analyzer.SeverityWarning
}

// Slot is one named social tag with its severity
type Slot struct {
	Key      string
	Severity analyzer.Severity
	Present  bool
}

// SocialSlots lists every tracked og/twitter key followed by any extra keys in
// the payload, sorted. Missing tracked keys are reported as errors.
func SocialSlots(res *analyzer.Result) []Slot {
	slots := make([]Slot, 0, len(analyzer.OGKeys)+len(analyzer.TwitterKeys))
	slots = appendTagSlots(slots, res.OGTags, analyzer.OGKeys)
	slots = appendTagSlots(slots, res.TwitterTags, analyzer.TwitterKeys)
	return slots
}

func appendTagSlots(slots []Slot, tags map[string]analyzer.Check, tracked []string) []Slot {
	seen := make(map[string]bool, len(tracked))
	for _, key := range tracked {
		seen[key] = true
		tag, ok := tags[key]
		slots = append(slots, Slot{
			Key:      key,
			Severity: TagStatus(tags, key),
			Present:  ok && tag.Present(),
		})
	}

	extra := make([]string, 0)
	for key := range tags {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	for _, key := range extra {
		tag := tags[key]
		slots = append(slots, Slot{Key: key, Severity: tag.Status, Present: tag.Present()})
	}
	return slots
}
