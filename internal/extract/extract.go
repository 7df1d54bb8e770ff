// Package extract turns raw OCR fragments into card fields and applies
// the MTG normalization rules for collector numbers and set codes.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/ocr"
)

var (
	// digits, optional "/digits", optional trailing rarity letter: "044", "123/456C"
	collectorRE = regexp.MustCompile(`^\d+(?:/\d+)?[A-Za-z]?$`)
	// 2-5 letters with a "."-separated language suffix: "DMU.EN", "dmu.en"
	setCodeLangRE = regexp.MustCompile(`^[A-Za-z]{2,5}\.[A-Za-z]+$`)
	// bare 2-5 letter code; uppercase only, so ordinary card-text words don't match
	setCodeBareRE = regexp.MustCompile(`^[A-Z]{2,5}$`)

	leadingDigitsRE = regexp.MustCompile(`\d+`)
)

// Fields is the best-effort extraction result. Any field may be empty.
type Fields struct {
	Title           string
	CollectorNumber string
	SetCode         string
}

// FromFragments extracts card fields from OCR fragments. imageHeight is
// the pixel height of the source image; when unknown (<= 0) the maximum
// fragment bottom edge stands in for it. Extraction never fails: fields
// that match no fragment stay empty.
func FromFragments(fragments []ocr.Fragment, imageHeight int) Fields {
	var f Fields
	if len(fragments) == 0 {
		return f
	}

	ordered := make([]ocr.Fragment, len(fragments))
	copy(ordered, fragments)
	// Reading order: top to bottom, then left to right
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Bounds.Y != ordered[j].Bounds.Y {
			return ordered[i].Bounds.Y < ordered[j].Bounds.Y
		}
		return ordered[i].Bounds.X < ordered[j].Bounds.X
	})

	if imageHeight <= 0 {
		for _, fr := range ordered {
			if b := fr.Bounds.Bottom(); b > imageHeight {
				imageHeight = b
			}
		}
	}

	f.Title = titleCandidate(ordered, imageHeight)

	for _, fr := range ordered {
		if f.CollectorNumber != "" && f.SetCode != "" {
			break
		}
		for _, token := range strings.Fields(fr.Text) {
			if f.CollectorNumber == "" && collectorRE.MatchString(token) {
				f.CollectorNumber = NormalizeCollectorNumber(token)
			}
			if f.SetCode == "" && (setCodeLangRE.MatchString(token) || setCodeBareRE.MatchString(token)) {
				f.SetCode = NormalizeSetCode(token)
			}
		}
	}

	return f
}

// titleCandidate picks the fragment with the largest text height whose top
// edge lies in the upper quarter of the image.
func titleCandidate(ordered []ocr.Fragment, imageHeight int) string {
	best := -1
	bestHeight := 0
	for i, fr := range ordered {
		if fr.Bounds.Y > imageHeight/4 {
			continue
		}
		if fr.Bounds.Height > bestHeight {
			best = i
			bestHeight = fr.Bounds.Height
		}
	}
	if best < 0 {
		return ""
	}
	return strings.TrimSpace(ordered[best].Text)
}

// NormalizeCollectorNumber reduces a collector-number fragment to its
// leading digit run: "123/456C" -> "123", "044" -> "044". Idempotent.
// Returns "" when the part before any "/" contains no digits.
func NormalizeCollectorNumber(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return leadingDigitsRE.FindString(s)
}

// NormalizeSetCode strips everything from the first "." onward and
// upper-cases the rest: "dmu.en" -> "DMU", "WAR" -> "WAR". Idempotent.
func NormalizeSetCode(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strings.ToUpper(s)
}
