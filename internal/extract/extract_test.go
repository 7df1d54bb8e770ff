package extract

import (
	"testing"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/ocr"
	"github.com/Samtronic789/Card-Scanner-MTG/pkg/geometry"
)

func TestNormalizeCollectorNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "7", "7"},
		{"leading zeros kept", "044", "044"},
		{"slash total", "7/180", "7"},
		{"slash and rarity", "123/456C", "123"},
		{"rarity letter only", "201U", "201"},
		{"whitespace", "  37/264 ", "37"},
		{"no digits", "abc", ""},
		{"no digits before slash", "x/180", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCollectorNumber(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeCollectorNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Running the result through again must not change it
			if again := NormalizeCollectorNumber(got); again != got {
				t.Errorf("not idempotent: %q -> %q -> %q", tt.input, got, again)
			}
		})
	}
}

func TestNormalizeSetCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase with language", "dmu.en", "DMU"},
		{"uppercase with language", "DMU.EN", "DMU"},
		{"bare uppercase", "WAR", "WAR"},
		{"bare lowercase", "war", "WAR"},
		{"two dots", "neo.en.x", "NEO"},
		{"whitespace", " mh2.jp ", "MH2"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSetCode(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSetCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeSetCode(got); again != got {
				t.Errorf("not idempotent: %q -> %q -> %q", tt.input, got, again)
			}
		})
	}
}

func frag(text string, x, y, w, h int) ocr.Fragment {
	return ocr.Fragment{
		Text:       text,
		Bounds:     geometry.RectInt{X: x, Y: y, Width: w, Height: h},
		Confidence: 90,
	}
}

func TestFromFragmentsTypicalCard(t *testing.T) {
	// A typical card layout: big title at the top, type line in the
	// middle, collector number and set code at the bottom.
	fragments := []ocr.Fragment{
		frag("123/456C DMU.EN", 40, 960, 200, 18),
		frag("Lightning Bolt", 50, 40, 400, 48),
		frag("Instant", 50, 520, 180, 24),
	}

	got := FromFragments(fragments, 1000)
	if got.Title != "Lightning Bolt" {
		t.Errorf("Title = %q, want %q", got.Title, "Lightning Bolt")
	}
	if got.CollectorNumber != "123" {
		t.Errorf("CollectorNumber = %q, want %q", got.CollectorNumber, "123")
	}
	if got.SetCode != "DMU" {
		t.Errorf("SetCode = %q, want %q", got.SetCode, "DMU")
	}
}

func TestFromFragmentsTitleIsLargestTopFragment(t *testing.T) {
	// The mana cost sits on the same line as the title but is smaller;
	// flavor text lower down can be tall but out of the top quarter.
	fragments := []ocr.Fragment{
		frag("3RR", 420, 42, 60, 20),
		frag("Shivan Dragon", 50, 40, 350, 44),
		frag("Tall flavor text block", 50, 700, 400, 60),
	}

	got := FromFragments(fragments, 1000)
	if got.Title != "Shivan Dragon" {
		t.Errorf("Title = %q, want %q", got.Title, "Shivan Dragon")
	}
}

func TestFromFragmentsReadingOrder(t *testing.T) {
	// Two collector-looking tokens; the one higher on the card wins.
	fragments := []ocr.Fragment{
		frag("200/300", 40, 900, 120, 16),
		frag("100/300", 40, 100, 120, 16),
	}

	got := FromFragments(fragments, 1000)
	if got.CollectorNumber != "100" {
		t.Errorf("CollectorNumber = %q, want %q (reading order)", got.CollectorNumber, "100")
	}
}

func TestFromFragmentsBareSetCodeCaseSensitive(t *testing.T) {
	// Lowercase words in card text must not be mistaken for set codes;
	// only an all-uppercase token qualifies without a language suffix.
	fragments := []ocr.Fragment{
		frag("when this creature dies", 50, 600, 300, 20),
		frag("DMU", 40, 960, 60, 16),
	}

	got := FromFragments(fragments, 1000)
	if got.SetCode != "DMU" {
		t.Errorf("SetCode = %q, want %q", got.SetCode, "DMU")
	}
}

func TestFromFragmentsEmpty(t *testing.T) {
	got := FromFragments(nil, 1000)
	if got.Title != "" || got.CollectorNumber != "" || got.SetCode != "" {
		t.Errorf("expected empty fields, got %+v", got)
	}
}

func TestFromFragmentsHeightFallback(t *testing.T) {
	// With no image height the bottom-most fragment edge stands in, so
	// the top fragment still counts as being in the upper quarter.
	fragments := []ocr.Fragment{
		frag("Counterspell", 50, 10, 300, 40),
		frag("044 MMQ.EN", 40, 950, 200, 18),
	}

	got := FromFragments(fragments, 0)
	if got.Title != "Counterspell" {
		t.Errorf("Title = %q, want %q", got.Title, "Counterspell")
	}
	if got.CollectorNumber != "044" {
		t.Errorf("CollectorNumber = %q, want %q", got.CollectorNumber, "044")
	}
	if got.SetCode != "MMQ" {
		t.Errorf("SetCode = %q, want %q", got.SetCode, "MMQ")
	}
}

func TestFromFragmentsNoMatches(t *testing.T) {
	// Fragments below the top quarter and with no field-shaped tokens
	// leave everything empty rather than guessing.
	fragments := []ocr.Fragment{
		frag("some ordinary text", 50, 600, 300, 20),
	}

	got := FromFragments(fragments, 1000)
	if got.Title != "" {
		t.Errorf("Title = %q, want empty", got.Title)
	}
	if got.CollectorNumber != "" {
		t.Errorf("CollectorNumber = %q, want empty", got.CollectorNumber)
	}
	if got.SetCode != "" {
		t.Errorf("SetCode = %q, want empty", got.SetCode)
	}
}
