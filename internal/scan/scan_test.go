package scan

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/card"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/ocr"
	"github.com/Samtronic789/Card-Scanner-MTG/pkg/geometry"
)

// stubRecognizer returns canned fragments, or an error, per call.
type stubRecognizer struct {
	fragments []ocr.Fragment
	err       error
	calls     int
}

func (s *stubRecognizer) Recognize(path string) ([]ocr.Fragment, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fragments, nil
}

func (s *stubRecognizer) Close() error { return nil }

// writePNG creates a small valid PNG at path.
func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 10, 14))); err != nil {
		t.Fatal(err)
	}
}

func TestEnumerate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "C.JPEG", "notes.txt", "d.webp", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := Enumerate(dir)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	// Supported extensions only, case-insensitive, directories skipped,
	// in sorted order.
	want := []string{"C.JPEG", "a.jpg", "b.png", "d.webp"}
	if len(names) != len(want) {
		t.Fatalf("Enumerate = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Enumerate[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestEnumerateMissingDir(t *testing.T) {
	if _, err := Enumerate(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing folder")
	}
}

func TestRunWithoutRecognizer(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writePNG(t, filepath.Join(dir, name))
	}

	var records []card.Record
	r := &Runner{
		OnRecord: func(rec card.Record) { records = append(records, rec) },
	}

	sum, err := r.Run(dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 3 || sum.Pending != 3 || sum.Succeeded != 0 || sum.Failed != 0 {
		t.Errorf("Summary = %+v, want 3 pending", sum)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for _, rec := range records {
		if rec.Status != card.StatusPending {
			t.Errorf("%s status = %v, want pending", rec.Filename, rec.Status)
		}
		if rec.Title != "" || rec.CollectorNumber != "" || rec.SetCode != "" {
			t.Errorf("%s has non-empty fields: %+v", rec.Filename, rec)
		}
	}
}

func TestRunWithRecognizer(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))

	stub := &stubRecognizer{
		fragments: []ocr.Fragment{
			{Text: "Lightning Bolt", Bounds: geometry.RectInt{X: 5, Y: 0, Width: 8, Height: 3}, Confidence: 92},
			{Text: "123/456C DMU.EN", Bounds: geometry.RectInt{X: 1, Y: 12, Width: 8, Height: 1}, Confidence: 80},
		},
	}

	var records []card.Record
	var progress []Progress
	r := &Runner{
		Recognizer: stub,
		OnRecord:   func(rec card.Record) { records = append(records, rec) },
		OnProgress: func(p Progress) { progress = append(progress, p) },
	}

	sum, err := r.Run(dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Succeeded != 1 || sum.Failed != 0 || sum.Pending != 0 {
		t.Errorf("Summary = %+v, want 1 succeeded", sum)
	}
	if sum.ConfMean != 86 {
		t.Errorf("ConfMean = %v, want 86", sum.ConfMean)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Status != card.StatusOCRSucceeded {
		t.Errorf("Status = %v, want ocrSucceeded", rec.Status)
	}
	if rec.Title != "Lightning Bolt" || rec.CollectorNumber != "123" || rec.SetCode != "DMU" {
		t.Errorf("fields = %+v", rec)
	}
	if len(rec.RawText) != 2 {
		t.Errorf("RawText = %v, want both fragment lines", rec.RawText)
	}

	if len(progress) != 1 || progress[0].Done != 1 || progress[0].Total != 1 {
		t.Errorf("progress = %+v", progress)
	}
}

func TestRunCorruptImageFailsRecordNotPass(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	// Not a decodable image, but a supported extension
	if err := os.WriteFile(filepath.Join(dir, "b.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	stub := &stubRecognizer{
		fragments: []ocr.Fragment{
			{Text: "Giant Growth", Bounds: geometry.RectInt{Y: 0, Width: 8, Height: 3}, Confidence: 90},
		},
	}

	var records []card.Record
	r := &Runner{
		Recognizer: stub,
		OnRecord:   func(rec card.Record) { records = append(records, rec) },
	}

	sum, err := r.Run(dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Succeeded != 1 || sum.Failed != 1 {
		t.Errorf("Summary = %+v, want 1 succeeded 1 failed", sum)
	}

	if records[0].Status != card.StatusOCRSucceeded {
		t.Errorf("a.png status = %v", records[0].Status)
	}
	if records[1].Status != card.StatusOCRFailed {
		t.Errorf("b.png status = %v", records[1].Status)
	}
	if len(records[1].RawText) == 0 {
		t.Error("failed record carries no error detail")
	}
	// The corrupt image never reaches the OCR engine
	if stub.calls != 1 {
		t.Errorf("recognizer called %d times, want 1", stub.calls)
	}
}

func TestRunRecognizerErrorFailsRecord(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))

	r := &Runner{Recognizer: &stubRecognizer{err: errors.New("engine crashed")}}
	sum, err := r.Run(dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Failed != 1 {
		t.Errorf("Summary = %+v, want 1 failed", sum)
	}
}

func TestStopAtImageBoundary(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		writePNG(t, filepath.Join(dir, name))
	}

	var records []card.Record
	r := &Runner{}
	r.OnRecord = func(rec card.Record) {
		records = append(records, rec)
		if len(records) == 2 {
			r.Stop()
		}
	}

	sum, err := r.Run(dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sum.Stopped {
		t.Error("Summary.Stopped = false, want true")
	}
	// The image in flight when Stop was called is finished; later ones
	// are never started.
	if len(records) != 2 {
		t.Errorf("got %d records after stop, want 2", len(records))
	}
	if sum.Total != 2 {
		t.Errorf("Summary.Total = %d, want 2", sum.Total)
	}
}
