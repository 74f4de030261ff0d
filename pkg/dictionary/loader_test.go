package dictionary

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/index"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// recorder keeps every inserted word in order.
type recorder struct {
	words []string
}

func (r *recorder) Insert(word string) {
	r.words = append(r.words, word)
}

func TestLoadText(t *testing.T) {
	input := "Cat\n  car  \n\n\tCART\r\n   \ndog"
	rec := &recorder{}

	stats, err := LoadText(strings.NewReader(input), rec)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}

	expected := []string{"cat", "car", "cart", "dog"}
	if !slices.Equal(rec.words, expected) {
		t.Errorf("expected %v, got %v", expected, rec.words)
	}
	if stats.Lines != 6 || stats.Inserted != 4 || stats.Skipped != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestLoadTextIntoIndex(t *testing.T) {
	ix := index.New()
	if _, err := LoadText(strings.NewReader("cat\ncar\ncart\ndog\nCAT\n"), ix); err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if ix.Len() != 4 {
		t.Errorf("expected 4 distinct words, got %d", ix.Len())
	}
	if got := ix.WordsWithPrefix("ca"); !slices.Equal(got, []string{"car", "cart", "cat"}) {
		t.Errorf("unexpected completions %v", got)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	words := []string{"the", "of", "and", "über", "naïve"}
	var buf bytes.Buffer
	if err := WriteChunk(&buf, words); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}

	rec := &recorder{}
	stats, err := LoadChunk(&buf, rec)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if !slices.Equal(rec.words, words) {
		t.Errorf("expected %v, got %v", words, rec.words)
	}
	if stats.Inserted != len(words) {
		t.Errorf("expected %d inserted, got %d", len(words), stats.Inserted)
	}
}

func TestLoadSkipsInvalidUTF8(t *testing.T) {
	// Latin-1 bytes, as found in old word lists
	latin1 := []string{"caf\xe9", "caf\xe8", "café", "na\xefve"}

	var buf bytes.Buffer
	if err := WriteChunk(&buf, latin1); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	ix := index.New()
	stats, err := LoadChunk(&buf, ix)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if stats.Lines != 4 || stats.Inserted != 1 || stats.Skipped != 3 {
		t.Errorf("unexpected chunk stats %+v", stats)
	}
	if got := ix.WordsWithPrefix(""); !slices.Equal(got, []string{"café"}) {
		t.Errorf("expected only the valid word, got %q", got)
	}

	rec := &recorder{}
	stats, err = LoadText(strings.NewReader("caf\xe9\nok\ncaf\xe8\n"), rec)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if stats.Inserted != 1 || stats.Skipped != 2 || !slices.Equal(rec.words, []string{"ok"}) {
		t.Errorf("unexpected text load %+v %q", stats, rec.words)
	}
}

func TestLoadChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, []string{"alpha", "beta"}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-3]

	rec := &recorder{}
	_, err := LoadChunk(bytes.NewReader(data), rec)
	if err == nil {
		t.Fatalf("expected error for truncated chunk")
	}
	if !slices.Equal(rec.words, []string{"alpha"}) {
		t.Errorf("entries before the cut should load, got %v", rec.words)
	}
}

func TestLoadChunkEmptyStream(t *testing.T) {
	if _, err := LoadChunk(bytes.NewReader(nil), &recorder{}); err == nil {
		t.Errorf("expected header error")
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func chunkBytes(t *testing.T, words ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteChunk(&buf, words); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ChunkName(2)), chunkBytes(t, "second"))
	writeFile(t, filepath.Join(dir, ChunkName(1)), chunkBytes(t, "first"))
	writeFile(t, filepath.Join(dir, "extra.txt"), []byte("Third\n"))
	writeFile(t, filepath.Join(dir, "notes.md"), []byte("ignored\n"))

	rec := &recorder{}
	stats, err := LoadDir(dir, rec)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !slices.Equal(rec.words, []string{"first", "second", "third"}) {
		t.Errorf("unexpected load order %v", rec.words)
	}
	if stats.Files != 3 {
		t.Errorf("expected 3 files, got %d", stats.Files)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir(), &recorder{})
	if !errors.Is(err, ErrNoWordLists) {
		t.Errorf("expected ErrNoWordLists, got %v", err)
	}
}

func TestLoadDirSkipsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ChunkName(1)), []byte{0x01}) // too small for a header
	writeFile(t, filepath.Join(dir, "words.txt"), []byte("ok\n"))

	rec := &recorder{}
	stats, err := LoadDir(dir, rec)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if stats.Files != 1 || !slices.Equal(rec.words, []string{"ok"}) {
		t.Errorf("expected only the text file to load, got %+v %v", stats, rec.words)
	}
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	writeFile(t, path, []byte("one\ntwo\n"))

	rec := &recorder{}
	if _, err := Load(path, rec); err != nil {
		t.Fatalf("Load file: %v", err)
	}
	if _, err := Load(dir, rec); err != nil {
		t.Fatalf("Load dir: %v", err)
	}
	if len(rec.words) != 4 {
		t.Errorf("expected 4 inserts, got %v", rec.words)
	}
	if _, err := Load(filepath.Join(dir, "missing.txt"), rec); err == nil {
		t.Errorf("expected error for missing path")
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	chunk := filepath.Join(dir, ChunkName(1))
	text := filepath.Join(dir, "words.txt")
	bare := filepath.Join(dir, "words")
	binary := filepath.Join(dir, "garbage.txt")
	writeFile(t, chunk, chunkBytes(t, "a"))
	writeFile(t, text, []byte("a\n"))
	writeFile(t, bare, []byte("a\n"))
	writeFile(t, binary, []byte{0xff, 0xfe, 0xfd, 0x00, 0xff, 0xfe, 0xfd, 0xfc})

	testCases := []struct {
		path     string
		expected FileFormat
		wantErr  bool
	}{
		{chunk, FormatChunk, false},
		{text, FormatText, false},
		{bare, FormatText, false},
		{binary, FormatUnknown, true},
		{filepath.Join(dir, "nope.bin"), FormatUnknown, true},
	}
	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			got, err := DetectFileFormat(tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), "Dictionary") {
				t.Errorf("error should name the expected format: %v", err)
			}
			if got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestExportChunks(t *testing.T) {
	dir := t.TempDir()
	words := []string{"a", "b", "c", "d", "e"}

	files, err := ExportChunks(dir, words, 2)
	if err != nil {
		t.Fatalf("ExportChunks: %v", err)
	}
	if files != 3 {
		t.Errorf("expected 3 files, got %d", files)
	}

	chunks, err := ListChunks(dir)
	if err != nil {
		t.Fatalf("ListChunks: %v", err)
	}
	if len(chunks) != 3 || chunks[0].ID != 1 || chunks[2].ID != 3 {
		t.Errorf("unexpected chunks %+v", chunks)
	}

	ix := index.New()
	if _, err := LoadDir(dir, ix); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if got := ix.WordsWithPrefix(""); !slices.Equal(got, words) {
		t.Errorf("expected %v, got %v", words, got)
	}

	if _, err := ExportChunks(dir, words, 0); err == nil {
		t.Errorf("expected error for zero chunk size")
	}
}
