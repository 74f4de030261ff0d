/*
Package dictionary reads word lists into an index.

Two on-disk layouts are understood. Plain text holds one word per line; lines are trimmed and
lower-cased and blank lines are skipped. Binary chunks (dict_0001.bin, dict_0002.bin, ...) start
with a little-endian int32 word count followed by, for every word, a uint16 byte length, the word
bytes and a uint16 rank. Ranks are read and validated but not stored: the index only holds words.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/charmbracelet/log"
)

// Inserter receives normalized words. *index.PrefixIndex satisfies it.
type Inserter interface {
	Insert(word string)
}

// Stats describes one load.
type Stats struct {
	Lines    int // lines or entries read
	Inserted int // words handed to the Inserter
	Skipped  int // blank, invalid UTF-8, or normalized to nothing
	Files    int
}

// Add folds o into s.
func (s *Stats) Add(o Stats) {
	s.Lines += o.Lines
	s.Inserted += o.Inserted
	s.Skipped += o.Skipped
	s.Files += o.Files
}

// insertWord normalizes raw and hands it to ix, counting it in stats either way.
// Input that is not valid UTF-8 is skipped, never stored with replacement runes.
func insertWord(ix Inserter, raw string, stats *Stats) {
	if !utf8.ValidString(raw) {
		log.Warnf("Skipping entry %d: invalid UTF-8 %q", stats.Lines, raw)
		stats.Skipped++
		return
	}
	word := utils.NormalizeWord(raw)
	if word == "" {
		stats.Skipped++
		return
	}
	ix.Insert(word)
	stats.Inserted++
}

// maxLineSize bounds a single text line.
const maxLineSize = 1 << 20

// LoadText inserts every non-blank line of r into ix.
func LoadText(r io.Reader, ix Inserter) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		stats.Lines++
		insertWord(ix, scanner.Text(), &stats)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read word list at line %d: %w", stats.Lines+1, err)
	}
	return stats, nil
}

// LoadChunk inserts every entry of a binary chunk stream into ix.
func LoadChunk(r io.Reader, ix Inserter) (Stats, error) {
	var stats Stats
	reader := bufio.NewReader(r)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return stats, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 {
		return stats, fmt.Errorf("invalid word count in chunk header: %d", totalEntries)
	}

	for stats.Lines < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			return stats, fmt.Errorf("failed to read word length of entry %d: %w", stats.Lines, err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return stats, fmt.Errorf("failed to read word of entry %d: %w", stats.Lines, err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return stats, fmt.Errorf("failed to read rank of entry %d: %w", stats.Lines, err)
		}

		stats.Lines++
		insertWord(ix, string(wordBytes), &stats)
	}
	return stats, nil
}

// WriteChunk writes words in the binary chunk layout, ranking them by position (first word is rank 1).
func WriteChunk(w io.Writer, words []string) error {
	if len(words) > maxChunkWords {
		return fmt.Errorf("too many words for one chunk: %d (max %d)", len(words), maxChunkWords)
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}

	ranks := utils.CreateRankList(len(words))
	for i, word := range words {
		if len(word) > 0xFFFF {
			return fmt.Errorf("word %d is too long: %d bytes", i, len(word))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, ranks[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadFile loads a single word list, picking the reader by its detected format.
func LoadFile(path string, ix Inserter) (Stats, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return Stats{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var stats Stats
	switch format {
	case FormatText:
		stats, err = LoadText(file, ix)
	case FormatChunk:
		stats, err = LoadChunk(file, ix)
	default:
		err = fmt.Errorf("unsupported format for %s", path)
	}
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	stats.Files = 1
	log.Debugf("Loaded %s: %d words (%d skipped)", filepath.Base(path), stats.Inserted, stats.Skipped)
	return stats, nil
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID       int
	Filename string
}

// ListChunks returns the dict_NNNN.bin files in dir sorted by chunk id.
func ListChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		id, ok := chunkID(filepath.Base(file))
		if !ok {
			log.Warnf("Ignoring oddly named chunk file %s", file)
			continue
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file})
	}
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// chunkID extracts 1 from dict_0001.bin.
func chunkID(basename string) (int, bool) {
	if !strings.HasPrefix(basename, "dict_") || !strings.HasSuffix(basename, ".bin") {
		return 0, false
	}
	idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
	id, err := strconv.Atoi(idStr)
	return id, err == nil
}

// ChunkName returns the file name used for chunk id.
func ChunkName(id int) string {
	return fmt.Sprintf("dict_%04d.bin", id)
}

// ErrNoWordLists is returned by LoadDir when dir holds nothing loadable.
var ErrNoWordLists = errors.New("no word lists found")

// LoadDir loads every chunk in dir in id order, then every .txt file in name order.
// A file that fails to load is logged and skipped; the error is returned only if nothing loaded.
func LoadDir(dir string, ix Inserter) (Stats, error) {
	chunks, err := ListChunks(dir)
	if err != nil {
		return Stats{}, err
	}
	texts, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to scan for text files: %w", err)
	}
	sort.Strings(texts)

	paths := make([]string, 0, len(chunks)+len(texts))
	for _, c := range chunks {
		paths = append(paths, c.Filename)
	}
	paths = append(paths, texts...)
	if len(paths) == 0 {
		return Stats{}, fmt.Errorf("%w in %s", ErrNoWordLists, dir)
	}

	var total Stats
	var lastErr error
	for _, path := range paths {
		stats, err := LoadFile(path, ix)
		total.Add(stats)
		if err != nil {
			log.Errorf("Failed to load %s: %v", path, err)
			lastErr = err
		}
	}
	if total.Files == 0 {
		return total, lastErr
	}
	return total, nil
}

// Load loads path, which may be a single file or a directory of word lists.
func Load(path string, ix Inserter) (Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path, ix)
	}
	return LoadFile(path, ix)
}
