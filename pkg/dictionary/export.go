package dictionary

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/charmbracelet/log"
)

// DefaultChunkSize is the number of words per exported chunk.
const DefaultChunkSize = 10000

// ExportChunks writes words into dir as dict_0001.bin, dict_0002.bin, ... holding at most
// chunkSize words each, and returns the number of files written.
func ExportChunks(dir string, words []string, chunkSize int) (int, error) {
	if chunkSize < 1 || chunkSize > maxChunkWords {
		return 0, fmt.Errorf("invalid chunk size %d", chunkSize)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	files := 0
	for start := 0; start < len(words); start += chunkSize {
		end := min(start+chunkSize, len(words))
		path := filepath.Join(dir, ChunkName(files+1))

		file, err := os.Create(path)
		if err != nil {
			return files, fmt.Errorf("failed to create %s: %w", path, err)
		}
		err = WriteChunk(file, words[start:end])
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return files, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files++
		log.Debugf("Exported %s: %d words", filepath.Base(path), end-start)
	}
	return files, nil
}
