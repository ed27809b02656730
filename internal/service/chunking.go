package service

import (
	"strings"
)

// SplitConfig controls windowed chunking of extracted document text.
type SplitConfig struct {
	// Size is the window length in runes.
	Size int
	// Overlap is how many runes consecutive windows share.
	Overlap int
	// MinChunkChars drops windows shorter than this after splitting.
	MinChunkChars int
}

// DefaultSplitConfig provides the chunking defaults used by ingestion.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		Size:          1200,
		Overlap:       200,
		MinChunkChars: 80,
	}
}

// Split normalizes text and slices it into overlapping windows. Whitespace
// runs are collapsed to single spaces before windowing. Windows advance by
// size-overlap runes; the final window may be shorter than size. Windows
// below MinChunkChars are dropped, so text shorter than the minimum yields
// an empty slice. Split is pure and assigns no indices: the returned order
// is the chunk index order.
func Split(text string, cfg SplitConfig) []string {
	if cfg.Size <= 0 {
		cfg = DefaultSplitConfig()
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}

	stride := cfg.Size - cfg.Overlap
	if stride <= 0 {
		// overlap must stay below size or the window never advances
		stride = cfg.Size
	}

	clean := strings.Join(strings.Fields(text), " ")
	if clean == "" {
		return nil
	}

	runes := []rune(clean)
	chunks := make([]string, 0, len(runes)/stride+1)
	for start := 0; start < len(runes); start += stride {
		end := start + cfg.Size
		if end > len(runes) {
			end = len(runes)
		}
		if end-start >= cfg.MinChunkChars {
			chunks = append(chunks, string(runes[start:end]))
		}
	}

	return chunks
}
