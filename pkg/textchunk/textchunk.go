// Package textchunk splits long markdown into roughly equal, line-aligned
// pieces so each piece fits an LLM context window. Chunking is a best-effort
// optimization: callers fall back to the whole text as a single chunk when
// anything goes wrong.
package textchunk

import "strings"

// Chunk splits text into at most numChunks line-aligned slices. The final
// slice absorbs the remainder, so it may be larger than the others. Empty
// slices are dropped. For numChunks <= 1 the whole text is returned as one
// chunk; empty input yields nil.
func Chunk(text string, numChunks int) []string {
	if text == "" {
		return nil
	}
	if numChunks <= 1 {
		return []string{text}
	}

	lines := strings.Split(text, "\n")
	perChunk := len(lines) / numChunks
	if perChunk < 1 {
		perChunk = 1
	}

	chunks := make([]string, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * perChunk
		if start >= len(lines) {
			break
		}
		end := start + perChunk
		if i == numChunks-1 || end > len(lines) {
			end = len(lines)
		}
		piece := strings.Join(lines[start:end], "\n")
		if piece != "" {
			chunks = append(chunks, piece)
		}
	}
	return chunks
}
