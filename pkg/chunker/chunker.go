package chunker

import "strings"

const (
	// ChunkSize is the target passage length in runes.
	ChunkSize = 1000
	// Overlap is the exact number of runes shared between consecutive chunks.
	Overlap = 100

	// boundaryWindow is how far back from the target cut we look for a
	// paragraph, sentence or word boundary before falling back to a hard cut.
	boundaryWindow = 200
)

// Split breaks text into overlapping chunks of approximately ChunkSize runes.
// Cuts prefer paragraph breaks, then sentence ends, then line breaks, then
// spaces within the trailing boundaryWindow; otherwise the cut is a hard one.
// Consecutive chunks share exactly Overlap runes, so joining them minus the
// overlap reproduces the input. The function is pure: the same text always
// yields the same chunks.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + ChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			return chunks
		}

		cut := boundaryCut(runes, end)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - Overlap
	}
}

// boundaryCut returns the best cut position in (end-boundaryWindow, end],
// preferring the latest paragraph break, then sentence end, then newline,
// then space. The separator stays with the preceding chunk.
func boundaryCut(runes []rune, end int) int {
	lo := end - boundaryWindow

	for i := end; i > lo+1; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	for i := end; i > lo+1; i-- {
		if isSentenceEnd(runes[i-2]) && isWhitespace(runes[i-1]) {
			return i
		}
	}
	for i := end; i > lo; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > lo; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
