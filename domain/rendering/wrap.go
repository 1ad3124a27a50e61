package rendering

import "strings"

// SplitChunks breaks text into chunks of at most size runes without
// splitting a word. When a chunk boundary falls inside a word and the chunk
// has an earlier space, the chunk ends at that space and scanning resumes
// after it; a single word longer than size is cut at size. Spaces at chunk
// edges are dropped.
func SplitChunks(text string, size int) []string {
	runes := []rune(text)
	if size <= 0 {
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
		return nil
	}

	var chunks []string
	pos := 0
	for pos < len(runes) {
		for pos < len(runes) && runes[pos] == ' ' {
			pos++
		}
		if pos >= len(runes) {
			break
		}

		end := pos + size
		if end >= len(runes) {
			chunks = appendChunk(chunks, runes[pos:])
			break
		}

		if runes[end] != ' ' {
			if cut := lastSpace(runes[pos+1 : end]); cut >= 0 {
				end = pos + 1 + cut
			}
		}
		chunks = appendChunk(chunks, runes[pos:end])
		pos = end
	}
	return chunks
}

func appendChunk(chunks []string, r []rune) []string {
	if s := strings.TrimRight(string(r), " "); s != "" {
		return append(chunks, s)
	}
	return chunks
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}
