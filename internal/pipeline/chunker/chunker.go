package chunker

import (
	"strings"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

// MinChunkChars is the noise floor: segments shorter than this after
// accumulation are dropped.
const MinChunkChars = 20

// Split cuts text into sentence-aligned chunks of at most maxSize
// characters. Sentences are accumulated greedily; a sentence is never
// split across chunks, so a single sentence longer than maxSize becomes
// its own oversized chunk. Pure function: identical input yields
// identical output.
func Split(text string, maxSize int) []docmodel.Chunk {
	if maxSize <= 0 {
		maxSize = 500
	}

	var chunks []docmodel.Chunk
	var buf strings.Builder

	flush := func() {
		content := strings.TrimSpace(buf.String())
		buf.Reset()
		if len(content) < MinChunkChars {
			return
		}
		chunks = append(chunks, docmodel.Chunk{Index: len(chunks), Text: content})
	}

	for _, sentence := range sentences(text) {
		if buf.Len() > 0 && buf.Len()+1+len(sentence) > maxSize {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(sentence)
	}
	flush()

	return chunks
}

// sentences splits on sentence terminators and newlines, keeping the
// terminator attached to its sentence.
func sentences(text string) []string {
	var out []string
	var current strings.Builder

	cut := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s != "" {
			out = append(out, s)
		}
	}

	for _, r := range text {
		switch r {
		case '\n':
			cut()
		case '.', '!', '?':
			current.WriteRune(r)
			cut()
		default:
			current.WriteRune(r)
		}
	}
	cut()

	return out
}
