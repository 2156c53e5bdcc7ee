package laboratory

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// Typewriter reveals text a few words at a time.
type Typewriter struct {
	Delay      time.Duration
	ChunkWords int
}

// DefaultTypewriter is the laboratory's typing cadence.
var DefaultTypewriter = Typewriter{Delay: 30 * time.Millisecond, ChunkWords: 3}

// Chunks splits text into pieces of ChunkWords words each. Whitespace
// stays attached to the preceding word, so joining the chunks yields text.
func (t Typewriter) Chunks(text string) []string {
	per := t.ChunkWords
	if per <= 0 {
		per = 1
	}

	var chunks []string
	start, words := 0, 0
	inWord := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if !space && !inWord {
			if words == per {
				chunks = append(chunks, text[start:i])
				start, words = i, 0
			}
			words++
		}
		inWord = !space
	}
	if start < len(text) {
		chunks = append(chunks, text[start:])
	}
	return chunks
}

// Type calls emit with a growing prefix of text, one chunk at a time,
// pausing Delay between calls. It stops early when ctx is done or emit
// fails.
func (t Typewriter) Type(ctx context.Context, text string, emit func(partial string) error) error {
	var b strings.Builder
	for i, chunk := range t.Chunks(text) {
		if i > 0 && t.Delay > 0 {
			timer := time.NewTimer(t.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		b.WriteString(chunk)
		if err := emit(b.String()); err != nil {
			return err
		}
	}
	return nil
}
