package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// charsPerToken is the cheap token estimate used everywhere in this package.
// The same ratio backs both the "is this chunk small enough" check and the
// "how much overlap to carry forward" calculation; mixing estimators would
// make the size and overlap targets drift apart silently.
const charsPerToken = 4

// defaultSeparators is ordered coarse to fine. The empty string is the
// terminal separator: fixed-size character slicing.
var defaultSeparators = []string{"\n\n", "\n", ". ", ", ", " ", ""}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
	lineEdges   = regexp.MustCompile(` *\n *`)
)

// Chunker splits text into overlapping segments bounded by an approximate
// token budget, preferring paragraph, line, sentence and word boundaries
// before falling back to raw character slicing.
//
// It is pure and stateless: the same input always yields the same chunks.
type Chunker struct {
	maxChars     int
	overlapChars int
	separators   []string
}

// New returns a Chunker targeting chunkSize tokens per chunk with
// chunkOverlap tokens shared between adjacent chunks.
func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	return &Chunker{
		maxChars:     chunkSize * charsPerToken,
		overlapChars: chunkOverlap * charsPerToken,
		separators:   defaultSeparators,
	}
}

// Split chunks text into ordered segments. Empty or whitespace-only input
// yields no chunks; a trimmed-empty chunk is never emitted.
func (c *Chunker) Split(text string) []string {
	text = NormalizeWhitespace(text)
	if text == "" {
		return nil
	}
	return c.split(text, c.separators)
}

// NormalizeWhitespace collapses runs of horizontal whitespace into single
// spaces and runs of blank lines into a single paragraph break, so separator
// matching during splitting is reliable. The result is trimmed.
func NormalizeWhitespace(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = lineEdges.ReplaceAllString(text, "\n")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func (c *Chunker) split(text string, separators []string) []string {
	if runeLen(text) <= c.maxChars {
		if t := strings.TrimSpace(text); t != "" {
			return []string{t}
		}
		return nil
	}

	// Advance past separators that do not occur in this text.
	sep := ""
	rest := []string{}
	for i, s := range separators {
		if s == "" {
			sep = s
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}
	if sep == "" {
		return c.sliceFixed(text)
	}

	parts := strings.Split(text, sep)

	var chunks []string
	// current is the running chunk; seeded means it holds only overlap
	// carried from the previous chunk, with no new content yet.
	current := ""
	seeded := false
	for _, part := range parts {
		// A part that alone exceeds the budget is split with the finer
		// separators; its last sub-chunk seeds the overlap for what follows.
		if runeLen(part) > c.maxChars {
			if t := strings.TrimSpace(current); t != "" && !seeded {
				chunks = append(chunks, t)
			}
			sub := c.split(part, rest)
			chunks = append(chunks, sub...)
			current = ""
			seeded = false
			if len(sub) > 0 {
				current = tailRunes(sub[len(sub)-1], c.overlapChars)
				seeded = current != ""
			}
			continue
		}

		candidate := part
		if current != "" {
			candidate = current + sep + part
		}
		if runeLen(candidate) <= c.maxChars {
			current = candidate
			if part != "" {
				seeded = false
			}
			continue
		}

		// Close the running chunk and start a new one seeded with the
		// trailing overlap of the one just emitted.
		if t := strings.TrimSpace(current); t != "" && !seeded {
			chunks = append(chunks, t)
		}
		seed := tailRunes(current, c.overlapChars)
		if seed != "" && runeLen(seed+sep+part) <= c.maxChars {
			current = seed + sep + part
		} else {
			current = part
		}
		seeded = false
	}

	if t := strings.TrimSpace(current); t != "" && !seeded {
		chunks = append(chunks, t)
	}
	return chunks
}

// sliceFixed is the terminal fallback: fixed-size windows of maxChars runes,
// advancing by maxChars-overlapChars. The step is clamped so a pathological
// overlap >= size configuration cannot loop forever.
func (c *Chunker) sliceFixed(text string) []string {
	runes := []rune(text)
	total := len(runes)

	step := c.maxChars - c.overlapChars
	if step <= 0 {
		step = c.maxChars
	}

	var chunks []string
	for i := 0; i < total; i += step {
		end := i + c.maxChars
		if end > total {
			end = total
		}
		if t := strings.TrimSpace(string(runes[i:end])); t != "" {
			chunks = append(chunks, t)
		}
		if end == total {
			break
		}
	}
	return chunks
}

// tailRunes returns the last n runes of s, or all of s if shorter.
func tailRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
