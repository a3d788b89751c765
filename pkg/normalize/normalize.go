package normalize

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxEmoji is the number of emoji kept when emoji are enabled.
	MaxEmoji = 6

	// shortLineLength is the length (in user-perceived characters) below
	// which a line counts as list-like.
	shortLineLength = 50

	// shortLineRatio is the share of short lines, in percent, that makes a
	// reply look like a list.
	shortLineRatio = 60

	// maxPasses bounds the fixed-point loop. Every pass that changes the
	// text makes it shorter or removes a line break, so this is never hit
	// on real replies.
	maxPasses = 16
)

var (
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	emphasisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)\*\*(.+?)\*\*`),
		regexp.MustCompile(`(?s)\*(.+?)\*`),
		// Underscore emphasis must hug its text, so separator lines like
		// "___" survive until the separator step.
		regexp.MustCompile(`(?s)__([^_\s](?:.*?[^_\s])?)__`),
		regexp.MustCompile(`(?s)_([^_\s](?:.*?[^_\s])?)_`),
	}

	listMarker      = regexp.MustCompile(`(?m)^[ \t]*(?:>[ \t]*)*(?:\d+[.)]|[-*•])(?:[ \t]+|$)`)
	blankLineRun    = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	horizontalSpace = regexp.MustCompile(`[^\S\n]{2,}`)
	separatorLine   = regexp.MustCompile(`(?m)^[ \t]*(?:_{3,}|-{3,})[ \t]*(?:\n|$)`)
	trailingSpace   = regexp.MustCompile(`(?m)[^\S\n]+$`)
)

// Normalizer applies the reply cleanup pipeline.
type Normalizer struct {
	emoji bool
}

// New returns a Normalizer. When emojiEnabled is false every emoji is
// removed; otherwise at most MaxEmoji are kept and repeated runs collapse.
func New(emojiEnabled bool) *Normalizer {
	return &Normalizer{emoji: emojiEnabled}
}

// EmojiEnabled reports the emoji policy.
func (n *Normalizer) EmojiEnabled() bool {
	return n.emoji
}

// Normalize returns the cleaned form of raw.
func (n *Normalizer) Normalize(raw string) string {
	text := lineEndings.Replace(norm.NFC.String(raw))

	for i := 0; i < maxPasses; i++ {
		next := n.pass(text)
		if next == text {
			break
		}
		text = next
	}

	return text
}

func (n *Normalizer) pass(text string) string {
	for _, re := range emphasisPatterns {
		text = re.ReplaceAllString(text, "$1")
	}

	text = listMarker.ReplaceAllString(text, "")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = separatorLine.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = flattenList(text)

	if n.emoji {
		text = collapseEmojiRuns(capEmoji(text, MaxEmoji))
	} else {
		text = stripEmoji(text)
	}

	// Removing a marker can leave a combining mark next to its base letter.
	return norm.NFC.String(tidy(text))
}

// flattenList joins the non-empty lines of text with single spaces when
// there are more than two of them and most are short.
func flattenList(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) <= 2 {
		return text
	}

	short := 0
	for _, line := range lines {
		if uniseg.GraphemeClusterCount(line) < shortLineLength {
			short++
		}
	}
	if short*100 < len(lines)*shortLineRatio {
		return text
	}

	return strings.Join(lines, " ")
}

// tidy repairs the whitespace left behind by emoji removal.
func tidy(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = trailingSpace.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
