package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// pictographic covers the Extended_Pictographic code points: the scattered
// symbols below U+2300 that have emoji forms, miscellaneous technical,
// symbols and dingbats, a handful of CJK symbols, and the supplementary
// emoji planes (including regional indicators).
var pictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00a9, Hi: 0x00a9, Stride: 1},
		{Lo: 0x00ae, Hi: 0x00ae, Stride: 1},
		{Lo: 0x203c, Hi: 0x203c, Stride: 1},
		{Lo: 0x2049, Hi: 0x2049, Stride: 1},
		{Lo: 0x2122, Hi: 0x2122, Stride: 1},
		{Lo: 0x2139, Hi: 0x2139, Stride: 1},
		{Lo: 0x2194, Hi: 0x2199, Stride: 1},
		{Lo: 0x21a9, Hi: 0x21aa, Stride: 1},
		{Lo: 0x2300, Hi: 0x23ff, Stride: 1},
		{Lo: 0x24c2, Hi: 0x24c2, Stride: 1},
		{Lo: 0x25aa, Hi: 0x25ab, Stride: 1},
		{Lo: 0x25b6, Hi: 0x25b6, Stride: 1},
		{Lo: 0x25c0, Hi: 0x25c0, Stride: 1},
		{Lo: 0x25fb, Hi: 0x25fe, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2934, Hi: 0x2935, Stride: 1},
		{Lo: 0x2b05, Hi: 0x2b07, Stride: 1},
		{Lo: 0x2b1b, Hi: 0x2b1c, Stride: 1},
		{Lo: 0x2b50, Hi: 0x2b50, Stride: 1},
		{Lo: 0x2b55, Hi: 0x2b55, Stride: 1},
		{Lo: 0x3030, Hi: 0x3030, Stride: 1},
		{Lo: 0x303d, Hi: 0x303d, Stride: 1},
		{Lo: 0x3297, Hi: 0x3297, Stride: 1},
		{Lo: 0x3299, Hi: 0x3299, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1f2ff, Stride: 1},
		{Lo: 0x1f300, Hi: 0x1faff, Stride: 1},
	},
	LatinOffset: 2,
}

const (
	presentationSelector = '\uFE0F'
	keycapMark           = '\u20E3'
)

// IsEmoji reports whether a grapheme cluster is an emoji. ZWJ sequences,
// skin tones and flags are judged by their first rune and count once.
// Clusters carrying the emoji presentation selector or a keycap mark are
// emoji whatever their base, so "#️⃣" and "▶️" are caught.
func IsEmoji(cluster string) bool {
	r, size := utf8.DecodeRuneInString(cluster)
	if size == 0 {
		return false
	}
	if unicode.Is(pictographic, r) {
		return true
	}
	return strings.ContainsRune(cluster, presentationSelector) ||
		strings.ContainsRune(cluster, keycapMark)
}

// CountEmoji returns the number of emoji clusters in text.
func CountEmoji(text string) int {
	count := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if IsEmoji(g.Str()) {
			count++
		}
	}
	return count
}

// capEmoji drops every emoji after the first max.
func capEmoji(text string, max int) string {
	var sb strings.Builder
	sb.Grow(len(text))

	seen := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if IsEmoji(cluster) {
			seen++
			if seen > max {
				continue
			}
		}
		sb.WriteString(cluster)
	}
	return sb.String()
}

// collapseEmojiRuns keeps only the first emoji of every run of consecutive
// emoji. Whitespace between emoji does not end a run and is dropped with
// the emoji that follow it.
func collapseEmojiRuns(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	var pending strings.Builder
	inRun := false

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		switch {
		case IsEmoji(cluster):
			if inRun {
				pending.Reset()
				continue
			}
			sb.WriteString(cluster)
			inRun = true
		case inRun && isSpace(cluster):
			pending.WriteString(cluster)
		default:
			sb.WriteString(pending.String())
			pending.Reset()
			sb.WriteString(cluster)
			inRun = false
		}
	}
	sb.WriteString(pending.String())

	return sb.String()
}

// stripEmoji removes every emoji cluster.
func stripEmoji(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if cluster := g.Str(); !IsEmoji(cluster) {
			sb.WriteString(cluster)
		}
	}
	return sb.String()
}

func isSpace(cluster string) bool {
	return strings.TrimSpace(cluster) == ""
}
