package reply

import "strings"

// defaultEmoji is appended by EnsureEmoji when a reply has none.
const defaultEmoji = "🙂"

// emojiRanges mirrors the fixed Unicode ranges covered by the emoji
// policy: pictographs, emoticons, transport, dingbats, misc symbols.
var emojiRanges = [][2]rune{
	{0x1F300, 0x1F5FF},
	{0x1F600, 0x1F64F},
	{0x1F680, 0x1F6FF},
	{0x1F700, 0x1F77F},
	{0x1F780, 0x1F7FF},
	{0x1F800, 0x1F8FF},
	{0x1F900, 0x1F9FF},
	{0x1FA00, 0x1FAFF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
	// Joiners and variation selectors so composed emoji strip cleanly.
	{0x200D, 0x200D},
	{0xFE0E, 0xFE0F},
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// ContainsEmoji reports whether text has at least one emoji code-point.
func ContainsEmoji(text string) bool {
	for _, r := range text {
		if isEmoji(r) {
			return true
		}
	}
	return false
}

// StripEmojis removes all emoji code-points, then tidies the spacing
// stripping leaves behind. Cleanup is per line: newlines in multi-line
// templates survive.
func StripEmojis(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		var b strings.Builder
		b.Grow(len(line))
		for _, r := range line {
			if !isEmoji(r) {
				b.WriteRune(r)
			}
		}
		lines[i] = strings.Join(strings.Fields(b.String()), " ")
	}
	return strings.Join(lines, "\n")
}

// EnsureEmoji appends the default emoji when text contains none.
func EnsureEmoji(text string) string {
	if text == "" || ContainsEmoji(text) {
		return text
	}
	return text + " " + defaultEmoji
}
