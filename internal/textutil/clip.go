package textutil

// Clip truncates text to at most maxChars runes and reports whether anything
// was removed. Counting runes keeps multi-byte scripts from being cut
// mid-character. maxChars <= 0 leaves the text unchanged.
func Clip(raw string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		return raw, false
	}

	runes := []rune(raw)
	if len(runes) <= maxChars {
		return raw, false
	}
	return string(runes[:maxChars]), true
}

// Preview returns at most maxChars runes of text with a trailing "..."
// marker when the text was longer. Used for response previews and log lines,
// never for text sent to a provider.
func Preview(raw string, maxChars int) string {
	clipped, truncated := Clip(raw, maxChars)
	if !truncated {
		return clipped
	}
	return clipped + "..."
}
