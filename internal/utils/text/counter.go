package text

// CountRunes returns the number of Unicode code points in text. Summary
// length limits are expressed in characters, not bytes, so multi-byte
// text must be measured in runes.
func CountRunes(text string) int {
	return len([]rune(text))
}
