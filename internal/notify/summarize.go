package notify

const (
	previewLength = 50
	minCutIndex   = 20
)

// Summarize shortens text for a notification body. Text of up to 50
// characters is returned unchanged. Longer text is cut from previewRemainder
// at its last space when that space sits past index 20, otherwise at 50
// characters. Spaces past index 50 are not considered and a remainder
// shorter than 50 characters is kept whole.
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}

	remainder := previewRemainder(runes)
	if idx := lastSpace(remainder[:min(len(remainder), previewLength+1)]); idx > minCutIndex {
		return string(remainder[:idx])
	}
	return string(remainder[:min(len(remainder), previewLength)])
}

// previewRemainder returns the part of a long text a notification shows.
// Notifications have always shown the text after the first 50 characters.
func previewRemainder(runes []rune) []rune {
	return runes[previewLength:]
}

// lastSpace returns the index of the last space in runes, or -1.
func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
