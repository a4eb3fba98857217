package entity

// Word is one entry of the word store.
type Word struct {
	Word       string `json:"word"`
	Hint       string `json:"hint"`
	Definition string `json:"definition"`
}

// IsPlainWord reports whether text is a non-empty run of the letters A to Z.
func IsPlainWord(text string) bool {
	if text == "" {
		return false
	}

	for i := range len(text) {
		if text[i] < 'A' || text[i] > 'Z' {
			return false
		}
	}

	return true
}
