package engine

// Ruleset holds a puzzle's static constraints
type Ruleset struct {
	// MinLength and MaxLength bound region size, inclusive
	MinLength int
	MaxLength int

	// Dictionary holds every accepted word, already case-normalised
	Dictionary map[string]struct{}
}

// NewRuleset creates a ruleset accepting the given words verbatim
func NewRuleset(minLength, maxLength int, words []string) *Ruleset {
	dictionary := make(map[string]struct{}, len(words))
	for _, w := range words {
		dictionary[w] = struct{}{}
	}

	return &Ruleset{
		MinLength:  minLength,
		MaxLength:  maxLength,
		Dictionary: dictionary,
	}
}

// Allows reports whether word is in the dictionary (exact match)
func (r *Ruleset) Allows(word string) bool {
	_, ok := r.Dictionary[word]
	return ok
}

// Size returns the number of dictionary words
func (r *Ruleset) Size() int {
	return len(r.Dictionary)
}
