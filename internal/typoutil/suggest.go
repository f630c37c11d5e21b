package typoutil

import "sort"

// Suggestion is one known reading close to an unknown one.
type Suggestion struct {
	Reading  string `json:"reading"`
	Distance int    `json:"distance"`
}

// SuggestReadings returns up to maxResults known readings within
// maxDistance Damerau-Levenshtein edits of the unknown reading, closest
// first; ties are broken alphabetically so results are deterministic.
func SuggestReadings(knownReadings []string, reading string, maxDistance, maxResults int) []Suggestion {
	if reading == "" || maxDistance <= 0 || maxResults <= 0 {
		return nil
	}

	readingLen := len([]rune(reading))
	var suggestions []Suggestion
	for _, known := range knownReadings {
		// Length pre-filter: a difference beyond maxDistance cannot match.
		lengthDiff := len([]rune(known)) - readingLen
		if lengthDiff < 0 {
			lengthDiff = -lengthDiff
		}
		if lengthDiff > maxDistance {
			continue
		}

		distance := CalculateDamerauLevenshteinDistance(known, reading)
		if distance > 0 && distance <= maxDistance {
			suggestions = append(suggestions, Suggestion{Reading: known, Distance: distance})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return suggestions[i].Reading < suggestions[j].Reading
	})

	if len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}
	return suggestions
}
