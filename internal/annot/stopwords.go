//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package annot

import (
	"github.com/e-gun/HipparchiaNLPNotebook/internal/gen"
	"sort"
)

//
// STOPWORDS
//

var (
	// English100 - the 100 most common english words more or less
	English100 = []string{"the", "be", "to", "of", "and", "a", "in", "that", "have", "i", "it", "for", "not", "on",
		"with", "he", "as", "you", "do", "at", "this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
		"or", "an", "will", "my", "one", "all", "would", "there", "their", "what", "so", "up", "out", "if", "about",
		"who", "get", "which", "go", "me", "when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
		"people", "into", "year", "your", "good", "some", "could", "them", "see", "other", "than", "then", "now",
		"look", "only", "come", "its", "over", "think", "also", "back", "after", "use", "two", "how", "our", "work",
		"first", "well", "way", "even", "new", "want", "because", "any", "these", "give", "day", "most", "us"}
	EnglishExtra = []string{"is", "are", "was", "were", "been", "being", "am", "has", "had", "having", "does", "did",
		"doing", "shall", "should", "may", "might", "must", "very", "too", "more", "each", "every", "both", "few",
		"many", "much", "own", "same", "such", "own", "off", "down", "again", "further", "once", "here", "where",
		"why", "while", "before", "during", "under", "above", "below", "between", "through", "until", "against",
		"among", "upon", "whom", "whose", "those", "itself", "himself", "herself", "themselves", "ourselves",
		"yourself", "myself", "nor", "yet", "still", "ever", "never", "always", "often", "s", "t", "n't", "'s",
		"'re", "'ve", "'ll", "'d", "mr", "mrs"}
	EnglishStop = append(English100, EnglishExtra...)
	// EnglishKeep - members of EnglishStop we will not toss
	EnglishKeep = []string{"people", "year", "time", "day", "work", "good", "new", "first", "two", "one"}
)

// DefaultStops - EnglishStop minus EnglishKeep, sorted and unique
func DefaultStops() []string {
	es := gen.Unique(gen.SetSubtraction(EnglishStop, EnglishKeep))
	sort.Strings(es)
	return es
}
