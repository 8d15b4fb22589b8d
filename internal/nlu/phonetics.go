package nlu

import "strings"

// similarChars maps a Devanagari character to the characters an ASR commonly
// confuses it with. Lookups for unmapped characters yield nothing, i.e. no
// similarity credit.
//
// Nukta consonants are the precomposed code points (U+095B, U+095C, U+095D);
// input carrying the decomposed consonant+nukta form scans as two runes and
// earns no confusable credit, same as the original scorer.
var similarChars = map[rune][]rune{
	// Consonants
	'त': {'ट', 'थ', 'ठ'}, 'ट': {'त', 'ठ', 'थ'},
	'द': {'ड', 'ध', 'ढ'}, 'ड': {'द', 'ढ', 'ध'},
	'न': {'ण'}, 'ण': {'न'},
	'क': {'ख'}, 'ख': {'क'},
	'ग': {'घ'}, 'घ': {'ग'},
	'च': {'छ'}, 'छ': {'च'},
	'ज': {'झ', '\u095b'}, 'झ': {'ज'},
	'प': {'फ'}, 'फ': {'प'},
	'ब': {'भ', 'व'}, 'भ': {'ब'},
	'स': {'श', 'ष'}, 'श': {'स', 'ष'}, 'ष': {'स', 'श'},
	'व': {'ब', 'भ'},
	'र': {'\u095c', '\u095d'},
	// Vowels and matras
	'ा': {'ॉ'}, 'ॉ': {'ा', 'ो'},
	'े': {'ै', 'ए'}, 'ै': {'े', 'ऐ'},
	'ो': {'ौ', 'ॉ'}, 'ौ': {'ो', 'औ'},
	'ि': {'ी'}, 'ी': {'ि'},
	'ु': {'ू'}, 'ू': {'ु'},
}

func confusable(a, b rune) bool {
	for _, r := range similarChars[a] {
		if r == b {
			return true
		}
	}
	for _, r := range similarChars[b] {
		if r == a {
			return true
		}
	}
	return false
}

// Similarity scores how acoustically close two words are, in [0,1].
//
// It is a deliberately cheap greedy alignment, not edit distance: two cursors
// walk the words, an exact rune match earns 1.0, a confusable pair earns 0.8,
// and on a mismatch a one-rune lookahead realigns across an insertion or
// deletion before both cursors give up and advance without credit. The final
// score divides earned credit by the longer word's rune count. Downstream
// thresholds are tuned against exactly this behavior.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	total := len(ra)
	if len(rb) > total {
		total = len(rb)
	}

	var credit float64
	i, j := 0, 0
	for i < len(ra) && j < len(rb) {
		switch {
		case ra[i] == rb[j]:
			credit += 1.0
			i++
			j++
		case confusable(ra[i], rb[j]):
			credit += 0.8
			i++
			j++
		default:
			if i < len(ra)-1 && ra[i+1] == rb[j] {
				i++
			} else if j < len(rb)-1 && ra[i] == rb[j+1] {
				j++
			} else {
				i++
				j++
			}
		}
	}

	return credit / float64(total)
}
