package typing

import "strings"

// Difficulty selects the pool of passages.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty accepts any case. Unknown values report false.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

var texts = map[Difficulty][]string{
	Easy: {
		"The cat sat on the mat.",
		"A quick brown fox jumps over a lazy dog.",
		"Hello world! This is an easy typing test.",
		"Simple words make typing practice fun and easy.",
	},
	Medium: {
		"The quick brown fox jumps over the lazy dog. This pangram contains every letter of the English alphabet at least once.",
		"In a hole in the ground there lived a hobbit. Not a nasty, dirty, wet hole filled with worms and oozy smells.",
		"Programming is the art of telling another human what one wants the computer to do. It requires logical thinking and creativity.",
		"Artificial intelligence is intelligence demonstrated by machines, in contrast to the natural intelligence displayed by humans.",
		"The best way to predict the future is to invent it. Technology advances through innovation and persistent effort.",
	},
	Hard: {
		"Code is like humor. When you have to explain it, it's bad. Good code should be self-documenting and elegant.",
		"Debugging is twice as hard as writing the code in the first place. Therefore, if you write code as cleverly as possible, you are not smart enough to debug it.",
		"The complexity of software is an essential property, not an accidental one. Hence, descriptions of a software entity that abstract away its complexity often abstract away its essence.",
		"Any fool can write code that a computer can understand. Good programmers write code that humans can understand. - Martin Fowler",
		"First, solve the problem. Then, write the code. Don't try to do both at the same time, or you'll end up with neither working properly.",
	},
}

// Texts returns the passages for d.
func Texts(d Difficulty) []string { return texts[d] }
