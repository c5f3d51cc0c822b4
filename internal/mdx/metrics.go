package mdx

import "strings"

// DefaultWordsPerMinute is the reading speed assumed by CalculateReadingTime.
const DefaultWordsPerMinute = 200

// CalculateWordCount counts whitespace separated tokens in text.
func CalculateWordCount(text string) int {
	return len(strings.Fields(text))
}

// CalculateReadingTime estimates minutes needed to read text at
// wordsPerMinute. The result is never below one minute.
func CalculateReadingTime(text string, wordsPerMinute int) int {
	return readingTime(CalculateWordCount(text), wordsPerMinute)
}

func readingTime(words, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return max(minutes, 1)
}
