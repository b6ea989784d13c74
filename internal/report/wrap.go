package report

import "strings"

// wrapText breaks text into lines no wider than width. Explicit newlines are
// kept, blank lines included. Words wider than a line are split by rune.
// The result always has at least one line.
func wrapText(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, width, measure)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func wrapParagraph(paragraph string, width float64, measure func(string) float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		if measure(word) <= width {
			line = word
			continue
		}
		chunks := splitWord(word, width, measure)
		lines = append(lines, chunks[:len(chunks)-1]...)
		line = chunks[len(chunks)-1]
	}
	return append(lines, line)
}

func splitWord(word string, width float64, measure func(string) float64) []string {
	var chunks []string
	current := []rune{}
	for _, r := range word {
		next := append(current, r)
		if len(current) > 0 && measure(string(next)) > width {
			chunks = append(chunks, string(current))
			current = []rune{r}
			continue
		}
		current = next
	}
	return append(chunks, string(current))
}
