// Package verse normalizes raw verse text before analysis: transcripts arrive
// as UTF-8 of arbitrary length, occasionally wrapped in markup by the
// transcription UI.
package verse

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// MaxInputRunes bounds the prefix of the input the engine will process.
const MaxInputRunes = 1000

// Normalize strips markup, normalizes line endings, and truncates the text to
// MaxInputRunes.
func Normalize(text string) string {
	if strings.ContainsRune(text, '<') {
		text = StripHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	runes := []rune(text)
	if len(runes) > MaxInputRunes {
		text = string(runes[:MaxInputRunes])
	}
	return text
}

// Lines splits normalized text into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Words tokenizes one line into lowercase words with punctuation stripped.
// Apostrophes inside a word are kept ("don't"), everything else splits.
func Words(line string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := strings.Trim(current.String(), "'")
		if word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// StripHTML extracts the text content of markup, falling back to the raw
// string when parsing fails.
func StripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
