// Package message provides processing of issue message texts: comment
// stripping, line categorisation, block classification, trailer
// extraction, quoting and format checking.
//
// Each stage is a standalone adapter over a slice of lines so the
// stages compose and test in isolation. Lines are produced by Split and
// fed through Stripped before being stored or classified.
package message

import (
	"strings"

	"github.com/gitdit/gitdit/trailer"
)

// Line is a categorised message line: text, blank, or trailer. A
// trailer line may span multiple physical lines; continuations are
// folded into the trailer's value.
type Line interface {
	isLine()
}

// TextLine is a regular line of message text.
type TextLine string

func (TextLine) isLine() {}

// BlankLine separates paragraphs and trailer blocks.
type BlankLine struct{}

func (BlankLine) isLine() {}

// TrailerLine is a line (plus any continuations) parsed as a trailer.
type TrailerLine struct {
	trailer.Trailer
}

func (TrailerLine) isLine() {}

// Split splits a message text into lines, dropping the final newline.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Stripped removes comment lines and trailing whitespace. Comment lines
// are lines whose first character is '#'. Leading whitespace is kept so
// code blocks survive unharmed.
func Stripped(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, trimRight(line))
	}
	return out
}

// Categorize turns raw lines into categorised lines. An indented line
// directly following a trailer is folded into that trailer's value; an
// indented line in any other position is text.
func Categorize(lines []string) []Line {
	var out []Line
	for i := 0; i < len(lines); i++ {
		trimmed := trimRight(lines[i])
		if trimmed == "" {
			out = append(out, BlankLine{})
			continue
		}

		t, err := trailer.Parse(trimmed)
		if err != nil {
			out = append(out, TextLine(trimmed))
			continue
		}

		for i+1 < len(lines) && isIndented(lines[i+1]) && trimRight(lines[i+1]) != "" {
			i++
			t.Value = t.Value.Append(trimRight(lines[i]))
		}
		out = append(out, TrailerLine{t})
	}
	return out
}

// Quote prefixes lines for inclusion in a reply draft.
func Quote(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			out = append(out, ">")
		} else {
			out = append(out, "> "+line)
		}
	}
	return out
}

// TrimTrailingBlanks removes blank lines at the end of the input while
// preserving interior blanks.
func TrimTrailingBlanks(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

func trimRight(line string) string {
	return strings.TrimRight(line, " \t")
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
