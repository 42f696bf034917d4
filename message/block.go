package message

import (
	"strings"

	"github.com/gitdit/gitdit/trailer"
)

// Block is a run of consecutive non-blank lines: either a paragraph of
// text or a block of trailers.
type Block interface {
	isBlock()
}

// TextBlock is a paragraph of regular text.
type TextBlock []string

func (TextBlock) isBlock() {}

// TrailerBlock holds the trailers of a pure trailer block.
type TrailerBlock []trailer.Trailer

func (TrailerBlock) isBlock() {}

// ParseBlocks groups lines into blocks. A block is tentatively a
// trailer block and downgrades to text the moment any non-trailer line
// is observed, including an indented line whose preceding line is not a
// trailer. Once downgraded, trailer-looking lines inside the same block
// are plain text. Empty blocks are suppressed.
func ParseBlocks(lines []string) []Block {
	var blocks []Block

	i := 0
	for i < len(lines) {
		var raw []string
		var trailers []trailer.Trailer
		isTrailer := true

		for ; i < len(lines); i++ {
			trimmed := trimRight(lines[i])

			if trimmed == "" {
				if len(raw) == 0 {
					continue
				}
				i++
				break
			}

			// Keep every line: we may need them all should the block
			// turn out to be a paragraph.
			raw = append(raw, trimmed)

			if !isTrailer {
				continue
			}

			if isIndented(trimmed) {
				if len(trailers) > 0 {
					last := len(trailers) - 1
					trailers[last].Value = trailers[last].Value.Append(trimmed)
				} else {
					// A paragraph whose first line is indented.
					isTrailer = false
				}
			} else if t, err := trailer.Parse(trimmed); err == nil {
				trailers = append(trailers, t)
			} else {
				isTrailer = false
			}
		}

		if len(raw) == 0 {
			break
		}

		if isTrailer {
			blocks = append(blocks, TrailerBlock(trailers))
		} else {
			blocks = append(blocks, TextBlock(raw))
		}
	}

	return blocks
}

// Trailers yields exactly the trailers contained in trailer blocks, in
// document order. Trailer-looking lines inside text blocks are ignored.
func Trailers(lines []string) []trailer.Trailer {
	var out []trailer.Trailer
	for _, block := range ParseBlocks(lines) {
		if tb, ok := block.(TrailerBlock); ok {
			out = append(out, tb...)
		}
	}
	return out
}

// DitTrailers yields the dit metadata trailers of a message text.
func DitTrailers(text string) []trailer.Trailer {
	return trailer.OnlyDit(Trailers(Split(text)))
}

// AppendTrailers renders a message from stripped lines and additional
// trailers. The trailers join the message's final trailer block, or
// start one separated by a blank line.
func AppendTrailers(lines []string, trailers []trailer.Trailer) []string {
	out := TrimTrailingBlanks(lines)
	if len(trailers) == 0 {
		return out
	}

	needsSeparator := true
	if blocks := ParseBlocks(out); len(blocks) > 0 {
		if _, ok := blocks[len(blocks)-1].(TrailerBlock); ok {
			needsSeparator = false
		}
	}
	if needsSeparator && len(out) > 0 {
		out = append(out, "")
	}

	for _, t := range trailers {
		out = append(out, t.String())
	}
	return out
}

// Join renders lines back into a message text with a final newline.
func Join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
