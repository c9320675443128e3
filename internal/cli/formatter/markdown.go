package formatter

import (
	"strings"
)

// BlockKind classifies one parsed markdown block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBullet
)

// Block is one renderable unit of a markdown document. The parser is
// deliberately small: research reports only use headings, bullets, and
// paragraphs.
type Block struct {
	Kind  BlockKind
	Level int // heading level, 1-based; zero otherwise
	Text  string
}

// ParseMarkdown splits a markdown document into blocks. Consecutive
// non-empty lines merge into one paragraph; bullets and headings stand alone.
func ParseMarkdown(text string) []Block {
	var blocks []Block
	var para []string

	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.Join(para, " ")})
			para = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' {
				level++
			}
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: level,
				Text:  strings.TrimSpace(trimmed[level:]),
			})
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			flush()
			blocks = append(blocks, Block{Kind: BlockBullet, Text: strings.TrimSpace(trimmed[2:])})
		default:
			para = append(para, trimmed)
		}
	}
	flush()
	return blocks
}

// RenderMarkdown renders a markdown document with the terminal palette:
// top-level headings as section headers, deeper headings bold, bullets
// indented with a dim marker.
func RenderMarkdown(text string) string {
	var b strings.Builder
	for i, block := range ParseMarkdown(text) {
		if i > 0 {
			b.WriteString("\n")
		}
		switch block.Kind {
		case BlockHeading:
			if block.Level <= 1 {
				b.WriteString(Header(stripEmphasis(block.Text)))
			} else {
				b.WriteString(Bold(stripEmphasis(block.Text)))
			}
		case BlockBullet:
			b.WriteString(StyleDim.Render("  • ") + StyleFg.Render(stripEmphasis(block.Text)))
		default:
			b.WriteString(StyleFg.Render(stripEmphasis(block.Text)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// stripEmphasis drops inline bold/italic markers; the terminal styles carry
// the emphasis instead.
func stripEmphasis(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	return strings.ReplaceAll(text, "__", "")
}
