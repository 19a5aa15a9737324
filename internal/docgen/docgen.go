// Package docgen renders a card selection into a flat document: headings
// for the exam and statute a card is filed under, followed by labeled
// question/answer/reference paragraphs. Block building is a pure pass
// separated from DOCX rendering so the structure can be tested without
// unpacking generated files.
package docgen

import (
	"bytes"
	"fmt"

	docx "github.com/fumiama/go-docx"
	"github.com/lexcards/lexcards-api/internal/domain"
	"github.com/lexcards/lexcards-api/internal/sanitize"
)

// BlockKind identifies the role of a document block.
type BlockKind int

// Document block kinds, in the order they typically appear.
const (
	KindTitle BlockKind = iota
	KindExamHeading
	KindStatuteHeading
	KindLabeledText
	KindSpacer
)

// Block is one paragraph-level element of the generated document.
type Block struct {
	Kind  BlockKind
	Label string
	Text  string
}

// DefaultTitle is the document title used for card exports.
const DefaultTitle = "Study Cards"

// Build produces the document blocks for the given cards in order. Headings
// are emitted per card, so a statute appearing non-contiguously in the input
// produces repeated headings; the input order is never regrouped. Question
// and answer text is reduced to plain labels for the document.
func Build(cards []*domain.Card) []Block {
	blocks := make([]Block, 0, 1+len(cards)*6)
	blocks = append(blocks, Block{Kind: KindTitle, Text: DefaultTitle})

	for _, card := range cards {
		blocks = append(blocks,
			Block{Kind: KindExamHeading, Text: orPlaceholder(card.Exam, "[Exam]")},
			Block{Kind: KindStatuteHeading, Text: orPlaceholder(card.Statute, "[Statute]")},
			Block{Kind: KindLabeledText, Label: "Question", Text: sanitize.Label(card.Question)},
			Block{Kind: KindLabeledText, Label: "Answer", Text: sanitize.Label(card.Answer)},
			Block{Kind: KindLabeledText, Label: "Reference", Text: card.Reference},
			Block{Kind: KindSpacer},
		)
	}

	return blocks
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// Render writes the blocks as a DOCX document and returns its bytes.
// The exact byte layout is not contractual, only the block structure and
// ordering that Build fixes.
func Render(blocks []Block) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, block := range blocks {
		p := doc.AddParagraph()
		switch block.Kind {
		case KindTitle:
			p.AddText(block.Text).Size("36").Bold()
		case KindExamHeading:
			p.AddText(block.Text).Size("30").Bold()
		case KindStatuteHeading:
			p.AddText(block.Text).Size("26").Bold()
		case KindLabeledText:
			p.AddText(block.Label + ": ").Bold()
			p.AddText(block.Text)
		case KindSpacer:
			p.AddText("")
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
