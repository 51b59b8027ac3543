package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders guide markdown to HTML. GFM plus typographic quotes, auto
// heading ids for in-page anchors, and YAML frontmatter support.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
				&frontmatter.Extender{},
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
			),
		),
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseWithFrontmatter renders the body and decodes the frontmatter block
// into a generic map. Documents without frontmatter yield an empty map.
func (p *Parser) ParseWithFrontmatter(source []byte) ([]byte, map[string]any, error) {
	ctx := parser.NewContext()

	var buf bytes.Buffer
	if err := p.md.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return nil, nil, err
	}

	meta := map[string]any{}
	if data := frontmatter.Get(ctx); data != nil {
		if err := data.Decode(&meta); err != nil {
			return nil, nil, err
		}
	}

	return buf.Bytes(), meta, nil
}
