package document

import (
	"encoding/json"
	"io"
)

// Document is an ordered tree of blocks. The filter only ever needs read
// access to candidate code blocks and positional replacement of one block
// with another; everything else passes through untouched.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// BlockType discriminates the block kinds the filter understands.
type BlockType string

const (
	// CodeBlock is a fenced code block carrying raw text, class tags and
	// free-form key/value attributes.
	CodeBlock BlockType = "code_block"
	// Paragraph is opaque prose, passed through verbatim.
	Paragraph BlockType = "paragraph"
	// Figure references a rendered image with an HTML caption.
	Figure BlockType = "figure"
	// RawHTML embeds a raw HTML payload, used for interactive figures.
	RawHTML BlockType = "raw_html"
)

// Block is one node of the document tree.
type Block struct {
	Type    BlockType         `json:"type"`
	Text    string            `json:"text,omitempty"`
	Classes []string          `json:"classes,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`

	// Figure fields.
	Target      string `json:"target,omitempty"`
	CaptionHTML string `json:"caption_html,omitempty"`
}

// Attr returns the named attribute and whether it was present.
func (b Block) Attr(key string) (string, bool) {
	if b.Attrs == nil {
		return "", false
	}
	value, ok := b.Attrs[key]
	return value, ok
}

// HasClass reports whether the block carries the given class tag.
func (b Block) HasClass(class string) bool {
	for _, c := range b.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Read decodes a document from its JSON representation.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Write encodes the document as JSON.
func (d *Document) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}
