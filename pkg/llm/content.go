package llm

// Content block types.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// SourceTypeBase64 marks an image source whose data is inlined as base64.
const SourceTypeBase64 = "base64"

// ContentBlock is one unit of a multimodal message. Type selects which of
// the remaining fields are populated: Text for "text", Source for "image".
type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

// ImageSource holds an inlined image.
type ImageSource struct {
	Type      string `json:"type"`       // Always "base64"
	MediaType string `json:"media_type"` // e.g. "image/png"
	Data      string `json:"data"`       // Base64-encoded image bytes
}

// TextBlock returns a text content block. The text is sent verbatim.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// ImageBlock returns an image content block for the given source.
func ImageBlock(src ImageSource) ContentBlock {
	return ContentBlock{Type: ContentTypeImage, Source: &src}
}

// IsImage reports whether the block carries an image.
func (b ContentBlock) IsImage() bool {
	return b.Type == ContentTypeImage && b.Source != nil
}
