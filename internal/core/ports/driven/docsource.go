package driven

// DocumentSource extracts prompt text from an authoring document on disk.
// Used by the generation service when a reviewer supplies a .docx file
// instead of an inline prompt.
type DocumentSource interface {
	// ExtractText returns the document's paragraphs joined by newlines,
	// with empty paragraphs dropped.
	ExtractText(path string) (string, error)
}
