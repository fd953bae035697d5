package domain

import "strings"

// ImageReference is an absolute URL or an inline data URI identifying one
// image discovered on a page.
type ImageReference string

// String returns the reference as a plain string.
func (r ImageReference) String() string {
	return string(r)
}

// IsDataURI reports whether the reference is an inline data URI.
func (r ImageReference) IsDataURI() bool {
	return strings.HasPrefix(string(r), DataURIPrefix)
}

// RawImage holds fetched image bytes. ContentType is the declared type (empty
// when the server sent none); Detected is the type sniffed from the bytes.
type RawImage struct {
	Bytes       []byte
	ContentType string
	Detected    string
}

// RecognitionOutcome is the classified result of one recognition call.
type RecognitionOutcome struct {
	Kind   OutcomeKind `json:"outcome"`
	Text   string      `json:"text"`
	Reason string      `json:"reason,omitempty"`
}

// ExtractionResult is the per-image entry handed to the UI and export layers.
type ExtractionResult struct {
	ImageURL string      `json:"imageUrl"`
	Text     string      `json:"text"`
	Success  bool        `json:"success"`
	Outcome  OutcomeKind `json:"outcome"`
	Reason   string      `json:"reason,omitempty"`
	Stage    ItemStage   `json:"stage,omitempty"`
}

// BatchResult is the ordered result list of one extraction run plus counts.
type BatchResult struct {
	Results      []ExtractionResult `json:"results"`
	SuccessCount int                `json:"successCount"`
	FailureCount int                `json:"failureCount"`
	Total        int                `json:"total"`
}
