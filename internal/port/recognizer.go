package port

import "context"

// RecognizeInput carries one image for text recognition.
type RecognizeInput struct {
	ImageBase64 string
	MediaType   string
	Instruction string
}

// TextRecognizer abstracts the external text-recognition capability.
// It returns the capability's free-form answer.
type TextRecognizer interface {
	Recognize(ctx context.Context, input RecognizeInput) (string, error)
}

// RecognizerFactory builds a TextRecognizer bound to a caller-supplied credential.
type RecognizerFactory interface {
	NewRecognizer(credential string) (TextRecognizer, error)
}
