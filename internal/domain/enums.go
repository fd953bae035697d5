package domain

// DataURIPrefix marks an inline image that is passed through unresolved.
const DataURIPrefix = "data:"

// RecognitionMediaType is the media type every image is tagged with when it
// is handed to the recognition capability.
const RecognitionMediaType = "image/jpeg"

// OutcomeKind classifies what the recognition stage produced for an image.
type OutcomeKind string

const (
	OutcomeRecognized  OutcomeKind = "recognized"
	OutcomeNotDetected OutcomeKind = "not_detected"
	OutcomeFailed      OutcomeKind = "failed"
)

// ItemStage is the position of one image in the per-item pipeline.
type ItemStage string

const (
	StageFetching    ItemStage = "fetching"
	StageNormalizing ItemStage = "normalizing"
	StageRecognizing ItemStage = "recognizing"
	StageSucceeded   ItemStage = "succeeded"
	StageFailed      ItemStage = "failed"
)

// NoTextSentinelPrefix starts every "no text detected" response.
const NoTextSentinelPrefix = "テキストは検出できませんでした。理由："

const (
	// EmptyRecognitionText replaces blank text returned by the capability.
	EmptyRecognitionText = NoTextSentinelPrefix + "画像の解析に失敗しました"

	// ProcessingFailedText is recorded for any item whose pipeline failed.
	ProcessingFailedText = NoTextSentinelPrefix + "画像の処理中にエラーが発生しました"

	ReasonUnknown = "unknown"
)
