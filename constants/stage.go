package constants

// Stage is the canonical pipeline stage for a processing request.
type Stage string

// Stable values (these exact strings appear in logs).
const (
	StageReceived     Stage = "RECEIVED"
	StageExtracted    Stage = "EXTRACTED"     // text or tables pulled from the document
	StageNormalized   Stage = "NORMALIZED"    // SOR only
	StageMatched      Stage = "MATCHED"       // catalog match path completed
	StageLLMExtracted Stage = "LLM_EXTRACTED" // language-model path completed
	StageFormatted    Stage = "FORMATTED"
	StageFailed       Stage = "FAILED" // terminal failure
)

// Extraction methods reported back on processed results.
const (
	MethodLLM     = "llm"
	MethodPattern = "pattern_matching"
	MethodCatalog = "catalog_matching"
)

// Output formats for SOR processing.
const (
	OutputJSON  = "json"
	OutputExcel = "excel"
)
