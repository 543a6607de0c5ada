package chat

// Gemini Model IDs
//
// | Model Name                  | API Model ID                | Use Case                      |
// |-----------------------------|-----------------------------|-------------------------------|
// | Gemini 3.1 Pro (Preview)    | gemini-3.1-pro-preview      | Best for complex reasoning    |
// | Gemini 3 Flash (Preview)    | gemini-3-flash-preview      | Best for speed + intelligence |
// | Gemini 2.5 Pro              | gemini-2.5-pro              | Stable, high-reasoning tasks  |
// | Gemini 2.5 Flash            | gemini-2.5-flash            | Stable, balanced performance  |
// | Gemini 2.0 Flash            | gemini-2.0-flash            | Video understanding, low cost |
const (
	ModelGemini31ProPreview  = "gemini-3.1-pro-preview"
	ModelGemini3FlashPreview = "gemini-3-flash-preview"
	ModelGemini25Pro         = "gemini-2.5-pro"
	ModelGemini25Flash       = "gemini-2.5-flash"
	ModelGemini20Flash       = "gemini-2.0-flash"
)

// DefaultGeminiModel is used for video analysis (and text completion when
// the Gemini text provider is selected). Override with GEMINI_MODEL.
const DefaultGeminiModel = ModelGemini3FlashPreview

// DefaultOpenAIModel is used for text completion. Override with OPENAI_MODEL.
const DefaultOpenAIModel = "gpt-5.1"

// Generation parameters shared by both providers.
const (
	maxOutputTokens = 2048
	temperature     = 0.7
)

// Provider names used in errors, logs and config.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)
