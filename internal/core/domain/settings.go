package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// AISettings configures one AI service (embedding or generation).
type AISettings struct {
	// Provider selects the backend.
	Provider AIProvider

	// Model is the model name, e.g. "mxbai-embed-large" or "llama3.2".
	Model string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// APIKey authenticates cloud providers. Unused for Ollama.
	APIKey string
}

// IsConfigured returns true if the settings are usable.
func (s *AISettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// Default parameter values, matching the behaviour the pipeline was
// tuned with.
const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 5

	// DefaultEmbeddingModel is the Ollama embedding model.
	DefaultEmbeddingModel = "mxbai-embed-large"

	// DefaultLLMModel is the Ollama generation model.
	DefaultLLMModel = "codeqwen"
)

// Config carries every knob for an index or ask run. All paths and
// parameters are explicit; nothing falls back to process-global state.
type Config struct {
	// CSVPath is the verse table to index.
	CSVPath string

	// EPUBPath is the commentary book to index.
	EPUBPath string

	// DataDir is the root under which the dedicated index partition
	// lives. The partition itself is DataDir/epub_csv_only.
	DataDir string

	// TopK is the number of chunks retrieved per question.
	TopK int

	// Rebuild clears the index partition before indexing.
	Rebuild bool

	// Embedding configures the embedding service.
	Embedding AISettings

	// LLM configures the generation service.
	LLM AISettings
}

// Normalise fills zero-valued fields with defaults.
func (c *Config) Normalise() {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = AIProviderOllama
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = DefaultEmbeddingModel
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = AIProviderOllama
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
}

// Sources returns the configured inputs in indexing order: the CSV is
// always indexed before the EPUB.
func (c *Config) Sources() []Source {
	return []Source{
		{Path: c.CSVPath, Type: SourceTypeCSV},
		{Path: c.EPUBPath, Type: SourceTypeEPUB},
	}
}
