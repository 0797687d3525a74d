package sampling

// Params is the fixed sampling table sent with every inference request. Both
// pipeline stages use the same values; they live here as configuration data so
// request building can be tested independently of the numbers.
type Params struct {
	MaxTokens        int     `json:"max_tokens"`
	TopP             float64 `json:"top_p"`
	TopK             int     `json:"top_k"`
	PresencePenalty  float64 `json:"presence_penalty"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	Temperature      float64 `json:"temperature"`
}

// Default returns the service-wide sampling values: moderate randomness,
// bounded output, no penalty terms.
func Default() Params {
	return Params{
		MaxTokens:        1024,
		TopP:             1,
		TopK:             40,
		PresencePenalty:  0,
		FrequencyPenalty: 0,
		Temperature:      0.6,
	}
}

// Zero reports whether p carries no values and should be replaced by Default.
func (p Params) Zero() bool {
	return p == Params{}
}
