// Package llm provides centralized LLM configuration and client abstractions
// for candidate-pool answer generation.
package llm

import "github.com/jonathan/talent-query/internal/types"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification fallbacks, short summaries
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: search, comparison, ranking answers
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: risk assessment, verification, team composition
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// TierForQueryType picks the model tier appropriate for a query type.
// Analytical query types get the advanced model; lookup-style queries
// run on the cheaper tiers.
func TierForQueryType(qt types.QueryType) ModelTier {
	switch qt {
	case types.QueryRiskAssessment, types.QueryVerification, types.QueryTeamBuild, types.QueryJobMatch:
		return TierAdvanced
	case types.QueryComparison, types.QueryRanking, types.QuerySummary:
		return TierStandard
	default:
		return TierLite
	}
}
