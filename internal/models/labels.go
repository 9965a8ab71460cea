package models

import "strings"

// ProviderInfo is the static display data for a model provider.
type ProviderInfo struct {
	Name  string
	Color string // terminal colour
	Hex   string // web colour
}

var providers = map[string]ProviderInfo{
	"openai":    {Name: "OpenAI", Color: "42", Hex: "#10a37f"},
	"anthropic": {Name: "Anthropic", Color: "208", Hex: "#d97757"},
	"google":    {Name: "Google", Color: "33", Hex: "#4285f4"},
	"mistral":   {Name: "Mistral", Color: "214", Hex: "#ff7000"},
	"local":     {Name: "Local", Color: "245", Hex: "#6b7280"},
	"mock":      {Name: "Mock", Color: "141", Hex: "#8b5cf6"},
}

// Provider returns the display data for provider, keeping the raw name when it is unknown.
func Provider(provider string) ProviderInfo {
	if info, ok := providers[strings.ToLower(strings.TrimSpace(provider))]; ok {
		return info
	}
	name := strings.TrimSpace(provider)
	if name == "" {
		name = "Unknown"
	}
	return ProviderInfo{Name: name, Color: "250", Hex: "#9ca3af"}
}

// CostTier buckets a per-1K-token price.
func CostTier(costPer1K float64) string {
	switch {
	case costPer1K <= 0:
		return "Free"
	case costPer1K < 0.002:
		return "Low"
	case costPer1K < 0.02:
		return "Medium"
	default:
		return "High"
	}
}

// ContextSize buckets a model's max token count.
func ContextSize(maxTokens int) string {
	switch {
	case maxTokens < 8192:
		return "Standard"
	case maxTokens < 32768:
		return "Extended"
	default:
		return "Large"
	}
}
