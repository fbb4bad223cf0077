package config

type AI string

const (
	AIGemini AI = "gemini"
)

type Model string

const (
	ModelGeminiV20FlashLite Model = "gemini-2.0-flash-lite"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
)

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIGemini:
		return []Model{
			ModelGeminiV20FlashLite,
			ModelGeminiV25Flash,
			ModelGeminiV25FlashLite,
			ModelGeminiV25Pro,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// IsKnownModel reports whether the model is one of the listed ones. Unknown
// models are still accepted so new releases can be used before they are listed.
func IsKnownModel(ai AI, model Model) bool {
	for _, m := range ModelsForAI(ai) {
		if m == model {
			return true
		}
	}
	return false
}
