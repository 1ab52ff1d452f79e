package gateway

// ModelInfo describes one supported completion model for the settings UI.
type ModelInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

// DefaultModel is used for fresh sessions.
const DefaultModel = "llama3-8b-8192"

// DefaultTemperature favors creative, human-like responses.
const DefaultTemperature = 0.8

// Models returns the fixed set of supported model identifiers.
func Models() []ModelInfo {
	return []ModelInfo{
		{ID: "llama3-8b-8192", Label: "Llama 3 8B (Fastest)", Note: "Fastest responses, best for quick chats"},
		{ID: "mixtral-8x7b-32768", Label: "Mixtral 8x7B (Balanced)", Note: "Balanced speed and quality"},
		{ID: "llama3-70b-8192", Label: "Llama 3 70B (Best Quality)", Note: "Best quality, slower responses"},
		{ID: "gemma-7b-it", Label: "Gemma 7B (Efficient)", Note: "Fast and efficient, good for general use"},
	}
}

// ValidModel reports whether id is one of the supported models.
func ValidModel(id string) bool {
	for _, m := range Models() {
		if m.ID == id {
			return true
		}
	}
	return false
}
