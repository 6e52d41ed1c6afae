package main

type RecommendationRequest struct {
	Preferences []string `json:"preferences" binding:"required"`
}

type RecommendationResponse struct {
	Recommendations []string `json:"recommendations"`
}

type TestLLMResponse struct {
	Prompt string `json:"prompt"`
	Output string `json:"output"`
}
