// Package types provides the wire types for the inference API and the
// OpenAI-compatible upstream protocol.
package types

// InferenceRequest is the body accepted by POST /infer.
type InferenceRequest struct {
	Text   string       `json:"text"`
	Images []ImageInput `json:"images,omitempty"`
}

// ImageInput carries one base64-encoded image, without a data: prefix.
// Mime is optional; when absent it is sniffed from the decoded bytes.
type ImageInput struct {
	ImageB64 string `json:"image_b64"`
	Mime     string `json:"mime,omitempty"`
}

// InferenceResponse is the body returned by POST /infer.
type InferenceResponse struct {
	Model  string `json:"model"`
	Output string `json:"output"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Model        string `json:"model"`
	HasOpenAIKey bool   `json:"has_openai_key"`
}
