package types

// Role constants for input items
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Input content part types
const (
	InputTypeText  = "input_text"
	InputTypeImage = "input_image"
)

// Output content part types
const (
	OutputTypeMessage = "message"
	OutputTypeText    = "output_text"
	OutputTypeRefusal = "refusal"
)

// ResponsesRequest represents an OpenAI Responses API request.
type ResponsesRequest struct {
	Model string      `json:"model"`
	Input []InputItem `json:"input"`

	// Optional: Maximum number of output tokens
	MaxOutputTokens *int `json:"max_output_tokens,omitempty"`

	// Optional: Sampling temperature (0-2, default 1)
	Temperature *float64 `json:"temperature,omitempty"`
}

// InputItem is a single message in the Responses API input array.
type InputItem struct {
	Role    string             `json:"role"`
	Content []InputContentPart `json:"content"`
}

// InputContentPart is a typed content fragment of an input item.
// ImageURL holds either an https URL or a data: URL.
type InputContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Detail   string `json:"detail,omitempty"` // "auto", "low", "high"
}

// NewTextPart creates an input_text content part.
func NewTextPart(text string) InputContentPart {
	return InputContentPart{Type: InputTypeText, Text: text}
}

// NewImagePart creates an input_image content part from a data URL.
func NewImagePart(dataURL string) InputContentPart {
	return InputContentPart{Type: InputTypeImage, ImageURL: dataURL}
}

// ResponsesResponse represents an OpenAI Responses API response.
type ResponsesResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"` // "response"
	Created int64        `json:"created_at"`
	Model   string       `json:"model"`
	Status  string       `json:"status"` // "completed", "failed", "incomplete"
	Output  []OutputItem `json:"output"`
	Usage   *Usage       `json:"usage,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// OutputItem is a single item of the Responses API output array.
type OutputItem struct {
	Type    string              `json:"type"`
	Role    string              `json:"role,omitempty"`
	Content []OutputContentPart `json:"content,omitempty"`
}

// OutputContentPart is a typed content fragment of an output item.
type OutputContentPart struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

// Usage carries the upstream token accounting.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// OutputText concatenates the text of all output message parts. It mirrors
// the output_text convenience accessor of the official SDKs.
func (r *ResponsesResponse) OutputText() string {
	var result string
	for _, item := range r.Output {
		if item.Type != OutputTypeMessage {
			continue
		}
		for _, part := range item.Content {
			if part.Type == OutputTypeText {
				result += part.Text
			}
		}
	}
	return result
}
