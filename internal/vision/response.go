package vision

// Response captures the heterogeneous shapes the completion service returns.
// Providers populate whichever fields their API version emits; extraction is
// the normalizer's job, not the client's.
type Response struct {
	OutputText string          `json:"output_text,omitempty"`
	Output     []OutputMessage `json:"output,omitempty"`
	Data       []DataItem      `json:"data,omitempty"`
	Choices    []Choice        `json:"choices,omitempty"`
}

// OutputMessage is one message in a responses-style output list.
type OutputMessage struct {
	Content []ContentPart `json:"content,omitempty"`
}

// DataItem is one item in a data-style output list. Some shapes carry text
// directly on the item rather than in content parts.
type DataItem struct {
	Content []ContentPart `json:"content,omitempty"`
	Text    string        `json:"text,omitempty"`
}

// ContentPart is a typed fragment of message content.
type ContentPart struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// Choice is a chat-completions-style choice.
type Choice struct {
	Message ChoiceMessage `json:"message"`
}

// ChoiceMessage is the message inside a chat-style choice.
type ChoiceMessage struct {
	Content string `json:"content"`
}
