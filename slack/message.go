package slack

// Message is the body returned to Slack in answer to a slash command.
// Slash command replies are always HTTP 200; response_type "ephemeral"
// keeps them visible to the invoking user only.
type Message struct {
	ResponseType string  `json:"response_type"`
	Text         string  `json:"text,omitempty"`
	Blocks       []Block `json:"blocks,omitempty"`
}

// Block is one element of Slack's block layout. Only section blocks are
// used here.
type Block struct {
	Type   string  `json:"type"`
	Text   *Text   `json:"text,omitempty"`
	Fields []*Text `json:"fields,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Ephemeral builds a plain text ephemeral message.
func Ephemeral(text string) Message {
	return Message{ResponseType: "ephemeral", Text: text}
}

// EphemeralBlocks builds an ephemeral message with a block layout and a
// plain-text fallback.
func EphemeralBlocks(fallback string, blocks []Block) Message {
	return Message{ResponseType: "ephemeral", Text: fallback, Blocks: blocks}
}

// Mrkdwn wraps a string as a mrkdwn text object.
func Mrkdwn(text string) *Text {
	return &Text{Type: "mrkdwn", Text: text}
}

// Section builds a section block with a single mrkdwn body.
func Section(text string) Block {
	return Block{Type: "section", Text: Mrkdwn(text)}
}

// SectionFields builds a section block with a two-column field list.
func SectionFields(fields ...*Text) Block {
	return Block{Type: "section", Fields: fields}
}
