package models

// WebhookPayload is the body Meta posts to the webhook endpoint.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry groups the changes of one business account.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange carries one notification.
type WebhookChange struct {
	Value WebhookValue `json:"value"`
	Field string       `json:"field"`
}

// WebhookValue holds the inbound messages and the contacts that sent them.
// Delivery statuses arrive in the same envelope and are ignored.
type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Contacts         []Contact        `json:"contacts"`
	Messages         []InboundMessage `json:"messages"`
}

// Contact identifies the herd manager writing in.
type Contact struct {
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
	WaID string `json:"wa_id"`
}

// InboundMessage is a message sent by a herd manager. Only text and
// interactive replies can carry a command.
type InboundMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextContent        `json:"text,omitempty"`
	Interactive *InteractiveContent `json:"interactive,omitempty"`
}

// TextContent is the body of a text message.
type TextContent struct {
	Body string `json:"body"`
}

// InteractiveContent is a button or list reply. The reply id holds the command.
type InteractiveContent struct {
	Type        string     `json:"type"`
	ButtonReply *ReplyItem `json:"button_reply,omitempty"`
	ListReply   *ReplyItem `json:"list_reply,omitempty"`
}

// ReplyItem is the selected button or list row.
type ReplyItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
