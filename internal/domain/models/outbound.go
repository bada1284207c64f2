package models

// OutboundMessageRequest represents requests to send a message manually via the API.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// CommandReply is the text answer produced for a herd command.
type CommandReply struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// String renders the reply as a WhatsApp text body.
func (r CommandReply) String() string {
	if r.Title == "" {
		return r.Message
	}
	return "*" + r.Title + "*\n" + r.Message
}
