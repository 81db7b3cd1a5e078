package brevo

type sendRequest struct {
	Sender      sender            `json:"sender"`
	To          []recipient       `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
}

type sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}
