package requests

// OpenConversationRequest opens (or resumes) the conversation for a session.
type OpenConversationRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// MessageMetadata is the optional structured payload a client attaches to a
// message.
type MessageMetadata struct {
	Service          string   `json:"service,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	ServiceRequestID uint     `json:"serviceRequestId,omitempty"`
}

// SendMessageRequest carries one inbound visitor message.
type SendMessageRequest struct {
	SessionID   string           `json:"sessionId" binding:"required"`
	Message     string           `json:"message" binding:"required"`
	MessageType string           `json:"messageType,omitempty"`
	Metadata    *MessageMetadata `json:"metadata,omitempty"`
}

// SubmitIntakeRequest carries the completed intake form.
type SubmitIntakeRequest struct {
	SessionID   string `json:"sessionId" binding:"required"`
	ServiceType string `json:"serviceType"`
	ClientName  string `json:"clientName"`
	Nationality string `json:"nationality"`
	BirthPlace  string `json:"birthPlace"`
	Residence   string `json:"residence"`
	Phone       string `json:"phone"`
}
