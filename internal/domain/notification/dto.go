package notification

// NotificationResponse represents a log entry in API responses.
type NotificationResponse struct {
	ID           string  `json:"id"`
	Message      string  `json:"message"`
	Type         string  `json:"type"`
	Channel      string  `json:"channel"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message,omitempty"`
	SentAt       *string `json:"sent_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func (n *Notification) ToResponse() NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		Channel:   string(n.Channel),
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if n.ErrorMessage != nil {
		resp.ErrorMessage = n.ErrorMessage
	}
	if n.SentAt != nil {
		formatted := n.SentAt.Format("2006-01-02 15:04:05")
		resp.SentAt = &formatted
	}
	return resp
}
