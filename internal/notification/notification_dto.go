package notification

import "time"

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	RelatedID *string `json:"related_id,omitempty"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedID != nil {
		v := n.RelatedID.String()
		resp.RelatedID = &v
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
