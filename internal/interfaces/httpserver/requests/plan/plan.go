package planrequests

// PlanRequest carries one user turn. A null/empty conversation_id starts a
// new conversation.
type PlanRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}
