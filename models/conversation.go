package models

// ParticipantSnapshot is the denormalized display data stored on a conversation,
// last known at conversation-creation time
type ParticipantSnapshot struct {
	Name     string `dynamodbav:"name" json:"name"`
	PhotoURL string `dynamodbav:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Online   bool   `dynamodbav:"online" json:"online"`
	Premium  bool   `dynamodbav:"premium" json:"premium"`
	Verified bool   `dynamodbav:"verified" json:"verified"`
}

// Message is one entry in a conversation's append-only message list
type Message struct {
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Text      string `dynamodbav:"text" json:"text"`
	Timestamp int64  `dynamodbav:"timestamp" json:"timestamp"` // epoch millis
	IsRead    bool   `dynamodbav:"isRead" json:"isRead"`
}

// Conversation is a two-party message thread, created when an interest is accepted.
// There is at most one conversation per unordered participant pair.
type Conversation struct {
	ConversationID string                         `dynamodbav:"conversationId" json:"conversationId"`
	ParticipantIDs []string                       `dynamodbav:"participantIds" json:"participantIds"`
	Participants   map[string]ParticipantSnapshot `dynamodbav:"participants" json:"participants"`
	Messages       []Message                      `dynamodbav:"messages" json:"messages"`
	LastRead       map[string]int64               `dynamodbav:"lastRead" json:"lastRead"`
	CreatedAt      string                         `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"

// HasParticipant reports whether the given user id is one of the two participants
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant id that is not the given one
func (c *Conversation) OtherParticipant(userID string) string {
	for _, id := range c.ParticipantIDs {
		if id != userID {
			return id
		}
	}
	return ""
}
