package models

// Photo is a single gallery entry with its own moderation state
type Photo struct {
	PhotoID string `dynamodbav:"photoId" json:"photoId"`
	URL     string `dynamodbav:"url" json:"url"`
	Status  string `dynamodbav:"status" json:"status"` // approved, pending, rejected
}

// Profile defines the structure for member, vendor, admin and staff accounts
type Profile struct {
	UserID            string   `dynamodbav:"userId" json:"userId"`
	Name              string   `dynamodbav:"name" json:"name"`
	Email             string   `dynamodbav:"email" json:"email"`
	Password          string   `dynamodbav:"password,omitempty" json:"-"`
	Role              string   `dynamodbav:"role" json:"role"`                       // user, vendor, admin, staff
	Status            string   `dynamodbav:"status" json:"status"`                   // active, suspended
	ApprovalStatus    string   `dynamodbav:"approvalStatus" json:"approvalStatus"`   // approved, pending, rejected
	PhotoURL          string   `dynamodbav:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Online            bool     `dynamodbav:"online" json:"online"`
	Premium           bool     `dynamodbav:"premium" json:"premium"`
	Verified          bool     `dynamodbav:"verified" json:"verified"`
	InterestsSent     []string `dynamodbav:"interestsSent" json:"interestsSent"`
	InterestsReceived []string `dynamodbav:"interestsReceived" json:"interestsReceived"`
	InterestsDeclined []string `dynamodbav:"interestsDeclined" json:"interestsDeclined"`
	Shortlisted       []string `dynamodbav:"shortlisted" json:"shortlisted"`
	BlockedUsers      []string `dynamodbav:"blockedUsers" json:"blockedUsers"`
	Photos            []Photo  `dynamodbav:"photos" json:"photos"`
	CreatedAt         string   `dynamodbav:"createdAt" json:"createdAt"`
}

// ProfilesTable is the DynamoDB table name for profiles
const ProfilesTable = "Profiles"

// HasBlocked reports whether the profile has blocked the given user id
func (p *Profile) HasBlocked(userID string) bool {
	for _, id := range p.BlockedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// Snapshot captures the display fields other participants see in a conversation.
// The snapshot is taken at conversation-creation time and is not live-synced.
func (p *Profile) Snapshot() ParticipantSnapshot {
	return ParticipantSnapshot{
		Name:     p.Name,
		PhotoURL: p.PhotoURL,
		Online:   p.Online,
		Premium:  p.Premium,
		Verified: p.Verified,
	}
}
