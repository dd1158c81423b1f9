package services

import (
	"math/rand"
	"time"

	"saathi_server/models"
)

// ReplyGenerator produces the simulated peer's reply to an inbound message.
// It stands in for a real message-delivery path; swapping the implementation
// must not touch the listener contract. Returning ok=false suppresses the
// reply.
type ReplyGenerator interface {
	ComposeReply(conversation models.Conversation, inbound models.Message) (text string, ok bool)
}

// CannedReplyGenerator answers with a random canned phrase, the way the
// simulated peer in the demo backend "types" back.
type CannedReplyGenerator struct{}

var cannedReplies = []string{
	"That's so interesting! Tell me more 😊",
	"Haha, I was just thinking the same thing!",
	"I'd love to hear more about that.",
	"That sounds wonderful!",
	"Really? What happened next?",
	"I completely agree with you on that.",
	"You have such a great way of putting things!",
}

func (CannedReplyGenerator) ComposeReply(_ models.Conversation, _ models.Message) (string, bool) {
	return cannedReplies[rand.Intn(len(cannedReplies))], true
}

// DefaultReplyDelay is the jittered 2000-4000ms window before the simulated
// reply lands
func DefaultReplyDelay() time.Duration {
	return 2*time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
}
