package socket

import (
	"context"
	"log"
	"sync"

	"saathi_server/models"
	"saathi_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// connState tracks which conversation rooms one socket has joined
type connState struct {
	rooms map[string]bool
}

// roomBridge connects socket.io rooms to the in-process listener registry.
// The first socket joining a conversation subscribes the room; the last one
// leaving releases the subscription, so registry callbacks never leak.
type roomBridge struct {
	mu     sync.Mutex
	counts map[string]int
	unsubs map[string]func()
}

func newRoomBridge() *roomBridge {
	return &roomBridge{
		counts: make(map[string]int),
		unsubs: make(map[string]func()),
	}
}

func (b *roomBridge) join(conversationID string, subscribe func() func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[conversationID]++
	if b.counts[conversationID] == 1 {
		b.unsubs[conversationID] = subscribe()
	}
}

func (b *roomBridge) leave(conversationID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.counts[conversationID] == 0 {
		return
	}
	b.counts[conversationID]--
	if b.counts[conversationID] == 0 {
		b.unsubs[conversationID]()
		delete(b.unsubs, conversationID)
		delete(b.counts, conversationID)
	}
}

// NewSocketServer initializes the Socket.IO server that pushes new messages
// to clients watching a conversation
func NewSocketServer(chatService *services.ChatService, registry *services.ListenerRegistry) *socketio.Server {
	server := socketio.NewServer(nil)
	bridge := newRoomBridge()

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("✅ Socket connected:", s.ID())
		s.SetContext(&connState{rooms: make(map[string]bool)})
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		if conversationID == "" {
			log.Println("❌ Invalid conversationId in join request")
			return
		}
		state, ok := s.Context().(*connState)
		if !ok || state.rooms[conversationID] {
			return
		}
		state.rooms[conversationID] = true
		s.Join(conversationID)
		bridge.join(conversationID, func() func() {
			return registry.Subscribe(conversationID, func(conversation models.Conversation) {
				server.BroadcastToRoom("/", conversation.ConversationID, "newMessage", conversation)
			})
		})
		log.Printf("👥 Socket %s joined conversation %s", s.ID(), conversationID)
	})

	server.OnEvent("/", "leave", func(s socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		state, ok := s.Context().(*connState)
		if conversationID == "" || !ok || !state.rooms[conversationID] {
			return
		}
		delete(state.rooms, conversationID)
		s.Leave(conversationID)
		bridge.leave(conversationID)
	})

	server.OnEvent("/", "sendMessage", func(s socketio.Conn, data map[string]string) {
		conversationID := data["conversationId"]
		senderID := data["senderId"]
		text := data["text"]
		if conversationID == "" || senderID == "" || text == "" {
			log.Println("❌ Invalid sendMessage payload")
			return
		}
		if _, err := chatService.SendMessage(context.Background(), conversationID, senderID, text); err != nil {
			log.Printf("❌ Socket send failed for conversation %s: %v", conversationID, err)
		}
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Println("⚠️ Socket error:", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", s.ID(), reason)
		state, ok := s.Context().(*connState)
		if !ok {
			return
		}
		for conversationID := range state.rooms {
			bridge.leave(conversationID)
		}
	})

	return server
}
