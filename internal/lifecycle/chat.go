package lifecycle

import (
	"fmt"
	"strings"

	"jamjam-delivery/internal/apperr"
)

// ChatSender identifies who wrote a chat message.
type ChatSender string

// List of chat senders.
const (
	SenderUser  ChatSender = "user"
	SenderRider ChatSender = "rider"
)

// ChatMessage is one message of the order chat transcript. Times are
// display strings, an artifact of the mock transcript.
type ChatMessage struct {
	ID     string     `json:"id"`
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
	At     string     `json:"time"`
}

// seedChat returns the fixed three-message transcript every order starts with.
func seedChat() []ChatMessage {
	return []ChatMessage{
		{ID: "1", Sender: SenderRider, Text: "Hi! I'm on my way to the pickup location.", At: "14:22"},
		{ID: "2", Sender: SenderUser, Text: "Great! How long will you take?", At: "14:23"},
		{ID: "3", Sender: SenderRider, Text: "About 5 minutes. I'm close by!", At: "14:23"},
	}
}

// SendChatMessage appends a user message and schedules the canned rider
// reply. The reply is generation-guarded: a reset before it fires drops it.
func (f *Flow) SendChatMessage(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty chat message", apperr.ErrValidation)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	at := f.now().Format("15:04")
	f.chatSeq++
	f.chat = append(f.chat, ChatMessage{
		ID:     fmt.Sprintf("m%d", f.chatSeq),
		Sender: SenderUser,
		Text:   text,
		At:     at,
	})

	f.after(f.timings.ChatReplyDelay, func() {
		f.chatSeq++
		f.chat = append(f.chat, ChatMessage{
			ID:     fmt.Sprintf("m%d", f.chatSeq),
			Sender: SenderRider,
			Text:   "Got it! Thanks for letting me know.",
			At:     at,
		})
	})
	return nil
}

// Chat returns a copy of the transcript.
func (f *Flow) Chat() []ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ChatMessage, len(f.chat))
	copy(out, f.chat)
	return out
}
