package service

import (
	"strings"
	"sync/atomic"
)

const chatTestModeNote = "\n\nHinweis: Dies ist eine Test-Antwort, da kein KI-Modell angebunden ist."

var cannedReplies = []string{
	"Ich verstehe Ihre Frage. Lassen Sie mich darüber nachdenken...",
	"Das ist eine interessante Frage! Hier ist meine Antwort...",
	"Basierend auf den verfügbaren Informationen würde ich sagen...",
	"Hier ist eine mögliche Lösung für Ihr Problem...",
	"Das ist ein komplexes Thema. Lassen Sie es mich erklären...",
}

// ChatService answers chat messages from a fixed rotation.
type ChatService struct {
	next atomic.Uint64
}

func NewChatService() *ChatService {
	return &ChatService{}
}

// Reply returns the next canned answer. Safe for concurrent use.
func (s *ChatService) Reply(message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", invalid("message is required")
	}
	i := s.next.Add(1) - 1
	return cannedReplies[i%uint64(len(cannedReplies))] + chatTestModeNote, nil
}
