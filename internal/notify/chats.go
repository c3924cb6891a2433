// Package notify delivers pipeline updates over Telegram and hosts the
// interactive bot commands.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// ChatStore persists the set of chats that registered via /start, so
// scheduled runs can notify them across restarts.
type ChatStore struct {
	mu    sync.Mutex
	path  string
	chats map[int64]bool
}

// NewChatStore loads the store from path. A missing file is an empty
// store, not an error.
func NewChatStore(path string) (*ChatStore, error) {
	s := &ChatStore{path: path, chats: make(map[int64]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("chat store: read %s: %w", path, err)
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("chat store: parse %s: %w", path, err)
	}
	for _, id := range ids {
		s.chats[id] = true
	}
	return s, nil
}

// Register adds a chat. Returns true if it was not registered before.
func (s *ChatStore) Register(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chats[id] {
		return false, nil
	}
	s.chats[id] = true
	return true, s.save()
}

// All returns the registered chat IDs in stable order.
func (s *ChatStore) All() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// save writes the store. Must be called with mu held.
func (s *ChatStore) save() error {
	ids := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("chat store: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("chat store: write %s: %w", s.path, err)
	}
	return nil
}
