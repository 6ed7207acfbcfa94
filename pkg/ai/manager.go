package ai

import (
	"fmt"
	"io"
	"sync"
)

// Manager holds the named LLM clients of the process
type Manager struct {
	clients map[string]Client
	mu      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]Client),
	}
}

// RegisterClient builds a client for config.Provider and stores it under name
func (m *Manager) RegisterClient(name string, config Config) error {
	var client Client
	var err error

	switch config.Provider {
	case "gemini":
		client, err = NewGeminiClient(config)
	case "openai", "groq":
		client, err = NewOpenAIClient(config)
	default:
		return fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	m.SetClient(name, client)
	return nil
}

// SetClient stores an already built client under name, replacing any previous one
func (m *Manager) SetClient(name string, client Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[name] = client
}

func (m *Manager) GetClient(name string) (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, exists := m.clients[name]
	if !exists {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// Close closes every client holding a connection
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, client := range m.clients {
		if closer, ok := client.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close %s: %w", name, err)
			}
		}
		delete(m.clients, name)
	}
	return firstErr
}
