package websocket

import (
	"testing"
	"time"
)

// TestNewClient creates a client in disconnected state
func TestNewClient(t *testing.T) {
	client := NewClient(DefaultConfig())

	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.IsConnected() {
		t.Error("New client should not be connected")
	}
	if client.getState() != StateDisconnected {
		t.Error("New client should be in disconnected state")
	}
}

// TestDefaultConfig validates development defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Expected localhost, got %s", cfg.Host)
	}
	if cfg.Port != 5000 {
		t.Errorf("Expected port 5000, got %d", cfg.Port)
	}
	if cfg.Path != "/socket" {
		t.Errorf("Expected path /socket, got %s", cfg.Path)
	}
	if cfg.UseTLS {
		t.Error("Development config should not use TLS")
	}
	if cfg.ConnectTimeoutMs != 15000 {
		t.Errorf("Expected 15000ms connect timeout, got %d", cfg.ConnectTimeoutMs)
	}
	if cfg.HeartbeatIntervalMs != 30000 {
		t.Errorf("Expected 30000ms heartbeat, got %d", cfg.HeartbeatIntervalMs)
	}
	if cfg.MaxReconnectAttempts != -1 {
		t.Errorf("Expected unlimited reconnects, got %d", cfg.MaxReconnectAttempts)
	}
}

// TestProductionConfig validates production overrides
func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig("studyverse.example.com")

	if cfg.Host != "studyverse.example.com" {
		t.Errorf("Expected custom host, got %s", cfg.Host)
	}
	if cfg.Port != 443 {
		t.Errorf("Expected port 443, got %d", cfg.Port)
	}
	if !cfg.UseTLS {
		t.Error("Production config should use TLS")
	}
	if cfg.ReconnectMaxDelayMs != 60000 {
		t.Errorf("Expected 60000ms max reconnect delay, got %d", cfg.ReconnectMaxDelayMs)
	}
}

// TestSetAuthToken stores the token
func TestSetAuthToken(t *testing.T) {
	client := NewClient(DefaultConfig())
	client.SetAuthToken("test_jwt_token")

	client.mu.RLock()
	defer client.mu.RUnlock()
	if client.token != "test_jwt_token" {
		t.Errorf("Expected token to be set, got %q", client.token)
	}
}

// TestOnAndEmit delivers payloads to subscribed listeners
func TestOnAndEmit(t *testing.T) {
	client := NewClient(DefaultConfig())

	received := make(chan interface{}, 1)
	client.On(MessageTypeNewNotification, func(payload interface{}) {
		received <- payload
	})

	client.emit(WebSocketMessage{
		Type:    MessageTypeNewNotification,
		Payload: "hello",
	})

	select {
	case payload := <-received:
		if payload != "hello" {
			t.Errorf("Expected payload 'hello', got %v", payload)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Listener was not invoked")
	}
}

// TestOnUnsubscribe removes exactly the returned listener
func TestOnUnsubscribe(t *testing.T) {
	client := NewClient(DefaultConfig())

	first := make(chan struct{}, 2)
	second := make(chan struct{}, 2)

	unsubFirst := client.On(MessageTypeNewMessage, func(interface{}) { first <- struct{}{} })
	client.On(MessageTypeNewMessage, func(interface{}) { second <- struct{}{} })

	unsubFirst()
	client.emit(WebSocketMessage{Type: MessageTypeNewMessage})

	select {
	case <-second:
	case <-time.After(1 * time.Second):
		t.Fatal("Remaining listener was not invoked")
	}

	select {
	case <-first:
		t.Error("Unsubscribed listener should not be invoked")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestWildcardListener receives every message type
func TestWildcardListener(t *testing.T) {
	client := NewClient(DefaultConfig())

	received := make(chan WebSocketMessage, 1)
	client.On("", func(payload interface{}) {
		if msg, ok := payload.(WebSocketMessage); ok {
			received <- msg
		}
	})

	client.emit(WebSocketMessage{Type: MessageTypeMarkAsRead})

	select {
	case msg := <-received:
		if msg.Type != MessageTypeMarkAsRead {
			t.Errorf("Expected mark_as_read, got %s", msg.Type)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Wildcard listener was not invoked")
	}
}

// TestSendNotConnected fails without a connection
func TestSendNotConnected(t *testing.T) {
	client := NewClient(DefaultConfig())

	err := client.Send(MessageTypeSendMessage, map[string]string{"content": "hi"})
	if err == nil {
		t.Fatal("Expected error when sending while disconnected")
	}
	if err.Error() != "not connected" {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestMessageTypeConstants pins the wire event names
func TestMessageTypeConstants(t *testing.T) {
	testCases := []struct {
		msgType  MessageType
		expected string
	}{
		{MessageTypeNewMessage, "get_new_message"},
		{MessageTypeMarkAsRead, "mark_as_read"},
		{MessageTypeNewNotification, "new_notification"},
		{MessageTypeNewJoinRequest, "new_join_request"},
		{MessageTypeCancelJoinRequest, "cancel_join_request"},
		{MessageTypePendingQuestion, "new_pending_question"},
		{MessageTypeNewConversation, "create_new_conversation"},
		{MessageTypeGroupAdmins, "group_admins"},
	}

	for _, tc := range testCases {
		if string(tc.msgType) != tc.expected {
			t.Errorf("Expected %s, got %s", tc.expected, tc.msgType)
		}
	}
}

// TestGetStats starts at zero
func TestGetStats(t *testing.T) {
	client := NewClient(DefaultConfig())
	stats := client.GetStats()

	if stats.MessagesReceived != 0 || stats.MessagesSent != 0 {
		t.Error("New client should have zero message counts")
	}
	if stats.ReconnectCount != 0 {
		t.Error("New client should have zero reconnects")
	}
}
