package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lumen-studio-go/internal/config"
)

// recordingWriter satisfies MessageWriter and collects written deltas.
type recordingWriter struct {
	deltas []string
}

func (w *recordingWriter) WriteMessage(messageType int, data []byte) error {
	w.deltas = append(w.deltas, string(data))
	return nil
}

func newTestClient(baseURL string) Client {
	return NewClient(config.LLMConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
	})
}

func TestStreamChatMessages_ForwardsDeltasInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		frames := []string{
			"data: {\"choices\":[{\"delta\":{\"content\":\"Sure, \"}}]}\n",
			"data: {\"choices\":[{\"delta\":{\"content\":\"here is one\"}}]}\n",
			"data: [DONE]\n",
		}
		for _, f := range frames {
			_, _ = w.Write([]byte(f))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	writer := &recordingWriter{}
	err := newTestClient(srv.URL).StreamChatMessages(context.Background(),
		[]Message{TextMessage("user", "design me a poster")}, nil, writer)
	if err != nil {
		t.Fatalf("StreamChatMessages() error = %v", err)
	}
	if got := strings.Join(writer.deltas, ""); got != "Sure, here is one" {
		t.Errorf("accumulated = %q, want %q", got, "Sure, here is one")
	}
}

func TestStreamChatMessages_NonOKStatusIsTransportError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMsg  string
		fallback bool
	}{
		{
			name:    "string error payload",
			body:    `{"error":"rate limit exceeded"}`,
			wantMsg: "rate limit exceeded",
		},
		{
			name:    "object error payload",
			body:    `{"error":{"message":"model overloaded"}}`,
			wantMsg: "model overloaded",
		},
		{
			name:     "opaque body falls back to generic message",
			body:     "<html>bad gateway</html>",
			fallback: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			writer := &recordingWriter{}
			err := newTestClient(srv.URL).StreamChatMessages(context.Background(),
				[]Message{TextMessage("user", "hi")}, nil, writer)

			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want *TransportError", err)
			}
			want := tc.wantMsg
			if tc.fallback {
				want = transportFallbackMessage
			}
			if te.Message != want {
				t.Errorf("message = %q, want %q", te.Message, want)
			}
			if len(writer.deltas) != 0 {
				t.Errorf("deltas written on transport error: %q", writer.deltas)
			}
		})
	}
}

func TestStreamChatMessages_SendsFullHistoryWithImageParts(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte("data: [DONE]\n"))
	}))
	defer srv.Close()

	messages := []Message{
		TextMessage("user", "brand refresh ideas"),
		TextMessage("assistant", "Here are three directions."),
		ImageMessage("user", "match this palette", "data:image/png;base64,AAAA"),
	}
	if err := newTestClient(srv.URL).StreamChatMessages(context.Background(), messages, nil, &recordingWriter{}); err != nil {
		t.Fatalf("StreamChatMessages() error = %v", err)
	}

	if !captured.Stream {
		t.Error("request should set stream=true")
	}
	if len(captured.Messages) != 3 {
		t.Fatalf("messages sent = %d, want 3", len(captured.Messages))
	}
	parts, ok := captured.Messages[2].Content.([]interface{})
	if !ok || len(parts) != 2 {
		t.Fatalf("last message content = %#v, want 2 multimodal parts", captured.Messages[2].Content)
	}
	img, ok := parts[1].(map[string]interface{})
	if !ok || img["type"] != "image_url" {
		t.Errorf("second part = %#v, want image_url part", parts[1])
	}
}

func TestComplete_ReturnsFullText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			t.Error("Complete must not request streaming")
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"scene one: the loft"}}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Complete(context.Background(),
		[]Message{TextMessage("user", "plan a shoot")}, nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "scene one: the loft" {
		t.Errorf("Complete() = %q", got)
	}
}
