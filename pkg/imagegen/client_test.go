package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/pkg/log"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	m.Run()
}

func newTestClient(baseURL string) Client {
	return NewClient(config.ImageGenConfig{APIKey: "img-key", BaseURL: baseURL})
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer img-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.GenerateImage {
			t.Error("generateImage flag not set")
		}
		if req.ImagePrompt != "vintage jazz poster" {
			t.Errorf("imagePrompt = %q", req.ImagePrompt)
		}
		_, _ = w.Write([]byte(`{"image":"data:image/png;base64,QUJD"}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Generate(context.Background(), "vintage jazz poster")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "data:image/png;base64,QUJD" {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerate_ErrorPayloadSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"prompt rejected"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "prompt rejected") {
		t.Fatalf("error = %v, want to contain %q", err, "prompt rejected")
	}
}

func TestGenerate_EmptyImageIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty image reference")
	}
}
