package voice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
)

func newTestTranscriber(t *testing.T, handler http.HandlerFunc) *Transcriber {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTranscriber("test-key", srv.URL, "whisper-1", zap.NewNop())
}

func TestTranscribe(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`{"text": "what time is it"}`))
	})

	text, err := tr.Transcribe(context.Background(), []byte("fake audio"), "audio/webm")

	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "what time is it" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscribe_EmptyTranscript(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": ""}`))
	})

	_, err := tr.Transcribe(context.Background(), []byte("static"), "audio/wav")

	if !errors.Is(err, domain.ErrRecognitionFailure) {
		t.Errorf("got err %v, want ErrRecognitionFailure", err)
	}
}

func TestTranscribe_UpstreamError(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := tr.Transcribe(context.Background(), []byte("audio"), "audio/wav")

	if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
		t.Errorf("got err %v, want ErrCollaboratorUnavailable", err)
	}
}

func TestTranscribe_MissingAPIKey(t *testing.T) {
	tr := NewTranscriber("", "http://localhost:1", "whisper-1", zap.NewNop())

	_, err := tr.Transcribe(context.Background(), []byte("audio"), "audio/wav")

	if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
		t.Errorf("got err %v, want ErrCollaboratorUnavailable", err)
	}
}
