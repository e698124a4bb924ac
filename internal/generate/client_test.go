package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/ai-generator/internal/model"
)

// newTestServer starts a server that records the decoded request and replies
// with the given status and body.
func newTestServer(t *testing.T, status int, body string, got *Request, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", ct)
		}
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("Failed to decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_Success(t *testing.T) {
	var got Request
	var calls int32
	srv := newTestServer(t, http.StatusOK, `{"url":"https://x/a.png"}`, &got, &calls)

	client := NewClient(Endpoints{Image: srv.URL, Video: srv.URL + "/video"})
	url, err := client.Generate(context.Background(), model.KindImage, "Космический пейзаж")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if url != "https://x/a.png" {
		t.Errorf("Expected url 'https://x/a.png', got '%s'", url)
	}
	if got.Prompt != "Космический пейзаж" {
		t.Errorf("Expected prompt to be sent verbatim, got '%s'", got.Prompt)
	}
	if got.SafetyTolerance != 6 {
		t.Errorf("Expected safety_tolerance 6, got %d", got.SafetyTolerance)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected exactly one call, got %d", calls)
	}
}

func TestGenerate_RoutesByKind(t *testing.T) {
	var imageCalls, videoCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/generate_image", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&imageCalls, 1)
		_, _ = w.Write([]byte(`{"url":"https://x/a.png"}`))
	})
	mux.HandleFunc("/generate_video", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&videoCalls, 1)
		_, _ = w.Write([]byte(`{"url":"https://x/a.mp4"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(Endpoints{Image: srv.URL + "/generate_image", Video: srv.URL + "/generate_video"})

	url, err := client.Generate(context.Background(), model.KindVideo, "waves")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if url != "https://x/a.mp4" {
		t.Errorf("Expected video url, got %s", url)
	}
	if imageCalls != 0 || videoCalls != 1 {
		t.Errorf("Expected only the video endpoint to be called, got image=%d video=%d", imageCalls, videoCalls)
	}
}

func TestGenerate_CustomSafetyTolerance(t *testing.T) {
	var got Request
	srv := newTestServer(t, http.StatusOK, `{"url":"https://x/a.png"}`, &got, nil)

	client := NewClient(Endpoints{Image: srv.URL}, WithSafetyTolerance(2))
	if _, err := client.Generate(context.Background(), model.KindImage, "p"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.SafetyTolerance != 2 {
		t.Errorf("Expected safety_tolerance 2, got %d", got.SafetyTolerance)
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, 500},
		{"bad request", http.StatusBadRequest, `{"error":"Prompt is required"}`, 400},
		{"timeout status", http.StatusRequestTimeout, `{"error":"Video generation timeout"}`, 408},
		{"missing url", http.StatusOK, `{}`, 0},
		{"blank url", http.StatusOK, `{"url":"   "}`, 0},
		{"malformed json", http.StatusOK, `not json`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body, nil, nil)
			client := NewClient(Endpoints{Image: srv.URL})

			url, err := client.Generate(context.Background(), model.KindImage, "p")
			if err == nil {
				t.Fatalf("Expected error, got url %q", url)
			}

			var genErr *model.GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("Expected GenerationError, got %T: %v", err, err)
			}
			if genErr.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, genErr.StatusCode)
			}
			if genErr.Kind != model.KindImage {
				t.Errorf("Expected kind image, got %s", genErr.Kind)
			}
		})
	}
}

func TestGenerate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := NewClient(Endpoints{Image: endpoint})
	_, err := client.Generate(context.Background(), model.KindImage, "p")
	if !model.IsGeneration(err) {
		t.Fatalf("Expected GenerationError, got %T: %v", err, err)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(Endpoints{Video: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, model.KindVideo, "p")
	var genErr *model.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got %T: %v", err, err)
	}
	if !genErr.Timeout {
		t.Errorf("Expected Timeout to be set, got %+v", genErr)
	}
}

func TestEndpoints_For(t *testing.T) {
	e := DefaultEndpoints()

	url, err := e.For(model.KindImage)
	if err != nil || url != DefaultImageEndpoint {
		t.Errorf("For(image) = %s, %v", url, err)
	}

	url, err = e.For(model.KindVideo)
	if err != nil || url != DefaultVideoEndpoint {
		t.Errorf("For(video) = %s, %v", url, err)
	}

	if _, err := e.For("audio"); !model.IsValidation(err) {
		t.Errorf("Expected ValidationError for unknown kind, got %v", err)
	}

	if _, err := (Endpoints{}).For(model.KindImage); err == nil {
		t.Error("Expected error for empty endpoint")
	}
}

func TestClient_SetEndpoints(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusOK, `{"url":"https://x/b.png"}`, nil, &calls)

	client := NewClient(Endpoints{Image: "http://127.0.0.1:1/unused", Video: srv.URL})
	client.SetEndpoints(Endpoints{Image: srv.URL, Video: srv.URL})

	if got := client.Endpoints().Image; got != srv.URL {
		t.Errorf("Expected image endpoint %s, got %s", srv.URL, got)
	}

	url, err := client.Generate(context.Background(), model.KindImage, "cat")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if url != "https://x/b.png" || atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Request should use the new endpoint, got url %s and %d calls", url, calls)
	}
}
