package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "sk-test-0123456789abcdef"

func TestIsValidAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "empty", key: "", want: false},
		{name: "placeholder", key: PlaceholderAPIKey, want: false},
		{name: "wrong prefix", key: "pk-0123456789abcdef0123", want: false},
		{name: "too short", key: "sk-short", want: false},
		{name: "valid", key: testAPIKey, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAPIKey(tt.key))
		})
	}
}

func TestOpenAIClient_GenerateImage(t *testing.T) {
	var got ImageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer "+testAPIKey, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created": 1, "data": [{"url": "https://img/1.png", "revised_prompt": "x"}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(testAPIKey, srv.URL+"/v1/", srv.Client(), zap.NewNop())
	url, err := client.GenerateImage(context.Background(), "a logo")
	require.NoError(t, err)

	assert.Equal(t, "https://img/1.png", url)
	assert.Equal(t, "dall-e-3", got.Model)
	assert.Equal(t, "a logo", got.Prompt)
	assert.Equal(t, 1, got.N)
	assert.Equal(t, "1024x1024", got.Size)
	assert.Equal(t, "standard", got.Quality)
	assert.Equal(t, "url", got.ResponseFormat)
}

func TestOpenAIClient_GenerateImageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(testAPIKey, srv.URL, srv.Client(), zap.NewNop())
	_, err := client.GenerateImage(context.Background(), "a logo")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Rate limit reached", apiErr.Message)
}

func TestOpenAIClient_GenerateImageEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"created": 1, "data": []}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(testAPIKey, srv.URL, srv.Client(), zap.NewNop())
	_, err := client.GenerateImage(context.Background(), "a logo")
	assert.ErrorIs(t, err, ErrEmptyImageURL)
}

func TestOpenAIClient_GenerateImageCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOpenAIClient(testAPIKey, srv.URL, srv.Client(), zap.NewNop())
	_, err := client.GenerateImage(ctx, "a logo")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG-bytes"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), zap.NewNop())

	data, err := f.Fetch(context.Background(), srv.URL+"/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG-bytes"), data)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "://bad-url")
	assert.Error(t, err)
}

func TestFetcher_SizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		body := strings.Repeat("x", size)
		w.Header().Set("Content-Type", "image/png")
		if r.URL.Query().Get("chunked") == "" {
			w.Header().Set("Content-Length", strconv.Itoa(size))
		} else if fl, ok := w.(http.Flusher); ok {
			// Без Content-Length размер узнается только при чтении
			fl.Flush()
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), zap.NewNop())
	f.maxBytes = 16

	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "exactly at limit", query: "?size=16", wantErr: false},
		{name: "declared too large", query: "?size=32", wantErr: true},
		{name: "chunked at limit", query: "?size=16&chunked=1", wantErr: false},
		{name: "chunked too large", query: "?size=32&chunked=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := f.Fetch(context.Background(), srv.URL+"/logo.png"+tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrImageTooLarge)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data, 16)
		})
	}
}

func TestNewFetcher_DefaultLimit(t *testing.T) {
	assert.Equal(t, int64(MaxImageSize), NewFetcher(nil, zap.NewNop()).maxBytes)
}
