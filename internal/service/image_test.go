package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resiplicity/backend/internal/types"
)

func TestGeneratePlatingImage_ReturnsRelayURL(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req relayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(relayResponse{URL: "https://images.example.com/out.webp"})
	}))
	defer server.Close()

	t.Setenv("IMAGE_RELAY_URL", server.URL)
	svc := NewPlatingImageService(nil)

	url, err := svc.GeneratePlatingImage(context.Background(), types.PlatingImageRequest{
		Title:   "Coq au Vin",
		Plating: "Serve in a shallow copper pan",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/out.webp", url)
	assert.Contains(t, gotPrompt, "Coq au Vin")
	assert.Contains(t, gotPrompt, "classic 70s style")
	assert.Contains(t, gotPrompt, "Serve in a shallow copper pan")
}

func TestGeneratePlatingImage_RelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	t.Setenv("IMAGE_RELAY_URL", server.URL)
	svc := NewPlatingImageService(nil)

	_, err := svc.GeneratePlatingImage(context.Background(), types.PlatingImageRequest{Title: "Soup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGeneratePlatingImage_EmptyURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(relayResponse{})
	}))
	defer server.Close()

	t.Setenv("IMAGE_RELAY_URL", server.URL)
	svc := NewPlatingImageService(nil)

	_, err := svc.GeneratePlatingImage(context.Background(), types.PlatingImageRequest{Title: "Soup"})
	assert.Error(t, err)
}

func TestBuildPlatingPrompt_Truncates(t *testing.T) {
	req := types.PlatingImageRequest{
		Title:       "Stew",
		Description: strings.Repeat("very long description ", 100),
	}
	prompt := buildPlatingPrompt(req)
	assert.LessOrEqual(t, len(prompt), 900)
}
