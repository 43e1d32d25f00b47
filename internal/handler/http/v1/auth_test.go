package v1

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAPIKeyAuth_RejectsWithChallenge(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().RankAuthorities(gomock.Any(), gomock.Any()).Times(0)

	testCases := []struct {
		name    string
		headers map[string]string
		message string
	}{
		{"no key", map[string]string{}, "API key required"},
		{"blank key", map[string]string{"X-API-Key": "   "}, "API key required"},
		{"wrong key", map[string]string{"X-API-Key": "test-api-key-2"}, "Invalid API key"},
		{"empty bearer", map[string]string{"Authorization": "Bearer "}, "API key required"},
		{"basic scheme", map[string]string{"Authorization": "Basic test-api-key"}, "API key required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := makeRequest(router, "GET", "/api/v1/incidents/"+testUUID+"/candidates", nil, tc.headers)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
			assert.Contains(t, w.Header().Get("WWW-Authenticate"), "X-API-Key")
		})
	}
}

func TestAPIKeyAuth_HealthIsPublic(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", bytes.NewBufferString(""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
}

func TestKnownKey(t *testing.T) {
	keys := [][]byte{[]byte("alpha"), []byte("beta")}

	assert.True(t, knownKey(keys, "alpha"))
	assert.True(t, knownKey(keys, "beta"))
	assert.False(t, knownKey(keys, "gamma"))
	assert.False(t, knownKey(keys, "alph"))
	assert.False(t, knownKey(nil, "alpha"))
}

const testUUID = "3f1c2a9e-7b4d-4c5e-9a10-2b8f6d7e1c44"
