package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent := r.Header.Get("User-Agent")
		assert.Equal(t, "GoEnergyZero/"+strings.TrimSpace(version), userAgent)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	timeout := 5 * time.Second
	client := HTTPClient(timeout)

	assert.Equal(t, timeout, client.Timeout)
	assert.NotNil(t, client.Transport)

	req, err := http.NewRequest("GET", server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
