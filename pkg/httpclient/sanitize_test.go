package httpclient

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no query parameters",
			in:   "https://api.example.com/resource",
			want: "https://api.example.com/resource",
		},
		{
			name: "benign parameters untouched",
			in:   "https://api.example.com/search?q=hello&page=2",
			want: "https://api.example.com/search?page=2&q=hello",
		},
		{
			name: "api_key redacted",
			in:   "https://api.example.com/data?api_key=supersecret",
			want: "https://api.example.com/data?api_key=%5BREDACTED%5D",
		},
		{
			name: "token redacted",
			in:   "https://api.example.com/data?token=abc123",
			want: "https://api.example.com/data?token=%5BREDACTED%5D",
		},
		{
			name: "uppercase variant redacted",
			in:   "https://api.example.com/data?API_KEY=supersecret",
			want: "https://api.example.com/data?API_KEY=%5BREDACTED%5D",
		},
		{
			name: "substring match redacted",
			in:   "https://api.example.com/data?access_token=abc&q=ok",
			want: "https://api.example.com/data?access_token=%5BREDACTED%5D&q=ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sanitizeURL(u))
		})
	}
}

func TestSanitizeURLNil(t *testing.T) {
	assert.Equal(t, "", sanitizeURL(nil))
}
