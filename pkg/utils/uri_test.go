package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	defer func(p string) { Prefix = p }(Prefix)

	tests := []struct {
		prefix string
		uri    string
		want   string
	}{
		{"/", "/register", "/register"},
		{"", "/login", "/login"},
		{"/chat", "/register", "/chat/register"},
		{"/chat/", "/login", "/chat/login"},
		{"/chat", "/", "/chat"},
	}
	for _, tt := range tests {
		Prefix = tt.prefix
		assert.Equal(t, tt.want, URL(tt.uri), "prefix %q uri %q", tt.prefix, tt.uri)
	}
}
