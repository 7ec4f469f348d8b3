package uniuri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	a, b := Token(), Token()

	assert.Len(t, a, TokenLen)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.True(t, strings.ContainsRune(string(Base36), r), "unexpected rune %q", r)
	}
}

func TestNewLenChars(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		chars   []byte
		wantErr error
		wantLen int
	}{
		{name: "binary", length: 64, chars: []byte("01"), wantLen: 64},
		{name: "empty", length: 0, chars: Base36, wantLen: 0},
		{name: "single char", length: 4, chars: []byte("a"), wantErr: ErrCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLenChars(tt.length, tt.chars)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Empty(t, strings.Trim(got, string(tt.chars)))
		})
	}
}
