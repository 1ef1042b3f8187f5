package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonRow struct {
	ID   string `json:"id"`
	Rank int    `json:"rank"`
}

func TestDecodeJSONArray(t *testing.T) {
	got, err := DecodeJSONArray[jsonRow](context.Background(),
		strings.NewReader(`[{"id":"a","rank":1},{"id":"b","rank":2}]`))
	require.NoError(t, err)
	assert.Equal(t, []jsonRow{{"a", 1}, {"b", 2}}, got)
}

func TestDecodeJSONArray_Empty(t *testing.T) {
	for _, input := range []string{"", "[]", "  [ ]  "} {
		got, err := DecodeJSONArray[jsonRow](context.Background(), strings.NewReader(input))
		require.NoError(t, err, input)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestDecodeJSONArray_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"object not array", `{"id":"a"}`, "expected '['"},
		{"bad element", `[{"id":1}]`, "decode element 0"},
		{"truncated", `[{"id":"a"}`, "closing token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSONArray[jsonRow](context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeJSONArray_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DecodeJSONArray[jsonRow](ctx, strings.NewReader(`[{"id":"a"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}
