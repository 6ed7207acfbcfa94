package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n[1,2]\n```", want: `[1,2]`},
		{name: "prose around", in: "Sure! Here it is: {\"a\":{\"b\":2}} hope it helps", want: `{"a":{"b":2}}`},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"summary\":\"ok\"}\n```", &out))
	assert.Equal(t, "ok", out.Summary)

	assert.ErrorIs(t, DecodeJSON("", &out), ErrEmptyResponse)
	assert.Error(t, DecodeJSON("{not json", &out))
}
