package storage

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteHost(t *testing.T) {
	signed, err := url.Parse("http://minio:9000/bucket/minutes/m-1/a.md?X-Amz-Signature=abc")
	require.NoError(t, err)

	got, err := rewriteHost(signed, "")
	require.NoError(t, err)
	assert.Equal(t, signed.String(), got)

	got, err = rewriteHost(signed, "https://files.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/bucket/minutes/m-1/a.md?X-Amz-Signature=abc", got)

	got, err = rewriteHost(signed, "https://example.com/s3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s3/bucket/minutes/m-1/a.md?X-Amz-Signature=abc", got)
}

func TestObjectNames(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "minutes/m-1/20250301T093000Z.md", MinutesObjectName("m-1", at))
	assert.Equal(t, "audio/m-1/20250301T093000Z_call.wav", AudioObjectName("m-1", "../../etc/call.wav", at))
	assert.Equal(t, "audio/m-1/20250301T093000Z_rec.mp3", AudioObjectName("m-1", `C:\tmp\rec.mp3`, at))
	assert.Equal(t, "audio/m-1/20250301T093000Z_audio", AudioObjectName("m-1", "", at))
}
