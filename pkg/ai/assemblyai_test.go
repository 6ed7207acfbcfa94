package ai

import (
	"testing"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

func TestUtterancesFromTranscript(t *testing.T) {
	transcript := aai.Transcript{
		Utterances: []aai.TranscriptUtterance{
			{Speaker: aai.String("A"), Text: aai.String(" Let's begin. "), Start: aai.Int64(0), End: aai.Int64(1500)},
			{Speaker: aai.String("B"), Text: aai.String("   ")},
			{Speaker: aai.String("B"), Text: aai.String("Agreed."), Start: aai.Int64(1600), End: aai.Int64(2000)},
		},
	}

	got := UtterancesFromTranscript(transcript)
	assert.Equal(t, []Utterance{
		{Speaker: "A", Text: "Let's begin.", Start: 0, End: 1500 * time.Millisecond},
		{Speaker: "B", Text: "Agreed.", Start: 1600 * time.Millisecond, End: 2 * time.Second},
	}, got)
}

func TestUtterancesFromTranscript_FallsBackToText(t *testing.T) {
	got := UtterancesFromTranscript(aai.Transcript{Text: aai.String("hello everyone")})
	assert.Equal(t, []Utterance{{Speaker: "A", Text: "hello everyone"}}, got)

	assert.Empty(t, UtterancesFromTranscript(aai.Transcript{}))
}

func TestNewAssemblyAIClient_DisabledWithoutKey(t *testing.T) {
	assert.Nil(t, NewAssemblyAIClient(nil))
	assert.Nil(t, NewAssemblyAIClient(&config.AssemblyAIConfig{}))
	assert.NotNil(t, NewAssemblyAIClient(&config.AssemblyAIConfig{APIKey: "k", Language: "ja"}))
}
