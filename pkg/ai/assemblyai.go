package ai

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// Utterance is one speaker turn of a transcript
type Utterance struct {
	Speaker string
	Text    string
	Start   time.Duration
	End     time.Duration
}

// Transcriber turns recorded audio into speaker-labelled utterances
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) ([]Utterance, error)
}

// AssemblyAIClient transcribes audio with speaker diarization
type AssemblyAIClient struct {
	client   *aai.Client
	language string
}

var _ Transcriber = (*AssemblyAIClient)(nil)

// NewAssemblyAIClient creates an AssemblyAI client, nil when no API key is configured
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	if cfg == nil || cfg.APIKey == "" {
		return nil
	}
	return &AssemblyAIClient{
		client:   aai.NewClient(cfg.APIKey),
		language: cfg.Language,
	}
}

// Transcribe uploads audio and waits for the finished transcript
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader) ([]Utterance, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if c.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.language)
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		errorMsg := "unknown error"
		if transcript.Error != nil {
			errorMsg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai transcription failed: %s", errorMsg)
	}

	return UtterancesFromTranscript(transcript), nil
}

// UtterancesFromTranscript maps SDK utterances, falling back to the full text
// as a single turn when diarization produced nothing.
func UtterancesFromTranscript(transcript aai.Transcript) []Utterance {
	out := make([]Utterance, 0, len(transcript.Utterances))
	for _, utt := range transcript.Utterances {
		var u Utterance
		if utt.Text != nil {
			u.Text = strings.TrimSpace(*utt.Text)
		}
		if u.Text == "" {
			continue
		}
		if utt.Speaker != nil {
			u.Speaker = *utt.Speaker
		}
		if utt.Start != nil {
			u.Start = time.Duration(*utt.Start) * time.Millisecond
		}
		if utt.End != nil {
			u.End = time.Duration(*utt.End) * time.Millisecond
		}
		out = append(out, u)
	}

	if len(out) == 0 && transcript.Text != nil {
		if text := strings.TrimSpace(*transcript.Text); text != "" {
			out = append(out, Utterance{Speaker: "A", Text: text})
		}
	}
	return out
}
