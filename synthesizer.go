package main

import (
	"context"
	"errors"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// SpeechSynthesizer converts narration text into MP3 audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// GoogleSynthesizer implements SpeechSynthesizer using the Google Cloud
// Text-to-Speech API.
type GoogleSynthesizer struct {
	client *texttospeech.Client
	voice  string
}

// NewGoogleSynthesizer creates the TTS client. Credentials are resolved the
// usual Google way (GOOGLE_APPLICATION_CREDENTIALS or ambient credentials).
func NewGoogleSynthesizer(ctx context.Context, voiceName string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating text-to-speech client: %w", err)
	}

	return &GoogleSynthesizer{client: client, voice: voiceName}, nil
}

// Synthesize renders the text as MP3 audio in the given language.
func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: language,
			Name:         s.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, errors.New("received empty audio data")
	}
	return resp.AudioContent, nil
}

// Close releases the underlying gRPC connection.
func (s *GoogleSynthesizer) Close() error {
	return s.client.Close()
}
