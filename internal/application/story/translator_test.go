package story

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestTranslator(backend *fakeChatModel, configured bool) *Translator {
	factory := &fakeFactory{models: map[string]*fakeChatModel{"gemini": backend}}
	return NewTranslator(factory, TranslationConfig{
		Provider:   "gemini",
		Model:      "test-model",
		Configured: configured,
	})
}

func TestTranslateEnglishSkipsBackend(t *testing.T) {
	backend := &fakeChatModel{response: "should never be returned"}
	tr := newTestTranslator(backend, true)

	got := tr.Translate(context.Background(), sampleStory, "English")

	if got != sampleStory {
		t.Errorf("English input must pass through unchanged, got %q", got)
	}
	if backend.callCount() != 0 {
		t.Errorf("backend called %d times for English, want 0", backend.callCount())
	}
}

func TestTranslateUnconfiguredDegrades(t *testing.T) {
	backend := &fakeChatModel{response: "Le Dragon Endormi"}
	tr := newTestTranslator(backend, false)

	got := tr.Translate(context.Background(), sampleStory, "French")

	if got != sampleStory {
		t.Errorf("unconfigured backend must degrade to the original text, got %q", got)
	}
	if backend.callCount() != 0 {
		t.Errorf("backend called %d times while unconfigured, want 0", backend.callCount())
	}
}

func TestTranslateSuccess(t *testing.T) {
	translated := "Le Dragon Endormi\n\nIl était une fois un petit dragon qui n'arrêtait pas de bâiller."
	backend := &fakeChatModel{response: translated}
	tr := newTestTranslator(backend, true)

	got := tr.Translate(context.Background(), sampleStory, "French")

	if got != translated {
		t.Errorf("got %q, want %q", got, translated)
	}
	if backend.callCount() != 1 {
		t.Errorf("backend called %d times, want exactly 1", backend.callCount())
	}

	// 翻译指令带上目标语言和原文
	if len(backend.lastMsgs) != 1 {
		t.Fatalf("expected a single user message, got %d", len(backend.lastMsgs))
	}
	instruction := backend.lastMsgs[0].Content
	if !strings.Contains(instruction, "to French") {
		t.Errorf("instruction missing target language: %q", instruction)
	}
	if !strings.Contains(instruction, sampleStory) {
		t.Errorf("instruction missing story text: %q", instruction)
	}
}

func TestTranslateBackendErrorDegrades(t *testing.T) {
	backend := &fakeChatModel{err: errors.New("backend unreachable")}
	tr := newTestTranslator(backend, true)

	got := tr.Translate(context.Background(), sampleStory, "Spanish")
	if got != sampleStory {
		t.Errorf("backend error must degrade to the original text, got %q", got)
	}
}

func TestTranslatorSharesTemplateRegistry(t *testing.T) {
	b := NewPromptBuilder()
	tr := newTestTranslator(&fakeChatModel{}, true)
	if b.registry != tr.registry {
		t.Error("builder and translator must share one template registry")
	}
}

func TestSupportedLanguage(t *testing.T) {
	for _, lang := range SupportedLanguages {
		if !SupportedLanguage(lang) {
			t.Errorf("%s must be supported", lang)
		}
	}
	if SupportedLanguage("Klingon") {
		t.Error("Klingon must not be supported")
	}
}
