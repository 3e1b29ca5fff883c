package story

import (
	"strings"
	"testing"

	"bedtime-story-api/internal/domain/entity"
)

const titleInstruction = "Start with a creative title (less than 10 words) on its own line, then a blank line, then the story."

func TestBuildPromptTitleInstructionPrefix(t *testing.T) {
	b := NewPromptBuilder()

	tests := []struct {
		name         string
		mode         entity.StoryMode
		modification string
		taleTitle    string
	}{
		{"original", entity.StoryModeOriginal, "", ""},
		{"original about", entity.StoryModeOriginalAbout, "a brave squirrel", ""},
		{"classic unspecified", entity.StoryModeClassic, "", ""},
		{"classic named", entity.StoryModeClassic, "", "Cinderella"},
		{"classic mixed unspecified", entity.StoryModeClassicMixed, "the wolf is friendly", ""},
		{"classic mixed named", entity.StoryModeClassicMixed, "the wolf is friendly", "Little Red Riding Hood"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Build(tt.mode, 5, tt.modification, nil, tt.taleTitle)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if !strings.HasPrefix(got, titleInstruction) {
				t.Errorf("prompt must begin with the title instruction, got %q", got)
			}
		})
	}
}

func TestBuildPromptWordCount(t *testing.T) {
	b := NewPromptBuilder()

	got, err := b.Build(entity.StoryModeOriginal, 5, "", nil, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(got, "approximately 900 words") {
		t.Errorf("5 minute story must target 900 words, got %q", got)
	}

	got, err = b.Build(entity.StoryModeOriginal, 1, "", nil, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(got, "approximately 180 words") {
		t.Errorf("1 minute story must target 180 words, got %q", got)
	}
}

func TestBuildPromptModes(t *testing.T) {
	b := NewPromptBuilder()

	t.Run("original about carries topic", func(t *testing.T) {
		got, err := b.Build(entity.StoryModeOriginalAbout, 5, "a brave squirrel", nil, "")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if !strings.Contains(got, "about a brave squirrel") {
			t.Errorf("topic missing from prompt: %q", got)
		}
	})

	t.Run("classic empty tale title falls back to unspecified form", func(t *testing.T) {
		unspecified, err := b.Build(entity.StoryModeClassic, 5, "", nil, "")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		empty, err := b.Build(entity.StoryModeClassic, 5, "", nil, "")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if unspecified != empty {
			t.Errorf("empty tale title must equal unspecified tale prompt")
		}
		if !strings.Contains(unspecified, "like Little Red Riding Hood, Three Little Pigs, etc.") {
			t.Errorf("unspecified classic prompt must leave tale choice to the backend: %q", unspecified)
		}
	})

	t.Run("classic named tale", func(t *testing.T) {
		got, err := b.Build(entity.StoryModeClassic, 5, "", nil, "Cinderella")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if !strings.Contains(got, `"Cinderella"`) {
			t.Errorf("named tale missing from prompt: %q", got)
		}
	})

	t.Run("classic mixed carries modifications", func(t *testing.T) {
		got, err := b.Build(entity.StoryModeClassicMixed, 5, "the wolf is friendly", nil, "")
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if !strings.Contains(got, "with these modifications: the wolf is friendly") {
			t.Errorf("modifications missing from prompt: %q", got)
		}
	})
}

func TestBuildPromptPersonalizationMode(t *testing.T) {
	b := NewPromptBuilder()

	settings := &entity.PersonalizationSettings{
		Tones:    entity.StringList{"funny"},
		Topics:   entity.StringList{"dragons"},
		ChildAge: 6,
	}

	original, err := b.Build(entity.StoryModeOriginal, 5, "", settings, "")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(original, "The tone should be: funny.") {
		t.Errorf("original mode must use full personalization: %q", original)
	}

	classic, err := b.Build(entity.StoryModeClassic, 5, "", settings, "Cinderella")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if strings.Contains(classic, "The tone should be") || strings.Contains(classic, "dragons") {
		t.Errorf("classic mode must drop tone and topic customization: %q", classic)
	}
	if !strings.Contains(classic, "Make the language and vocabulary appropriate for age 6.") {
		t.Errorf("classic mode must keep the age-only fragment: %q", classic)
	}
}

func TestBuildPromptValidation(t *testing.T) {
	b := NewPromptBuilder()

	if _, err := b.Build(entity.StoryMode("epic"), 5, "", nil, ""); err == nil {
		t.Error("unknown mode must be rejected")
	}
	if _, err := b.Build(entity.StoryModeOriginal, 0, "", nil, ""); err == nil {
		t.Error("non-positive duration must be rejected")
	}
	if _, err := b.Build(entity.StoryModeClassicMixed, 5, "", nil, ""); err == nil {
		t.Error("classic_mixed without modification must be rejected")
	}
	if _, err := b.Build(entity.StoryModeOriginalAbout, 5, "   ", nil, ""); err == nil {
		t.Error("original_about with blank modification must be rejected")
	}
}
