package story

import (
	"encoding/json"
	"strings"
	"testing"

	"bedtime-story-api/internal/domain/entity"
)

func TestBuildFullPersonalization(t *testing.T) {
	tests := []struct {
		name     string
		settings *entity.PersonalizationSettings
		want     string
	}{
		{
			name:     "nil settings",
			settings: nil,
			want:     "",
		},
		{
			name:     "empty settings",
			settings: &entity.PersonalizationSettings{},
			want:     "",
		},
		{
			name: "other tone substituted by custom override",
			settings: &entity.PersonalizationSettings{
				Tones:      entity.StringList{"Other"},
				ToneCustom: "whimsical",
			},
			want: " The tone should be: whimsical.",
		},
		{
			name: "other tone without override rendered literally",
			settings: &entity.PersonalizationSettings{
				Tones: entity.StringList{"Other"},
			},
			want: " The tone should be: Other.",
		},
		{
			name: "multiple tones keep insertion order",
			settings: &entity.PersonalizationSettings{
				Tones: entity.StringList{"funny", "calm"},
			},
			want: " The tone should be: funny, calm.",
		},
		{
			name: "topics only",
			settings: &entity.PersonalizationSettings{
				Topics: entity.StringList{"dragons", "space"},
			},
			want: " The story should include: dragons, space.",
		},
		{
			name: "child name only",
			settings: &entity.PersonalizationSettings{
				ChildName: "Mia",
			},
			want: " The main character should be a child named Mia.",
		},
		{
			name: "age only",
			settings: &entity.PersonalizationSettings{
				ChildAge: 6,
			},
			want: " Make the story, language and vocabulary appropriate for age 6.",
		},
		{
			name: "fragment order is tone then topic then name then age",
			settings: &entity.PersonalizationSettings{
				Tones:     entity.StringList{"calm"},
				Topics:    entity.StringList{"the sea"},
				ChildName: "Leo",
				ChildAge:  5,
			},
			want: " The tone should be: calm. The story should include: the sea. The main character should be a child named Leo. Make the story, language and vocabulary appropriate for age 5.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildFullPersonalization(tt.settings); got != tt.want {
				t.Errorf("BuildFullPersonalization() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildAgeOnlyPersonalization(t *testing.T) {
	if got := BuildAgeOnlyPersonalization(nil); got != "" {
		t.Errorf("nil settings: got %q, want empty", got)
	}
	if got := BuildAgeOnlyPersonalization(&entity.PersonalizationSettings{}); got != "" {
		t.Errorf("no age: got %q, want empty", got)
	}

	got := BuildAgeOnlyPersonalization(&entity.PersonalizationSettings{ChildAge: 6})
	want := " Make the language and vocabulary appropriate for age 6."
	if got != want {
		t.Errorf("age only: got %q, want %q", got, want)
	}

	// 年龄模板在两种模式下必须不同
	full := BuildFullPersonalization(&entity.PersonalizationSettings{ChildAge: 6})
	if full == got {
		t.Errorf("age-only fragment must differ from full-mode fragment, both were %q", got)
	}

	// 音调和主题在年龄模式下被忽略
	withExtras := BuildAgeOnlyPersonalization(&entity.PersonalizationSettings{
		Tones:    entity.StringList{"funny"},
		Topics:   entity.StringList{"dragons"},
		ChildAge: 6,
	})
	if withExtras != want {
		t.Errorf("tones/topics leaked into age-only clause: %q", withExtras)
	}
}

func TestMalformedPersonalizationDoesNotFail(t *testing.T) {
	// 历史客户端可能发送各种破碎的 tones/topics 形态
	payloads := []string{
		`{"tones": "funny", "child_age": 6}`,
		`{"tones": 42}`,
		`{"tones": {"nested": true}}`,
		`{"tones": [1, 2, 3]}`,
		`{"tones": ["funny", 42, "calm"]}`,
		`{"topics": false}`,
	}

	for _, payload := range payloads {
		var s entity.PersonalizationSettings
		if err := json.Unmarshal([]byte(payload), &s); err != nil {
			t.Fatalf("payload %s: unexpected decode error: %v", payload, err)
		}
		// 不应 panic，也不应产生破碎的子句
		clause := BuildFullPersonalization(&s)
		if strings.Contains(clause, "%!") {
			t.Errorf("payload %s: malformed clause %q", payload, clause)
		}
	}
}
