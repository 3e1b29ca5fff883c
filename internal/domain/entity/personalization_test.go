package entity

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want StringList
	}{
		{"string array", `["calm","funny"]`, StringList{"calm", "funny"}},
		{"mixed array skips non strings", `["calm",42,null,"funny"]`, StringList{"calm", "funny"}},
		{"null elements never become empty strings", `["calm",null,"funny"]`, StringList{"calm", "funny"}},
		{"single string", `"calm"`, StringList{"calm"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
		{"number", `42`, nil},
		{"object", `{"tone":"calm"}`, nil},
		{"boolean", `true`, nil},
		{"empty array", `[]`, StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.data, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.data, got, tt.want)
			}
		})
	}
}

func TestPersonalizationSettingsDecode(t *testing.T) {
	data := `{
		"tones": ["Other"],
		"tone_custom": "whimsical",
		"topics": "dinosaurs",
		"child_name": "Mia",
		"child_age": 6
	}`

	var settings PersonalizationSettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(settings.Tones, StringList{ToneOther}) {
		t.Errorf("tones = %#v", settings.Tones)
	}
	if settings.ToneCustom != "whimsical" {
		t.Errorf("tone_custom = %q", settings.ToneCustom)
	}
	if !reflect.DeepEqual(settings.Topics, StringList{"dinosaurs"}) {
		t.Errorf("topics = %#v", settings.Topics)
	}
	if settings.ChildName != "Mia" || settings.ChildAge != 6 {
		t.Errorf("child = %q/%d", settings.ChildName, settings.ChildAge)
	}
}

func TestPersonalizationSettingsMalformedFields(t *testing.T) {
	data := `{"tones": {"bad": true}, "topics": 7}`

	var settings PersonalizationSettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		t.Fatalf("malformed fields must not fail decoding: %v", err)
	}
	if settings.Tones != nil || settings.Topics != nil {
		t.Errorf("malformed fields must decode as absent: %#v", settings)
	}
}
