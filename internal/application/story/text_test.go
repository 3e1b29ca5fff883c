package story

import "testing"

func TestSplitTitleBody(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "title blank line body",
			text:      "The Sleepy Dragon\n\nOnce upon a time.",
			wantTitle: "The Sleepy Dragon",
			wantBody:  "Once upon a time.",
		},
		{
			name:      "no blank line between title and body",
			text:      "The Sleepy Dragon\nOnce upon a time.",
			wantTitle: "The Sleepy Dragon",
			wantBody:  "Once upon a time.",
		},
		{
			name:      "markdown heading title",
			text:      "# The Sleepy Dragon\n\nOnce upon a time.",
			wantTitle: "The Sleepy Dragon",
			wantBody:  "Once upon a time.",
		},
		{
			name:      "single line has no title",
			text:      "Once upon a time.",
			wantTitle: "",
			wantBody:  "Once upon a time.",
		},
		{
			name:      "empty input",
			text:      "",
			wantTitle: "",
			wantBody:  "",
		},
		{
			name:      "surrounding whitespace trimmed",
			text:      "\n\n  The Sleepy Dragon\n\nOnce upon a time.\n\n",
			wantTitle: "The Sleepy Dragon",
			wantBody:  "Once upon a time.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := SplitTitleBody(tt.text)
			if title != tt.wantTitle || body != tt.wantBody {
				t.Errorf("SplitTitleBody(%q) = (%q, %q), want (%q, %q)",
					tt.text, title, body, tt.wantTitle, tt.wantBody)
			}
		})
	}
}
