package story

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{1, 180},
		{2, 360},
		{5, 900},
		{10, 1800},
		{60, 10800},
	}

	for _, tt := range tests {
		if got := WordCount(tt.minutes); got != tt.want {
			t.Errorf("WordCount(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}
