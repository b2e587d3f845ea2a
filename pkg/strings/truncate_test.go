package strings

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world this is a long string",
			maxLen:   15,
			expected: "hello world ...",
		},
		{
			name:     "newlines replaced with spaces",
			input:    "hello\nworld",
			maxLen:   20,
			expected: "hello world",
		},
		{
			name:     "tabs collapsed",
			input:    "hello\t\tworld",
			maxLen:   20,
			expected: "hello world",
		},
		{
			name:     "unicode truncation safe",
			input:    "日本語テスト文字列",
			maxLen:   6,
			expected: "日本語...",
		},
		{
			name:     "maxLen less than MinTruncateLen clamped to 4",
			input:    "hello",
			maxLen:   2,
			expected: "h...",
		},
		{
			name:     "empty string",
			input:    "",
			maxLen:   10,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "fits after whitespace collapse",
			input:    "Sensys   detected\na critical event",
			width:    40,
			expected: "Sensys detected a critical event",
		},
		{
			name:     "drops trailing words",
			input:    "Hello  world!  How are you?",
			width:    18,
			expected: "Hello world! [...]",
		},
		{
			name:     "first word too long",
			input:    "supercalifragilistic expialidocious",
			width:    10,
			expected: "[...]",
		},
		{
			name:     "empty input",
			input:    "",
			width:    10,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Shorten(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("Shorten(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
			}
			if len([]rune(result)) > tt.width {
				t.Errorf("Shorten(%q, %d) returned %d runes", tt.input, tt.width, len([]rune(result)))
			}
		})
	}
}

func TestWrap(t *testing.T) {
	result := Wrap("ucs-stop-dai-mgr is being run to shutdown DaiMgr", 20, 4)
	lines := strings.Split(result, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", result)
	}
	for i, line := range lines {
		if i > 0 && !strings.HasPrefix(line, "    ") {
			t.Errorf("line %d not indented: %q", i, line)
		}
		if len(strings.TrimSpace(line)) > 20 {
			t.Errorf("line %d longer than width: %q", i, line)
		}
	}
	if strings.Join(strings.Fields(result), " ") != "ucs-stop-dai-mgr is being run to shutdown DaiMgr" {
		t.Errorf("wrapping lost words: %q", result)
	}
}

func TestWrap_NoWidth(t *testing.T) {
	if got := Wrap("unchanged text", 0, 2); got != "unchanged text" {
		t.Errorf("Wrap with zero width = %q", got)
	}
}
