package summarize

import "testing"

func TestCleanModelOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "装飾と連続空白の除去",
			input: "a  b **c** *d*",
			want:  "a b c d",
		},
		{
			name:  "整形用文字の除去",
			input: "# Summary: the _claim_ is `false` - see >notes~",
			want:  "Summary the claim is false see notes",
		},
		{
			name:  "前後の空白のトリム",
			input: "  plain text  ",
			want:  "plain text",
		},
		{
			name:  "改行を含む連続空白",
			input: "line one\n\nline two",
			want:  "line one line two",
		},
		{
			name:  "空文字列",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanModelOutput(tt.input); got != tt.want {
				t.Errorf("CleanModelOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "安全集合の文字はそのまま",
			input: "Did the mayor say this? Yes, in 2024!",
			want:  "Did the mayor say this? Yes, in 2024!",
		},
		{
			name:  "安全集合外の記号を除去",
			input: `Claim about "5G" & <vaccines>`,
			want:  "Claim about 5G  vaccines",
		},
		{
			name:  "非英語の文字は保持される",
			input: "ワクチンに関する主張の検証",
			want:  "ワクチンに関する主張の検証",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.input); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "コロン除去と先頭大文字化",
			input: "FALSE:",
			want:  "False",
		},
		{
			name:  "複数語は先頭のみ大文字",
			input: "mostly TRUE",
			want:  "Mostly true",
		},
		{
			name:  "空文字列",
			input: "",
			want:  "",
		},
		{
			name:  "コロンのみ",
			input: ":",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRating(tt.input); got != tt.want {
				t.Errorf("NormalizeRating(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
