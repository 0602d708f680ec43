package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Call mom", "Call mom"},
		{"styled title", "\x1b[1;33mReminders (2)\x1b[0m", "Reminders (2)"},
		{"icon and title", "\x1b[34m¶\x1b[0m Buy milk", "¶ Buy milk"},
		{"only codes", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "Buy milk", 10, "Buy milk"},
		{"exact", "Buy milk", 8, "Buy milk"},
		{"cut", "Milk for the week", 10, "Milk fo..."},
		{"no room for ellipsis", "Buy milk", 3, "Buy"},
		{"zero width", "Buy milk", 0, ""},
		{"wide glyphs", "こんにちは", 5, "こ..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.width, cfg); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncate_KeepsStyling(t *testing.T) {
	cfg := DefaultConfig().Text
	got := Truncate("\x1b[1mMilk for the week\x1b[0m", 10, cfg)

	if StripANSI(got) != "Milk fo..." {
		t.Errorf("visible text = %q, want %q", StripANSI(got), "Milk fo...")
	}
	if got == StripANSI(got) {
		t.Error("escape codes were dropped")
	}
}

func TestRow(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name  string
		icon  string
		title string
		width int
		want  string
	}{
		{"fits", "◷", "Call mom", 10, "◷ Call mom"},
		{"title cut", "◷", "Call mom tomorrow", 10, "◷ Call ..."},
		{"icon only", "¶", "Buy milk", 2, "¶ "},
		{"icon overflows", "¶", "Buy milk", 1, "¶"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Row(tt.icon, tt.title, tt.width, cfg); got != tt.want {
				t.Errorf("Row(%q, %q, %d) = %q, want %q", tt.icon, tt.title, tt.width, got, tt.want)
			}
		})
	}
}
