package printer

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func lines(d *Document) []string {
	// drop the ESC @ reset
	body := bytes.TrimPrefix(d.Bytes(), []byte{ESC, '@'})
	return strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
}

func TestRowAlignsRightColumn(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  string
	}{
		{name: "fits", left: "2x Cola", right: "100.00", want: "2x Cola" + strings.Repeat(" ", 32-7-6) + "100.00"},
		{name: "truncated", left: "1x Extremely Long Paneer Butter Masala", right: "250.00", want: "1x Extremely Long Paneer. 250.00"},
		{name: "unicode", left: "1x Chai ☕", right: "20.00", want: "1x Chai ☕" + strings.Repeat(" ", 32-9-5) + "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lines(NewDocument(Width58mm).Row(tt.left, tt.right))
			if len(got) != 1 {
				t.Fatalf("Row() wrote %d lines, want 1", len(got))
			}
			if n := utf8.RuneCountInString(got[0]); n != Width58mm {
				t.Errorf("line width = %d, want %d", n, Width58mm)
			}
			if got[0] != tt.want {
				t.Errorf("Row() = %q, want %q", got[0], tt.want)
			}
		})
	}
}

func TestTextWraps(t *testing.T) {
	got := lines(NewDocument(10).Text("abcdefghijklmnopqrstuvwxyz"))
	want := []string{"abcdefghij", "klmnopqrst", "uvwxyz"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Text() lines = %q, want %q", got, want)
	}
}

func TestSeparatorAndDefaults(t *testing.T) {
	d := NewDocument(0)
	if d.Width() != Width58mm {
		t.Errorf("Width() = %d, want %d", d.Width(), Width58mm)
	}
	got := lines(d.Separator('='))
	if got[0] != strings.Repeat("=", Width58mm) {
		t.Errorf("Separator() = %q", got[0])
	}
}

func TestControlSequences(t *testing.T) {
	b := NewDocument(Width80mm).SetAlign(AlignCenter).SetBold(true).SetFontSize(FontDouble).PartialCut().Bytes()
	want := []byte{ESC, '@', ESC, 'a', AlignCenter, ESC, 'E', 1, GS, '!', FontDouble, GS, 'V', 0x01}
	if !bytes.Equal(b, want) {
		t.Errorf("Bytes() = % x, want % x", b, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Cola", 10, "Cola"},
		{"Lassi", 4, "Las."},
		{"Lassi", 1, "L"},
		{"Pâtisserie", 4, "Pât."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
