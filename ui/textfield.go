package ui

import "unicode/utf8"

// TextField is a single-line text buffer edited at its end.
type TextField struct {
	Label string
	Text  string
}

func (f *TextField) Insert(r []rune) {
	for _, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			continue
		}
		f.Text += string(c)
	}
}

func (f *TextField) Backspace() {
	if f.Text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(f.Text)
	f.Text = f.Text[:len(f.Text)-size]
}
