package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// DecimalEntry is a custom Entry widget that only accepts signed decimal
// input, as used for latitude/longitude fields.
// It embeds widget.Entry to inherit all standard behavior.
type DecimalEntry struct {
	widget.Entry
}

// NewDecimalEntry creates a new instance of DecimalEntry.
func NewDecimalEntry() *DecimalEntry {
	entry := &DecimalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune intercepts text input events.
// It filters characters to digits, one decimal point, and a leading minus.
func (e *DecimalEntry) TypedRune(r rune) {
	switch {
	case r >= '0' && r <= '9':
		e.Entry.TypedRune(r)
	case r == '.' && !strings.ContainsRune(e.Text, '.'):
		e.Entry.TypedRune(r)
	case r == '-' && e.Text == "" && e.CursorColumn == 0:
		e.Entry.TypedRune(r)
	}
	// Ignore everything else.
	// Note: Shortcuts like Ctrl+V (Paste) are handled by TypedShortcut/TypedKey,
	// so non-numeric data could still be pasted. The Validator handles that case.
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *DecimalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
