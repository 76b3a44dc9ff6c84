package common

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/miosa/osa-dropdown/style"
)

// KeyHelp renders a formatted key-binding help line for the status bar.
// Each binding is rendered as:
//
//	[key]  description
//
// Bindings whose Enabled() is false are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		keyStr := style.HelpKey.Render("[" + ShortcutLabel(b) + "]")
		helpStr := style.HelpDesc.Render(" " + b.Help().Desc)
		parts = append(parts, keyStr+helpStr)
	}
	return strings.Join(parts, style.HelpSeparator.Render("  ·  "))
}

// ShortcutLabel returns the help key of a binding, or its keys joined with
// "/" when no help key is set. Returns an empty string if the binding has no
// keys.
func ShortcutLabel(b key.Binding) string {
	if h := b.Help().Key; h != "" {
		return h
	}
	return strings.Join(b.Keys(), "/")
}
