package shell

import (
	"fmt"
	"strings"
)

// View names a screen of the application.
type View string

const (
	ViewForm     View = "form"
	ViewTemplate View = "template"
	ViewPreview  View = "preview"
)

// ParseView maps a case-insensitive name onto a View.
func ParseView(raw string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(raw))); v {
	case ViewForm, ViewTemplate, ViewPreview:
		return v, nil
	default:
		return "", fmt.Errorf("shell: unknown view %q", raw)
	}
}

// Variant styles a notice.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a transient user-facing message.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(Notice)
}

// Navigator switches the visible view.
type Navigator interface {
	SwitchView(View)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(View)

func (f NavigatorFunc) SwitchView(v View) { f(v) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}

type nopNavigator struct{}

func (nopNavigator) SwitchView(View) {}
