package site

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"
)

// ContactForm collects a name, an email address and a message. Nothing is
// sent anywhere: completing the form only produces an acknowledgement.
type ContactForm struct {
	Name    string
	Email   string
	Message string

	form *huh.Form
}

// NewContactForm builds the form with its fields bound to the struct.
func NewContactForm() *ContactForm {
	c := &ContactForm{}
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("お名前 / NAME").
				Value(&c.Name).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Key("email").
				Title("メールアドレス / EMAIL").
				Value(&c.Email).
				Validate(ValidateEmail),
			huh.NewText().
				Key("message").
				Title("メッセージ / MESSAGE").
				Lines(5).
				Value(&c.Message).
				Validate(ValidateMessage),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
	return c
}

// Form returns the underlying huh form for embedding in a bubbletea program.
func (c *ContactForm) Form() *huh.Form {
	return c.form
}

// SetForm stores the form returned by huh's Update.
func (c *ContactForm) SetForm(f *huh.Form) {
	c.form = f
}

// Completed reports whether the user submitted the form.
func (c *ContactForm) Completed() bool {
	return c.form != nil && c.form.State == huh.StateCompleted
}

// Aborted reports whether the user cancelled the form.
func (c *ContactForm) Aborted() bool {
	return c.form != nil && c.form.State == huh.StateAborted
}

// Acknowledgement is shown once the form is complete.
func (c *ContactForm) Acknowledgement() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "visitor"
	}
	return fmt.Sprintf("回路接続完了 / CIRCUIT ESTABLISHED\n\nThanks, %s. Your message has been noted.", name)
}

// ValidateEmail accepts a single bare address.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fmt.Errorf("%q is not an email address", s)
	}
	return nil
}

// ValidateMessage requires some non-blank text.
func ValidateMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("message is required")
	}
	return nil
}
