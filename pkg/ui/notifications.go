package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

// commandSender runs a platform notification command
type commandSender struct {
	build func(title, message string) (string, []string)
	run   func(name string, args ...string) error
}

func (s *commandSender) Send(title, message string) error {
	name, args := s.build(title, message)
	return s.run(name, args...)
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func linuxCommand(title, message string) (string, []string) {
	return "notify-send", []string{title, message}
}

func macCommand(title, message string) (string, []string) {
	script := fmt.Sprintf(`display notification %s with title %s`, appleScriptString(message), appleScriptString(title))
	return "osascript", []string{"-e", script}
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Notifier reports the end of a run on the console and, when supported, on the desktop
type Notifier struct {
	console *Console
	sender  NotificationSender
}

// NewNotifier creates a Notifier for the current platform
func NewNotifier(console *Console) *Notifier {
	var sender NotificationSender

	switch runtime.GOOS {
	case "linux":
		sender = &commandSender{build: linuxCommand, run: runCommand}
	case "darwin":
		sender = &commandSender{build: macCommand, run: runCommand}
	}

	return &Notifier{console: console, sender: sender}
}

// NewNotifierWithSender creates a Notifier with an explicit sender; nil disables desktop delivery
func NewNotifierWithSender(console *Console, sender NotificationSender) *Notifier {
	return &Notifier{console: console, sender: sender}
}

// SendSuccess prints and sends a success notification
func (n *Notifier) SendSuccess(title, message string) error {
	n.console.PrintSuccess(title + ": " + message)
	return n.send(title, message)
}

// SendError prints and sends an error notification
func (n *Notifier) SendError(title, message string) error {
	n.console.PrintError(title+": "+message, nil)
	return n.send(title, message)
}

func (n *Notifier) send(title, message string) error {
	if n.sender == nil {
		return nil
	}
	if err := n.sender.Send(title, message); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
