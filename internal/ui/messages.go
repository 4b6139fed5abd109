package ui

import (
	"moviecompare/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals that the pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals that the terminal is ours again
type resumeRenderingMsg struct{}
