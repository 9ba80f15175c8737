package ui

import (
	"maps"
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether interactive components may run and carries
// answer overrides for headless runs. Override keys are question IDs; list
// answers are comma-separated.
type HeadlessManager struct {
	forced    *bool
	overrides map[string]string
}

// NewHeadlessManager creates a HeadlessManager that detects headless mode
// from the TTY state of os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{}
}

// IsHeadless reports whether the UI should run without interaction.
// ForceHeadless wins over TTY detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ForceHeadless overrides TTY detection in either direction.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce reverts to automatic TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}

// SetOverrides stores per-question answer overrides for headless runs.
func (h *HeadlessManager) SetOverrides(overrides map[string]string) {
	if len(overrides) == 0 {
		h.overrides = nil
		return
	}
	h.overrides = make(map[string]string, len(overrides))
	maps.Copy(h.overrides, overrides)
}

// Override returns the override for a question ID, if one was set.
func (h *HeadlessManager) Override(id string) (string, bool) {
	if h.overrides == nil {
		return "", false
	}
	v, ok := h.overrides[id]
	return v, ok
}

// HasOverrides reports whether any override has been set.
func (h *HeadlessManager) HasOverrides() bool {
	return len(h.overrides) > 0
}
