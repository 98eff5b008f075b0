// Package rules matches windows against configured window rules.
package rules

import (
	"strings"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/state"
)

// Matches reports whether a window satisfies a rule. Every non-empty
// criterion must match. A rule with no criteria matches nothing.
func Matches(rule config.WindowRule, w *state.ManagedWindow) bool {
	if rule.IsEmpty() {
		return false
	}

	if rule.AppID != "" {
		if !strings.Contains(w.AppID, rule.AppID) && w.AppID != rule.AppID {
			return false
		}
	}

	if rule.Name != "" {
		name := strings.ToLower(w.AppName)
		want := strings.ToLower(rule.Name)
		if !strings.Contains(name, want) && name != want {
			return false
		}
	}

	if rule.Title != "" {
		if !strings.Contains(strings.ToLower(w.Title), strings.ToLower(rule.Title)) {
			return false
		}
	}

	if rule.Class != "" {
		if !strings.Contains(w.Class, rule.Class) && w.Class != rule.Class {
			return false
		}
	}

	return true
}

// WorkspaceFor resolves the workspace a rule-matched window belongs to.
// Global rules with a workspace target win, then per-workspace rules.
// Returns the workspace name, or "" when no rule matches.
func WorkspaceFor(cfg *config.Config, w *state.ManagedWindow) string {
	for _, rule := range cfg.Rules {
		if rule.Workspace != "" && Matches(rule, w) {
			return rule.Workspace
		}
	}
	for _, ws := range cfg.EffectiveWorkspaces() {
		for _, rule := range ws.Rules {
			if Matches(rule, w) {
				return ws.Name
			}
		}
	}
	return ""
}
