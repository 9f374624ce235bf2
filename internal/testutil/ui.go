package testutil

import "sync"

// ScriptedUI records alerts and answers confirmations from a script.
type ScriptedUI struct {
	mu      sync.Mutex
	alerts  []string
	prompts []string
	answers []bool
}

// NewScriptedUI returns a UI that answers confirmations with answers in
// order, then with false.
func NewScriptedUI(answers ...bool) *ScriptedUI {
	return &ScriptedUI{answers: answers}
}

// Alert records msg.
func (u *ScriptedUI) Alert(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.alerts = append(u.alerts, msg)
}

// Confirm records msg and returns the next scripted answer.
func (u *ScriptedUI) Confirm(msg string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.prompts = append(u.prompts, msg)
	if len(u.answers) == 0 {
		return false
	}
	answer := u.answers[0]
	u.answers = u.answers[1:]
	return answer
}

// Alerts returns the recorded alerts.
func (u *ScriptedUI) Alerts() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.alerts...)
}

// Prompts returns the recorded confirmation questions.
func (u *ScriptedUI) Prompts() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.prompts...)
}
