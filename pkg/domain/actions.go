package domain

// Built-in action names predefined by the dialogue runtime. Bot designers do
// not declare these; every importer tree injects them into the NLU training
// data so the action classifier has at least one example per built-in.
const (
	ActionListen                = "action_listen"
	ActionRestart               = "action_restart"
	ActionSessionStart          = "action_session_start"
	ActionDefaultFallback       = "action_default_fallback"
	ActionDeactivateForm        = "action_deactivate_form"
	ActionRevertFallbackEvents  = "action_revert_fallback_events"
	ActionDefaultAskAffirmation = "action_default_ask_affirmation"
	ActionDefaultAskRephrase    = "action_default_ask_rephrase"
	ActionBack                  = "action_back"
)

// DefaultActionNames returns the names of all built-in actions. The returned
// slice is a fresh copy; callers may mutate it.
func DefaultActionNames() []string {
	return []string{
		ActionListen,
		ActionRestart,
		ActionSessionStart,
		ActionDefaultFallback,
		ActionDeactivateForm,
		ActionRevertFallbackEvents,
		ActionDefaultAskAffirmation,
		ActionDefaultAskRephrase,
		ActionBack,
	}
}
