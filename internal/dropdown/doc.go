// Package dropdown is a single-select dropdown widget for bubbletea screens.
//
// A Widget owns one State. Its parts (Trigger, ValueLabel, OptionsPanel and
// the Options an open panel mounts) hold that State and never talk to each
// other directly.
//
// Allowed here:
// - the open/value/disabled state machine and its activation rules
// - rendering of the trigger and the open panel
//
// Not allowed here:
// - screen layout, focus order, network calls or data loading
package dropdown
