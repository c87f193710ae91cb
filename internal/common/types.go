package common

import (
	"github.com/Akashdeep-Patra/modpanel/internal/backend"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	tea "github.com/charmbracelet/bubbletea"
)

// ── Sections ────────────────────────────────────────────────────────────────

// SectionMeta describes a panel section for the tab bar. Each section shows
// one list.
type SectionMeta struct {
	List  rows.ListID
	Name  string // Display name shown in the tab bar.
	Icon  string // Unicode icon (nerdfont-free, works in all terminals).
	Empty string // Placeholder shown when the list has no rows.
	// Action labels the per-row button; empty means rows have none.
	Action string
}

// AllSections is the ordered list of sections.
var AllSections = []SectionMeta{
	{List: rows.ListItems, Name: "Items", Icon: "◆", Empty: "No registered items", Action: "Pin"},
	{List: rows.ListHistory, Name: "History", Icon: "↻", Empty: "No actions yet"},
}

// Section returns the metadata of list id.
func Section(id rows.ListID) (SectionMeta, bool) {
	for _, s := range AllSections {
		if s.List == id {
			return s, true
		}
	}
	return SectionMeta{}, false
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg asks the panel to reload its snapshot from the backend. Stale
// means the source is known to have changed, so cached snapshots are
// dropped first.
type RefreshMsg struct{ Stale bool }

// SnapshotMsg delivers a loaded snapshot, or the error that prevented it.
type SnapshotMsg struct {
	Snapshot *backend.Snapshot
	Err      error
}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// SwitchSectionMsg requests a section switch.
type SwitchSectionMsg struct{ List rows.ListID }

// ToggleHelpMsg toggles the help overlay.
type ToggleHelpMsg struct{}

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}
