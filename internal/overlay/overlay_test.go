package overlay

import "testing"

func TestDispatch_PriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Action
	}{
		{"nothing open quits", Flags{}, Quit},
		{"non-default view resets", Flags{NonDefaultView: true}, ResetView},
		{"sidebar beats view reset", Flags{Sidebar: true, NonDefaultView: true}, CloseSidebar},
		{"filter menu beats sidebar", Flags{FilterMenu: true, Sidebar: true}, CloseFilterMenu},
		{"add-collection beats filter menu", Flags{AddCollection: true, FilterMenu: true}, CloseAddCollection},
		{"settings beats add-collection", Flags{Settings: true, AddCollection: true}, CloseSettings},
		{"delete confirm beats settings", Flags{DeleteConfirm: true, Settings: true}, CloseDeleteConfirm},
		{"privacy auth beats delete confirm", Flags{PrivacyAuth: true, DeleteConfirm: true}, ClosePrivacyAuth},
		{"editor beats privacy auth", Flags{Editor: true, PrivacyAuth: true}, CloseEditor},
		{"detail beats everything", Flags{
			Detail: true, Editor: true, PrivacyAuth: true, DeleteConfirm: true,
			Settings: true, AddCollection: true, FilterMenu: true, Sidebar: true,
			NonDefaultView: true,
		}, CloseDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dispatch(tt.flags); got != tt.want {
				t.Errorf("Dispatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Three back signals with detail and sidebar open: first closes only the
// detail overlay, second the sidebar, third quits.
func TestDispatch_SequentialSignals(t *testing.T) {
	flags := Flags{Detail: true, Sidebar: true}

	if got := Dispatch(flags); got != CloseDetail {
		t.Fatalf("first signal: expected CloseDetail, got %v", got)
	}
	flags.Detail = false

	if !flags.Sidebar {
		t.Fatal("closing the detail overlay must not touch lower-priority flags")
	}
	if got := Dispatch(flags); got != CloseSidebar {
		t.Fatalf("second signal: expected CloseSidebar, got %v", got)
	}
	flags.Sidebar = false

	if got := Dispatch(flags); got != Quit {
		t.Fatalf("third signal: expected Quit, got %v", got)
	}
}

func TestAction_String(t *testing.T) {
	actions := []Action{
		CloseDetail, CloseEditor, ClosePrivacyAuth, CloseDeleteConfirm,
		CloseSettings, CloseAddCollection, CloseFilterMenu, CloseSidebar,
		ResetView, Quit,
	}
	for _, a := range actions {
		if a.String() == "unknown" {
			t.Errorf("action %d has no name", a)
		}
	}
}
