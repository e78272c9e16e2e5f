package ui

import (
	"testing"
)

func TestGetTheme_KnownNames(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		if theme.Name != name {
			t.Fatalf("GetTheme(%q).Name = %q, want %q", name, theme.Name, name)
		}
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	theme := GetTheme("NotATheme")
	if theme.Name != "Dracula" {
		t.Fatalf("GetTheme fallback = %q, want %q", theme.Name, "Dracula")
	}
}

func TestNextTheme_CyclesAndWraps(t *testing.T) {
	names := ThemeNames()
	seen := map[string]bool{}
	current := names[0]
	for range names {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("NextTheme did not wrap: ended at %q, want %q", current, names[0])
	}
	for _, name := range names {
		if !seen[name] {
			t.Fatalf("NextTheme cycle never visited %q", name)
		}
	}
}

func TestNextTheme_UnknownStartsOver(t *testing.T) {
	if got := NextTheme("NotATheme"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, ThemeNames()[0])
	}
}

func TestThemes_DefineRoleColors(t *testing.T) {
	roles := []string{"Admin", "TemplateEdit", "InterviewEdit", "User"}
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, role := range roles {
			if theme.RoleColors[role] == "" {
				t.Fatalf("theme %q missing role color for %q", name, role)
			}
		}
	}
}
