package ui

import "testing"

func TestThemeByName(t *testing.T) {
	if ThemeByName("light").IsDark {
		t.Error("light theme must not be dark")
	}
	if !ThemeByName("dark").IsDark {
		t.Error("dark theme must be dark")
	}
	// Unknown names fall back to auto-detection, which must still return a
	// usable theme.
	theme := ThemeByName("solarized")
	if theme.Primary == "" {
		t.Error("fallback theme must carry a palette")
	}
}

func TestDetectThemeEnvOverride(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("DEVHIVE_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Error("DEVHIVE_DARK_MODE=1 must force the dark theme")
	}

	t.Setenv("DEVHIVE_DARK_MODE", "")
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("dark terminal background must select the dark theme")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("light terminal background must select the light theme")
	}
}
