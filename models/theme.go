package models

// Theme is the two-value presentation preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference has been persisted yet.
const DefaultTheme = ThemeLight

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ThemePreference is the persisted shape of the theme key.
type ThemePreference struct {
	Theme Theme `json:"theme"`
}
