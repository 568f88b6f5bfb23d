package tui

import (
	"strconv"

	"github.com/vovakirdan/hexfit/internal/storage"
)

// Preferences are the display and audio choices of one player. They are
// persisted in the settings table under the player's name when a store is
// available; the empty User is the local player.
type Preferences struct {
	User  string
	Theme Theme
	Sound bool
}

// LoadPreferences reads the stored preferences of user. fallbackTheme is used
// when the user has no stored theme; an unknown name falls back to
// DefaultThemeName.
func LoadPreferences(store *storage.Store, user, fallbackTheme string) Preferences {
	theme, ok := ThemeByName(fallbackTheme)
	if !ok {
		theme = DefaultTheme()
	}
	p := Preferences{User: user, Theme: theme, Sound: true}
	if store == nil {
		return p
	}

	if name, found, err := store.Setting(p.key(storage.SettingTheme)); err == nil && found {
		if t, ok := ThemeByName(name); ok {
			p.Theme = t
		}
	}
	p.Sound = store.BoolSetting(p.key(storage.SettingSound), true)
	return p
}

// Save writes the preferences. A nil store is a no-op.
func (p Preferences) Save(store *storage.Store) error {
	if store == nil {
		return nil
	}
	if err := store.SetSetting(p.key(storage.SettingTheme), p.Theme.Name); err != nil {
		return err
	}
	return store.SetSetting(p.key(storage.SettingSound), strconv.FormatBool(p.Sound))
}

func (p Preferences) key(name string) string {
	return storage.UserSettingKey(p.User, name)
}
