package domain

// User represents a member of a project workspace. Profile fields come from
// an upstream directory sync and are not guaranteed to be complete.
type User struct {
	ID          int64
	Email       string
	Role        string
	Profile     map[string]any
	Preferences Preferences
}

// DisplayName formats the user's preferred display name from profile fields.
func (u *User) DisplayName() string {
	first := u.Profile["first_name"].(string)
	last := u.Profile["last_name"].(string)
	return first + " " + last
}

// Preferences maps a preference group to its per-channel settings.
type Preferences map[string]map[string]string

var defaultChannelSettings = map[string]string{
	"email":  "enabled",
	"push":   "enabled",
	"digest": "weekly",
}

// Channel returns the settings for a named preference group.
func (p Preferences) Channel(name string) map[string]string {
	return p[name]
}

// ApplyChannelDefaults fills unset delivery options for a preference group
// in place and returns the resulting settings.
func (p Preferences) ApplyChannelDefaults(name string) map[string]string {
	settings := p.Channel(name)
	for key, value := range defaultChannelSettings {
		if _, ok := settings[key]; !ok {
			settings[key] = value
		}
	}
	return settings
}
