// Package persona derives the assistant's conversational identity from
// account preferences. Everything here is pure and deterministic so it
// can be exercised without a store or a gateway.
package persona

import "strings"

// Gender is a concrete (non-relative) gender value.
type Gender string

const (
	Male        Gender = "Male"
	Female      Gender = "Female"
	NonBinary   Gender = "Non-binary"
	Unspecified Gender = "Prefer not to say"
)

// Genders lists the values offered at signup.
func Genders() []Gender {
	return []Gender{Male, Female, NonBinary, Unspecified}
}

// Preference is a configured assistant gender, which may be relative to
// the account holder's own gender.
type Preference string

const (
	PrefMale     Preference = "Male"
	PrefFemale   Preference = "Female"
	PrefNonBin   Preference = "Non-binary"
	PrefSame     Preference = "Same as me"
	PrefOpposite Preference = "Opposite of me"
)

// Preferences lists the values offered at signup.
func Preferences() []Preference {
	return []Preference{PrefMale, PrefFemale, PrefNonBin, PrefSame, PrefOpposite}
}

// ValidGender reports whether s is one of the offered gender values.
func ValidGender(s string) bool {
	for _, g := range Genders() {
		if string(g) == s {
			return true
		}
	}
	return false
}

// ValidPreference reports whether s is one of the offered preferences.
func ValidPreference(s string) bool {
	for _, p := range Preferences() {
		if string(p) == s {
			return true
		}
	}
	return false
}

// Resolve maps a configured preference and the holder's own gender to the
// effective assistant gender. Concrete preferences pass through
// unchanged. "Opposite of me" is exhaustive: any holder gender outside
// {Male, Female} resolves to Non-binary.
func Resolve(pref Preference, holder Gender) Gender {
	switch pref {
	case PrefSame:
		return holder
	case PrefOpposite:
		switch holder {
		case Male:
			return Female
		case Female:
			return Male
		default:
			return NonBinary
		}
	default:
		return Gender(pref)
	}
}

// Style is a conversation-style tag chosen in session settings.
type Style string

const (
	StyleFriendly     Style = "friendly"
	StyleCasual       Style = "casual"
	StyleEnthusiastic Style = "enthusiastic"
	StyleCaring       Style = "caring"
	StyleHumorous     Style = "humorous"
)

// DefaultStyle is used for fresh sessions.
const DefaultStyle = StyleFriendly

// Styles lists all conversation styles.
func Styles() []Style {
	return []Style{StyleFriendly, StyleCasual, StyleEnthusiastic, StyleCaring, StyleHumorous}
}

// ValidStyle reports whether s is a known style tag.
func ValidStyle(s string) bool {
	for _, st := range Styles() {
		if string(st) == s {
			return true
		}
	}
	return false
}

// Trait returns the personality descriptor embedded in the system prompt.
// Unknown styles fall back to the friendly trait so the mapping is total.
func (s Style) Trait() string {
	switch s {
	case StyleCasual:
		return "relaxed, laid-back, and easy-going"
	case StyleEnthusiastic:
		return "energetic, excited, and full of positive energy"
	case StyleCaring:
		return "deeply empathetic, supportive, and nurturing"
	case StyleHumorous:
		return "playful, witty, and fun-loving"
	default:
		return "warm, approachable, and genuinely caring"
	}
}

// Label returns the human-readable settings label for the style.
func (s Style) Label() string {
	switch s {
	case StyleCasual:
		return "Relaxed and casual"
	case StyleEnthusiastic:
		return "Energetic and enthusiastic"
	case StyleCaring:
		return "Very caring and empathetic"
	case StyleHumorous:
		return "Playful and humorous"
	default:
		return "Warm and friendly"
	}
}

func lowerGender(g Gender) string {
	return strings.ToLower(string(g))
}
