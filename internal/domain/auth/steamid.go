package auth

import "regexp"

// Steam64 IDs are fixed-format 17-digit decimal identifiers. Anything else
// is rejected everywhere a Steam ID enters the system.
var steam64Pattern = regexp.MustCompile(`^\d{17}$`)

// ValidSteamID reports whether s is a well-formed Steam64 ID.
func ValidSteamID(s string) bool {
	return steam64Pattern.MatchString(s)
}

// CheckSteamID returns a ValidationError for malformed Steam64 IDs.
func CheckSteamID(s string) error {
	if !ValidSteamID(s) {
		return &ValidationError{Field: "steamId", Reason: "must be a 17-digit Steam64 ID"}
	}
	return nil
}
