package config

import (
	"fmt"
	"strings"

	"github.com/gamevault/authcore/internal/domain/auth"
)

// DirectoryConfig selects and configures the admin directory backend.
// The remote backend is used when URL and ServiceKey are both set (unless
// ForceLocal overrides); otherwise the embedded local store serves.
type DirectoryConfig struct {
	// URL is the base URL of the hosted directory service.
	URL string `env:"URL"`

	// ServiceKey authenticates against the hosted service.
	ServiceKey string `env:"SERVICE_KEY"`

	// ForceLocal pins the embedded store even when remote credentials are
	// present. Useful for air-gapped or development deployments.
	ForceLocal bool `env:"FORCE_LOCAL" envDefault:"false"`

	// LocalPath is the SQLite file backing the embedded store.
	LocalPath string `env:"LOCAL_PATH" envDefault:"admins.db"`

	// SeedAdmins pins admins from configuration, format
	// "steamID:role;steamID:role". Seeds answer role lookups before the
	// backend and are inserted at startup if absent.
	SeedAdmins []string `env:"SEED_ADMINS" envSeparator:";"`
}

// UseRemote reports whether the hosted backend is configured and selected.
func (c DirectoryConfig) UseRemote() bool {
	return c.URL != "" && c.ServiceKey != "" && !c.ForceLocal
}

// ParseSeeds converts the raw seed entries into domain records. Roles are
// normalized; an entry without a role pins a Developer, since seeds exist
// to guarantee someone can manage staff.
func (c DirectoryConfig) ParseSeeds() ([]auth.SeedAdmin, error) {
	seeds := make([]auth.SeedAdmin, 0, len(c.SeedAdmins))
	for _, entry := range c.SeedAdmins {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		steamID, rawRole, _ := strings.Cut(entry, ":")
		if !auth.ValidSteamID(steamID) {
			return nil, fmt.Errorf("seed admin %q: not a Steam64 ID", entry)
		}
		seeds = append(seeds, auth.SeedAdmin{
			SteamID: steamID,
			Role:    auth.NormalizeRole(rawRole, auth.RoleDeveloper),
		})
	}
	return seeds, nil
}
