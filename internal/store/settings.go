package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"freelancer-access/internal/domain/access"
)

// Settings implements access.SettingsStore over the single
// access_settings row. Defaults apply until an admin saves once.
type Settings struct {
	DB *gorm.DB
}

func (s Settings) Settings() (access.Settings, error) {
	var row AccessSetting
	err := s.DB.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return access.DefaultSettings(), nil
	}
	if err != nil {
		return access.Settings{}, err
	}
	return access.Settings{
		RestrictedRoles:   row.RestrictedRoles,
		EnabledTypes:      row.EnabledTypes,
		EnabledTaxonomies: row.EnabledTaxonomies,
		MediaRestriction:  row.MediaRestriction,
	}, nil
}

// Save sanitizes and persists the settings, replacing the previous row.
func (s Settings) Save(settings access.Settings) error {
	sanitized := sanitizeSettings(settings)

	var row AccessSetting
	err := s.DB.First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.RestrictedRoles = datatypes.NewJSONSlice(sanitized.RestrictedRoles)
	row.EnabledTypes = datatypes.NewJSONSlice(sanitized.EnabledTypes)
	row.EnabledTaxonomies = datatypes.NewJSONSlice(sanitized.EnabledTaxonomies)
	row.MediaRestriction = sanitized.MediaRestriction
	return s.DB.Save(&row).Error
}

// sanitizeSettings cleans a submitted configuration: missing lists fall
// back to defaults, slugs are lower-cased and deduplicated, and the
// administrator role can never be restricted.
func sanitizeSettings(in access.Settings) access.Settings {
	defaults := access.DefaultSettings()

	out := access.Settings{MediaRestriction: in.MediaRestriction}

	out.RestrictedRoles = sanitizeSlugs(in.RestrictedRoles, defaults.RestrictedRoles)
	kept := out.RestrictedRoles[:0]
	for _, role := range out.RestrictedRoles {
		if role != access.RoleAdministrator {
			kept = append(kept, role)
		}
	}
	out.RestrictedRoles = kept

	out.EnabledTypes = sanitizeSlugs(in.EnabledTypes, defaults.EnabledTypes)
	out.EnabledTaxonomies = sanitizeSlugs(in.EnabledTaxonomies, nil)
	return out
}

func sanitizeSlugs(in, fallback []string) []string {
	if in == nil {
		return append([]string{}, fallback...)
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		slug := sanitizeSlug(s)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

// sanitizeSlug keeps lowercase alphanumerics, dash and underscore.
func sanitizeSlug(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		}
	}
	return string(out)
}
