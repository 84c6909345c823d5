package store

import (
	"reflect"
	"testing"

	"freelancer-access/internal/domain/access"
)

func TestSanitizeSettings(t *testing.T) {
	in := access.Settings{
		RestrictedRoles:   []string{"Editor", "administrator", "editor", "shop manager!"},
		EnabledTypes:      []string{"Page", "page", ""},
		EnabledTaxonomies: []string{"CATEGORY"},
		MediaRestriction:  true,
	}

	got := sanitizeSettings(in)

	if !reflect.DeepEqual(got.RestrictedRoles, []string{"editor", "shopmanager"}) {
		t.Errorf("RestrictedRoles = %v", got.RestrictedRoles)
	}
	if !reflect.DeepEqual(got.EnabledTypes, []string{"page"}) {
		t.Errorf("EnabledTypes = %v", got.EnabledTypes)
	}
	if !reflect.DeepEqual(got.EnabledTaxonomies, []string{"category"}) {
		t.Errorf("EnabledTaxonomies = %v", got.EnabledTaxonomies)
	}
	if !got.MediaRestriction {
		t.Error("MediaRestriction flag should be preserved")
	}
}

func TestSanitizeSettingsDefaultsOnMissingLists(t *testing.T) {
	got := sanitizeSettings(access.Settings{})
	defaults := access.DefaultSettings()

	if !reflect.DeepEqual(got.RestrictedRoles, defaults.RestrictedRoles) {
		t.Errorf("RestrictedRoles = %v, want defaults %v", got.RestrictedRoles, defaults.RestrictedRoles)
	}
	if !reflect.DeepEqual(got.EnabledTypes, defaults.EnabledTypes) {
		t.Errorf("EnabledTypes = %v, want defaults %v", got.EnabledTypes, defaults.EnabledTypes)
	}
	if len(got.EnabledTaxonomies) != 0 {
		t.Errorf("EnabledTaxonomies = %v, want empty", got.EnabledTaxonomies)
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"post_tag", "post_tag"},
		{"Custom-Type", "custom-type"},
		{"a b<script>", "abscript"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := sanitizeSlug(tt.in); got != tt.want {
			t.Errorf("sanitizeSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
