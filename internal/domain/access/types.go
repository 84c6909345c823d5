package access

import (
	"sort"
	"strings"
)

// Content-type keys as stored on grants. Post types use their own slug
// ("page", "post", custom slugs); taxonomy grants and media grants live
// under synthetic keys so everything shares one namespace.
const (
	KeyPage  = "page"
	KeyPost  = "post"
	KeyMedia = "media"

	taxKeyPrefix = "tax_"
)

// TaxonomyKey returns the grant key for a taxonomy, e.g. "tax_category".
func TaxonomyKey(taxonomy string) string {
	return taxKeyPrefix + taxonomy
}

// TaxonomyFromKey is the inverse of TaxonomyKey. The second return is
// false when the key is not a taxonomy key.
func TaxonomyFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, taxKeyPrefix) {
		return "", false
	}
	return key[len(taxKeyPrefix):], true
}

// RoleAdministrator bypasses every check, mirroring the host's
// manage_options capability.
const RoleAdministrator = "administrator"

// User is the engine's view of the current user: an opaque ID plus role
// slugs. Everything else about the account is the host's business.
type User struct {
	ID    int64
	Roles []string
}

func (u User) IsAdministrator() bool {
	for _, r := range u.Roles {
		if r == RoleAdministrator {
			return true
		}
	}
	return false
}

// Settings is the process-wide restriction configuration, loaded once per
// decision and read-only while it runs.
type Settings struct {
	RestrictedRoles   []string `json:"restricted_roles"`
	EnabledTypes      []string `json:"enabled_post_types"`
	EnabledTaxonomies []string `json:"enabled_taxonomies"`
	MediaRestriction  bool     `json:"media_restriction"`
}

// DefaultSettings applies until an administrator saves a configuration:
// editors restricted on pages and posts, media restriction on.
func DefaultSettings() Settings {
	return Settings{
		RestrictedRoles:   []string{"editor"},
		EnabledTypes:      []string{KeyPage, KeyPost},
		EnabledTaxonomies: []string{},
		MediaRestriction:  true,
	}
}

// UserRestricted reports whether any of the user's roles is in the
// restricted set. Administrators are never restricted.
func (s Settings) UserRestricted(u User) bool {
	if u.IsAdministrator() {
		return false
	}
	for _, role := range u.Roles {
		for _, restricted := range s.RestrictedRoles {
			if role == restricted {
				return true
			}
		}
	}
	return false
}

// TypeEnabled reports whether restriction is configured for a post type.
// Unknown types are simply not enabled, never an error.
func (s Settings) TypeEnabled(contentType string) bool {
	for _, t := range s.EnabledTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

func (s Settings) TaxonomyEnabled(taxonomy string) bool {
	for _, t := range s.EnabledTaxonomies {
		if t == taxonomy {
			return true
		}
	}
	return false
}

// Decision is the outcome of an allowed-ID computation. Unrestricted means
// "apply no filter at all" and is distinct from an empty ID set, which
// must filter the listing down to nothing.
type Decision struct {
	Unrestricted bool
	IDs          []int64
}

func Unrestricted() Decision {
	return Decision{Unrestricted: true}
}

func Allow(ids []int64) Decision {
	return Decision{IDs: NormalizeIDs(ids)}
}

// DenyAll is an empty allowed set: the schedule window is inactive or the
// user simply has no grants.
func DenyAll() Decision {
	return Decision{}
}

func (d Decision) Contains(id int64) bool {
	if d.Unrestricted {
		return true
	}
	for _, v := range d.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// FilterIDs materializes the decision as an inclusion list for a query.
// An empty allowed set becomes [0] so the filter matches no real row;
// omitting the filter would silently show everything. Must not be called
// on an unrestricted decision.
func (d Decision) FilterIDs() []int64 {
	if len(d.IDs) == 0 {
		return []int64{0}
	}
	return d.IDs
}

// Intersect narrows the decision by a caller-supplied pre-filter, as when
// a listing request already carries its own include list.
func (d Decision) Intersect(ids []int64) Decision {
	if d.Unrestricted {
		return Allow(ids)
	}
	keep := make(map[int64]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var out []int64
	for _, id := range d.IDs {
		if keep[id] {
			out = append(out, id)
		}
	}
	return Decision{IDs: out}
}

// NormalizeIDs drops non-positive IDs, removes duplicates and sorts. The
// grant store is externally writable, so every set passes through here
// both on write and after union.
func NormalizeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func unionIDs(sets ...[]int64) []int64 {
	var all []int64
	for _, s := range sets {
		all = append(all, s...)
	}
	return NormalizeIDs(all)
}
