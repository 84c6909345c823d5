package access

import "time"

// GrantStore is the per-user allow-list storage. Implementations must
// return an empty set, not an error, when no grant exists.
type GrantStore interface {
	Grant(userID int64, contentType string) ([]int64, error)
	SetGrant(userID int64, contentType string, ids []int64) error
}

// ScheduleStore resolves a user's optional access window. nil means no
// window is configured.
type ScheduleStore interface {
	Schedule(userID int64) (*Schedule, error)
}

// SettingsStore loads the restriction configuration. Called once per
// decision so a single decision always sees one consistent snapshot.
type SettingsStore interface {
	Settings() (Settings, error)
}

// ContentDirectory is the engine's read-only view of the host's content
// graph: term membership and attachment relationships. All lookups run
// against any content status, not just published.
type ContentDirectory interface {
	// IDsWithTerms returns content IDs of the given type tagged with any
	// of the terms.
	IDsWithTerms(contentType, taxonomy string, termIDs []int64) ([]int64, error)
	// TaxonomiesFor returns the taxonomies that apply to a content type.
	TaxonomiesFor(contentType string) ([]string, error)
	// AttachmentsOwnedBy returns attachment IDs authored by the user.
	AttachmentsOwnedBy(userID int64) ([]int64, error)
	// AttachmentsRelatedTo returns attachments parented to, or set as
	// featured image on, any of the given content IDs.
	AttachmentsRelatedTo(contentIDs []int64) ([]int64, error)
	// BodiesOf returns the body text of the given content IDs, for
	// embedded-media extraction.
	BodiesOf(contentIDs []int64) ([]string, error)
}

// Engine computes access decisions for restricted users. It holds no
// per-request state; every call re-reads settings, grants and schedule.
type Engine struct {
	Grants    GrantStore
	Schedules ScheduleStore
	Settings  SettingsStore
	Directory ContentDirectory

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewEngine(grants GrantStore, schedules ScheduleStore, settings SettingsStore, dir ContentDirectory) *Engine {
	return &Engine{
		Grants:    grants,
		Schedules: schedules,
		Settings:  settings,
		Directory: dir,
		Now:       time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// AllowedIDs computes the complete allowed-ID set for one user and one
// content type: direct grants unioned with taxonomy-derived IDs.
// Administrators, non-restricted roles and non-enabled types come back
// unrestricted; an inactive schedule denies everything.
func (e *Engine) AllowedIDs(u User, contentType string) (Decision, error) {
	settings, err := e.Settings.Settings()
	if err != nil {
		return Decision{}, err
	}
	if !settings.UserRestricted(u) {
		return Unrestricted(), nil
	}

	active, err := e.scheduleActive(u.ID)
	if err != nil {
		return Decision{}, err
	}
	if !active {
		return DenyAll(), nil
	}

	if !settings.TypeEnabled(contentType) {
		return Unrestricted(), nil
	}

	ids, err := e.allowedForType(u.ID, contentType, settings)
	if err != nil {
		return Decision{}, err
	}
	return Decision{IDs: ids}, nil
}

// CanAccess answers a direct single-item open. Same gating as AllowedIDs:
// exempt users pass, an inactive schedule denies, a type not enabled for
// restriction passes, otherwise membership in the allowed set decides.
func (e *Engine) CanAccess(u User, contentType string, contentID int64) (bool, error) {
	settings, err := e.Settings.Settings()
	if err != nil {
		return false, err
	}
	if !settings.UserRestricted(u) {
		return true, nil
	}

	active, err := e.scheduleActive(u.ID)
	if err != nil {
		return false, err
	}
	if !active {
		return false, nil
	}

	if !settings.TypeEnabled(contentType) {
		return true, nil
	}

	ids, err := e.allowedForType(u.ID, contentType, settings)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == contentID {
			return true, nil
		}
	}
	return false, nil
}

// scheduleActive reports whether the user's window allows access today.
func (e *Engine) scheduleActive(userID int64) (bool, error) {
	schedule, err := e.Schedules.Schedule(userID)
	if err != nil {
		return false, err
	}
	return schedule.ActiveOn(e.now()), nil
}

func (e *Engine) allowedForType(userID int64, contentType string, settings Settings) ([]int64, error) {
	direct, err := e.Grants.Grant(userID, contentType)
	if err != nil {
		return nil, err
	}
	fromTerms, err := e.expandTaxonomies(userID, contentType, settings)
	if err != nil {
		return nil, err
	}
	return unionIDs(direct, fromTerms), nil
}

// expandTaxonomies turns the user's allowed term sets into concrete
// content IDs. Derived, never stored: term membership changes under us,
// so it is recomputed on every call.
func (e *Engine) expandTaxonomies(userID int64, contentType string, settings Settings) ([]int64, error) {
	if len(settings.EnabledTaxonomies) == 0 {
		return nil, nil
	}

	applicable, err := e.Directory.TaxonomiesFor(contentType)
	if err != nil {
		return nil, err
	}

	var out []int64
	for _, taxonomy := range applicable {
		if !settings.TaxonomyEnabled(taxonomy) {
			continue
		}
		terms, err := e.Grants.Grant(userID, TaxonomyKey(taxonomy))
		if err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			continue
		}
		ids, err := e.Directory.IDsWithTerms(contentType, taxonomy, terms)
		if err != nil {
			return nil, err
		}
		out = append(out, ids...)
	}
	return NormalizeIDs(out), nil
}
