package access

import (
	"reflect"
	"testing"
	"time"
)

// fakeBackend implements every engine store interface in memory.
type fakeBackend struct {
	grants    map[int64]map[string][]int64
	schedules map[int64]*Schedule
	settings  Settings

	taxonomies  map[string][]string          // content type -> taxonomies
	termContent map[string]map[int64][]int64 // taxonomy -> term -> content IDs
	owned       map[int64][]int64            // user -> attachment IDs
	related     map[int64][]int64            // content ID -> attachment IDs
	bodies      map[int64]string             // content ID -> body
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		grants:      map[int64]map[string][]int64{},
		schedules:   map[int64]*Schedule{},
		settings:    DefaultSettings(),
		taxonomies:  map[string][]string{},
		termContent: map[string]map[int64][]int64{},
		owned:       map[int64][]int64{},
		related:     map[int64][]int64{},
		bodies:      map[int64]string{},
	}
}

func (f *fakeBackend) Grant(userID int64, contentType string) ([]int64, error) {
	return f.grants[userID][contentType], nil
}

func (f *fakeBackend) SetGrant(userID int64, contentType string, ids []int64) error {
	if f.grants[userID] == nil {
		f.grants[userID] = map[string][]int64{}
	}
	f.grants[userID][contentType] = NormalizeIDs(ids)
	return nil
}

func (f *fakeBackend) Schedule(userID int64) (*Schedule, error) {
	return f.schedules[userID], nil
}

func (f *fakeBackend) Settings() (Settings, error) {
	return f.settings, nil
}

func (f *fakeBackend) TaxonomiesFor(contentType string) ([]string, error) {
	return f.taxonomies[contentType], nil
}

func (f *fakeBackend) IDsWithTerms(contentType, taxonomy string, termIDs []int64) ([]int64, error) {
	var out []int64
	for _, term := range termIDs {
		out = append(out, f.termContent[taxonomy][term]...)
	}
	return out, nil
}

func (f *fakeBackend) AttachmentsOwnedBy(userID int64) ([]int64, error) {
	return f.owned[userID], nil
}

func (f *fakeBackend) AttachmentsRelatedTo(contentIDs []int64) ([]int64, error) {
	var out []int64
	for _, id := range contentIDs {
		out = append(out, f.related[id]...)
	}
	return out, nil
}

func (f *fakeBackend) BodiesOf(contentIDs []int64) ([]string, error) {
	var out []string
	for _, id := range contentIDs {
		if body, ok := f.bodies[id]; ok {
			out = append(out, body)
		}
	}
	return out, nil
}

func newTestEngine(f *fakeBackend) *Engine {
	eng := NewEngine(f, f, f, f)
	eng.Now = func() time.Time { return date(2025, time.June, 15) }
	return eng
}

var (
	adminUser  = User{ID: 1, Roles: []string{RoleAdministrator}}
	editorUser = User{ID: 7, Roles: []string{"editor"}}
	authorUser = User{ID: 8, Roles: []string{"author"}}
)

func TestAllowedIDsAdministratorUnrestricted(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(adminUser.ID, KeyPage, []int64{5})
	eng := newTestEngine(f)

	for _, contentType := range []string{KeyPage, KeyPost, "recipe"} {
		d, err := eng.AllowedIDs(adminUser, contentType)
		if err != nil {
			t.Fatal(err)
		}
		if !d.Unrestricted {
			t.Errorf("administrator should be unrestricted for %q", contentType)
		}
	}
}

func TestAllowedIDsNonRestrictedRole(t *testing.T) {
	f := newFakeBackend()
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(authorUser, KeyPage)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Unrestricted {
		t.Error("a role outside the restricted set should bypass filtering")
	}
}

func TestAllowedIDsAnyRestrictedRoleRestricts(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(9, KeyPage, []int64{3})
	eng := newTestEngine(f)

	multi := User{ID: 9, Roles: []string{"author", "editor"}}
	d, err := eng.AllowedIDs(multi, KeyPage)
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted {
		t.Error("a user with any restricted role must be restricted")
	}
	if !reflect.DeepEqual(d.IDs, []int64{3}) {
		t.Errorf("IDs = %v, want [3]", d.IDs)
	}
}

func TestAllowedIDsDirectGrants(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{7, 5, 7, 0, -2})
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, KeyPage)
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted {
		t.Fatal("editor should be restricted")
	}
	if !reflect.DeepEqual(d.IDs, []int64{5, 7}) {
		t.Errorf("IDs = %v, want [5 7]", d.IDs)
	}
}

func TestAllowedIDsNoGrants(t *testing.T) {
	f := newFakeBackend()
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, KeyPage)
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted || len(d.IDs) != 0 {
		t.Errorf("no grants should produce an empty allowed set, got %+v", d)
	}
	if !reflect.DeepEqual(d.FilterIDs(), []int64{0}) {
		t.Errorf("empty set must materialize as the sentinel filter [0], got %v", d.FilterIDs())
	}
}

func TestAllowedIDsTypeNotEnabled(t *testing.T) {
	f := newFakeBackend()
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, "recipe")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Unrestricted {
		t.Error("a type not enabled for restriction passes through unfiltered")
	}
}

func TestAllowedIDsExpiredScheduleDeniesEverything(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{10, 20})
	f.schedules[editorUser.ID] = &Schedule{End: datePtr(2025, time.June, 14)}
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, KeyPage)
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted || len(d.IDs) != 0 {
		t.Errorf("expired schedule must deny all despite grants, got %+v", d)
	}

	// The expiry gate runs before the enabled-type check, so even a
	// non-enabled type is denied.
	d, err = eng.AllowedIDs(editorUser, "recipe")
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted || len(d.IDs) != 0 {
		t.Errorf("expired schedule must deny non-enabled types too, got %+v", d)
	}
}

func TestAllowedIDsTaxonomyExpansion(t *testing.T) {
	f := newFakeBackend()
	f.settings.EnabledTaxonomies = []string{"category"}
	f.taxonomies[KeyPost] = []string{"category", "post_tag"}
	f.termContent["category"] = map[int64][]int64{
		4: {100, 101},
		9: {101, 102},
	}
	f.SetGrant(editorUser.ID, TaxonomyKey("category"), []int64{4, 9})
	f.SetGrant(editorUser.ID, KeyPost, []int64{200})
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, KeyPost)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{100, 101, 102, 200}
	if !reflect.DeepEqual(d.IDs, want) {
		t.Errorf("IDs = %v, want %v", d.IDs, want)
	}
}

func TestAllowedIDsTaxonomyOnly(t *testing.T) {
	// A term grant alone is enough; no direct grants needed.
	f := newFakeBackend()
	f.settings.EnabledTaxonomies = []string{"category"}
	f.taxonomies[KeyPost] = []string{"category"}
	f.termContent["category"] = map[int64][]int64{4: {100}}
	f.SetGrant(editorUser.ID, TaxonomyKey("category"), []int64{4})
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, KeyPost)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.IDs, []int64{100}) {
		t.Errorf("IDs = %v, want [100]", d.IDs)
	}
}

func TestAllowedIDsDisabledTaxonomyIgnored(t *testing.T) {
	f := newFakeBackend()
	f.taxonomies[KeyPost] = []string{"category"}
	f.termContent["category"] = map[int64][]int64{4: {100}}
	f.SetGrant(editorUser.ID, TaxonomyKey("category"), []int64{4})
	eng := newTestEngine(f)

	d, err := eng.AllowedIDs(editorUser, KeyPost)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.IDs) != 0 {
		t.Errorf("terms of a disabled taxonomy must not expand, got %v", d.IDs)
	}
}

func TestCanAccess(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{10, 20})
	f.schedules[editorUser.ID] = &Schedule{
		Start: datePtr(2025, time.June, 14),
		End:   datePtr(2025, time.June, 16),
	}
	eng := newTestEngine(f)

	tests := []struct {
		name        string
		user        User
		contentType string
		id          int64
		want        bool
	}{
		{"granted page", editorUser, KeyPage, 10, true},
		{"ungranted page", editorUser, KeyPage, 30, false},
		{"admin always passes", adminUser, KeyPage, 30, true},
		{"non-restricted role passes", authorUser, KeyPage, 30, true},
		{"non-enabled type passes", editorUser, "recipe", 99, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.CanAccess(tt.user, tt.contentType, tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("CanAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessExpiredSchedule(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{10})
	f.schedules[editorUser.ID] = &Schedule{End: datePtr(2025, time.June, 14)}
	eng := newTestEngine(f)

	ok, err := eng.CanAccess(editorUser, KeyPage, 10)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expired schedule must deny a directly granted item")
	}

	// Gate order: expiry also blocks types that are not enabled.
	ok, err = eng.CanAccess(editorUser, "recipe", 99)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expired schedule must deny non-enabled types")
	}
}

func TestDecisionIntersect(t *testing.T) {
	d := Decision{IDs: []int64{1, 2, 3}}
	got := d.Intersect([]int64{2, 3, 4})
	if !reflect.DeepEqual(got.IDs, []int64{2, 3}) {
		t.Errorf("Intersect = %v, want [2 3]", got.IDs)
	}

	empty := d.Intersect([]int64{9})
	if len(empty.IDs) != 0 {
		t.Errorf("disjoint intersect should be empty, got %v", empty.IDs)
	}
	if !reflect.DeepEqual(empty.FilterIDs(), []int64{0}) {
		t.Error("empty intersection must still filter to nothing, not to everything")
	}

	u := Unrestricted().Intersect([]int64{4, 4, 1})
	if u.Unrestricted {
		t.Error("intersecting an unrestricted decision adopts the pre-filter")
	}
	if !reflect.DeepEqual(u.IDs, []int64{1, 4}) {
		t.Errorf("IDs = %v, want [1 4]", u.IDs)
	}
}

func TestTaxonomyKeys(t *testing.T) {
	key := TaxonomyKey("category")
	if key != "tax_category" {
		t.Errorf("TaxonomyKey = %q", key)
	}
	taxonomy, ok := TaxonomyFromKey(key)
	if !ok || taxonomy != "category" {
		t.Errorf("TaxonomyFromKey(%q) = %q, %v", key, taxonomy, ok)
	}
	if _, ok := TaxonomyFromKey(KeyPage); ok {
		t.Error("a plain content-type key is not a taxonomy key")
	}
	// "tax_" with nothing after it parses as a taxonomy key with an
	// empty name; callers reject it.
	if taxonomy, ok := TaxonomyFromKey("tax_"); !ok || taxonomy != "" {
		t.Errorf("TaxonomyFromKey(\"tax_\") = %q, %v", taxonomy, ok)
	}
}

func TestNormalizeIDs(t *testing.T) {
	got := NormalizeIDs([]int64{3, 0, -5, 3, 1})
	if !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Errorf("NormalizeIDs = %v, want [1 3]", got)
	}
	if got := NormalizeIDs(nil); len(got) != 0 {
		t.Errorf("NormalizeIDs(nil) = %v, want empty", got)
	}
}
