package contents

import (
	"reflect"
	"testing"

	"freelancer-access/internal/domain/access"
	"freelancer-access/internal/domain/content"
)

// fakeAccessBackend backs the engine in memory so the routing helpers
// can be exercised without a database.
type fakeAccessBackend struct {
	grants map[string][]int64
	owned  []int64
}

func (f *fakeAccessBackend) Grant(userID int64, contentType string) ([]int64, error) {
	return f.grants[contentType], nil
}

func (f *fakeAccessBackend) SetGrant(userID int64, contentType string, ids []int64) error {
	if f.grants == nil {
		f.grants = map[string][]int64{}
	}
	f.grants[contentType] = ids
	return nil
}

func (f *fakeAccessBackend) Schedule(userID int64) (*access.Schedule, error) { return nil, nil }

func (f *fakeAccessBackend) Settings() (access.Settings, error) {
	return access.DefaultSettings(), nil
}

func (f *fakeAccessBackend) IDsWithTerms(contentType, taxonomy string, termIDs []int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeAccessBackend) TaxonomiesFor(contentType string) ([]string, error) { return nil, nil }

func (f *fakeAccessBackend) AttachmentsOwnedBy(userID int64) ([]int64, error) { return f.owned, nil }

func (f *fakeAccessBackend) AttachmentsRelatedTo(contentIDs []int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeAccessBackend) BodiesOf(contentIDs []int64) ([]string, error) { return nil, nil }

func newFakeEngine(f *fakeAccessBackend) *access.Engine {
	return access.NewEngine(f, f, f, f)
}

var testEditor = access.User{ID: 7, Roles: []string{"editor"}}

func TestAllowedForAttachmentsUseMediaResolver(t *testing.T) {
	f := &fakeAccessBackend{
		grants: map[string][]int64{access.KeyMedia: {500}},
		owned:  []int64{300},
	}
	eng := newFakeEngine(f)

	d, err := allowedFor(eng, testEditor, content.TypeAttachment)
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted {
		t.Fatal("attachment listings must be filtered for restricted users")
	}
	if !reflect.DeepEqual(d.IDs, []int64{300, 500}) {
		t.Errorf("IDs = %v, want [300 500]", d.IDs)
	}

	admin := access.User{ID: 1, Roles: []string{access.RoleAdministrator}}
	if d, _ := allowedFor(eng, admin, content.TypeAttachment); !d.Unrestricted {
		t.Error("administrators stay unrestricted")
	}
}

func TestAllowedForRegularTypes(t *testing.T) {
	f := &fakeAccessBackend{grants: map[string][]int64{access.KeyPage: {10}}}
	eng := newFakeEngine(f)

	d, err := allowedFor(eng, testEditor, access.KeyPage)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.IDs, []int64{10}) {
		t.Errorf("IDs = %v, want [10]", d.IDs)
	}
}

func TestCanAccessItemAttachment(t *testing.T) {
	f := &fakeAccessBackend{owned: []int64{300}}
	eng := newFakeEngine(f)

	ok, err := canAccessItem(eng, testEditor, content.Content{ID: 300, Type: content.TypeAttachment})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("own upload must be reachable")
	}

	// "attachment" is never in the enabled-types set, so the generic
	// per-type check would pass this open; the routing must deny it.
	ok, err = canAccessItem(eng, testEditor, content.Content{ID: 999, Type: content.TypeAttachment})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("attachment outside the resolved media set must be denied")
	}
	if pass, _ := eng.CanAccess(testEditor, content.TypeAttachment, 999); !pass {
		t.Error("per-type path is expected to pass attachments; routing relies on it")
	}
}
