package access

import (
	"reflect"
	"testing"
)

func TestSanitizeContent(t *testing.T) {
	got := SanitizeContent(map[string][]int64{
		KeyPage:                 {3, 1, 3, 0},
		KeyPost:                 {0, -4},
		TaxonomyKey("category"): {9},
	})
	want := map[string][]int64{
		KeyPage:                 {1, 3},
		TaxonomyKey("category"): {9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeContent = %v, want %v", got, want)
	}
}

func TestTemplateSummary(t *testing.T) {
	tpl := Template{Content: map[string][]int64{
		KeyPage:  {1, 2, 3},
		KeyMedia: {7},
	}}
	want := map[string]int{KeyPage: 3, KeyMedia: 1}
	if got := tpl.Summary(); !reflect.DeepEqual(got, want) {
		t.Errorf("Summary = %v, want %v", got, want)
	}
}

func TestApplyTemplateReplace(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{1, 2})
	eng := newTestEngine(f)

	tpl := Template{Content: map[string][]int64{
		KeyPage: {10, 5, 10},
		KeyPost: {20},
	}}
	if err := eng.ApplyTemplate(tpl, editorUser.ID, false); err != nil {
		t.Fatal(err)
	}
	if got := f.grants[editorUser.ID][KeyPage]; !reflect.DeepEqual(got, []int64{5, 10}) {
		t.Errorf("page grant = %v, want [5 10]", got)
	}
	if got := f.grants[editorUser.ID][KeyPost]; !reflect.DeepEqual(got, []int64{20}) {
		t.Errorf("post grant = %v, want [20]", got)
	}

	// Replace mode is idempotent.
	if err := eng.ApplyTemplate(tpl, editorUser.ID, false); err != nil {
		t.Fatal(err)
	}
	if got := f.grants[editorUser.ID][KeyPage]; !reflect.DeepEqual(got, []int64{5, 10}) {
		t.Errorf("second apply changed the page grant: %v", got)
	}
}

func TestApplyTemplateMerge(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{1, 2})
	eng := newTestEngine(f)

	tpl := Template{Content: map[string][]int64{KeyPage: {2, 3}}}
	if err := eng.ApplyTemplate(tpl, editorUser.ID, true); err != nil {
		t.Fatal(err)
	}
	if got := f.grants[editorUser.ID][KeyPage]; !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Errorf("merged grant = %v, want [1 2 3]", got)
	}

	// Untouched types keep their grants in merge mode.
	f.SetGrant(editorUser.ID, KeyPost, []int64{50})
	if err := eng.ApplyTemplate(tpl, editorUser.ID, true); err != nil {
		t.Fatal(err)
	}
	if got := f.grants[editorUser.ID][KeyPost]; !reflect.DeepEqual(got, []int64{50}) {
		t.Errorf("post grant = %v, want [50]", got)
	}
}

func TestApplyTemplateThenDecide(t *testing.T) {
	f := newFakeBackend()
	eng := newTestEngine(f)

	tpl := Template{Content: map[string][]int64{KeyPage: {10, 20}}}
	if err := eng.ApplyTemplate(tpl, editorUser.ID, false); err != nil {
		t.Fatal(err)
	}

	ok, err := eng.CanAccess(editorUser, KeyPage, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("applied template grant should open the item")
	}
	ok, err = eng.CanAccess(editorUser, KeyPage, 30)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("items outside the template stay closed")
	}
}

func TestSnapshotUser(t *testing.T) {
	f := newFakeBackend()
	f.settings.EnabledTaxonomies = []string{"category"}
	f.SetGrant(editorUser.ID, KeyPage, []int64{2, 1})
	f.SetGrant(editorUser.ID, TaxonomyKey("category"), []int64{4})
	f.SetGrant(editorUser.ID, KeyMedia, []int64{99})
	eng := newTestEngine(f)

	tpl, err := eng.SnapshotUser(editorUser.ID, "Editors", "current editor access")
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Name != "Editors" || tpl.Description != "current editor access" {
		t.Errorf("metadata not carried: %+v", tpl)
	}
	want := map[string][]int64{
		KeyPage:                 {1, 2},
		TaxonomyKey("category"): {4},
		KeyMedia:                {99},
	}
	if !reflect.DeepEqual(tpl.Content, want) {
		t.Errorf("Content = %v, want %v", tpl.Content, want)
	}
	if _, ok := tpl.Content[KeyPost]; ok {
		t.Error("empty grant sets must be omitted from the snapshot")
	}
}
