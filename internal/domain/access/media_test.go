package access

import (
	"reflect"
	"testing"
	"time"
)

func TestExtractMediaIDs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []int64
	}{
		{"empty body", "", nil},
		{"no references", "<p>plain text</p>", nil},
		{
			"block image",
			`<!-- wp:image {"id":42,"sizeSlug":"large"} --><figure></figure>`,
			[]int64{42},
		},
		{
			"block gallery",
			`<!-- wp:gallery {"ids":[3,5,8]} -->`,
			[]int64{3, 5, 8},
		},
		{
			"gallery shortcode",
			`[gallery columns="2" ids="11,12,13"]`,
			[]int64{11, 12, 13},
		},
		{
			"image class marker",
			`<img class="alignnone wp-image-77 size-full" src="x.jpg">`,
			[]int64{77},
		},
		{
			"mixed, deduplicated and sorted",
			`<!-- wp:image {"id":5} --> [gallery ids='5,2'] <img class="wp-image-9">`,
			[]int64{2, 5, 9},
		},
		{
			"malformed references ignored",
			`wp:image {"id":} [gallery ids="abc"] class="wp-image-"`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMediaIDs(tt.body)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractMediaIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowedMediaIDsUnion(t *testing.T) {
	f := newFakeBackend()
	f.SetGrant(editorUser.ID, KeyPage, []int64{10})
	f.SetGrant(editorUser.ID, KeyMedia, []int64{500})
	f.owned[editorUser.ID] = []int64{300}
	f.related[10] = []int64{400}
	f.bodies[10] = `<!-- wp:image {"id":450} -->`
	eng := newTestEngine(f)

	d, err := eng.AllowedMediaIDs(editorUser)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{300, 400, 450, 500}
	if !reflect.DeepEqual(d.IDs, want) {
		t.Errorf("IDs = %v, want %v", d.IDs, want)
	}
}

func TestAllowedMediaIDsTaxonomyContentContributes(t *testing.T) {
	// Attachments of taxonomy-derived content count as well.
	f := newFakeBackend()
	f.settings.EnabledTaxonomies = []string{"category"}
	f.taxonomies[KeyPost] = []string{"category"}
	f.termContent["category"] = map[int64][]int64{4: {100}}
	f.SetGrant(editorUser.ID, TaxonomyKey("category"), []int64{4})
	f.related[100] = []int64{610}
	eng := newTestEngine(f)

	d, err := eng.AllowedMediaIDs(editorUser)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.IDs, []int64{610}) {
		t.Errorf("IDs = %v, want [610]", d.IDs)
	}
}

func TestAllowedMediaIDsGating(t *testing.T) {
	f := newFakeBackend()
	f.owned[editorUser.ID] = []int64{300}
	eng := newTestEngine(f)

	if d, _ := eng.AllowedMediaIDs(adminUser); !d.Unrestricted {
		t.Error("administrator media access must be unrestricted")
	}
	if d, _ := eng.AllowedMediaIDs(authorUser); !d.Unrestricted {
		t.Error("non-restricted role media access must be unrestricted")
	}

	f.schedules[editorUser.ID] = &Schedule{End: datePtr(2025, time.June, 1)}
	d, err := eng.AllowedMediaIDs(editorUser)
	if err != nil {
		t.Fatal(err)
	}
	if d.Unrestricted || len(d.IDs) != 0 {
		t.Errorf("expired schedule must deny all media, got %+v", d)
	}
}

func TestAllowedMediaIDsRestrictionDisabled(t *testing.T) {
	f := newFakeBackend()
	f.settings.MediaRestriction = false
	eng := newTestEngine(f)

	d, err := eng.AllowedMediaIDs(editorUser)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Unrestricted {
		t.Error("media restriction off means no media filtering")
	}
}
