package access

import (
	"regexp"
	"strconv"
	"strings"
)

// AllowedMediaIDs resolves the attachment allow-list for a user: own
// uploads, attachments related to any allowed content item, media IDs
// embedded in allowed body content, and explicitly granted media.
func (e *Engine) AllowedMediaIDs(u User) (Decision, error) {
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

	if !settings.MediaRestriction {
		return Unrestricted(), nil
	}

	own, err := e.Directory.AttachmentsOwnedBy(u.ID)
	if err != nil {
		return Decision{}, err
	}

	// Combined allowed content across every enabled type, so attachments
	// follow the pages/posts the user can already reach.
	var content []int64
	for _, contentType := range settings.EnabledTypes {
		ids, err := e.allowedForType(u.ID, contentType, settings)
		if err != nil {
			return Decision{}, err
		}
		content = append(content, ids...)
	}
	content = NormalizeIDs(content)

	var related, embedded []int64
	if len(content) > 0 {
		related, err = e.Directory.AttachmentsRelatedTo(content)
		if err != nil {
			return Decision{}, err
		}
		bodies, err := e.Directory.BodiesOf(content)
		if err != nil {
			return Decision{}, err
		}
		for _, body := range bodies {
			embedded = append(embedded, ExtractMediaIDs(body)...)
		}
	}

	explicit, err := e.Grants.Grant(u.ID, KeyMedia)
	if err != nil {
		return Decision{}, err
	}

	return Decision{IDs: unionIDs(own, related, embedded, explicit)}, nil
}

// Body-content patterns for embedded media. Best effort: a missed embed
// only hides an image from the library, but every match must be a
// well-formed numeric ID.
var (
	blockImageRe   = regexp.MustCompile(`(?i)wp:image\s+\{"id":(\d+)`)
	blockGalleryRe = regexp.MustCompile(`(?i)wp:gallery.*?"ids":\[([\d,]+)\]`)
	shortcodeRe    = regexp.MustCompile(`(?i)\[gallery[^\]]*ids=["']?([\d,]+)["']?`)
	imageClassRe   = regexp.MustCompile(`(?i)class="[^"]*wp-image-(\d+)[^"]*"`)
)

// ExtractMediaIDs scans body text for attachment references: block image
// and gallery embeds, classic gallery shortcodes, and wp-image-N class
// markers.
func ExtractMediaIDs(body string) []int64 {
	if body == "" {
		return nil
	}

	var ids []int64
	for _, re := range []*regexp.Regexp{blockImageRe, imageClassRe} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
	}
	for _, re := range []*regexp.Regexp{blockGalleryRe, shortcodeRe} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			ids = append(ids, parseIDList(m[1])...)
		}
	}
	return NormalizeIDs(ids)
}

func parseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
