package domain

// Document is the single persisted navigation record.
//
// Categories and sites are addressed by their zero-based position at the
// time of the request. There are no stable identifiers: deleting an entry
// shifts every following entry one position earlier.
type Document struct {
	// Categories are kept in display order.
	Categories []Category `json:"categories"`
}

// Category is a named, ordered group of sites.
// Name uniqueness is advisory and not enforced here.
type Category struct {
	Name  string `json:"name"`
	Sites []Site `json:"sites"`
}

// Site is a single bookmark entry.
type Site struct {
	// Name is the display label.
	Name string `json:"name"`

	// URL is the absolute link target.
	URL string `json:"url"`

	// Icon is an opaque icon reference (Iconify name, e.g. "mdi:email").
	// It is interpreted by the page, never validated by the store.
	Icon string `json:"icon"`
}

// NewDocument returns the default document used when nothing is stored.
func NewDocument() *Document {
	return &Document{Categories: []Category{}}
}

// Normalize replaces nil slices with empty ones so the document always
// serializes as {"categories": [...]} with "sites": [] on every category.
func (d *Document) Normalize() {
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	for i := range d.Categories {
		if d.Categories[i].Sites == nil {
			d.Categories[i].Sites = []Site{}
		}
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Categories: make([]Category, len(d.Categories))}
	for i, c := range d.Categories {
		sites := make([]Site, len(c.Sites))
		copy(sites, c.Sites)
		out.Categories[i] = Category{Name: c.Name, Sites: sites}
	}
	return out
}

// SiteCount returns the number of sites across all categories.
func (d *Document) SiteCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Sites)
	}
	return n
}
