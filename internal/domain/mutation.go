package domain

// Mutation is a positional edit applied to a freshly loaded document.
//
// Apply validates every position before touching the document, so a failed
// mutation leaves it exactly as it was.
type Mutation interface {
	// Op is the operation name used in logs and metrics.
	Op() string
	Apply(doc *Document) error
}

// AddCategory appends an empty category.
type AddCategory struct {
	Name string
}

func (m AddCategory) Op() string { return "add_category" }

func (m AddCategory) Apply(doc *Document) error {
	doc.Categories = append(doc.Categories, Category{Name: m.Name, Sites: []Site{}})
	return nil
}

// AddSite appends a site to the category at CategoryIndex.
type AddSite struct {
	CategoryIndex int
	Site          Site
}

func (m AddSite) Op() string { return "add_site" }

func (m AddSite) Apply(doc *Document) error {
	if err := checkIndex(IndexCategory, m.CategoryIndex, len(doc.Categories)); err != nil {
		return err
	}
	c := &doc.Categories[m.CategoryIndex]
	c.Sites = append(c.Sites, m.Site)
	return nil
}

// DeleteCategory removes a category together with all of its sites.
type DeleteCategory struct {
	CategoryIndex int
}

func (m DeleteCategory) Op() string { return "delete_category" }

func (m DeleteCategory) Apply(doc *Document) error {
	if err := checkIndex(IndexCategory, m.CategoryIndex, len(doc.Categories)); err != nil {
		return err
	}
	doc.Categories = append(doc.Categories[:m.CategoryIndex], doc.Categories[m.CategoryIndex+1:]...)
	return nil
}

// DeleteSite removes one site from a category.
type DeleteSite struct {
	CategoryIndex int
	SiteIndex     int
}

func (m DeleteSite) Op() string { return "delete_site" }

func (m DeleteSite) Apply(doc *Document) error {
	if err := checkIndex(IndexCategory, m.CategoryIndex, len(doc.Categories)); err != nil {
		return err
	}
	c := &doc.Categories[m.CategoryIndex]
	if err := checkIndex(IndexSite, m.SiteIndex, len(c.Sites)); err != nil {
		return err
	}
	c.Sites = append(c.Sites[:m.SiteIndex], c.Sites[m.SiteIndex+1:]...)
	return nil
}

// EditSite replaces the addressed site record in place.
type EditSite struct {
	CategoryIndex int
	SiteIndex     int
	Site          Site
}

func (m EditSite) Op() string { return "edit_site" }

func (m EditSite) Apply(doc *Document) error {
	if err := checkIndex(IndexCategory, m.CategoryIndex, len(doc.Categories)); err != nil {
		return err
	}
	c := &doc.Categories[m.CategoryIndex]
	if err := checkIndex(IndexSite, m.SiteIndex, len(c.Sites)); err != nil {
		return err
	}
	c.Sites[m.SiteIndex] = m.Site
	return nil
}

// MoveSite reassigns a site to another category and replaces its fields.
// The site is appended to the target category. When source and target are
// the same category it behaves like EditSite and keeps its position.
type MoveSite struct {
	CategoryIndex       int
	SiteIndex           int
	TargetCategoryIndex int
	Site                Site
}

func (m MoveSite) Op() string { return "move_site" }

func (m MoveSite) Apply(doc *Document) error {
	n := len(doc.Categories)
	if err := checkIndex(IndexCategory, m.CategoryIndex, n); err != nil {
		return err
	}
	if err := checkIndex(IndexSite, m.SiteIndex, len(doc.Categories[m.CategoryIndex].Sites)); err != nil {
		return err
	}
	if err := checkIndex(IndexTargetCategory, m.TargetCategoryIndex, n); err != nil {
		return err
	}

	if m.CategoryIndex == m.TargetCategoryIndex {
		doc.Categories[m.CategoryIndex].Sites[m.SiteIndex] = m.Site
		return nil
	}

	src := &doc.Categories[m.CategoryIndex]
	src.Sites = append(src.Sites[:m.SiteIndex], src.Sites[m.SiteIndex+1:]...)
	dst := &doc.Categories[m.TargetCategoryIndex]
	dst.Sites = append(dst.Sites, m.Site)
	return nil
}
