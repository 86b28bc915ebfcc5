package homepage

// ServicesConfig represents the top-level structure of services.yaml
// Homepage uses dynamic keys, so we parse as []map[string][]map[string]ServiceProps
// The outer list keeps group order, each inner list keeps service order.
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps contains the service properties we import
type ServiceProps struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// BookmarkEntry holds the properties of one bookmark in bookmarks.yaml
type BookmarkEntry struct {
	Icon string `yaml:"icon"`
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
}

// BookmarksConfig is the root structure for bookmarks.yaml. The file is a
// list of single-key maps from category name to a list of single-key maps
// from bookmark name to a one-element list holding its properties
// (icon, abbr, href).
type BookmarksConfig []map[string][]map[string][]BookmarkEntry
