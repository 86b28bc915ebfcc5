package homepage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/navboard/internal/domain"
)

// MapBookmarks converts bookmarks.yaml into a navigation document.
// Categories and sites keep their file order. Entries without a usable
// absolute href are skipped; categories left empty are kept.
func MapBookmarks(config BookmarksConfig) (*domain.Document, error) {
	doc := domain.NewDocument()

	for _, category := range config {
		for categoryName, bookmarkList := range category {
			c := domain.Category{Name: categoryName, Sites: []domain.Site{}}

			for _, bookmarkMap := range bookmarkList {
				for bookmarkName, entries := range bookmarkMap {
					// Each bookmark has a list with a single entry
					if len(entries) == 0 || !isAbsoluteURL(entries[0].Href) {
						continue
					}
					entry := entries[0]
					c.Sites = append(c.Sites, domain.Site{
						Name: bookmarkName,
						URL:  entry.Href,
						Icon: iconifyName(entry.Icon),
					})
				}
			}

			doc.Categories = append(doc.Categories, c)
		}
	}

	if doc.SiteCount() == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in config")
	}
	return doc, nil
}

// MapServices converts services.yaml groups into categories of sites.
func MapServices(config ServicesConfig) (*domain.Document, error) {
	doc := domain.NewDocument()

	for _, groupMap := range config {
		for groupName, servicesList := range groupMap {
			c := domain.Category{Name: groupName, Sites: []domain.Site{}}

			for _, serviceMap := range servicesList {
				for serviceName, props := range serviceMap {
					if !isAbsoluteURL(props.Href) {
						continue
					}
					c.Sites = append(c.Sites, domain.Site{
						Name: serviceName,
						URL:  props.Href,
						Icon: iconifyName(props.Icon),
					})
				}
			}

			doc.Categories = append(doc.Categories, c)
		}
	}

	if doc.SiteCount() == 0 {
		return nil, fmt.Errorf("no valid services found in homepage config")
	}
	return doc, nil
}

// Import loads a Homepage file of the given format into a document
func Import(path, format string) (*domain.Document, error) {
	loader := NewLoader(path)

	switch format {
	case FormatBookmarks, "":
		config, err := loader.LoadBookmarks()
		if err != nil {
			return nil, err
		}
		return MapBookmarks(config)
	case FormatServices:
		config, err := loader.LoadServices()
		if err != nil {
			return nil, err
		}
		return MapServices(config)
	default:
		return nil, fmt.Errorf("unknown homepage format %q", format)
	}
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// iconifyName maps Homepage icon shorthands to Iconify names.
// Example: "mdi-email" -> "mdi:email", "si-github" -> "simple-icons:github".
// Anything else (dashboard-icons file names, URLs) is kept as is.
func iconifyName(icon string) string {
	switch {
	case strings.HasPrefix(icon, "mdi-"):
		return "mdi:" + strings.TrimPrefix(icon, "mdi-")
	case strings.HasPrefix(icon, "si-"):
		return "simple-icons:" + strings.TrimPrefix(icon, "si-")
	default:
		return icon
	}
}
