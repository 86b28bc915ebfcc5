package homepage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/navboard/internal/domain"
)

func TestMapBookmarks(t *testing.T) {
	config := BookmarksConfig{
		{
			"Developer": []map[string][]BookmarkEntry{
				{"Github": {{Abbr: "GH", Icon: "si-github", Href: "https://github.com/"}}},
				{"Broken": {{Abbr: "BR", Href: "not-a-url"}}},
				{"Docs": {{Abbr: "DO", Icon: "mdi-book", Href: "https://go.dev/doc/"}}},
			},
		},
		{
			"Social": []map[string][]BookmarkEntry{
				{"Reddit": {{Abbr: "RE", Icon: "reddit.png", Href: "https://reddit.com/"}}},
				{"Empty": {}},
			},
		},
	}

	doc, err := MapBookmarks(config)
	if err != nil {
		t.Fatalf("MapBookmarks() error = %v", err)
	}

	want := &domain.Document{Categories: []domain.Category{
		{Name: "Developer", Sites: []domain.Site{
			{Name: "Github", URL: "https://github.com/", Icon: "simple-icons:github"},
			{Name: "Docs", URL: "https://go.dev/doc/", Icon: "mdi:book"},
		}},
		{Name: "Social", Sites: []domain.Site{
			{Name: "Reddit", URL: "https://reddit.com/", Icon: "reddit.png"},
		}},
	}}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("MapBookmarks():\n got %#v\nwant %#v", doc, want)
	}
}

func TestMapBookmarksNoValidEntries(t *testing.T) {
	config := BookmarksConfig{
		{"Only": []map[string][]BookmarkEntry{{"Bad": {{Href: ""}}}}},
	}
	doc, err := MapBookmarks(config)
	if err == nil {
		t.Error("MapBookmarks() should return error when no valid bookmarks found")
	}
	if doc != nil {
		t.Errorf("MapBookmarks() should return nil document, got %#v", doc)
	}
}

func TestMapServices(t *testing.T) {
	config := ServicesConfig{
		{
			"Infrastructure": []map[string]ServiceProps{
				{"AdGuard Home": {Icon: "adguard-home.svg", Href: "https://adguard.domain.ext"}},
				{"Invalid Service": {Icon: "test.svg", Href: "not-a-valid-url"}},
			},
		},
		{
			"Media": []map[string]ServiceProps{
				{"Jellyfin": {Icon: "mdi-play", Href: "https://jellyfin.domain.ext"}},
			},
		},
	}

	doc, err := MapServices(config)
	if err != nil {
		t.Fatalf("MapServices() error = %v", err)
	}

	if len(doc.Categories) != 2 {
		t.Fatalf("MapServices() returned %d categories, want 2", len(doc.Categories))
	}
	if got := doc.Categories[0].Sites; len(got) != 1 || got[0].Name != "AdGuard Home" {
		t.Errorf("Infrastructure sites = %#v", got)
	}
	if got := doc.Categories[1].Sites[0].Icon; got != "mdi:play" {
		t.Errorf("Jellyfin icon = %q, want mdi:play", got)
	}
}

func TestMapServicesEmptyConfig(t *testing.T) {
	if _, err := MapServices(ServicesConfig{}); err == nil {
		t.Error("MapServices() with empty config should return error")
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	bookmarks := filepath.Join(dir, "bookmarks.yaml")
	services := filepath.Join(dir, "services.yaml")

	if err := os.WriteFile(bookmarks, []byte(`
- Work:
    - Mail:
        - icon: mdi-email
          href: https://mail.example
`), 0o644); err != nil {
		t.Fatalf("write bookmarks: %v", err)
	}
	if err := os.WriteFile(services, []byte(`
- Infra:
    - Traefik:
        icon: traefik.svg
        href: https://traefik.domain.ext
`), 0o644); err != nil {
		t.Fatalf("write services: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		format   string
		wantErr  bool
		wantSite domain.Site
	}{
		{
			name:     "bookmarks",
			path:     bookmarks,
			format:   FormatBookmarks,
			wantSite: domain.Site{Name: "Mail", URL: "https://mail.example", Icon: "mdi:email"},
		},
		{
			name:     "default format is bookmarks",
			path:     bookmarks,
			format:   "",
			wantSite: domain.Site{Name: "Mail", URL: "https://mail.example", Icon: "mdi:email"},
		},
		{
			name:     "services",
			path:     services,
			format:   FormatServices,
			wantSite: domain.Site{Name: "Traefik", URL: "https://traefik.domain.ext", Icon: "traefik.svg"},
		},
		{name: "unknown format", path: bookmarks, format: "opml", wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "nope.yaml"), format: FormatBookmarks, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Import(tt.path, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("Import() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if got := doc.Categories[0].Sites[0]; got != tt.wantSite {
				t.Errorf("first site = %#v, want %#v", got, tt.wantSite)
			}
		})
	}
}

func TestIconifyName(t *testing.T) {
	tests := map[string]string{
		"mdi-email":          "mdi:email",
		"si-github":          "simple-icons:github",
		"adguard-home.svg":   "adguard-home.svg",
		"mdi:already-native": "mdi:already-native",
		"":                   "",
	}
	for in, want := range tests {
		if got := iconifyName(in); got != want {
			t.Errorf("iconifyName(%q) = %q, want %q", in, got, want)
		}
	}
}
