// Package catalog is the static list of cleanup categories and their items.
// Category order is the order categories run in.
package catalog

// Category keys.
const (
	Browser         = "browser"
	WindowsActivity = "windows_activity"
	SystemTraces    = "system_traces"
	Desktop         = "desktop"
	AppTraces       = "app_traces"
)

// Item is one user-selectable unit of cleanup work.
type Item struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	RequiresAdmin bool   `json:"requires_admin,omitempty"`
	Recoverable   bool   `json:"recoverable,omitempty"`
	Warning       string `json:"warning,omitempty"`
}

// Category groups related items under a display name.
type Category struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

var categories = []Category{
	{
		Key:  Browser,
		Name: "Browser history",
		Items: []Item{
			{Key: "chrome_history", Label: "Chrome browsing history"},
			{Key: "chrome_cache", Label: "Chrome cache"},
			{Key: "chrome_cookies", Label: "Chrome cookies"},
			{Key: "chrome_downloads", Label: "Chrome download history"},
			{Key: "edge_history", Label: "Edge browsing history"},
			{Key: "edge_cache", Label: "Edge cache"},
			{Key: "edge_cookies", Label: "Edge cookies"},
			{Key: "edge_downloads", Label: "Edge download history"},
			{Key: "firefox_history", Label: "Firefox browsing history"},
			{Key: "firefox_cache", Label: "Firefox cache"},
			{Key: "firefox_cookies", Label: "Firefox cookies"},
			{Key: "brave_history", Label: "Brave browsing history"},
			{Key: "brave_cache", Label: "Brave cache"},
			{Key: "brave_cookies", Label: "Brave cookies"},
		},
	},
	{
		Key:  WindowsActivity,
		Name: "Windows search and activity",
		Items: []Item{
			{Key: "search_history", Label: "Windows search history"},
			{Key: "activity_timeline", Label: "Activity timeline"},
			{Key: "recent_files", Label: "Recently used files"},
			{Key: "jump_lists", Label: "Taskbar jump lists"},
			{Key: "run_history", Label: "Run dialog history"},
			{Key: "explorer_history", Label: "Explorer address bar history"},
		},
	},
	{
		Key:  SystemTraces,
		Name: "System traces",
		Items: []Item{
			{Key: "temp_files", Label: "Temporary files (%TEMP%)"},
			{Key: "windows_temp", Label: "Windows temporary files"},
			{Key: "prefetch", Label: "Prefetch files", RequiresAdmin: true,
				Warning: "the next few program launches may be slower"},
			{Key: "thumbnail_cache", Label: "Thumbnail cache"},
			{Key: "recycle_bin", Label: "Empty the Recycle Bin"},
			{Key: "clipboard", Label: "Clipboard contents"},
		},
	},
	{
		Key:  Desktop,
		Name: "Desktop",
		Items: []Item{
			{Key: "user_shortcuts", Label: "User-created shortcuts", Recoverable: true},
		},
	},
	{
		Key:  AppTraces,
		Name: "Application usage traces",
		Items: []Item{
			{Key: "recent_docs", Label: "Recent documents (MRU lists)"},
			{Key: "userassist", Label: "Program usage statistics (UserAssist)"},
			{Key: "app_event_logs", Label: "Application event log", RequiresAdmin: true,
				Warning: "cleared event logs cannot be recovered"},
		},
	},
}

var byItem = func() map[string]int {
	m := make(map[string]int)
	for ci, c := range categories {
		for _, it := range c.Items {
			m[it.Key] = ci
		}
	}
	return m
}()

// Categories returns every category in run order. The result is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Items = append([]Item(nil), c.Items...)
		out[i] = c
	}
	return out
}

// CategoryOf returns the key of the category owning item.
func CategoryOf(item string) (string, bool) {
	ci, ok := byItem[item]
	if !ok {
		return "", false
	}
	return categories[ci].Key, true
}

// Lookup returns the item with the given key.
func Lookup(item string) (Item, bool) {
	ci, ok := byItem[item]
	if !ok {
		return Item{}, false
	}
	for _, it := range categories[ci].Items {
		if it.Key == item {
			return it, true
		}
	}
	return Item{}, false
}

// Find returns the category with the given key.
func Find(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			c.Items = append([]Item(nil), c.Items...)
			return c, true
		}
	}
	return Category{}, false
}

// ItemKeys returns every item key in catalog order.
func ItemKeys() []string {
	var keys []string
	for _, c := range categories {
		for _, it := range c.Items {
			keys = append(keys, it.Key)
		}
	}
	return keys
}
