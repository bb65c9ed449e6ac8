package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
)

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name       string
		items      []string
		categories []string
		all        bool
		want       []string
		wantErr    string
	}{
		{name: "items", items: []string{"chrome_cache", "clipboard"}, want: []string{"chrome_cache", "clipboard"}},
		{name: "category", categories: []string{catalog.Desktop}, want: []string{"user_shortcuts"}},
		{name: "items then category", items: []string{"clipboard"}, categories: []string{catalog.AppTraces},
			want: []string{"clipboard", "recent_docs", "userassist", "app_event_logs"}},
		{name: "unknown item", items: []string{"chrome_cache", "floppy_cache"}, wantErr: "unknown item floppy_cache"},
		{name: "unknown category", categories: []string{"gpu"}, wantErr: `unknown category "gpu"`},
		{name: "empty", wantErr: "nothing selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSelection(tt.items, tt.categories, tt.all)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSelectionAll(t *testing.T) {
	got, err := resolveSelection([]string{"bogus"}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, catalog.ItemKeys(), got)
}

func TestUnknownItemErrorListsValidKeys(t *testing.T) {
	_, err := resolveSelection([]string{"nope"}, nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome_history")
	assert.Contains(t, err.Error(), "app_event_logs")
}

func TestAdminNotice(t *testing.T) {
	sel := []string{"prefetch", "clipboard", "app_event_logs"}
	assert.Equal(t, []string{"prefetch", "app_event_logs"}, adminNotice(sel, false))
	assert.Empty(t, adminNotice(sel, true))
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf, catalog.Categories())
	out := buf.String()
	for _, key := range catalog.ItemKeys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "Browser history")
	assert.Contains(t, out, "[admin]")
	assert.Contains(t, out, "[recoverable]")
}
