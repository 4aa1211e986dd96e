package processing

import (
	"context"
	"testing"

	"marketsheet/internal/extract"
	"marketsheet/internal/sheets"

	"github.com/stretchr/testify/assert"
)

func sampleRows() []sheets.Row {
	return []sheets.Row{
		{"", "", "https://mercari.com/item/1"},
		{"X", "OldTitle", "https://mercari.com/item/2"},
	}
}

func TestFilterLinks(t *testing.T) {
	rows := append(sampleRows(),
		sheets.Row{"", "  ", " https://jp.mercari.com/item/3 "},
		sheets.Row{"", "", "https://unknown-site.example/x"},
		sheets.Row{"", ""},
	)

	tests := []struct {
		name  string
		links []string
		want  []string
	}{
		{
			name:  "already titled row is skipped",
			links: []string{"https://mercari.com/item/1", "https://mercari.com/item/2"},
			want:  []string{"https://mercari.com/item/1"},
		},
		{
			name:  "unsupported site is dropped",
			links: []string{"https://unknown-site.example/x"},
		},
		{
			name:  "link without a row is dropped",
			links: []string{"https://mercari.com/item/404"},
		},
		{
			name:  "whitespace is ignored and blank titles count as empty",
			links: []string{"https://jp.mercari.com/item/3"},
			want:  []string{"https://jp.mercari.com/item/3"},
		},
		{
			name:  "repeated links are kept once",
			links: []string{"https://mercari.com/item/1", "https://mercari.com/item/1 "},
			want:  []string{"https://mercari.com/item/1"},
		},
		{
			name:  "header and empty values are dropped",
			links: []string{"URL", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLinks(context.Background(), tt.links, rows)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconcile(t *testing.T) {
	results := []Extracted{
		{URL: "https://mercari.com/item/1", Result: extract.Result{Label: "Widget", Price: "1,200", State: extract.Extracted}},
	}

	got := Reconcile(context.Background(), results, sampleRows())

	assert.Equal(t, []sheets.CellUpdate{
		{Row: 1, Column: sheets.ColumnTitle, Value: "Widget"},
		{Row: 1, Column: sheets.ColumnPrice, Value: "1,200"},
	}, got)
}

func TestReconcile_SentinelsAreWritten(t *testing.T) {
	results := []Extracted{
		{URL: "https://mercari.com/item/1", Result: extract.Result{Label: extract.TitleError, Price: extract.PriceError, State: extract.Failed}},
	}

	got := Reconcile(context.Background(), results, sampleRows())

	assert.Equal(t, []sheets.CellUpdate{
		{Row: 1, Column: sheets.ColumnTitle, Value: "title error"},
		{Row: 1, Column: sheets.ColumnPrice, Value: "price error"},
	}, got)
}

func TestReconcile_FirstMatchWinsAndMissesDrop(t *testing.T) {
	rows := []sheets.Row{
		{"", "", "URL"},
		{"", "", "https://trefac.jp/store/1"},
		{"", "", "https://trefac.jp/store/1"},
	}
	results := []Extracted{
		{URL: "https://trefac.jp/store/1", Result: extract.Result{Label: "Coat", Price: "3,300"}},
		{URL: "https://trefac.jp/store/missing", Result: extract.Result{Label: "Gone", Price: "1"}},
	}

	got := Reconcile(context.Background(), results, rows)

	assert.Equal(t, []sheets.CellUpdate{
		{Row: 2, Column: sheets.ColumnTitle, Value: "Coat"},
		{Row: 2, Column: sheets.ColumnPrice, Value: "3,300"},
	}, got)
}

func TestReconcile_NoMatchesIsEmpty(t *testing.T) {
	results := []Extracted{{URL: "https://mercari.com/item/9", Result: extract.Result{Label: "a", Price: "b"}}}
	assert.Empty(t, Reconcile(context.Background(), results, sampleRows()))
	assert.Empty(t, Reconcile(context.Background(), nil, sampleRows()))
}

func TestReconcile_Idempotent(t *testing.T) {
	rows := sampleRows()
	results := []Extracted{
		{URL: "https://mercari.com/item/1", Result: extract.Result{Label: "Widget", Price: "1,200"}},
		{URL: "https://mercari.com/item/2", Result: extract.Result{Label: "Other", Price: "10"}},
	}

	first := Reconcile(context.Background(), results, rows)
	second := Reconcile(context.Background(), results, rows)

	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
	assert.Equal(t, sampleRows(), rows)
}
