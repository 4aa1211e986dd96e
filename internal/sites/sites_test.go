package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want Kind
	}{
		{"https://netmall.hardoff.co.jp/product/123/", NetMall},
		{"https://jp.mercari.com/item/m123", Mercari},
		{"https://mercari.com/item/1", Mercari},
		{"https://www.trefac.jp/store/item.html", Trefac},
		{"https://buyee.jp/mercari/item/m123", Buyee},
		{"https://page.auctions.yahoo.co.jp/jp/auction/x1", Yahoo},
		{"https://www.2ndstreet.jp/goods/detail/1", SecondStreet},
		{"https://unknown-site.example/x", Unsupported},
		{"", Unsupported},
		{"URL", Unsupported},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.url), tt.url)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// A Buyee proxy link that embeds a Yahoo auction host is still Buyee's page.
	assert.Equal(t, Buyee, Classify("https://buyee.jp/item/jdirectitems/auction/x?src=auctions.yahoo.co.jp"))
	assert.Equal(t, Mercari, Classify("https://mercari.com/search?q=trefac.jp"))
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, Supported("https://www.2ndstreet.jp/goods/1"))
	assert.False(t, Supported("https://example.com/mercari"))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mercari", Mercari.String())
	assert.Equal(t, "unsupported", Kind(99).String())
}
