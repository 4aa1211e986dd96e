package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><body>
<div data-testid="price"><span class="yen">¥</span><span> 1,200 </span></div>
<h1 class="title">  Widget  </h1>
</body></html>`

func TestStaticPage_TextAndWait(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStaticSession(map[string]string{"https://example.test/1": samplePage})

	p, err := s.NewPage(ctx)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Goto(ctx, "https://example.test/1", WaitNetworkIdle))
	require.NoError(t, p.WaitForSelector(ctx, `div[data-testid="price"]`, time.Second))

	title, err := p.Text(ctx, "h1.title")
	require.NoError(t, err)
	assert.Equal(t, "Widget", title)

	price, err := p.Text(ctx, `div[data-testid="price"] span:not([class])`)
	require.NoError(t, err)
	assert.Equal(t, "1,200", price)
}

func TestStaticPage_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStaticSession(map[string]string{"https://example.test/1": samplePage})
	p, err := s.NewPage(ctx)
	require.NoError(t, err)

	err = p.Goto(ctx, "https://example.test/missing", WaitNetworkIdle)
	assert.ErrorIs(t, err, ErrNavigation)

	require.NoError(t, p.Goto(ctx, "https://example.test/1", WaitDOMContentLoaded))
	assert.ErrorIs(t, p.WaitForSelector(ctx, "p.nothing", 5*time.Second), ErrSelectorNotFound)

	_, err = p.Text(ctx, "p.nothing")
	assert.ErrorIs(t, err, ErrElementMissing)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	_, err = p.Text(ctx, "h1.title")
	assert.ErrorIs(t, err, ErrPageClosed)
}

func TestStaticSession_Counters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStaticSession(nil)

	p1, err := s.NewPage(ctx)
	require.NoError(t, err)
	_, err = s.NewPage(ctx)
	require.NoError(t, err)
	require.NoError(t, p1.Close())

	assert.Equal(t, 2, s.Opened())
	assert.Equal(t, 1, s.Closed())

	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())
	_, err = s.NewPage(ctx)
	assert.Error(t, err)
}
