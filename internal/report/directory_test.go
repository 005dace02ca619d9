package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tellerdesk/internal/api"
)

type fakeLister struct {
	clients []api.Client
	err     error
	calls   int
}

func (f *fakeLister) ListClients(_ context.Context) ([]api.Client, error) {
	f.calls++
	return f.clients, f.err
}

func TestDirectoryLoadAndFind(t *testing.T) {
	l := &fakeLister{clients: []api.Client{
		{ID: 1, FullName: "Jose Lema"},
		{ID: 2, FullName: "Marianela Montalvo"},
	}}
	d := NewDirectory(l, nil)

	assert.True(t, d.NeedsLoad())
	d.Commit(d.Fetch(context.Background()))
	assert.False(t, d.NeedsLoad())
	assert.Equal(t, 1, l.calls)

	c, ok := d.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Marianela Montalvo", c.FullName)

	_, ok = d.Find(99)
	assert.False(t, ok)
	assert.Empty(t, d.Err())
}

func TestDirectoryAbsorbsLoadFailure(t *testing.T) {
	l := &fakeLister{err: errors.New("backend down")}
	d := NewDirectory(l, nil)

	d.Commit(d.Fetch(context.Background()))

	assert.False(t, d.NeedsLoad())
	assert.NotNil(t, d.Clients())
	assert.Empty(t, d.Clients())
	assert.Equal(t, "backend down", d.Err())

	_, ok := d.Find(1)
	assert.False(t, ok)
}

func TestDirectoryFindBeforeLoadIsAbsent(t *testing.T) {
	d := NewDirectory(&fakeLister{}, nil)
	_, ok := d.Find(1)
	assert.False(t, ok)
}

func TestDirectoryNormalizesNilList(t *testing.T) {
	d := NewDirectory(&fakeLister{}, nil)
	d.Commit(d.Fetch(context.Background()))
	assert.NotNil(t, d.Clients())
	assert.Empty(t, d.Clients())
}
