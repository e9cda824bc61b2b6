package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/infrastructure/storage"
)

type memPersister struct {
	doc *entities.Document
}

func (m *memPersister) Load(context.Context) (*entities.Document, error) { return m.doc, nil }

func (m *memPersister) Save(_ context.Context, doc *entities.Document) error {
	m.doc = doc
	return nil
}

func TestClockOffset(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(ctx, &memPersister{})
	require.NoError(t, err)
	clk := New(store)

	assert.Equal(t, time.Duration(0), clk.Offset())
	before := time.Now().UTC()
	now := clk.Now()
	assert.WithinDuration(t, before, now, time.Second)

	require.NoError(t, clk.SetOffset(ctx, 3600))
	assert.Equal(t, time.Hour, clk.Offset())
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), clk.Now(), time.Second)

	// Un décalage nul ramène à l'heure réelle.
	require.NoError(t, clk.SetOffset(ctx, 0))
	assert.WithinDuration(t, time.Now().UTC(), clk.Now(), time.Second)
}

func TestClockOffsetPersisted(t *testing.T) {
	ctx := context.Background()
	p := &memPersister{}
	store, err := storage.Open(ctx, p)
	require.NoError(t, err)
	clk := New(store)
	require.NoError(t, clk.SetOffset(ctx, -120))

	// Réouverture sur le même support : le décalage survit.
	reopened, err := storage.Open(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, -2*time.Minute, New(reopened).Offset())
}
