package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
)

func TestOpenWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events_contests.json")
	store, err := Open(context.Background(), NewFilePersister(path))
	require.NoError(t, err)

	store.View(func(d *entities.Document) {
		assert.Empty(t, d.Events)
		assert.Empty(t, d.Contests)
		assert.Zero(t, d.Settings.TimeOffsetSeconds)
	})
	// Rien n'est écrit tant qu'aucune mutation n'a eu lieu.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events_contests.json")

	store, err := Open(ctx, NewFilePersister(path))
	require.NoError(t, err)

	start := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	require.NoError(t, store.Update(ctx, func(d *entities.Document) error {
		d.Events["Raid"] = &entities.Event{
			Name:                  "Raid",
			StartTime:             start,
			EndTime:               start.Add(2 * time.Hour),
			AnnouncementChannelID: "123",
			WaitingChannelID:      "456",
			RoleID:                "789",
			MessageID:             "321",
			MaxParticipants:       5,
			Participants:          []entities.Participant{{ID: "u1", DisplayName: "Alice", Pseudo: "AliceInGame"}},
			Phase:                 entities.EventPending,
		}
		d.Settings.TimeOffsetSeconds = 3600
		return nil
	}))

	reopened, err := Open(ctx, NewFilePersister(path))
	require.NoError(t, err)
	reopened.View(func(d *entities.Document) {
		e, ok := d.Events["Raid"]
		require.True(t, ok)
		assert.Equal(t, "Raid", e.Name)
		assert.True(t, e.StartTime.Equal(start))
		assert.False(t, e.Started())
		require.Len(t, e.Participants, 1)
		assert.Equal(t, entities.Snowflake("u1"), e.Participants[0].ID)
		assert.Equal(t, int64(3600), d.Settings.TimeOffsetSeconds)
	})
}

func TestLoadLegacyDocument(t *testing.T) {
	// Format historique : ids numériques, phases portées par des booléens,
	// clé de l'entité absente du corps.
	legacy := `{
    "events": {
        "Raid": {
            "start_time": "2025-06-15T20:00:00Z",
            "end_time": "2025-06-15T22:00:00Z",
            "announcement_channel_id": 123456789,
            "waiting_channel_id": 987654321,
            "role_id": 555,
            "message_id": 42,
            "max_participants": 10,
            "participants": [{"id": 111, "name": "Alice", "pseudo": "AliceInGame"}],
            "is_started": true,
            "reminded_30m": true
        }
    },
    "contests": {
        "Pixel Art": {
            "description": "Le plus beau pixel art",
            "end_time": "2025-06-20T18:00:00Z",
            "announcement_channel_id": 222,
            "message_id": 43,
            "participants": [],
            "is_finished": false
        }
    },
    "settings": {"time_offset_seconds": 120}
}`
	path := filepath.Join(t.TempDir(), "events_contests.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	store, err := Open(context.Background(), NewFilePersister(path))
	require.NoError(t, err)

	store.View(func(d *entities.Document) {
		e, ok := d.Events["Raid"]
		require.True(t, ok)
		assert.Equal(t, "Raid", e.Name)
		assert.Equal(t, entities.Snowflake("123456789"), e.AnnouncementChannelID)
		assert.Equal(t, entities.Snowflake("111"), e.Participants[0].ID)
		assert.True(t, e.Started())
		assert.Equal(t, entities.EventStarted, e.Phase)

		c, ok := d.Contests["Pixel Art"]
		require.True(t, ok)
		assert.Equal(t, "Pixel Art", c.Title)
		assert.False(t, c.Finished())
		assert.Equal(t, entities.ContestOpen, c.Phase)

		assert.Equal(t, int64(120), d.Settings.TimeOffsetSeconds)
	})
}

type failingPersister struct {
	saveErr error
}

func (f *failingPersister) Load(context.Context) (*entities.Document, error) { return nil, nil }

func (f *failingPersister) Save(context.Context, *entities.Document) error { return f.saveErr }

func TestUpdateKeepsMutationOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, &failingPersister{saveErr: errors.New("disque plein")})
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, func(d *entities.Document) error {
		d.Settings.TimeOffsetSeconds = 42
		return nil
	}))

	// L'état mémoire reste la référence malgré l'échec de sauvegarde.
	store.View(func(d *entities.Document) {
		assert.Equal(t, int64(42), d.Settings.TimeOffsetSeconds)
	})
}

func TestUpdateErrorAbortsSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events_contests.json")
	store, err := Open(ctx, NewFilePersister(path))
	require.NoError(t, err)

	boom := errors.New("refus métier")
	err = store.Update(ctx, func(d *entities.Document) error {
		d.Settings.TimeOffsetSeconds = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
