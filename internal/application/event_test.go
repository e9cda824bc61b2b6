package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/infrastructure/storage"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/input"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/presentation"
)

var testBase = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

func newEventFixture(t *testing.T) (*EventService, *storage.Store, *fakeMessenger, *fakeClock) {
	t.Helper()
	store := newTestStore(t)
	clk := &fakeClock{now: testBase}
	msgr := newFakeMessenger()
	tr := fakeTranslator{}
	svc := NewEventService(store, clk, msgr, presentation.NewRenderer(tr, "fr"), tr, "fr")
	return svc, store, msgr, clk
}

func seedEvent(t *testing.T, store *storage.Store, e *entities.Event) {
	t.Helper()
	err := store.Update(context.Background(), func(d *entities.Document) error {
		d.Events[e.Name] = e
		return nil
	})
	require.NoError(t, err)
}

func getEvent(store *storage.Store, name string) *entities.Event {
	var e *entities.Event
	store.View(func(d *entities.Document) {
		if ev, ok := d.Events[name]; ok {
			e = ev.Clone()
		}
	})
	return e
}

func pendingEvent(name string, start, end time.Time, max int) *entities.Event {
	return &entities.Event{
		Name:                  name,
		StartTime:             start,
		EndTime:               end,
		AnnouncementChannelID: "chan-annonce",
		WaitingChannelID:      "chan-vocal",
		RoleID:                "role-jeu",
		MessageID:             "msg-annonce",
		MaxParticipants:       max,
		Participants:          []entities.Participant{},
		Phase:                 entities.EventPending,
	}
}

func TestEventServiceCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("création nominale", func(t *testing.T) {
		svc, store, msgr, _ := newEventFixture(t)
		cmd := input.CreateEventCommand{
			Name:                  "Soirée Among Us",
			StartTime:             testBase.Add(2 * time.Hour),
			EndTime:               testBase.Add(4 * time.Hour),
			AnnouncementChannelID: "chan-annonce",
			WaitingChannelID:      "chan-vocal",
			RoleID:                "role-jeu",
			MaxParticipants:       10,
		}
		require.NoError(t, svc.CreateEvent(ctx, cmd))

		e := getEvent(store, "Soirée Among Us")
		require.NotNil(t, e)
		assert.Equal(t, entities.EventPending, e.Phase)
		assert.NotEmpty(t, string(e.MessageID))
		assert.Contains(t, msgr.broadcastContents(), "broadcast.new_event")
	})

	t.Run("nom dupliqué refusé", func(t *testing.T) {
		svc, store, _, _ := newEventFixture(t)
		seedEvent(t, store, pendingEvent("Doublon", testBase.Add(time.Hour), testBase.Add(2*time.Hour), 5))
		err := svc.CreateEvent(ctx, input.CreateEventCommand{
			Name:                  "Doublon",
			StartTime:             testBase.Add(time.Hour),
			EndTime:               testBase.Add(2 * time.Hour),
			AnnouncementChannelID: "chan-annonce",
			MaxParticipants:       5,
		})
		assert.ErrorIs(t, err, domain.ErrEventExists)
	})

	t.Run("entrées invalides refusées", func(t *testing.T) {
		svc, _, _, _ := newEventFixture(t)
		cases := []input.CreateEventCommand{
			{Name: "", StartTime: testBase, EndTime: testBase.Add(time.Hour), MaxParticipants: 5},
			{Name: "X", StartTime: testBase, EndTime: testBase.Add(time.Hour), MaxParticipants: 0},
			{Name: "X", StartTime: testBase.Add(time.Hour), EndTime: testBase, MaxParticipants: 5},
		}
		for _, cmd := range cases {
			assert.ErrorIs(t, svc.CreateEvent(ctx, cmd), domain.ErrInvalidInput)
		}
	})

	t.Run("salon irrésoluble refusé", func(t *testing.T) {
		svc, store, msgr, _ := newEventFixture(t)
		msgr.UnresolvableChannels["chan-mort"] = true
		err := svc.CreateEvent(ctx, input.CreateEventCommand{
			Name:                  "Fantôme",
			StartTime:             testBase.Add(time.Hour),
			EndTime:               testBase.Add(2 * time.Hour),
			AnnouncementChannelID: "chan-mort",
			MaxParticipants:       5,
		})
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.Nil(t, getEvent(store, "Fantôme"))
	})
}

func TestEventServiceJoinQuit(t *testing.T) {
	ctx := context.Background()

	t.Run("le dernier inscrit clôt les inscriptions", func(t *testing.T) {
		svc, store, msgr, _ := newEventFixture(t)
		seedEvent(t, store, pendingEvent("Tournoi", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 2))

		res, err := svc.Join(ctx, "Tournoi", "u1", "Alice", "")
		require.NoError(t, err)
		assert.Equal(t, "Alice", res.Pseudo)
		assert.NotContains(t, msgr.broadcastContents(), "broadcast.registrations_closed")

		res, err = svc.Join(ctx, "Tournoi", "u2", "Bob", "BobLeBricoleur")
		require.NoError(t, err)
		assert.Equal(t, "BobLeBricoleur", res.Pseudo)
		assert.Contains(t, msgr.broadcastContents(), "broadcast.registrations_closed")

		// Au-delà de la capacité.
		_, err = svc.Join(ctx, "Tournoi", "u3", "Chloé", "")
		assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
	})

	t.Run("un désistement rouvre une place", func(t *testing.T) {
		svc, store, msgr, _ := newEventFixture(t)
		e := pendingEvent("Tournoi", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 2)
		e.Participants = []entities.Participant{{ID: "u1", DisplayName: "Alice"}, {ID: "u2", DisplayName: "Bob"}}
		e.LastParticipantCount = 2
		seedEvent(t, store, e)

		require.NoError(t, svc.Quit(ctx, "Tournoi", "u2"))
		assert.Contains(t, msgr.broadcastContents(), "broadcast.slot_reopened")
		assert.Len(t, getEvent(store, "Tournoi").Participants, 1)
	})

	t.Run("double inscription refusée", func(t *testing.T) {
		svc, store, _, _ := newEventFixture(t)
		seedEvent(t, store, pendingEvent("Tournoi", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 5))
		_, err := svc.Join(ctx, "Tournoi", "u1", "Alice", "")
		require.NoError(t, err)
		_, err = svc.Join(ctx, "Tournoi", "u1", "Alice", "")
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("désistement sans inscription refusé", func(t *testing.T) {
		svc, store, _, _ := newEventFixture(t)
		seedEvent(t, store, pendingEvent("Tournoi", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 5))
		assert.ErrorIs(t, svc.Quit(ctx, "Tournoi", "u9"), domain.ErrNotRegistered)
	})

	t.Run("événement démarré verrouillé", func(t *testing.T) {
		svc, store, _, _ := newEventFixture(t)
		e := pendingEvent("Tournoi", testBase.Add(-time.Hour), testBase.Add(3*time.Hour), 5)
		e.Participants = []entities.Participant{{ID: "u1", DisplayName: "Alice"}}
		e.MarkStarted()
		seedEvent(t, store, e)

		_, err := svc.Join(ctx, "Tournoi", "u2", "Bob", "")
		assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
		assert.ErrorIs(t, svc.Quit(ctx, "Tournoi", "u1"), domain.ErrRegistrationClosed)
	})

	t.Run("événement inconnu", func(t *testing.T) {
		svc, _, _, _ := newEventFixture(t)
		_, err := svc.Join(ctx, "Nulle part", "u1", "Alice", "")
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestEventServiceTick(t *testing.T) {
	ctx := context.Background()

	t.Run("démarrage à l'heure avec participants", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		e := pendingEvent("Raid", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 5)
		e.Participants = []entities.Participant{{ID: "u1", DisplayName: "Alice"}}
		e.Reminded30m = true
		seedEvent(t, store, e)

		clk.Set(testBase.Add(time.Hour))
		svc.Tick(ctx)

		got := getEvent(store, "Raid")
		require.NotNil(t, got)
		assert.True(t, got.Started())
		assert.Equal(t, "role-jeu", msgr.Granted["u1"])
		assert.NotEmpty(t, msgr.DMs["u1"])
	})

	t.Run("annulation à l'heure sans participant", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		e := pendingEvent("Désert", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 5)
		e.Reminded30m = true
		seedEvent(t, store, e)

		clk.Set(testBase.Add(time.Hour))
		svc.Tick(ctx)

		assert.Nil(t, getEvent(store, "Désert"))
		assert.Contains(t, msgr.broadcastContents(), "broadcast.event_cancelled")
	})

	t.Run("clôture après la fin avec retrait des rôles", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		e := pendingEvent("Raid", testBase.Add(-3*time.Hour), testBase.Add(-time.Hour), 5)
		e.Participants = []entities.Participant{{ID: "u1", DisplayName: "Alice"}, {ID: "u2", DisplayName: "Bob"}}
		e.Reminded30m = true
		e.MarkStarted()
		seedEvent(t, store, e)

		clk.Set(testBase)
		svc.Tick(ctx)

		assert.Nil(t, getEvent(store, "Raid"))
		assert.Contains(t, msgr.broadcastContents(), "broadcast.event_finished")
		assert.Equal(t, "role-jeu", msgr.Revoked["u1"])
		assert.Equal(t, "role-jeu", msgr.Revoked["u2"])
	})

	t.Run("rappel unique 30 minutes avant", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		seedEvent(t, store, pendingEvent("Raid", testBase.Add(20*time.Minute), testBase.Add(3*time.Hour), 5))

		clk.Set(testBase)
		svc.Tick(ctx)
		svc.Tick(ctx)

		count := 0
		for _, c := range msgr.broadcastContents() {
			if c == "broadcast.reminder_30m" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.True(t, getEvent(store, "Raid").Reminded30m)
	})

	t.Run("salon d'annonce disparu évince l'événement", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		e := pendingEvent("Orphelin", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 5)
		seedEvent(t, store, e)
		msgr.UnresolvableChannels["chan-annonce"] = true

		clk.Set(testBase)
		svc.Tick(ctx)

		assert.Nil(t, getEvent(store, "Orphelin"))
	})

	t.Run("message d'annonce disparu évince l'événement", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		e := pendingEvent("Orphelin", testBase.Add(time.Hour), testBase.Add(3*time.Hour), 5)
		e.Reminded30m = true
		seedEvent(t, store, e)
		msgr.MissingMessages["msg-annonce"] = true

		clk.Set(testBase)
		svc.Tick(ctx)

		assert.Nil(t, getEvent(store, "Orphelin"))
	})

	t.Run("rafraîchissement idempotent avant l'échéance", func(t *testing.T) {
		svc, store, msgr, clk := newEventFixture(t)
		e := pendingEvent("Raid", testBase.Add(2*time.Hour), testBase.Add(3*time.Hour), 5)
		seedEvent(t, store, e)

		clk.Set(testBase)
		svc.Tick(ctx)

		require.NotEmpty(t, msgr.Edits)
		last := msgr.Edits[len(msgr.Edits)-1]
		assert.Equal(t, "msg-annonce", last.MessageID)
		require.NotNil(t, getEvent(store, "Raid"))
	})
}

func TestThresholdCrossing(t *testing.T) {
	tests := []struct {
		name          string
		old, new, max int
		want          crossing
	}{
		{"franchissement vers complet", 9, 10, 10, crossClosed},
		{"réouverture depuis complet", 10, 9, 10, crossReopened},
		{"sous la capacité", 3, 4, 10, crossNone},
		{"stable à la capacité", 10, 10, 10, crossNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, thresholdCrossing(tt.old, tt.new, tt.max))
		})
	}
}
