package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/input"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/presentation"
)

// reminderLead est l'avance du rappel unique avant le début d'un événement.
const reminderLead = 30 * time.Minute

// disposition est le marqueur de suppression produit par une passe de
// réconciliation et consommé par la suppression groupée de fin de tick.
type disposition int

const (
	keepEntity disposition = iota
	removeEntity
)

// EventService est le moteur de cycle de vie des événements : inscriptions,
// désinscriptions et transitions de phase pilotées par l'horloge. Seul Tick
// fait avancer les phases.
type EventService struct {
	store      output.StateStore
	clock      output.Clock
	messenger  output.Messenger
	renderer   *presentation.Renderer
	translator output.T
	locale     string
}

var _ input.EventUseCase = (*EventService)(nil)

func NewEventService(
	store output.StateStore,
	clock output.Clock,
	messenger output.Messenger,
	renderer *presentation.Renderer,
	translator output.T,
	locale string,
) *EventService {
	return &EventService{
		store:      store,
		clock:      clock,
		messenger:  messenger,
		renderer:   renderer,
		translator: translator,
		locale:     locale,
	}
}

func (s *EventService) tr(key string, data map[string]any) string {
	return s.translator.T(s.locale, key, data)
}

// CreateEvent publie l'annonce puis enregistre l'événement. L'annonce est
// publiée d'abord : un événement sans message d'annonce persisté serait
// incohérent et ne doit jamais entrer dans le document.
func (s *EventService) CreateEvent(ctx context.Context, cmd input.CreateEventCommand) error {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.MaxParticipants <= 0 {
		return domain.ErrInvalidInput
	}
	if !cmd.EndTime.After(cmd.StartTime) {
		return domain.ErrInvalidInput
	}
	exists := false
	s.store.View(func(d *entities.Document) {
		_, exists = d.Events[name]
	})
	if exists {
		return domain.ErrEventExists
	}

	event := &entities.Event{
		Name:                  name,
		StartTime:             cmd.StartTime.UTC(),
		EndTime:               cmd.EndTime.UTC(),
		AnnouncementChannelID: entities.Snowflake(cmd.AnnouncementChannelID),
		WaitingChannelID:      entities.Snowflake(cmd.WaitingChannelID),
		RoleID:                entities.Snowflake(cmd.RoleID),
		MaxParticipants:       cmd.MaxParticipants,
		Participants:          []entities.Participant{},
		Phase:                 entities.EventPending,
	}

	payload := s.renderer.Event(event, s.clock.Now())
	messageID, err := s.messenger.Publish(ctx, cmd.AnnouncementChannelID, s.tr("broadcast.new_event", nil), payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	event.MessageID = entities.Snowflake(messageID)

	return s.store.Update(ctx, func(d *entities.Document) error {
		if _, ok := d.Events[name]; ok {
			return domain.ErrEventExists
		}
		d.Events[name] = event
		return nil
	})
}

// Join inscrit un utilisateur. Le franchissement du seuil de capacité
// (dernier inscrit) déclenche l'annonce de clôture des inscriptions ; le
// comptage de seuil n'est tenu que sur ce chemin join/quit.
func (s *EventService) Join(ctx context.Context, name, userID, displayName, pseudo string) (input.JoinResult, error) {
	var res input.JoinResult
	cross := crossNone
	err := s.store.Update(ctx, func(d *entities.Document) error {
		e, ok := d.Events[name]
		if !ok {
			return domain.ErrEventNotFound
		}
		if e.Started() {
			return domain.ErrRegistrationClosed
		}
		if e.HasParticipant(entities.Snowflake(userID)) {
			return domain.ErrAlreadyRegistered
		}
		if e.IsFull() {
			return domain.ErrRegistrationClosed
		}
		if pseudo == "" {
			pseudo = displayName
		}
		e.Participants = append(e.Participants, entities.Participant{
			ID:          entities.Snowflake(userID),
			DisplayName: displayName,
			Pseudo:      pseudo,
		})
		cross = thresholdCrossing(e.LastParticipantCount, len(e.Participants), e.MaxParticipants)
		e.LastParticipantCount = len(e.Participants)
		res = input.JoinResult{Pseudo: pseudo}
		return nil
	})
	if err != nil {
		return res, err
	}
	s.refreshAnnouncement(ctx, name)
	s.broadcastCrossing(ctx, name, cross)
	return res, nil
}

// Quit désinscrit un utilisateur. Le passage de complet à non complet
// déclenche l'annonce de réouverture.
func (s *EventService) Quit(ctx context.Context, name, userID string) error {
	cross := crossNone
	err := s.store.Update(ctx, func(d *entities.Document) error {
		e, ok := d.Events[name]
		if !ok {
			return domain.ErrEventNotFound
		}
		if e.Started() {
			return domain.ErrRegistrationClosed
		}
		if !e.RemoveParticipant(entities.Snowflake(userID)) {
			return domain.ErrNotRegistered
		}
		cross = thresholdCrossing(e.LastParticipantCount, len(e.Participants), e.MaxParticipants)
		e.LastParticipantCount = len(e.Participants)
		return nil
	})
	if err != nil {
		return err
	}
	s.refreshAnnouncement(ctx, name)
	s.broadcastCrossing(ctx, name, cross)
	return nil
}

// FindByMessageID retrouve le nom de l'événement annoncé par messageID.
func (s *EventService) FindByMessageID(messageID string) (string, bool) {
	var name string
	var found bool
	s.store.View(func(d *entities.Document) {
		for n, e := range d.Events {
			if string(e.MessageID) == messageID {
				name, found = n, true
				return
			}
		}
	})
	return name, found
}

// Tick est une passe de réconciliation : photographie des clés, évaluation de
// chaque événement contre l'horloge, puis suppression groupée et persistance
// unique des entités marquées.
func (s *EventService) Tick(ctx context.Context) {
	now := s.clock.Now()
	var names []string
	s.store.View(func(d *entities.Document) {
		for name := range d.Events {
			names = append(names, name)
		}
	})

	var toRemove []string
	for _, name := range names {
		if s.reconcileOne(ctx, name, now) == removeEntity {
			toRemove = append(toRemove, name)
		}
	}
	if len(toRemove) == 0 {
		return
	}
	_ = s.store.Update(ctx, func(d *entities.Document) error {
		for _, name := range toRemove {
			delete(d.Events, name)
		}
		return nil
	})
}

// reconcileOne évalue un événement. Toute défaillance imprévue marque
// l'entité pour suppression plutôt que de la laisser dans un état qui
// reproduirait la même panne à chaque tick.
func (s *EventService) reconcileOne(ctx context.Context, name string, now time.Time) (disp disposition) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panique en réconciliant l'événement %s (entité évincée): %v", name, r)
			disp = removeEntity
		}
	}()

	var e *entities.Event
	s.store.View(func(d *entities.Document) {
		if ev, ok := d.Events[name]; ok {
			e = ev.Clone()
		}
	})
	if e == nil {
		return keepEntity
	}

	channelID := string(e.AnnouncementChannelID)
	if !s.messenger.ChannelResolvable(ctx, channelID) {
		log.Printf("🧹 Salon d'annonce introuvable pour l'événement %s, entité évincée", name)
		return removeEntity
	}

	if !e.Reminded30m && e.StartTime.Sub(now) <= reminderLead && now.Before(e.StartTime) {
		if err := s.messenger.Broadcast(ctx, channelID, s.tr("broadcast.reminder_30m", map[string]any{"Name": name})); err != nil {
			log.Printf("❌ Rappel 30 minutes impossible pour %s: %v", name, err)
			return removeEntity
		}
		_ = s.store.Update(ctx, func(d *entities.Document) error {
			if ev, ok := d.Events[name]; ok {
				ev.Reminded30m = true
			}
			return nil
		})
		e.Reminded30m = true
	}

	switch {
	case !e.Started() && !now.Before(e.StartTime):
		if len(e.Participants) < 1 {
			s.broadcast(ctx, channelID, "broadcast.event_cancelled", map[string]any{"Name": name})
			s.edit(ctx, e, s.renderer.EventCancelled(e))
			return removeEntity
		}
		s.startEvent(ctx, e, now)
		return keepEntity

	case e.Started() && !now.Before(e.EndTime):
		s.broadcast(ctx, channelID, "broadcast.event_finished", map[string]any{"Name": name})
		s.edit(ctx, e, s.renderer.EventFinished(e))
		for _, p := range e.Participants {
			if err := s.messenger.RevokeRole(ctx, channelID, string(p.ID), string(e.RoleID)); err != nil {
				log.Printf("⚠️ Retrait du rôle impossible pour %s (événement %s): %v", p.DisplayName, name, err)
			}
		}
		return removeEntity

	case !e.Started():
		// Rafraîchissement idempotent du compte à rebours.
		err := s.messenger.Edit(ctx, channelID, string(e.MessageID), s.renderer.Event(e, now))
		if domain.Code(err) == "remote_unavailable" {
			log.Printf("🧹 Message d'annonce disparu pour l'événement %s, entité évincée", name)
			return removeEntity
		}
		if err != nil {
			log.Printf("❌ Mise à jour de l'annonce impossible pour %s: %v", name, err)
		}
	}
	return keepEntity
}

// startEvent bascule l'événement en phase démarrée : persistance du flag,
// rendu "en cours", attribution du rôle et notification privée de chaque
// participant. Rôle et notification sont best-effort par participant.
func (s *EventService) startEvent(ctx context.Context, e *entities.Event, now time.Time) {
	_ = s.store.Update(ctx, func(d *entities.Document) error {
		if ev, ok := d.Events[e.Name]; ok {
			ev.MarkStarted()
		}
		return nil
	})
	e.MarkStarted()

	channelID := string(e.AnnouncementChannelID)
	if err := s.messenger.Edit(ctx, channelID, string(e.MessageID), s.renderer.Event(e, now)); err != nil {
		log.Printf("❌ Impossible de rendre l'événement %s en cours: %v", e.Name, err)
	}

	roleName := s.messenger.RoleName(ctx, channelID, string(e.RoleID))
	dm := s.tr("dm.event_started", map[string]any{
		"Name":    e.Name,
		"Role":    roleName,
		"Channel": string(e.WaitingChannelID),
	})
	for _, p := range e.Participants {
		if err := s.messenger.GrantRole(ctx, channelID, string(p.ID), string(e.RoleID)); err != nil {
			log.Printf("⚠️ Attribution du rôle impossible pour %s (événement %s): %v", p.DisplayName, e.Name, err)
			continue
		}
		if err := s.messenger.SendDM(ctx, string(p.ID), dm); err != nil {
			log.Printf("⚠️ MP de démarrage impossible pour %s (DMs bloqués ?): %v", p.DisplayName, err)
		}
	}
}

// refreshAnnouncement rerend l'annonce après une mutation du roster. Un
// message disparu vaut suppression externe : l'entité est évincée.
func (s *EventService) refreshAnnouncement(ctx context.Context, name string) {
	var e *entities.Event
	s.store.View(func(d *entities.Document) {
		if ev, ok := d.Events[name]; ok {
			e = ev.Clone()
		}
	})
	if e == nil {
		return
	}
	err := s.messenger.Edit(ctx, string(e.AnnouncementChannelID), string(e.MessageID), s.renderer.Event(e, s.clock.Now()))
	if domain.Code(err) == "remote_unavailable" {
		log.Printf("🧹 Message d'annonce disparu pour l'événement %s, entité évincée", name)
		_ = s.store.Update(ctx, func(d *entities.Document) error {
			delete(d.Events, name)
			return nil
		})
		return
	}
	if err != nil {
		log.Printf("❌ Mise à jour de l'annonce impossible pour %s: %v", name, err)
	}
}

func (s *EventService) edit(ctx context.Context, e *entities.Event, p output.DisplayPayload) {
	if err := s.messenger.Edit(ctx, string(e.AnnouncementChannelID), string(e.MessageID), p); err != nil {
		log.Printf("❌ Édition de l'annonce impossible pour %s: %v", e.Name, err)
	}
}

func (s *EventService) broadcast(ctx context.Context, channelID, key string, data map[string]any) {
	if err := s.messenger.Broadcast(ctx, channelID, s.tr(key, data)); err != nil {
		log.Printf("❌ Annonce %s impossible: %v", key, err)
	}
}

func (s *EventService) broadcastCrossing(ctx context.Context, name string, cross crossing) {
	if cross == crossNone {
		return
	}
	var channelID string
	s.store.View(func(d *entities.Document) {
		if e, ok := d.Events[name]; ok {
			channelID = string(e.AnnouncementChannelID)
		}
	})
	if channelID == "" {
		return
	}
	key := "broadcast.registrations_closed"
	if cross == crossReopened {
		key = "broadcast.slot_reopened"
	}
	s.broadcast(ctx, channelID, key, map[string]any{"Name": name})
}

// crossing décrit le franchissement du seuil de capacité.
type crossing int

const (
	crossNone crossing = iota
	crossClosed
	crossReopened
)

func thresholdCrossing(oldCount, newCount, max int) crossing {
	switch {
	case oldCount < max && newCount == max:
		return crossClosed
	case oldCount == max && newCount < max:
		return crossReopened
	default:
		return crossNone
	}
}
