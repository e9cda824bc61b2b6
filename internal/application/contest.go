package application

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/domain/entities"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/input"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/ports/output"
	"github.com/WaekyTV/Poxel-bot-futur-dashboard/internal/presentation"
)

// ContestService est le moteur de cycle de vie des concours : inscriptions,
// clôture à l'échéance et tirage au sort. La source aléatoire est injectée
// pour rendre le tirage reproductible en test.
type ContestService struct {
	store      output.StateStore
	clock      output.Clock
	messenger  output.Messenger
	renderer   *presentation.Renderer
	translator output.T
	locale     string

	mu  sync.Mutex
	rng *rand.Rand
}

var _ input.ContestUseCase = (*ContestService)(nil)

func NewContestService(
	store output.StateStore,
	clock output.Clock,
	messenger output.Messenger,
	renderer *presentation.Renderer,
	translator output.T,
	locale string,
	rng *rand.Rand,
) *ContestService {
	return &ContestService{
		store:      store,
		clock:      clock,
		messenger:  messenger,
		renderer:   renderer,
		translator: translator,
		locale:     locale,
		rng:        rng,
	}
}

func (s *ContestService) tr(key string, data map[string]any) string {
	return s.translator.T(s.locale, key, data)
}

// CreateContest publie l'annonce puis enregistre le concours, ouvert aux
// inscriptions immédiatement.
func (s *ContestService) CreateContest(ctx context.Context, cmd input.CreateContestCommand) error {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return domain.ErrInvalidInput
	}
	if !cmd.EndTime.After(s.clock.Now()) {
		return domain.ErrDateTimeInPast
	}
	exists := false
	s.store.View(func(d *entities.Document) {
		_, exists = d.Contests[title]
	})
	if exists {
		return domain.ErrContestExists
	}

	contest := &entities.Contest{
		Title:                 title,
		Description:           cmd.Description,
		EndTime:               cmd.EndTime.UTC(),
		AnnouncementChannelID: entities.Snowflake(cmd.AnnouncementChannelID),
		Participants:          []entities.Participant{},
		Phase:                 entities.ContestOpen,
	}

	payload := s.renderer.Contest(contest, s.clock.Now())
	messageID, err := s.messenger.Publish(ctx, cmd.AnnouncementChannelID, s.tr("broadcast.new_contest", nil), payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	contest.MessageID = entities.Snowflake(messageID)

	return s.store.Update(ctx, func(d *entities.Document) error {
		if _, ok := d.Contests[title]; ok {
			return domain.ErrContestExists
		}
		d.Contests[title] = contest
		return nil
	})
}

// Enter inscrit un utilisateur au concours.
func (s *ContestService) Enter(ctx context.Context, title, userID, displayName string) error {
	err := s.store.Update(ctx, func(d *entities.Document) error {
		c, ok := d.Contests[title]
		if !ok {
			return domain.ErrContestNotFound
		}
		if c.Finished() {
			return domain.ErrRegistrationClosed
		}
		if c.HasParticipant(entities.Snowflake(userID)) {
			return domain.ErrAlreadyRegistered
		}
		c.Participants = append(c.Participants, entities.Participant{
			ID:          entities.Snowflake(userID),
			DisplayName: displayName,
		})
		return nil
	})
	if err != nil {
		return err
	}
	s.refreshAnnouncement(ctx, title)
	return nil
}

// Draw tire un gagnant uniformément au hasard, annonce publiquement, notifie
// en privé (best-effort, indépendamment) le demandeur et le gagnant, retire
// l'affordance de tirage de l'annonce puis supprime le concours. Terminal :
// un concours tiré disparaît du document et ne peut être retiré.
func (s *ContestService) Draw(ctx context.Context, title, requesterID string) (entities.Participant, error) {
	var c *entities.Contest
	s.store.View(func(d *entities.Document) {
		if ct, ok := d.Contests[title]; ok {
			c = ct.Clone()
		}
	})
	if c == nil {
		return entities.Participant{}, domain.ErrContestNotFound
	}
	if len(c.Participants) == 0 {
		return entities.Participant{}, domain.ErrNoParticipants
	}

	s.mu.Lock()
	winner := c.Participants[s.rng.Intn(len(c.Participants))]
	s.mu.Unlock()

	channelID := string(c.AnnouncementChannelID)
	s.broadcast(ctx, channelID, "broadcast.winner", map[string]any{
		"Mention": winner.Mention(),
		"Title":   title,
	})

	if err := s.messenger.SendDM(ctx, requesterID, s.tr("dm.draw_done", map[string]any{
		"Title":   title,
		"Mention": winner.Mention(),
	})); err != nil {
		log.Printf("⚠️ MP de confirmation de tirage impossible: %v", err)
		s.broadcast(ctx, channelID, "broadcast.admin_dm_failed", nil)
	}
	if err := s.messenger.SendDMPayload(ctx, string(winner.ID), s.renderer.WinnerDM(c)); err != nil {
		log.Printf("⚠️ MP au gagnant %s impossible (DMs bloqués ?): %v", winner.DisplayName, err)
	}

	if err := s.messenger.Edit(ctx, channelID, string(c.MessageID), s.renderer.ContestDrawn(c)); err != nil {
		log.Printf("❌ Retrait du bouton de tirage impossible pour %s: %v", title, err)
	}

	err := s.store.Update(ctx, func(d *entities.Document) error {
		delete(d.Contests, title)
		return nil
	})
	return winner, err
}

// Cancel annule administrativement un concours avec une raison, quelle que
// soit sa phase non terminale, sans passer par la clôture.
func (s *ContestService) Cancel(ctx context.Context, title, reason string) error {
	var c *entities.Contest
	s.store.View(func(d *entities.Document) {
		if ct, ok := d.Contests[title]; ok {
			c = ct.Clone()
		}
	})
	if c == nil {
		return domain.ErrContestNotFound
	}
	if reason == "" {
		reason = s.tr("contest.default_cancel_reason", nil)
	}

	channelID := string(c.AnnouncementChannelID)
	if err := s.messenger.Edit(ctx, channelID, string(c.MessageID), s.renderer.ContestCancelled(c, reason)); err != nil {
		log.Printf("❌ Rendu d'annulation impossible pour le concours %s: %v", title, err)
	}
	s.broadcast(ctx, channelID, "broadcast.contest_cancelled", map[string]any{"Title": title})

	return s.store.Update(ctx, func(d *entities.Document) error {
		delete(d.Contests, title)
		return nil
	})
}

// FindByMessageID retrouve le titre du concours annoncé par messageID.
func (s *ContestService) FindByMessageID(messageID string) (string, bool) {
	var title string
	var found bool
	s.store.View(func(d *entities.Document) {
		for t, c := range d.Contests {
			if string(c.MessageID) == messageID {
				title, found = t, true
				return
			}
		}
	})
	return title, found
}

// Tick est la passe de réconciliation des concours : clés photographiées,
// évaluation séquentielle, suppression groupée en fin de tick.
func (s *ContestService) Tick(ctx context.Context) {
	now := s.clock.Now()
	var titles []string
	s.store.View(func(d *entities.Document) {
		for title := range d.Contests {
			titles = append(titles, title)
		}
	})

	var toRemove []string
	for _, title := range titles {
		if s.reconcileOne(ctx, title, now) == removeEntity {
			toRemove = append(toRemove, title)
		}
	}
	if len(toRemove) == 0 {
		return
	}
	_ = s.store.Update(ctx, func(d *entities.Document) error {
		for _, title := range toRemove {
			delete(d.Contests, title)
		}
		return nil
	})
}

func (s *ContestService) reconcileOne(ctx context.Context, title string, now time.Time) (disp disposition) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panique en réconciliant le concours %s (entité évincée): %v", title, r)
			disp = removeEntity
		}
	}()

	var c *entities.Contest
	s.store.View(func(d *entities.Document) {
		if ct, ok := d.Contests[title]; ok {
			c = ct.Clone()
		}
	})
	if c == nil {
		return keepEntity
	}

	channelID := string(c.AnnouncementChannelID)

	if !c.Finished() && now.Before(c.EndTime) {
		// Rafraîchissement idempotent du compte à rebours.
		err := s.messenger.Edit(ctx, channelID, string(c.MessageID), s.renderer.Contest(c, now))
		if domain.Code(err) == "remote_unavailable" {
			log.Printf("🧹 Message d'annonce disparu pour le concours %s, entité évincée", title)
			return removeEntity
		}
		if err != nil {
			log.Printf("❌ Mise à jour de l'annonce impossible pour le concours %s: %v", title, err)
		}
		return keepEntity
	}

	if !c.Finished() {
		// Échéance atteinte. Un salon momentanément irrésoluble n'évince
		// pas : la clôture sera retentée au tick suivant.
		if !s.messenger.ChannelResolvable(ctx, channelID) {
			log.Printf("⚠️ Salon d'annonce introuvable pour le concours %s, clôture reportée", title)
			return keepEntity
		}
		if len(c.Participants) == 0 {
			err := s.messenger.Edit(ctx, channelID, string(c.MessageID), s.renderer.ContestCancelledEmpty(c))
			if domain.Code(err) == "remote_unavailable" {
				return removeEntity
			}
			s.broadcast(ctx, channelID, "broadcast.contest_cancelled_empty", map[string]any{"Title": title})
			return removeEntity
		}
		c.MarkFinished()
		err := s.messenger.Edit(ctx, channelID, string(c.MessageID), s.renderer.Contest(c, now))
		if domain.Code(err) == "remote_unavailable" {
			log.Printf("🧹 Message d'annonce disparu pour le concours %s, entité évincée", title)
			return removeEntity
		}
		s.broadcast(ctx, channelID, "broadcast.contest_finished", map[string]any{"Title": title})
		_ = s.store.Update(ctx, func(d *entities.Document) error {
			if ct, ok := d.Contests[title]; ok {
				ct.MarkFinished()
			}
			return nil
		})
	}
	// Concours clos : l'affichage porte l'affordance de tirage, rien à faire
	// jusqu'au tirage manuel.
	return keepEntity
}

func (s *ContestService) refreshAnnouncement(ctx context.Context, title string) {
	var c *entities.Contest
	s.store.View(func(d *entities.Document) {
		if ct, ok := d.Contests[title]; ok {
			c = ct.Clone()
		}
	})
	if c == nil {
		return
	}
	err := s.messenger.Edit(ctx, string(c.AnnouncementChannelID), string(c.MessageID), s.renderer.Contest(c, s.clock.Now()))
	if domain.Code(err) == "remote_unavailable" {
		log.Printf("🧹 Message d'annonce disparu pour le concours %s, entité évincée", title)
		_ = s.store.Update(ctx, func(d *entities.Document) error {
			delete(d.Contests, title)
			return nil
		})
		return
	}
	if err != nil {
		log.Printf("❌ Mise à jour de l'annonce impossible pour le concours %s: %v", title, err)
	}
}

func (s *ContestService) broadcast(ctx context.Context, channelID, key string, data map[string]any) {
	if err := s.messenger.Broadcast(ctx, channelID, s.tr(key, data)); err != nil {
		log.Printf("❌ Annonce %s impossible: %v", key, err)
	}
}
