package photo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"photobooth/internal/config"
	"photobooth/internal/domain"
	apperrors "photobooth/internal/errors"
	"photobooth/internal/storage"

	"go.uber.org/zap"
)

const (
	EventPhotoCreated = "photo_created"
	EventPhotoUpdated = "photo_updated"
)

type Store interface {
	Load() storage.Collection
	Save(storage.Collection) error
}

type Publisher interface {
	Publish(event string, payload any)
}

// PatchUpdate is a partial set of fields to apply to one photo. Each
// supplied field appends its own audit log entry.
type PatchUpdate struct {
	Status domain.Status
	Paid   *bool
	Note   string
}

// Service owns every mutation of the photo collection. The backing
// store is whole-file read-modify-write, so all mutations are
// serialized through one mutex; the last-save-wins race of the
// unserialized design cannot occur here while the external contract
// stays the same.
type Service struct {
	store  Store
	events Publisher
	logger *zap.Logger
	cfg    config.SimulatorConfig
	prefix string

	mu  sync.Mutex
	rng *rand.Rand

	// generation, bumped on each transition into PRINTING, makes a
	// pending simulator timer from a superseded print a no-op.
	generations map[string]uint64

	autoCancel context.CancelFunc
}

func NewService(store Store, events Publisher, logger *zap.Logger, cfg config.SimulatorConfig, idPrefix string, rng *rand.Rand) *Service {
	return &Service{
		store:       store,
		events:      events,
		logger:      logger,
		cfg:         cfg,
		prefix:      idPrefix,
		rng:         rng,
		generations: make(map[string]uint64),
	}
}

func (s *Service) List() []domain.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load().Photos
}

// Create inserts a new photo in IN_QUEUE with randomized demo fields.
// A caller-supplied id is accepted unchecked; otherwise the next
// sequential id is allocated from the current collection.
func (s *Service) Create(id string) (*domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load()
	if id == "" {
		id = domain.NextID(c.Photos, s.prefix)
	}

	now := time.Now().UTC()
	p := domain.Photo{
		ID:           id,
		Status:       domain.StatusInQueue,
		Price:        (1 + s.rng.IntN(3)) * 20000,
		Paid:         s.rng.Float64() < 0.7,
		PaidOnline:   false,
		CustomerName: fmt.Sprintf("Guest %d", s.rng.IntN(100)),
		CreatedAt:    now,
		UpdatedAt:    now,
		Attempts:     0,
		Logs:         []domain.LogEntry{},
		ReceivedAt:   nil,
	}
	p.AddLog(domain.ActionCreated, "Order created")

	c.Photos = append(c.Photos, p)
	if err := s.store.Save(c); err != nil {
		return nil, apperrors.NewInternalError("failed to persist photos", err)
	}

	s.logger.Info("photo created", zap.String("photoId", p.ID))
	s.events.Publish(EventPhotoCreated, p)
	return &p, nil
}

// Patch applies status, paid and note updates to one photo. All three
// may be supplied in one call; each appends its own log line.
func (s *Service) Patch(id string, upd PatchUpdate) (*domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load()
	p := findPhoto(c.Photos, id)
	if p == nil {
		return nil, apperrors.NewNotFoundError("photo not found")
	}

	if upd.Status != "" {
		p.Status = upd.Status
		p.AddLog(domain.ActionStatusChanged, fmt.Sprintf("Status: %s", upd.Status))

		if upd.Status == domain.StatusDelivered {
			now := time.Now().UTC()
			p.ReceivedAt = &now
			p.AddLog(domain.ActionDelivered, "Customer received the photo")
		}
	}

	if upd.Paid != nil {
		p.Paid = *upd.Paid
		msg := "Paid: no"
		if *upd.Paid {
			msg = "Paid: yes"
		}
		p.AddLog(domain.ActionPaymentUpdated, msg)
	}

	if upd.Note != "" {
		p.AddLog(domain.ActionNoteAdded, upd.Note)
	}

	p.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(c); err != nil {
		return nil, apperrors.NewInternalError("failed to persist photos", err)
	}

	s.logger.Info("photo patched", zap.String("photoId", id), zap.String("status", string(p.Status)))
	s.events.Publish(EventPhotoUpdated, *p)
	return p, nil
}

// StartPrint moves a photo to PRINTING and schedules the print
// simulator for it without waiting. Reprint differs only in the audit
// entry; ERROR and SUCCESS photos may both be sent back this way.
func (s *Service) StartPrint(id string, reprint bool) (*domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load()
	p := findPhoto(c.Photos, id)
	if p == nil {
		return nil, apperrors.NewNotFoundError("photo not found")
	}

	p.Status = domain.StatusPrinting
	p.UpdatedAt = time.Now().UTC()
	if reprint {
		p.AddLog(domain.ActionReprintStarted, fmt.Sprintf("Reprint started (attempt %d)", p.Attempts+1))
	} else {
		p.AddLog(domain.ActionPrintStarted, "Print started")
	}

	if err := s.store.Save(c); err != nil {
		return nil, apperrors.NewInternalError("failed to persist photos", err)
	}

	s.events.Publish(EventPhotoUpdated, *p)
	s.schedulePrintLocked(id)
	return p, nil
}

// schedulePrintLocked arms a one-shot simulator run for the photo's
// current print generation. Caller must hold s.mu.
func (s *Service) schedulePrintLocked(id string) {
	s.generations[id]++
	gen := s.generations[id]
	delay := s.cfg.PrintDelayMin + randDuration(s.rng, s.cfg.PrintDelayMax-s.cfg.PrintDelayMin)

	s.logger.Info("print simulation scheduled",
		zap.String("photoId", id), zap.Duration("delay", delay))

	go func() {
		time.Sleep(delay)
		s.resolvePrint(id, gen)
	}()
}

// resolvePrint is the deferred end of a simulated print. It is a
// silent no-op when the photo is gone, no longer PRINTING, or the
// print it was armed for has been superseded.
func (s *Service) resolvePrint(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generations[id] != gen {
		return
	}

	c := s.store.Load()
	p := findPhoto(c.Photos, id)
	if p == nil || p.Status != domain.StatusPrinting {
		return
	}

	p.Attempts++
	if s.rng.Float64() < s.cfg.SuccessRate {
		p.Status = domain.StatusSuccess
		p.AddLog(domain.ActionPrintSuccess, fmt.Sprintf("Print completed (attempt %d)", p.Attempts))
	} else {
		p.Status = domain.StatusError
		p.AddLog(domain.ActionPrintError, fmt.Sprintf("Print failed (attempt %d)", p.Attempts))
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(c); err != nil {
		s.logger.Error("failed to persist print result", zap.String("photoId", id), zap.Error(err))
		return
	}

	s.logger.Info("print resolved",
		zap.String("photoId", id),
		zap.String("status", string(p.Status)),
		zap.Int("attempts", p.Attempts))
	s.events.Publish(EventPhotoUpdated, *p)
}

// SetAutoSimulate toggles the background loop that feeds random queued
// photos to the simulator. At most one loop runs per process; the tick
// interval is redrawn each time the loop is enabled. Returns the
// resulting state.
func (s *Service) SetAutoSimulate(enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enabled == (s.autoCancel != nil) {
		return enabled
	}

	if enabled {
		interval := s.cfg.AutoIntervalMin + randDuration(s.rng, s.cfg.AutoIntervalMax-s.cfg.AutoIntervalMin)
		ctx, cancel := context.WithCancel(context.Background())
		s.autoCancel = cancel
		s.logger.Info("auto-simulate enabled", zap.Duration("interval", interval))
		go s.runAutoLoop(ctx, interval)
	} else {
		s.autoCancel()
		s.autoCancel = nil
		s.logger.Info("auto-simulate disabled")
	}
	return enabled
}

func (s *Service) AutoSimulateEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoCancel != nil
}

func (s *Service) runAutoLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.autoTick()
		}
	}
}

// autoTick picks one queued photo uniformly at random and starts
// printing it. Ticks with an empty queue do nothing.
func (s *Service) autoTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Load()
	var queued []*domain.Photo
	for i := range c.Photos {
		if c.Photos[i].Status == domain.StatusInQueue {
			queued = append(queued, &c.Photos[i])
		}
	}
	if len(queued) == 0 {
		return
	}

	p := queued[s.rng.IntN(len(queued))]
	p.Status = domain.StatusPrinting
	p.UpdatedAt = time.Now().UTC()
	p.AddLog(domain.ActionAutoPrintStarted, "Auto print started")

	if err := s.store.Save(c); err != nil {
		s.logger.Error("failed to persist auto print", zap.String("photoId", p.ID), zap.Error(err))
		return
	}

	s.logger.Info("auto print started", zap.String("photoId", p.ID))
	s.events.Publish(EventPhotoUpdated, *p)
	s.schedulePrintLocked(p.ID)
}

func findPhoto(photos []domain.Photo, id string) *domain.Photo {
	for i := range photos {
		if photos[i].ID == id {
			return &photos[i]
		}
	}
	return nil
}

func randDuration(rng *rand.Rand, span time.Duration) time.Duration {
	if span <= 0 {
		return 0
	}
	return time.Duration(rng.Int64N(int64(span)))
}
