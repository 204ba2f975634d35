package photo

import (
	"math/rand/v2"
	"time"

	"photobooth/internal/auth"
	"photobooth/internal/broadcast"
	"photobooth/internal/config"
	"photobooth/internal/storage"

	"go.uber.org/zap"
)

// NewModule wires the photo feature: file store, event broadcaster,
// transition service and HTTP controller.
func NewModule(cfg *config.Config, authority auth.Provider, logger *zap.Logger) *Controller {
	store := storage.NewFileStore(cfg.Storage.DataFile, logger)
	broadcaster := broadcast.NewBroadcaster(logger)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	service := NewService(store, broadcaster, logger, cfg.Simulator, cfg.Storage.IDPrefix, rng)

	return NewController(service, broadcaster, authority, logger)
}
