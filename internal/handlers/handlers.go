package handlers

import (
	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/mirror"
	"github.com/goaltrackhq/goaltrack-api/internal/progress"
	"github.com/goaltrackhq/goaltrack-api/internal/store"
	"github.com/gofiber/fiber/v2"
)

var (
	Store   *store.Store
	Mirrors *mirror.Registry
	Recalc  *progress.Recalculator
)

// Setup wires the shared store, the per-owner mirror registry and the
// progress recalculator. Call once before registering routes.
func Setup(s *store.Store) {
	Store = s
	Mirrors = mirror.NewRegistry(s)
	Recalc = progress.NewRecalculator(s)
}

// refreshedSnapshot refreshes the caller's mirror and returns its snapshot.
// A failed refresh leaves the mirror unchanged; the error is surfaced to
// the caller, who aborts the request.
func refreshedSnapshot(c *fiber.Ctx, force bool) (*mirror.Snapshot, error) {
	userID := middleware.GetUserID(c)
	m := Mirrors.ForOwner(userID)
	if err := m.Refresh(c.Context(), force); err != nil {
		logger.L.Errorw("mirror refresh failed", "ownerId", userID, "err", err)
		return nil, err
	}
	return m.Snapshot(), nil
}
