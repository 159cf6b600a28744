package scheduling

import (
	"context"

	"slotwise/models"

	"go.uber.org/zap"
)

// availabilityChecker applies the fail-safe policy on top of an oracle: a slot
// the oracle cannot vouch for is busy.
type availabilityChecker struct {
	oracle AvailabilityOracle
	logger *zap.Logger
}

func (c availabilityChecker) free(ctx context.Context, slot models.Slot) bool {
	if err := models.CheckInterval(slot.Start, slot.End); err != nil {
		c.logger.Warn("refusing to check an empty or inverted slot", zap.Error(err))
		return false
	}
	ok, err := c.oracle.IsFree(ctx, slot.Start, slot.End)
	if err != nil {
		c.logger.Warn("availability check failed, treating slot as busy",
			zap.Time("start", slot.Start),
			zap.Time("end", slot.End),
			zap.Error(err))
		return false
	}
	return ok
}
