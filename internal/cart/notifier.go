package cart

import (
	"context"

	"github.com/greenbasket/farmmarket-backend/pkg/logger"
)

// LogNotifier writes cart notices to the structured log. The original
// storefront surfaced these as toasts; server-side they become log lines
// tagged with the owner.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, owner, message string) {
	if n == nil || n.log == nil {
		return
	}
	ctx = n.log.WithField(ctx, "cart_owner", owner)
	n.log.Info(ctx, message)
}
