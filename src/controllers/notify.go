package controllers

import (
	"context"
	"log"

	"github.com/teamlink-app/backend/src/lib"
	"github.com/teamlink-app/backend/src/models"
	"github.com/teamlink-app/backend/src/store"
)

// fanOut writes one notification per recipient, always skipping the
// actor. A failed write is logged and counted; the loop continues, so
// delivery is at-least-partial rather than all-or-nothing.
func fanOut(ctx context.Context, notifications store.NotificationStore, metrics *lib.Metrics, actorID string, recipients []string, build func(ownerID string) *models.Notification) {
	seen := make(map[string]bool, len(recipients))
	for _, uid := range recipients {
		if uid == actorID || seen[uid] {
			continue
		}
		seen[uid] = true

		if err := notifications.Insert(ctx, build(uid)); err != nil {
			log.Printf("fan-out: failed to notify %s: %v", uid, err)
			if metrics != nil {
				metrics.RecordFanOutFailure()
			}
			continue
		}
		if metrics != nil {
			metrics.RecordFanOutDelivery()
		}
	}
}

// notifyOne writes a single-target notification. The write is not
// critical to the triggering operation, so failures are only logged.
func notifyOne(ctx context.Context, notifications store.NotificationStore, n *models.Notification) {
	if err := notifications.Insert(ctx, n); err != nil {
		log.Printf("failed to notify %s: %v", n.OwnerID, err)
	}
}
