package jobs

import (
	"context"

	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/logger"
)

// AutoAssignGroups runs the same group-based bulk assignment as the admin
// endpoint, on a schedule. Pending applications in every active group that
// has a default pastor get assigned to that pastor.
func (jr *JobRunner) AutoAssignGroups() {
	jr.runWithRecovery("AutoAssignGroups", func() {
		ctx := context.Background()

		count, err := jr.services.Assignment.BulkAssignByGroup(ctx, domain.SystemCaller())
		if err != nil {
			logger.Error("Scheduled bulk assignment failed", "error", err)
			return
		}
		logger.Info("Scheduled bulk assignment finished", "assigned_count", count)
	})
}

// SendPendingReminders emails each group's default pastor the number of
// applications in their group still waiting for assignment. Groups without a
// pastor have nobody to remind and are skipped.
func (jr *JobRunner) SendPendingReminders() {
	jr.runWithRecovery("SendPendingReminders", func() {
		ctx := context.Background()

		groups, err := jr.store.GroupRepository.ListActiveWithPastor(ctx)
		if err != nil {
			logger.Error("Failed to list groups for pending reminders", "error", err)
			return
		}

		for _, g := range groups {
			gid := g.ID
			pending, err := jr.store.ApplicationRepository.List(ctx, domain.ApplicationStatusPending, &gid)
			if err != nil {
				logger.Error("Failed to list pending applications", "group_id", g.ID, "error", err)
				continue
			}
			if len(pending) == 0 {
				continue
			}

			pastor, err := jr.store.UserRepository.GetByID(ctx, *g.PastorID)
			if err != nil {
				logger.Error("Failed to load group pastor", "group_id", g.ID, "pastor_id", *g.PastorID, "error", err)
				continue
			}

			if err := jr.services.Email.SendPendingReminder(ctx, pastor.Email, pastor.Name, g.Name, len(pending)); err != nil {
				logger.Error("Failed to send pending reminder", "group_id", g.ID, "error", err)
				continue
			}
			logger.Debug("Sent pending reminder", "group_id", g.ID, "pending", len(pending))
		}
	})
}
