package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	streakRepo "github.com/fitvibes/fitvibes-server/internal/modules/streak/repository"
)

// resetWindowMinutes is how far past local midnight a group still counts as
// being "at midnight". It must cover the sweep interval so no timezone is
// skipped between runs.
const resetWindowMinutes = 30

// StreakResetJob sweeps all groups and, for those whose local clock is just
// past midnight, zeroes the streaks of members who missed yesterday. The
// global streak reset runs once per distinct timezone per sweep. Per-group
// errors are collected into the summary; one group's failure does not block
// the rest.
type StreakResetJob struct {
	groupRepo  groupRepo.GroupRepository
	streakRepo streakRepo.StreakRepository
	schedule   string
	now        func() time.Time
}

func NewStreakResetJob(groupRepo groupRepo.GroupRepository, streakRepo streakRepo.StreakRepository, schedule string) *StreakResetJob {
	return &StreakResetJob{
		groupRepo:  groupRepo,
		streakRepo: streakRepo,
		schedule:   schedule,
		now:        time.Now,
	}
}

func (j *StreakResetJob) Name() string     { return "streak-reset" }
func (j *StreakResetJob) Schedule() string { return j.schedule }

func (j *StreakResetJob) Execute(ctx context.Context) (Summary, error) {
	groups, err := j.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	nowUTC := j.now().UTC()
	resets := make([]map[string]interface{}, 0)
	resetTimezones := make(map[string]bool)

	for _, group := range groups {
		loc, err := time.LoadLocation(group.Timezone)
		if err != nil {
			resets = append(resets, map[string]interface{}{
				"group": group.ID.String(),
				"error": fmt.Sprintf("invalid timezone %q", group.Timezone),
			})
			continue
		}

		nowLocal := nowUTC.In(loc)
		if nowLocal.Hour() != 0 || nowLocal.Minute() >= resetWindowMinutes {
			continue
		}

		// Local midnight just passed; "yesterday" is the day that ended.
		yesterday := nowLocal.AddDate(0, 0, -1)
		yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

		if !resetTimezones[group.Timezone] {
			count, err := j.streakRepo.ResetGlobalStreaks(ctx, yesterday)
			if err != nil {
				log.Printf("❌ Global streak reset failed for timezone %s: %v", group.Timezone, err)
				resets = append(resets, map[string]interface{}{
					"timezone": group.Timezone,
					"global":   "error",
					"error":    err.Error(),
				})
			} else {
				resets = append(resets, map[string]interface{}{
					"timezone": group.Timezone,
					"global":   "reset",
					"users":    count,
				})
			}
			resetTimezones[group.Timezone] = true
		}

		count, err := j.streakRepo.ResetGroupStreaks(ctx, group.ID, yesterday)
		if err != nil {
			log.Printf("❌ Streak reset failed for group %s: %v", group.ID, err)
			resets = append(resets, map[string]interface{}{
				"group": group.ID.String(),
				"error": err.Error(),
			})
			continue
		}

		resets = append(resets, map[string]interface{}{
			"group":   group.ID.String(),
			"status":  "reset",
			"members": count,
		})
	}

	return Summary{
		"groups": len(groups),
		"resets": resets,
	}, nil
}
