package jobs

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	"github.com/fitvibes/fitvibes-server/pkg/push"
)

var autoExcuseMessages = []string{
	"I skipped today because I was just that lazy! 😅",
	"My cat ate my workout clothes... again! 😺",
	"Netflix dropped a new season and I couldn't resist! 📺",
	"My alarm clock slacked off today too! ⏰",
	"The bed hugged me and wouldn't let go! 🛏️",
	"My dog hid my sneakers... again! 🐕",
	"Last night's pizza kept me company all day! 🍕",
	"My couch hypnotized me with its comfort powers! 🛋️",
	"It rained only in my neighborhood... trust me! 🌧️",
	"My phone died and I had no idea what time it was! 📱",
	"The elevator broke... and I live on the 2nd floor! 🏢",
	"My sneakers knotted their own laces! 👟",
	"Netflix recommended exactly what I wanted to watch! 🎬",
	"My cat threw a tantrum and wouldn't let me leave! 😸",
	"The bed was extra comfy today... again! 😴",
}

// AutoExcuseJob inserts a pending auto-excuse for every group member who
// posted nothing yesterday, and pushes them a heads-up if they have a
// registered device token. Best effort: per-member failures are collected,
// not fatal.
type AutoExcuseJob struct {
	groupRepo    groupRepo.GroupRepository
	activityRepo activityRepo.ActivityRepository
	pushClient   *push.Client
	schedule     string
}

func NewAutoExcuseJob(groupRepo groupRepo.GroupRepository, activityRepo activityRepo.ActivityRepository, pushClient *push.Client, schedule string) *AutoExcuseJob {
	return &AutoExcuseJob{
		groupRepo:    groupRepo,
		activityRepo: activityRepo,
		pushClient:   pushClient,
		schedule:     schedule,
	}
}

func (j *AutoExcuseJob) Name() string     { return "auto-excuse" }
func (j *AutoExcuseJob) Schedule() string { return j.schedule }

func (j *AutoExcuseJob) Execute(ctx context.Context) (Summary, error) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	groups, err := j.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	created := 0
	var failures []string

	for _, group := range groups {
		members, err := j.groupRepo.FindMembers(ctx, group.ID)
		if err != nil {
			failures = append(failures, fmt.Sprintf("group %s: %v", group.ID, err))
			continue
		}

		for _, member := range members {
			exists, err := j.activityRepo.HasActivityOnDate(ctx, group.ID, member.UserID, yesterday)
			if err != nil {
				failures = append(failures, fmt.Sprintf("member %s: %v", member.UserID, err))
				continue
			}
			if exists {
				continue
			}

			excuseText := autoExcuseMessages[rand.Intn(len(autoExcuseMessages))]
			category := "other"
			activity := &entity.Activity{
				GroupID:        group.ID,
				UserID:         member.UserID,
				Type:           entity.ActivityTypeAutoExcuse,
				ExcuseCategory: &category,
				ExcuseText:     &excuseText,
				Date:           yesterday,
				Status:         entity.ActivityStatusPending,
			}
			if err := j.activityRepo.CreateForGroups(ctx, []*entity.Activity{activity}); err != nil {
				failures = append(failures, fmt.Sprintf("member %s: %v", member.UserID, err))
				continue
			}
			created++

			if j.pushClient != nil && member.User.NotificationToken != nil {
				err := j.pushClient.Send(ctx, push.Message{
					To:    *member.User.NotificationToken,
					Title: fmt.Sprintf("Auto-excuse in %s!", group.Name),
					Body:  fmt.Sprintf("Oops! We made up an excuse for you: %q", excuseText),
					Data:  map[string]string{"type": entity.NotificationTypeAutoExcuse},
				})
				if err != nil {
					log.Printf("Failed to push auto-excuse to user %s: %v", member.UserID, err)
				}
			}
		}
	}

	summary := Summary{
		"date":    yesterday.Format("2006-01-02"),
		"groups":  len(groups),
		"created": created,
	}
	if len(failures) > 0 {
		summary["failures"] = failures
	}

	return summary, nil
}
