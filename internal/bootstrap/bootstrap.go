package bootstrap

import (
	"log"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Group{},
		&entity.GroupMember{},
		&entity.Activity{},
		&entity.Vote{},
		&entity.Achievement{},
		&entity.Notification{},
		&entity.PaymentHistory{},
	)
	if err != nil {
		return err
	}

	// GORM tags cannot express NULLS NOT DISTINCT, and without it the
	// unique index would let global badges (NULL group_id) duplicate.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_achievements_unique
		ON achievements (user_id, group_id, type, title) NULLS NOT DISTINCT`).Error
}

// SeedDevData creates a demo group with three members for local development.
func SeedDevData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Users already exist, skipping dev seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("fitvibes123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []entity.User{
		{Name: "Ana", Email: "ana@fitvibes.dev", PasswordHash: string(hashedPassword)},
		{Name: "Bruno", Email: "bruno@fitvibes.dev", PasswordHash: string(hashedPassword)},
		{Name: "Carla", Email: "carla@fitvibes.dev", PasswordHash: string(hashedPassword)},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	group := entity.Group{
		Name:       "Morning Crew",
		Emoji:      "🏃",
		ThemeColor: "#FF6B35",
		Timezone:   "America/Sao_Paulo",
	}
	if err := db.Create(&group).Error; err != nil {
		return err
	}

	for i, user := range users {
		role := entity.RoleMember
		if i == 0 {
			role = entity.RoleAdmin
		}
		member := entity.GroupMember{
			GroupID: group.ID,
			UserID:  user.ID,
			Role:    role,
		}
		if err := db.Create(&member).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Dev data seeded: group 'Morning Crew' with 3 members")
	return nil
}
