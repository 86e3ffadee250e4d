package bootstrap

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Category{},
		&entity.GymClass{},
		&entity.Lesson{},
	)
}

// SeedRoles inserts the three catalog roles once. Roles are effectively
// immutable after this.
func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: string(authz.RoleAdmin), Description: "Administrator"},
		{Name: string(authz.RoleTeacher), Description: "Teaches gym classes"},
		{Name: string(authz.RoleStudent), Description: "Enrolls in gym classes"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates a development admin account so the privileged
// endpoints are reachable on a fresh database.
func SeedAdminUser(db *gorm.DB) error {
	var adminRole entity.Role
	if err := db.Where("name = ?", string(authz.RoleAdmin)).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@gymsched.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Name:         "Administrator",
		Email:        "admin@gymsched.local",
		PasswordHash: string(hashedPasswordBytes),
		Birthdate:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@gymsched.local")
	log.Println("   Password: admin123")

	return nil
}
