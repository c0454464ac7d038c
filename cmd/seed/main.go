// Command seed wipes the three entity tables and repopulates them with
// generated fixtures: thirty members with hashed passwords, five projects
// owned by project_owner members, and a few tasks per project.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/taskhive/taskhive/db"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/store/gormstore"
	"gorm.io/gorm"
)

const (
	memberCount  = 30
	projectCount = 5
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	database, err := db.Connect(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	for _, table := range []interface{}{&models.Task{}, &models.Project{}, &models.Member{}} {
		if err := database.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	st := gormstore.New(database)

	members := make([]*models.Member, 0, memberCount)
	for i := 0; i < memberCount; i++ {
		hash, err := auth.HashPassword(gofakeit.Password(true, true, true, false, false, 12))
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		role := models.RoleMember
		if rand.Intn(2) == 0 {
			role = models.RoleProjectOwner
		}

		member := &models.Member{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			FullName:     gofakeit.Name(),
			Credential:   hash,
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Role:         role,
			Gender:       gofakeit.Gender(),
			MemberNo:     fmt.Sprintf("M%06d", i+1),
			DateOfBirth:  gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)),
			MemberStatus: []string{"active", "inactive"}[rand.Intn(2)],
			IDNo:         gofakeit.SSN(),
			Address:      gofakeit.Address().Address,
		}

		if err := st.CreateMember(member); err != nil {
			log.Fatalf("Failed to seed member: %v", err)
		}
		members = append(members, member)
	}

	owners := make([]*models.Member, 0)
	for _, m := range members {
		if m.Role == models.RoleProjectOwner {
			owners = append(owners, m)
		}
	}
	if len(owners) == 0 {
		log.Fatal("No project owners available to assign projects")
	}

	projects := make([]*models.Project, 0, projectCount)
	for i := 0; i < projectCount; i++ {
		deadline := gofakeit.DateRange(time.Now().AddDate(-3, 0, 0), time.Now())
		project := &models.Project{
			ProjectName: gofakeit.BS(),
			Details:     gofakeit.Sentence(8),
			Deadline:    &deadline,
			OwnerID:     owners[rand.Intn(len(owners))].ID,
		}
		if err := st.CreateProject(project); err != nil {
			log.Fatalf("Failed to seed project: %v", err)
		}
		projects = append(projects, project)
	}

	taskTotal := 0
	for _, project := range projects {
		for i := 0; i < 2+rand.Intn(3); i++ {
			task := &models.Task{
				TaskName:         gofakeit.VerbAction() + " " + gofakeit.NounConcrete(),
				Description:      gofakeit.Sentence(6),
				Status:           models.TaskStatuses[rand.Intn(len(models.TaskStatuses))],
				ProjectID:        project.ID,
				AssignedMemberID: members[rand.Intn(len(members))].ID,
			}
			if err := st.CreateTask(task); err != nil {
				log.Fatalf("Failed to seed task: %v", err)
			}
			taskTotal++
		}
	}

	log.Printf("Seeded %d members, %d projects, %d tasks", len(members), len(projects), taskTotal)
}
