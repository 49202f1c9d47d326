// Seeds a demo user and a spread of sample tasks for local development.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
	"github.com/cxmpoundV/TaskManagementAPI/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@example.com"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}

	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	user := &domain.User{Email: email, Password: hash}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("create user: %v", err)
	}
	log.Printf("created user id=%d email=%s", user.ID, user.Email)

	now := time.Now()
	completed := now.Add(-24 * time.Hour)
	samples := []domain.Task{
		{Name: "Write quarterly summary", Priority: domain.PriorityHigh, DueDate: now.Add(24 * time.Hour), OwnerID: user.ID},
		{Name: "Review pull requests", Priority: domain.PriorityMedium, DueDate: now.Add(3 * 24 * time.Hour), OwnerID: user.ID},
		{Name: "Clean up backlog", Priority: domain.PriorityLow, DueDate: now.Add(10 * 24 * time.Hour), OwnerID: user.ID},
		{Name: "Renew certificates", Priority: domain.PriorityHigh, DueDate: now.Add(-2 * 24 * time.Hour), OwnerID: user.ID},
		{Name: "Submit expense report", Status: domain.StatusCompleted, CompletedDate: &completed, DueDate: now.Add(-4 * 24 * time.Hour), OwnerID: user.ID},
	}
	for i := range samples {
		if err := tasks.Create(ctx, &samples[i]); err != nil {
			log.Fatalf("create task %q: %v", samples[i].Name, err)
		}
	}

	// completed_date can't go through Create; set it directly
	for _, t := range samples {
		if t.CompletedDate != nil {
			if _, err := db.Exec(ctx,
				`UPDATE tasks SET completed_date = $1 WHERE task_id = $2`, *t.CompletedDate, t.TaskID); err != nil {
				log.Fatalf("set completed_date: %v", err)
			}
		}
	}

	log.Printf("seeded %d tasks", len(samples))
}
