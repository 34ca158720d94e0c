package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"

	"github.com/devtrail/bootcamp-api/config"
	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	pginfra "github.com/devtrail/bootcamp-api/internal/infrastructure/postgres"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
)

// Seeds the database from the JSON files in _data. Bootcamps reference
// their owner by email, courses and reviews reference their bootcamp by
// name, so the files carry no generated ids.

type seedUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type seedBootcamp struct {
	entity.Bootcamp
	OwnerEmail string `json:"owner_email"`
}

type seedCourse struct {
	entity.Course
	BootcampName string `json:"bootcamp_name"`
	OwnerEmail   string `json:"owner_email"`
}

type seedReview struct {
	entity.Review
	BootcampName string `json:"bootcamp_name"`
	AuthorEmail  string `json:"author_email"`
}

func main() {
	_ = godotenv.Load()

	importData := flag.Bool("i", false, "import data from _data")
	destroyData := flag.Bool("d", false, "delete all data")
	dataDir := flag.String("data", "_data", "directory holding the seed JSON files")
	flag.Parse()

	if *importData == *destroyData {
		log.Fatal("pass exactly one of -i (import) or -d (destroy)")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if *destroyData {
		for _, table := range []string{"reviews", "courses", "bootcamps", "users"} {
			if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
				log.Fatalf("failed to clear %s: %v", table, err)
			}
		}
		fmt.Println("data destroyed")
		return
	}

	users := pginfra.NewUserRepository(pool)
	bootcamps := pginfra.NewBootcampRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)

	var su []seedUser
	mustLoad(*dataDir, "users.json", &su)
	userIDs := map[string]string{} // email -> id
	for _, in := range su {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u := &entity.User{Name: in.Name, Email: in.Email, Role: entity.Role(in.Role), Password: hash}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed user %s: %v", in.Email, err)
		}
		userIDs[u.Email] = u.ID
	}
	fmt.Printf("seeded %d users\n", len(su))

	var sb []seedBootcamp
	mustLoad(*dataDir, "bootcamps.json", &sb)
	bootcampIDs := map[string]string{} // name -> id
	for _, in := range sb {
		b := in.Bootcamp
		b.Slug = slug.Make(b.Name)
		if b.Photo == "" {
			b.Photo = "no-photo.jpg"
		}
		b.UserID = mustRef(userIDs, in.OwnerEmail, "user")
		if err := bootcamps.Create(ctx, &b); err != nil {
			log.Fatalf("seed bootcamp %s: %v", b.Name, err)
		}
		bootcampIDs[b.Name] = b.ID
	}
	fmt.Printf("seeded %d bootcamps\n", len(sb))

	var sc []seedCourse
	mustLoad(*dataDir, "courses.json", &sc)
	for _, in := range sc {
		c := in.Course
		c.BootcampID = mustRef(bootcampIDs, in.BootcampName, "bootcamp")
		c.UserID = mustRef(userIDs, in.OwnerEmail, "user")
		if err := courses.Create(ctx, &c); err != nil {
			log.Fatalf("seed course %s: %v", c.Title, err)
		}
	}
	fmt.Printf("seeded %d courses\n", len(sc))

	var sr []seedReview
	mustLoad(*dataDir, "reviews.json", &sr)
	for _, in := range sr {
		r := in.Review
		r.BootcampID = mustRef(bootcampIDs, in.BootcampName, "bootcamp")
		r.UserID = mustRef(userIDs, in.AuthorEmail, "user")
		if err := reviews.Create(ctx, &r); err != nil {
			log.Fatalf("seed review %s: %v", r.Title, err)
		}
	}
	fmt.Printf("seeded %d reviews\n", len(sr))

	// Averages are normally maintained on write; recompute once after bulk load.
	for _, id := range bootcampIDs {
		if avg, err := reviews.AverageRating(ctx, id); err == nil {
			_ = bootcamps.UpdateAverageRating(ctx, id, avg)
		}
		if avg, err := courses.AverageTuition(ctx, id); err == nil {
			_ = bootcamps.UpdateAverageCost(ctx, id, avg)
		}
	}
	fmt.Println("data imported")
}

func mustLoad(dir, name string, out any) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		log.Fatalf("read %s: %v", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("parse %s: %v", name, err)
	}
}

func mustRef(m map[string]string, key, kind string) string {
	id, ok := m[key]
	if !ok {
		log.Fatalf("unknown %s reference %q", kind, key)
	}
	return id
}
