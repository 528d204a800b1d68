// 开发环境演示数据。跑在 migrate 之后：
//
//	go run ./cmd/seed
package main

import (
	"fmt"
	"log"

	"inspyre/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Username string
	Email    string
	Tag      string
}

var seedUsers = []seedUser{
	{Username: "alice", Email: "alice@example.com", Tag: "writer"},
	{Username: "bob", Email: "bob@example.com", Tag: "photographer"},
	{Username: "carol", Email: "carol@example.com", Tag: "artist"},
}

func main() {
	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	tx := db.MustBegin()
	for _, u := range seedUsers {
		var userID uint
		err := tx.QueryRowx(`
			INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3)
			ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
			RETURNING id`,
			u.Username, u.Email, string(hash)).Scan(&userID)
		if err != nil {
			log.Fatal(err)
		}

		var profileID uint
		err = tx.QueryRowx(`
			INSERT INTO profiles (owner_id, name, content) VALUES ($1, $2, '')
			ON CONFLICT (owner_id) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			userID, u.Username).Scan(&profileID)
		if err != nil {
			log.Fatal(err)
		}

		tx.MustExec(`
			INSERT INTO profile_profile_tags (profile_id, profile_tag_id)
			SELECT $1, id FROM profile_tags WHERE name = $2
			ON CONFLICT DO NOTHING`,
			profileID, u.Tag)

		var postID uint
		err = tx.QueryRowx(`
			INSERT INTO posts (owner_id, title, content) VALUES ($1, $2, $3)
			RETURNING id`,
			userID, u.Username+"'s first post", "Hello from "+u.Username).Scan(&postID)
		if err != nil {
			log.Fatal(err)
		}

		tx.MustExec(`
			INSERT INTO comments (owner_id, post_id, content) VALUES ($1, $2, $3)`,
			userID, postID, "First!")
	}
	if err := tx.Commit(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Seeded %d users with profiles, posts and comments", len(seedUsers))
}
