// Command seed creates demo accounts with filled-in profiles and a few open
// conversations, for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/date-app-backend/config"
	"github.com/oksasatya/date-app-backend/internal/container"
	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

type demoUser struct {
	Email    string
	Name     string
	Gender   string
	MBTI     string
	Tags     []string
	LikeTags []string
}

var demoUsers = []demoUser{
	{"mina@example.com", "Mina", "female", "INFP", []string{"coffee", "hiking", "books"}, []string{"music"}},
	{"joon@example.com", "Joon", "male", "ENFJ", []string{"coffee", "music"}, []string{"books"}},
	{"hana@example.com", "Hana", "female", "ESTJ", []string{"running", "travel"}, []string{"coffee"}},
	{"tae@example.com", "Tae", "male", "INTP", []string{"books", "games"}, []string{"hiking"}},
	{"sora@example.com", "", "female", "ENTP", []string{"games", "travel"}, nil},
	{"kyu@example.com", "Kyu", "male", "ISFJ", []string{"hiking", "travel", "coffee"}, []string{"running"}},
}

var demoChats = [][3]string{
	{"mina@example.com", "tae@example.com", "hi! saw you like books too"},
	{"hana@example.com", "kyu@example.com", "travel plans this summer?"},
}

func main() {
	password := flag.String("password", "password123", "password for every demo account (local auth only)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	cleanup, err := container.Bootstrap(ctx, cfg, logger, container.Options{RunMigrations: true})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer cleanup()

	auth := container.GetAuthProvider()
	accounts := container.AccountService()
	accounts.Mail = nil
	profiles := container.ProfileRepository()
	chats := container.ChatIndex()
	index := container.ProfileIndex()

	for _, u := range demoUsers {
		uid, err := ensureIdentity(ctx, auth, u.Email, *password)
		if err != nil {
			log.Fatalf("identity %s: %v", u.Email, err)
		}
		if _, err := accounts.EnsureProfile(ctx, uid, u.Email); err != nil {
			log.Fatalf("profile %s: %v", u.Email, err)
		}
		name, gender, mbti := u.Name, u.Gender, u.MBTI
		err = profiles.Update(ctx, uid, entity.ProfilePatch{
			Name:     &name,
			Gender:   &gender,
			MBTI:     &mbti,
			Tags:     u.Tags,
			LikeTags: u.LikeTags,
		})
		if err != nil {
			log.Fatalf("update %s: %v", u.Email, err)
		}
		if index != nil {
			if err := index.Index(ctx, entity.Summarize(uid, profiles.Read(ctx, uid))); err != nil {
				logger.WithError(err).WithField("user_id", uid).Warn("es index failed")
			}
		}
		fmt.Printf("seeded %s uid=%s mbti=%s\n", u.Email, uid, u.MBTI)
	}

	now := time.Now()
	for i, c := range demoChats {
		room, err := chats.OpenConversation(ctx, c[0], c[1], c[2], now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			log.Fatalf("chat %s/%s: %v", c[0], c[1], err)
		}
		fmt.Printf("opened chat %s\n", room)
	}
}

// ensureIdentity registers email or, when it already exists, looks it up.
func ensureIdentity(ctx context.Context, auth repository.AuthProvider, email, password string) (string, error) {
	id, err := auth.Register(ctx, email, password)
	if err == nil {
		return id.UID, nil
	}
	if !errors.Is(err, repository.ErrEmailTaken) {
		return "", err
	}
	return auth.ResolveIDByEmail(ctx, email)
}
