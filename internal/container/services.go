package container

import (
	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/docstore"
	esinfra "github.com/oksasatya/date-app-backend/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/gcs"
	redisinfra "github.com/oksasatya/date-app-backend/internal/infrastructure/redis"
	"github.com/oksasatya/date-app-backend/pkg/validation"
)

// The builders below return nil interfaces, never typed nils, for services
// that are not configured, so the application layer can skip them.

func ProfileRepository() *docstore.ProfileRepository {
	return docstore.NewProfileRepository(GetStore(), GetLogger())
}

func ChatIndex() *docstore.ChatIndex {
	fanout := 1
	if cfg != nil {
		fanout = cfg.CascadeFanout
	}
	return docstore.NewChatIndex(GetStore(), GetLogger(), fanout)
}

func Sessions() repository.SessionStore {
	if GetRedis() == nil {
		return nil
	}
	return redisinfra.NewSessionStore(GetRedis())
}

func Images() repository.ImageStore {
	if GetGCS() == nil || cfg == nil || cfg.GCSBucket == "" {
		return nil
	}
	return gcs.NewImageStore(GetGCS(), cfg.GCSBucket)
}

func ProfileIndex() repository.ProfileIndex {
	if GetES() == nil || cfg == nil {
		return nil
	}
	return esinfra.NewProfileIndex(GetES(), cfg.ESProfilesIndex)
}

func Mail() *application.Mail {
	m := &application.Mail{Logger: GetLogger()}
	if cfg != nil {
		m.AppName = cfg.AppName
		m.SupportURL = cfg.SupportURL
	}
	if p := GetPublisher(); p != nil {
		m.Notifier = p
	}
	return m
}

func Directory() *application.IdentityDirectory {
	return application.NewIdentityDirectory(GetAuthProvider(), docstore.NewTombstoneStore(GetStore()), GetLogger())
}

func Orchestrator() *application.Orchestrator {
	return &application.Orchestrator{
		Directory: Directory(),
		Profiles:  ProfileRepository(),
		Chats:     ChatIndex(),
		Images:    Images(),
		Index:     ProfileIndex(),
		Sessions:  Sessions(),
		Mail:      Mail(),
		Logger:    GetLogger(),
	}
}

func AccountService() *application.AccountService {
	svc := &application.AccountService{
		Auth:     GetAuthProvider(),
		Profiles: ProfileRepository(),
		Sessions: Sessions(),
		Index:    ProfileIndex(),
		JWT:      GetJWT(),
		Mail:     Mail(),
		Logger:   GetLogger(),
	}
	if cfg != nil {
		svc.SessionTTL = cfg.SessionTTL
	}
	return svc
}

func ProfileService() *application.ProfileService {
	return &application.ProfileService{
		Directory: Directory(),
		Profiles:  ProfileRepository(),
		Images:    Images(),
		Index:     ProfileIndex(),
		Validate:  validation.New(),
		Logger:    GetLogger(),
	}
}

func MatchService() *application.MatchService {
	return &application.MatchService{
		Directory: Directory(),
		Profiles:  ProfileRepository(),
		Chats:     ChatIndex(),
		Logger:    GetLogger(),
	}
}
