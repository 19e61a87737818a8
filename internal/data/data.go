package data

import (
	"database/sql"

	"github.com/cid-docencia/wa-responder/internal/biz/repo"
	"github.com/cid-docencia/wa-responder/internal/infra/whatsapp"
)

// Repositories contains all repositories
type Repositories struct {
	Condition repo.ConditionRepo
	Chat      repo.ChatRepo
	BotStatus repo.BotStatusRepo
	Settings  repo.SettingsRepo
	Layout    repo.LayoutRepo
	Sender    repo.MessageSender
	Exchanger repo.TokenExchanger

	db *sql.DB
}

// NewRepositories opens the database and creates all repositories
func NewRepositories(dbPath string, waClient *whatsapp.Client) (*Repositories, error) {
	db, err := OpenDB(dbPath)
	if err != nil {
		return nil, err
	}

	settings := NewSettingsRepo(db)
	transport := newWhatsAppRepo(waClient, settings)

	return &Repositories{
		Condition: NewConditionRepo(db),
		Chat:      NewChatRepo(db),
		BotStatus: NewBotStatusRepo(db),
		Settings:  settings,
		Layout:    NewLayoutRepo(db),
		Sender:    transport,
		Exchanger: transport,
		db:        db,
	}, nil
}

// Close closes the database
func (r *Repositories) Close() error {
	return r.db.Close()
}
