package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// Mock implementations

type mockConditionRepo struct {
	table domain.ConditionTable
	err   error
}

func (m *mockConditionRepo) List(ctx context.Context) (domain.ConditionTable, error) {
	return m.table, m.err
}

func (m *mockConditionRepo) Get(ctx context.Context, id string) (*domain.Condition, error) {
	if c := m.table.Get(id); c != nil {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockConditionRepo) Put(ctx context.Context, c *domain.Condition) error {
	for i, existing := range m.table {
		if existing.ID == c.ID {
			m.table[i] = c
			return nil
		}
	}
	m.table = append(m.table, c)
	return nil
}

func (m *mockConditionRepo) Delete(ctx context.Context, id string) error {
	for i, existing := range m.table {
		if existing.ID == id {
			m.table = append(m.table[:i], m.table[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type mockChatRepo struct {
	mu     sync.Mutex
	nextID int64
	chats  map[string][]domain.ChatMessage
}

func newMockChatRepo() *mockChatRepo {
	return &mockChatRepo{chats: make(map[string][]domain.ChatMessage)}
}

func (m *mockChatRepo) Append(ctx context.Context, msg *domain.ChatMessage) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	msg.ID = m.nextID
	m.chats[msg.Phone] = append(m.chats[msg.Phone], *msg)
	return msg.ID, nil
}

func (m *mockChatRepo) Recent(ctx context.Context, phone string, n int) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.chats[phone]
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return append([]domain.ChatMessage(nil), all...), nil
}

func (m *mockChatRepo) List(ctx context.Context, phone string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatMessage(nil), m.chats[phone]...), nil
}

func (m *mockChatRepo) ListAll(ctx context.Context) (map[string][]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string][]domain.ChatMessage, len(m.chats))
	for phone, msgs := range m.chats {
		result[phone] = append([]domain.ChatMessage(nil), msgs...)
	}
	return result, nil
}

func (m *mockChatRepo) Delete(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.chats, phone)
	return nil
}

type mockBotStatusRepo struct {
	statuses map[string]*domain.BotStatus
	err      error
	saves    int
}

func newMockBotStatusRepo() *mockBotStatusRepo {
	return &mockBotStatusRepo{statuses: make(map[string]*domain.BotStatus)}
}

func (m *mockBotStatusRepo) Get(ctx context.Context, phone string) (*domain.BotStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.statuses[phone]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *mockBotStatusRepo) Save(ctx context.Context, status *domain.BotStatus) error {
	m.saves++
	copied := *status
	m.statuses[status.Phone] = &copied
	return nil
}

type mockSettingsRepo struct {
	values    map[string]string
	token     *domain.AccessToken
	whitelist []string
	err       error
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{values: make(map[string]string)}
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.values) == 0 && m.token == nil {
		return nil, domain.ErrNotFound
	}
	s := &domain.Settings{
		VerificationToken: m.values["verification_token"],
		PhoneNumberID:     m.values["phone_number_id"],
		AppID:             m.values["app_id"],
		AppSecret:         m.values["app_secret"],
		EmailsWhitelist:   m.whitelist,
	}
	if m.token != nil {
		s.AccessToken = *m.token
	}
	return s, nil
}

func (m *mockSettingsRepo) GetString(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *mockSettingsRepo) SetString(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsRepo) GetAccessToken(ctx context.Context) (*domain.AccessToken, error) {
	if m.token == nil {
		return nil, domain.ErrNotFound
	}
	copied := *m.token
	return &copied, nil
}

func (m *mockSettingsRepo) SetAccessToken(ctx context.Context, token *domain.AccessToken) error {
	copied := *token
	m.token = &copied
	return nil
}

func (m *mockSettingsRepo) GetWhitelist(ctx context.Context) ([]string, error) {
	return m.whitelist, nil
}

func (m *mockSettingsRepo) SetWhitelist(ctx context.Context, emails []string) error {
	m.whitelist = emails
	return nil
}

type mockSender struct {
	sent []*domain.OutboundMessage
	err  error
}

func (m *mockSender) Send(ctx context.Context, msg *domain.OutboundMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockExchanger struct {
	calls    []string
	response string
	err      error
}

func (m *mockExchanger) ExchangeToken(ctx context.Context, appID, appSecret, token string) (string, error) {
	m.calls = append(m.calls, appID+":"+appSecret+":"+token)
	return m.response, m.err
}

var errBoom = errors.New("boom")
