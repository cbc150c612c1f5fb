package session

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/polymap/internal/common"
	"github.com/dmitrijs2005/polymap/internal/cpf"
	"github.com/dmitrijs2005/polymap/internal/cryptox"
	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/metrics"
	"github.com/dmitrijs2005/polymap/internal/models"
	"github.com/dmitrijs2005/polymap/internal/store"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// DefaultDelay is the simulated round trip of Login and Register.
const DefaultDelay = 1500 * time.Millisecond

// RegisterRequest is the data collected by the registration form.
type RegisterRequest struct {
	Name     string
	Email    string
	TaxID    string
	Password []byte
	Confirm  []byte
}

// Manager implements login, registration and logout over a RecordStore.
type Manager struct {
	store   store.RecordStore
	log     logging.Logger
	metrics *metrics.Metrics
	delay   time.Duration
	sleep   func(time.Duration)

	busy atomic.Bool

	mu     sync.Mutex
	active string
}

type Option func(*Manager)

// WithDelay sets the simulated round trip; zero disables it.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// WithSleep replaces time.Sleep for the simulated delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(m *Manager) { m.sleep = sleep }
}

func NewManager(rs store.RecordStore, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store: rs,
		log:   log.With("component", "session"),
		delay: DefaultDelay,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckAuth returns the account currently logged in, if any. When the table
// holds more than one logged account the first one wins.
func (m *Manager) CheckAuth(ctx context.Context) (*models.Account, bool) {
	for _, a := range m.store.LoadAll(ctx) {
		if a.Logged {
			m.setActive(a.TaxID)
			acc := a.Clone()
			return &acc, true
		}
	}
	m.setActive("")
	return nil, false
}

// ActiveID returns the tax id of the active session as of the last
// operation, without touching the store.
func (m *Manager) ActiveID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != ""
}

// Busy reports whether a Login or Register call is in flight.
func (m *Manager) Busy() bool {
	return m.busy.Load()
}

// Login authenticates taxID/password and makes that account the only logged
// one. It returns ErrInvalidCPF, common.ErrNotFound,
// common.ErrBadCredentials, common.ErrBusy or common.ErrInternal.
func (m *Manager) Login(ctx context.Context, taxID string, password []byte) (err error) {
	if !m.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer m.busy.Store(false)
	defer func() { m.metrics.SessionOp("login", err) }()

	if !cpf.IsValid(taxID) {
		return ErrInvalidCPF
	}

	m.wait()

	accounts, err := m.load(ctx)
	if err != nil {
		return err
	}
	idx := models.IndexByTaxID(accounts, taxID)
	if idx < 0 {
		m.log.Info(ctx, "login rejected", "cpf", cpf.Format(taxID), "reason", "not found")
		return common.ErrNotFound
	}

	ok, legacy, err := cryptox.Verify(accounts[idx].Password, password)
	if err != nil {
		m.log.Error(ctx, "stored secret unreadable", "cpf", accounts[idx].TaxID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	if !ok {
		m.log.Info(ctx, "login rejected", "cpf", accounts[idx].TaxID, "reason", "bad credentials")
		return common.ErrBadCredentials
	}

	for i := range accounts {
		accounts[i].Logged = i == idx
	}
	if legacy {
		accounts[idx].Password = cryptox.HashSecret(password)
	}

	if err := m.store.SaveAll(ctx, accounts); err != nil {
		m.log.Error(ctx, "login not persisted", "cpf", accounts[idx].TaxID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	m.setActive(accounts[idx].TaxID)
	m.log.Info(ctx, "login", "cpf", accounts[idx].TaxID, "upgraded_secret", legacy)
	return nil
}

// Register validates req and appends a new, logged-out account with no
// polygons. It does not log the new account in.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (err error) {
	if !m.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer m.busy.Store(false)
	defer func() { m.metrics.SessionOp("register", err) }()

	if err := Validate(req); err != nil {
		return err
	}

	m.wait()

	accounts, err := m.load(ctx)
	if err != nil {
		return err
	}
	if models.IndexByTaxID(accounts, req.TaxID) >= 0 {
		m.log.Info(ctx, "register rejected", "cpf", cpf.Format(req.TaxID), "reason", "duplicate")
		return common.ErrConflict
	}

	acc := models.Account{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		TaxID:    cpf.Format(req.TaxID),
		Password: cryptox.HashSecret(req.Password),
	}
	accounts = append(accounts, acc)

	if err := m.store.SaveAll(ctx, accounts); err != nil {
		m.log.Error(ctx, "registration not persisted", "cpf", acc.TaxID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	m.log.Info(ctx, "registered", "cpf", acc.TaxID)
	return nil
}

// Logout clears every account's logged flag. Calling it again is harmless.
func (m *Manager) Logout(ctx context.Context) (err error) {
	defer func() { m.metrics.SessionOp("logout", err) }()

	accounts, err := m.load(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		accounts[i].Logged = false
	}

	if err := m.store.SaveAll(ctx, accounts); err != nil {
		m.log.Error(ctx, "logout not persisted", "error", err)
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	m.setActive("")
	m.log.Info(ctx, "logout")
	return nil
}

// Validate applies the registration form rules in the order the form
// reports them: CPF, password confirmation, password length, then name and
// e-mail.
func Validate(req RegisterRequest) error {
	if !cpf.IsValid(req.TaxID) {
		return ErrInvalidCPF
	}
	if string(req.Password) != string(req.Confirm) {
		return ErrPasswordMismatch
	}
	if len(req.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// load reads the table for a read-modify-write. An unreadable table is an
// internal error so that nothing is written over it.
func (m *Manager) load(ctx context.Context) ([]models.Account, error) {
	accounts, err := m.store.Load(ctx)
	if err != nil {
		m.log.Error(ctx, "record table unreadable", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return accounts, nil
}

func (m *Manager) wait() {
	if m.delay > 0 {
		m.sleep(m.delay)
	}
}

func (m *Manager) setActive(taxID string) {
	m.mu.Lock()
	m.active = taxID
	m.mu.Unlock()
}
