package auth

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the persistence surface for account records. It includes the
// read-only CredentialStore capability the resolver consumes plus the
// out-of-band write paths (registration, seeding) the core never calls.
type Users interface {
	CredentialStore

	Register(ctx context.Context, user *User, password string) (*User, error)
	EnsureSchema(ctx context.Context) error
	Seed(ctx context.Context, records []*User) error
}

type users struct {
	db         *bun.DB
	bcryptCost int
	logger     Logger
}

var _ Users = (*users)(nil)

// UsersOption customizes the repository.
type UsersOption func(*users)

// WithBcryptCost sets the hashing work factor used by Register.
func WithBcryptCost(cost int) UsersOption {
	return func(u *users) {
		if cost > 0 {
			u.bcryptCost = cost
		}
	}
}

// WithUsersLogger overrides the repository logger.
func WithUsersLogger(logger Logger) UsersOption {
	return func(u *users) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUsersRepository creates a bun-backed Users store.
func NewUsersRepository(db *bun.DB, opts ...UsersOption) Users {
	repo := &users{
		db:         db,
		bcryptCost: DefaultBcryptCost,
		logger:     defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}

	return repo
}

// FindByUsername loads one account and converts it to a Principal at the
// store boundary. Missing rows come back as a not-found error the caller
// can test with errors.IsNotFound.
func (u *users) FindByUsername(ctx context.Context, username string) (*Principal, error) {
	record := new(User)

	err := u.db.NewSelect().
		Model(record).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query user by username")
	}

	return record.Principal(), nil
}

// Register hashes the password and inserts the record. It belongs to the
// out-of-band account-creation flow, not to request handling.
func (u *users) Register(ctx context.Context, user *User, password string) (*User, error) {
	if user == nil {
		return nil, errors.New("user record is required", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	if user.Username == "" {
		return nil, errors.New("username is required", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	hash, err := HashPasswordCost(password, u.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if _, err := u.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}

	u.logger.Info("registered user", "username", user.Username)

	return user, nil
}

// EnsureSchema creates the users table when it does not exist yet.
func (u *users) EnsureSchema(ctx context.Context) error {
	_, err := u.db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create users table")
	}
	return nil
}

// Seed inserts the given records, skipping usernames that already exist.
// Records without an ID get one assigned.
func (u *users) Seed(ctx context.Context, records []*User) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
	}

	_, err := u.db.NewInsert().
		Model(&records).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to seed users")
	}

	return nil
}
