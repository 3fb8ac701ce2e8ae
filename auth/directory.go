// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/sathi/core"
)

// digestSize is the BLAKE2b output length in bytes.
const digestSize = 32

// Account is a stored login.
type Account struct {
	Id       string
	Username string
	Digest   string // Hex BLAKE2b-256 of the password
	Role     core.Role
}

// Digest returns the hex BLAKE2b-256 digest of password.
func Digest(password string) string {
	h, _ := blake2b.New(digestSize, nil)
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// DefaultAccounts returns the two demo logins: admin/admin123 and user/user123.
func DefaultAccounts() []Account {
	return []Account{
		{Id: "1", Username: "admin", Digest: Digest("admin123"), Role: core.RoleAdmin},
		{Id: "2", Username: "user", Digest: Digest("user123"), Role: core.RoleUser},
	}
}

// Directory authenticates users against a fixed set of accounts.
// It is read-only after construction and safe for concurrent use.
type Directory struct {
	accounts map[string]Account
	logger   *slog.Logger
}

// Option configures a Directory.
type Option func(*Directory) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDirectory builds a directory from accounts.
// Usernames are matched case-insensitively and must be unique.
func NewDirectory(accounts []Account, opts ...Option) (*Directory, error) {
	d := &Directory{
		accounts: make(map[string]Account, len(accounts)),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	for _, account := range accounts {
		if err := validateAccount(account); err != nil {
			return nil, err
		}
		key := normalizeUsername(account.Username)
		if _, exists := d.accounts[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, account.Username)
		}
		account.Digest = strings.ToLower(account.Digest)
		if account.Id == "" {
			account.Id = key
		}
		d.accounts[key] = account
	}

	return d, nil
}

// Authenticate checks a username and password.
func (d *Directory) Authenticate(username, password string) (*core.User, error) {
	account, ok := d.accounts[normalizeUsername(username)]
	if !ok {
		d.logger.Debug("unknown username", "username", username)
		return nil, ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(Digest(password)), []byte(account.Digest)) != 1 {
		d.logger.Debug("password mismatch", "username", account.Username)
		return nil, ErrInvalidCredentials
	}

	return &core.User{Id: account.Id, Username: account.Username, Role: account.Role}, nil
}

// Users lists every account as a user, ordered by username.
func (d *Directory) Users() []core.User {
	users := make([]core.User, 0, len(d.accounts))
	for _, account := range d.accounts {
		users = append(users, core.User{Id: account.Id, Username: account.Username, Role: account.Role})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// Authorize returns ErrForbidden unless user holds role.
// Admins satisfy every role.
func Authorize(user *core.User, role core.Role) error {
	if user == nil {
		return ErrForbidden
	}
	if user.Role == core.RoleAdmin || user.Role == role {
		return nil
	}
	return fmt.Errorf("%w: %s requires %s role", ErrForbidden, user.Username, role)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateAccount(account Account) error {
	if normalizeUsername(account.Username) == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidAccount)
	}
	if account.Role != core.RoleAdmin && account.Role != core.RoleUser {
		return fmt.Errorf("%w: %s: %w", ErrInvalidAccount, account.Username, core.ErrInvalidRole)
	}
	raw, err := hex.DecodeString(account.Digest)
	if err != nil || len(raw) != digestSize {
		return fmt.Errorf("%w: %s: digest must be %d hex bytes", ErrInvalidAccount, account.Username, digestSize)
	}
	return nil
}
