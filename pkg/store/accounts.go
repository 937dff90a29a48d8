package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/acolombo/taskdeck/pkg/identity"
	"github.com/acolombo/taskdeck/pkg/models"
)

// ============================================
// ACCOUNT OPERATIONS
// ============================================

func (s *GORMStore) GetAccount(ctx context.Context, id identity.ID) (*models.Account, error) {
	return getByField[models.Account](s.db, ctx, "id", id.String(), models.ErrAccountNotFound)
}

func (s *GORMStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return getByField[models.Account](s.db, ctx, "email", email, models.ErrAccountNotFound)
}

func (s *GORMStore) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	if err := s.db.WithContext(ctx).Order("created_at").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *GORMStore) CreateAccount(ctx context.Context, account *models.Account) (string, error) {
	account.CreatedAt = time.Now()
	return createWithID(s.db, ctx, account, func(a *models.Account, id string) { a.ID = id }, account.ID, models.ErrDuplicateAccount)
}

// GetOrCreateAccount resolves a canonical identity to an account, creating
// one lazily when a valid identity is seen for the first time.
//
// The whole operation runs in a single transaction so a cancelled request
// never leaves a half-committed account behind. Races between concurrent
// creates for the same identity resolve through the primary key and email
// uniqueness constraints: the loser re-reads the winner's row.
func (s *GORMStore) GetOrCreateAccount(ctx context.Context, id identity.ID, email, name string) (*models.Account, error) {
	account, err := s.getOrCreateAccountTx(ctx, id, email, name)
	if isUniqueConstraintError(err) {
		// Lost a concurrent create for the same identity; the winner's
		// row is committed and visible by now.
		account, err = s.GetAccount(ctx, id)
	}
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrDirectoryUnavailable, err)
	}
	return account, nil
}

func (s *GORMStore) getOrCreateAccountTx(ctx context.Context, id identity.ID, email, name string) (*models.Account, error) {
	var account models.Account

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id.String()).First(&account).Error
		if err == nil {
			return backfillContact(tx, &account, email, name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Without an email the identity cannot be anchored to a new
		// account; report the miss instead of inventing a row.
		if email == "" {
			return models.ErrAccountNotFound
		}

		// The account may have been created under a different identity
		// encoding in the past. Matching by email prevents a duplicate
		// account for the same person; the hit is rekeyed so later
		// identity lookups find it directly.
		err = tx.Where("email = ?", email).First(&account).Error
		if err == nil {
			if err := rekeyAccount(tx, &account, id); err != nil {
				return err
			}
			return backfillContact(tx, &account, email, name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		account = models.Account{
			ID:          id.String(),
			Email:       email,
			DisplayName: name,
			CreatedAt:   time.Now(),
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// rekeyAccount rewrites an account stored under a historical identity to
// the canonical identity that resolved to it. Task owner rows move in the
// same transaction so ownership comparisons stay consistent.
func rekeyAccount(tx *gorm.DB, account *models.Account, id identity.ID) error {
	canonical := id.String()
	if account.ID == canonical {
		return nil
	}
	if err := tx.Model(&models.Task{}).Where("owner_id = ?", account.ID).Update("owner_id", canonical).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Account{}).Where("id = ?", account.ID).Update("id", canonical).Error; err != nil {
		return err
	}
	account.ID = canonical
	return nil
}

// backfillContact fills in missing email/display name on an existing
// account. Populated fields are never overwritten.
func backfillContact(tx *gorm.DB, account *models.Account, email, name string) error {
	updates := map[string]any{}
	if account.Email == "" && email != "" {
		updates["email"] = email
		account.Email = email
	}
	if account.DisplayName == "" && name != "" {
		updates["display_name"] = name
		account.DisplayName = name
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Account{}).Where("id = ?", account.ID).Updates(updates).Error
}

// DeleteAccount removes an account and every task it owns in one
// transaction, so a crash mid-delete never strands orphaned tasks.
func (s *GORMStore) DeleteAccount(ctx context.Context, id identity.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id.String()).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id.String()).Delete(&models.Account{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrAccountNotFound
		}
		return nil
	})
}

func (s *GORMStore) ValidateCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	// Accounts provisioned from an external credential have no password.
	if account.PasswordHash == "" {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return account, nil
}

// ============================================
// IDENTIFIER BACKFILL
// ============================================

// CanonicalizeIdentifiers rewrites account IDs and task owner IDs stored in
// historical encodings (hyphenated, upper-case) to the canonical form.
// Runs once at startup after schema migration; rows already canonical are
// left untouched, so the pass is idempotent.
func (s *GORMStore) CanonicalizeIdentifiers() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var accounts []models.Account
		if err := tx.Find(&accounts).Error; err != nil {
			return err
		}
		for _, a := range accounts {
			canonical, err := identity.Normalize(a.ID)
			if err != nil {
				// A row this subsystem cannot interpret is left alone
				// rather than guessed at.
				continue
			}
			if a.ID == canonical.String() {
				continue
			}
			if err := tx.Model(&models.Account{}).Where("id = ?", a.ID).Update("id", canonical.String()).Error; err != nil {
				return err
			}
		}

		var tasks []models.Task
		if err := tx.Find(&tasks).Error; err != nil {
			return err
		}
		for _, t := range tasks {
			canonical, err := identity.Normalize(t.OwnerID)
			if err != nil {
				continue
			}
			if t.OwnerID == canonical.String() {
				continue
			}
			if err := tx.Model(&models.Task{}).Where("id = ?", t.ID).Update("owner_id", canonical.String()).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
