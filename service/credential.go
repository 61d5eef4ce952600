package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fintrack/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 50
	maxEmailLength    = 100
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy 用户不存在时仍做一次 bcrypt 比较，使响应耗时与密码错误一致
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fintrack-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// CredentialStore 用户账号与密码管理
type CredentialStore struct {
	db *gorm.DB
}

// NewCredentialStore 创建 CredentialStore
func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Register 注册新用户，用户名与邮箱均需唯一
func (s *CredentialStore) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return nil, invalid("username", "is required")
	case len(username) > maxUsernameLength:
		return nil, invalid("username", "is too long")
	case email == "" || !strings.Contains(email, "@"):
		return nil, invalid("email", "is invalid")
	case len(email) > maxEmailLength:
		return nil, invalid("email", "is too long")
	case len(password) < minPasswordLength:
		return nil, invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询邮箱失败: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return &user, nil
}

// Authenticate 校验用户名（或邮箱）与密码
func (s *CredentialStore) Authenticate(ctx context.Context, handle, password string) (*models.User, error) {
	handle = strings.TrimSpace(handle)

	var user models.User
	err := s.db.WithContext(ctx).Where("username = ? OR email = ?", handle, handle).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		compareDummy(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get 按 ID 获取用户
func (s *CredentialStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// ChangePassword 校验旧密码后更新为新密码
func (s *CredentialStore) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return invalid("new_password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码加密失败: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(user).Update("password", string(hashed)).Error; err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}
	return nil
}

// Delete 校验密码后删除用户，并在同一事务中删除其全部收支记录与预算
func (s *CredentialStore) Delete(ctx context.Context, id uint, password string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("删除收支记录失败: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Budget{}).Error; err != nil {
			return fmt.Errorf("删除预算失败: %w", err)
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("删除用户失败: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
