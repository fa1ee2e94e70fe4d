package dao

import (
	"context"

	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/model"

	"github.com/quickpost/post-sync-service/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:           m.UID,
		Email:         m.Email,
		CodeHash:      m.CodeHash,
		CodeAttempts:  m.CodeAttempts,
		CodeCreatedAt: m.CodeCreatedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.Db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.Db.WithContext(ctx).
		Where("email = ?", email).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// CreateWithChallenge 创建用户并附带首个登录挑战
func (r *userRepository) CreateWithChallenge(ctx context.Context, email, codeHash string, createdAt timex.Time) (*domain.User, error) {
	m := &model.User{
		Email:         email,
		CodeHash:      codeHash,
		CodeAttempts:  0,
		CodeCreatedAt: &createdAt,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// OverwriteChallenge 覆盖登录挑战并清零验证次数
func (r *userRepository) OverwriteChallenge(ctx context.Context, uid int64, codeHash string, createdAt timex.Time) error {
	return r.dao.Db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"code_hash":       codeHash,
			"code_attempts":   0,
			"code_created_at": &createdAt,
			"updated_at":      createdAt,
		}).Error
}

// IncrementAttempts 失败验证次数加一
func (r *userRepository) IncrementAttempts(ctx context.Context, uid int64) error {
	return r.dao.Db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		UpdateColumn("code_attempts", gorm.Expr("code_attempts + 1")).Error
}

// ClearChallenge 清空登录挑战字段
func (r *userRepository) ClearChallenge(ctx context.Context, uid int64) error {
	return r.dao.Db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"code_hash":       "",
			"code_attempts":   0,
			"code_created_at": nil,
		}).Error
}

// ListExpiredChallenges 获取挑战已过期但尚未清理的用户UID
func (r *userRepository) ListExpiredChallenges(ctx context.Context, before timex.Time) ([]int64, error) {
	var uids []int64
	err := r.dao.Db.WithContext(ctx).
		Model(&model.User{}).
		Where("code_created_at IS NOT NULL AND code_created_at < ?", before).
		Pluck("uid", &uids).Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}
