package dao

import (
	"context"

	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/model"
	"github.com/quickpost/post-sync-service/pkg/timex"

	"gorm.io/gorm/clause"
)

// postRepository 实现 domain.PostRepository 接口
type postRepository struct {
	dao *Dao
}

// NewPostRepository 创建 PostRepository 实例
func NewPostRepository(dao *Dao) domain.PostRepository {
	return &postRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *postRepository) toDomain(m *model.Post) *domain.Post {
	if m == nil {
		return nil
	}
	return &domain.Post{
		ID:        m.ID,
		UID:       m.UID,
		Content:   m.Content,
		Variant:   m.Variant,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *postRepository) toModel(p *domain.Post) *model.Post {
	if p == nil {
		return nil
	}
	return &model.Post{
		ID:        p.ID,
		UID:       p.UID,
		Content:   p.Content,
		Variant:   p.Variant,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// lwwConflict 构造 LWW 条件写入子句
// 冲突时仅当存储行更旧且归属同一用户才覆盖，否则静默保留存储行
// 相同时间戳不覆盖，保证结果与写入顺序无关
func lwwConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"content", "variant", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lt{
				Column: clause.Column{Table: clause.CurrentTable, Name: "updated_at"},
				Value:  clause.Column{Table: "excluded", Name: "updated_at"},
			},
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: "uid"},
				Value:  clause.Column{Table: "excluded", Name: "uid"},
			},
		}},
	}
}

// GetByID 根据ID获取帖子
func (r *postRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Post, error) {
	var m model.Post
	err := r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Upsert 条件写入单个帖子
func (r *postRepository) Upsert(ctx context.Context, post *domain.Post) error {
	m := r.toModel(post)
	return r.dao.Db.WithContext(ctx).
		Clauses(lwwConflict()).
		Create(m).Error
}

// UpsertMany 批量条件写入
// 单条多行 INSERT，每行独立应用冲突判定，互不影响
func (r *postRepository) UpsertMany(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ms := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		ms = append(ms, r.toModel(p))
	}
	return r.dao.Db.WithContext(ctx).
		Clauses(lwwConflict()).
		Create(&ms).Error
}

// Update 更新帖子，仅当存储行更旧时生效，返回生效行数
func (r *postRepository) Update(ctx context.Context, post *domain.Post) (int64, error) {
	result := r.dao.Db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND uid = ? AND updated_at < ?", post.ID, post.UID, post.UpdatedAt).
		Updates(map[string]interface{}{
			"content":    post.Content,
			"variant":    post.Variant,
			"updated_at": post.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

// List 按更新时间倒序获取帖子列表
// after 是增量同步水位线：只取更新时间不早于 after 的行（含相等）
func (r *postRepository) List(ctx context.Context, uid int64, after *timex.Time, limit int) ([]*domain.Post, error) {
	var ms []*model.Post
	tx := r.dao.Db.WithContext(ctx).
		Where("uid = ?", uid)
	if after != nil {
		tx = tx.Where("updated_at >= ?", *after)
	}
	err := tx.Order("updated_at DESC").Limit(limit).Find(&ms).Error
	if err != nil {
		return nil, err
	}
	posts := make([]*domain.Post, 0, len(ms))
	for _, m := range ms {
		posts = append(posts, r.toDomain(m))
	}
	return posts, nil
}

// Delete 删除指定帖子，返回删除的行数
func (r *postRepository) Delete(ctx context.Context, id string, uid int64) (int64, error) {
	result := r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Post{})
	return result.RowsAffected, result.Error
}

// DeleteAll 删除用户的全部帖子
func (r *postRepository) DeleteAll(ctx context.Context, uid int64) error {
	return r.dao.Db.WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&model.Post{}).Error
}
