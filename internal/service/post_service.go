// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/dto"
	"github.com/quickpost/post-sync-service/pkg/code"
	"github.com/quickpost/post-sync-service/pkg/logger"
	"github.com/quickpost/post-sync-service/pkg/timex"
	"github.com/quickpost/post-sync-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService 定义帖子业务服务接口
type PostService interface {
	// Upsert 创建或重放单个帖子，陈旧写入静默成功
	Upsert(ctx context.Context, uid int64, params *dto.PostUpsertRequest) (*dto.PostDTO, error)

	// UpsertMany 批量条件写入，各行独立判定
	UpsertMany(ctx context.Context, uid int64, params *dto.PostUpsertManyRequest) error

	// Get 获取单个帖子
	Get(ctx context.Context, uid int64, id string) (*dto.PostDTO, error)

	// Update 按时间戳条件更新帖子内容
	Update(ctx context.Context, uid int64, id string, params *dto.PostUpdateRequest) (*dto.PostDTO, error)

	// List 按更新时间倒序获取帖子列表
	List(ctx context.Context, uid int64, params *dto.PostListRequest) ([]*dto.PostDTO, bool, error)

	// Delete 删除单个帖子
	Delete(ctx context.Context, uid int64, id string) error

	// DeleteAll 删除用户全部帖子
	DeleteAll(ctx context.Context, uid int64) error
}

// postService 实现 PostService 接口
type postService struct {
	postRepo domain.PostRepository
	clock    timex.Clock
	logger   *zap.Logger
}

// NewPostService 创建 PostService 实例
func NewPostService(postRepo domain.PostRepository, clock timex.Clock, lg *zap.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		clock:    clock,
		logger:   lg,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *postService) domainToDTO(p *domain.Post) *dto.PostDTO {
	if p == nil {
		return nil
	}
	return &dto.PostDTO{
		ID:        p.ID,
		Content:   p.Content,
		Variant:   p.Variant,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// resolveTimestamp 解析客户端时间戳，缺省取当前时间
func (s *postService) resolveTimestamp(raw string) (timex.Time, error) {
	if raw == "" {
		return s.clock.Now(), nil
	}
	t, err := timex.ParseRFC3339(raw)
	if err != nil {
		return timex.Time{}, code.ErrorInvalidParams.WithDetails(err.Error())
	}
	return t, nil
}

// toDomain 将写入请求转换为领域模型
func (s *postService) toDomain(uid int64, params *dto.PostUpsertRequest) (*domain.Post, error) {
	updatedAt, err := s.resolveTimestamp(params.UpdatedAt)
	if err != nil {
		return nil, err
	}
	variant := params.Variant
	if variant == "" {
		variant = "normal"
	}
	id := params.ID
	if id == "" {
		id = util.GenerateID()
	}
	return &domain.Post{
		ID:        id,
		UID:       uid,
		Content:   params.Content,
		Variant:   variant,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Upsert 创建或重放单个帖子
// 陈旧写入不报错，返回当前存储的胜出版本
func (s *postService) Upsert(ctx context.Context, uid int64, params *dto.PostUpsertRequest) (*dto.PostDTO, error) {
	post, err := s.toDomain(uid, params)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.Upsert(ctx, post); err != nil {
		s.logger.Error("post upsert failed",
			zap.String(logger.FieldPostID, post.ID),
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err))
		return nil, code.ErrorPostUpsert
	}

	stored, err := s.postRepo.GetByID(ctx, post.ID, uid)
	if err != nil {
		// 同 ID 被其他用户占用时条件写入不生效
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPostNotFound
		}
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(stored), nil
}

// UpsertMany 批量条件写入
func (s *postService) UpsertMany(ctx context.Context, uid int64, params *dto.PostUpsertManyRequest) error {
	posts := make([]*domain.Post, 0, len(params.Posts))
	for i := range params.Posts {
		post, err := s.toDomain(uid, &params.Posts[i])
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	if err := s.postRepo.UpsertMany(ctx, posts); err != nil {
		s.logger.Error("post batch upsert failed",
			zap.Int(logger.FieldCount, len(posts)),
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err))
		return code.ErrorPostUpsert
	}
	return nil
}

// Get 获取单个帖子
func (s *postService) Get(ctx context.Context, uid int64, id string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorPostNotFound
		}
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(post), nil
}

// Update 按时间戳条件更新帖子内容
// 帖子不存在或提供的时间戳不比存储行新时，统一按未命中处理
func (s *postService) Update(ctx context.Context, uid int64, id string, params *dto.PostUpdateRequest) (*dto.PostDTO, error) {
	updatedAt, err := s.resolveTimestamp(params.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:        id,
		UID:       uid,
		Content:   params.Content,
		Variant:   params.Variant,
		UpdatedAt: updatedAt,
	}
	if post.Variant == "" {
		post.Variant = "normal"
	}

	rows, err := s.postRepo.Update(ctx, post)
	if err != nil {
		s.logger.Error("post update failed",
			zap.String(logger.FieldPostID, id),
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err))
		return nil, code.ErrorPostUpsert
	}
	if rows == 0 {
		return nil, code.ErrorPostStaleUpdate
	}

	stored, err := s.postRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(stored), nil
}

// List 按更新时间倒序获取帖子列表
// after 为增量同步水位线（含相等），多取一条用于计算 hasMore
func (s *postService) List(ctx context.Context, uid int64, params *dto.PostListRequest) ([]*dto.PostDTO, bool, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var after *timex.Time
	if params.After != "" {
		t, err := timex.ParseRFC3339(params.After)
		if err != nil {
			return nil, false, code.ErrorInvalidParams.WithDetails(err.Error())
		}
		after = &t
	}

	posts, err := s.postRepo.List(ctx, uid, after, limit+1)
	if err != nil {
		return nil, false, code.ErrorDBQuery
	}

	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}

	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.domainToDTO(p))
	}
	return out, hasMore, nil
}

// Delete 删除单个帖子
// 帖子不存在或不属于该用户时返回未找到
func (s *postService) Delete(ctx context.Context, uid int64, id string) error {
	rows, err := s.postRepo.Delete(ctx, id, uid)
	if err != nil {
		s.logger.Error("post delete failed",
			zap.String(logger.FieldPostID, id),
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err))
		return code.ErrorPostDelete
	}
	if rows == 0 {
		return code.ErrorPostNotFound
	}
	return nil
}

// DeleteAll 删除用户全部帖子
func (s *postService) DeleteAll(ctx context.Context, uid int64) error {
	if err := s.postRepo.DeleteAll(ctx, uid); err != nil {
		s.logger.Error("post delete all failed",
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err))
		return code.ErrorPostDelete
	}
	return nil
}
