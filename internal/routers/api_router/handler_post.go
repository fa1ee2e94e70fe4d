package api_router

import (
	"github.com/quickpost/post-sync-service/internal/app"
	"github.com/quickpost/post-sync-service/internal/dto"
	pkgapp "github.com/quickpost/post-sync-service/pkg/app"
	"github.com/quickpost/post-sync-service/pkg/code"
	apperrors "github.com/quickpost/post-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler post API router handler
// PostHandler 帖子 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type PostHandler struct {
	*Handler
}

// NewPostHandler creates PostHandler instance
// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(a *app.App) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(a),
	}
}

// Create creates or replays a post
// @Summary Create or replay a post
// @Description Conditional write keyed by client updatedAt; stale payloads succeed silently and the stored winner is returned.
// @Description 按客户端 updatedAt 条件写入；陈旧负载静默成功并返回存储中的胜出版本。
// @Tags Post
// @Accept json
// @Produce json
// @Param params body dto.PostUpsertRequest true "Post Parameters"
// @Success 201 {object} pkgapp.Res{data=dto.PostDTO} "Created"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters"
// @Router /api/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PostUpsertRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PostHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	postDTO, err := h.App.PostService.Upsert(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "PostHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	// 陈旧负载也算写入成功，统一按创建成功响应
	response.ToResponse(code.SuccessCreated.WithData(postDTO))
}

// UpsertMany bulk conditional write
// @Summary Bulk upsert posts
// @Description Single multi-row conditional write; each row is merged independently.
// @Description 单条多行条件写入，各行独立合并。
// @Tags Post
// @Accept json
// @Produce json
// @Param params body dto.PostUpsertManyRequest true "Posts"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters"
// @Router /api/posts/upsert-many [post]
func (h *PostHandler) UpsertMany(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PostUpsertManyRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PostHandler.UpsertMany.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.PostService.UpsertMany(ctx, uid, params); err != nil {
		h.logError(ctx, "PostHandler.UpsertMany", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Get fetches one post by id
// @Summary Get a post
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} pkgapp.Res{data=dto.PostDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	id := c.Param("id")

	postDTO, err := h.App.PostService.Get(ctx, uid, id)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(postDTO))
}

// Update conditionally updates a post
// @Summary Update a post
// @Description The write only lands when the supplied updatedAt is newer than the stored row.
// @Description 仅当提供的 updatedAt 比存储行新时写入才生效。
// @Tags Post
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param params body dto.PostUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.PostDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found / Stale"
// @Router /api/posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PostUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PostHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	id := c.Param("id")

	postDTO, err := h.App.PostService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "PostHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(postDTO))
}

// List lists posts changed since a watermark
// @Summary List posts
// @Description Newest first. `after` keeps rows whose updatedAt is at or past the watermark, response carries hasMore.
// @Description 按更新时间倒序，after 为增量同步水位线（含相等），响应携带 hasMore。
// @Tags Post
// @Produce json
// @Param after query string false "updatedAt watermark, inclusive (RFC3339)"
// @Param limit query int false "page size, max 1000, default 10"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "Success"
// @Router /api/posts [get]
func (h *PostHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PostListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	posts, hasMore, err := h.App.PostService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "PostHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, posts, hasMore)
}

// Delete deletes one post
// @Summary Delete a post
// @Tags Post
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	id := c.Param("id")

	if err := h.App.PostService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "PostHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// DeleteAll deletes all posts of the current user
// @Summary Delete all posts
// @Tags Post
// @Produce json
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/posts [delete]
func (h *PostHandler) DeleteAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.PostService.DeleteAll(ctx, uid); err != nil {
		h.logError(ctx, "PostHandler.DeleteAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
