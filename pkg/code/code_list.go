package code

import "net/http"

// 成功码
var (
	Success        = NewSuss(0, http.StatusOK, lang{en: "success", zh_cn: "成功"})
	SuccessCreated = NewSuss(1, http.StatusCreated, lang{en: "created", zh_cn: "创建成功"})
)

// 通用错误码
var (
	ErrorServerInternal  = NewError(10000, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, http.StatusBadRequest, lang{en: "Inputs are invalid", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10002, http.StatusNotFound, lang{en: "Not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests = NewError(10003, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(10004, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询错误"})
)

// 认证相关错误码
// 无效凭证、验证码错误/过期/耗尽、Token 缺失或无效统一返回同一响应体，
// 避免调用方枚举出内部状态差异
var (
	ErrorUnauthorized         = NewError(20000, http.StatusUnauthorized, lang{en: "invalid email or code", zh_cn: "邮箱或验证码错误"})
	ErrorNotUserAuthToken     = NewError(20001, http.StatusUnauthorized, lang{en: "Unauthorized", zh_cn: "未授权"})
	ErrorInvalidUserAuthToken = NewError(20002, http.StatusUnauthorized, lang{en: "Unauthorized", zh_cn: "未授权"})
	ErrorSendCodeRateLimited  = NewError(20003, http.StatusTooManyRequests, lang{en: "Wait 2 minutes after requesting a code to try again.", zh_cn: "请求验证码后请等待 2 分钟再试"})
	ErrorEmailNotValid        = NewError(20004, http.StatusUnauthorized, lang{en: "invalid email", zh_cn: "邮箱格式错误"})
	ErrorTokenGenerate        = NewError(20005, http.StatusInternalServerError, lang{en: "Token generation failed", zh_cn: "Token 生成失败"})
	ErrorHashCode             = NewError(20006, http.StatusInternalServerError, lang{en: "code hashing failed", zh_cn: "验证码哈希失败"})
)

// 帖子相关错误码
var (
	ErrorPostNotFound    = NewError(30000, http.StatusNotFound, lang{en: "Post not found", zh_cn: "帖子不存在"})
	ErrorPostStaleUpdate = NewError(30001, http.StatusNotFound, lang{en: "Post not found or supplied updatedAt is less than existing", zh_cn: "帖子不存在或提供的更新时间早于已有记录"})
	ErrorPostUpsert      = NewError(30002, http.StatusInternalServerError, lang{en: "Failed to save post", zh_cn: "帖子保存失败"})
	ErrorPostDelete      = NewError(30003, http.StatusInternalServerError, lang{en: "Failed to delete post", zh_cn: "帖子删除失败"})
)
