package code

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessCodeStatus(t *testing.T) {
	// 普通成功 200，创建成功 201
	assert.Equal(t, http.StatusOK, Success.StatusCode())
	assert.Equal(t, http.StatusCreated, SuccessCreated.StatusCode())
	assert.True(t, Success.Status())
	assert.True(t, SuccessCreated.Status())
}

func TestWithDataKeepsStatusCode(t *testing.T) {
	c := SuccessCreated.WithData("payload")
	assert.Equal(t, http.StatusCreated, c.StatusCode())
	assert.True(t, c.HaveData())

	// 附加数据不污染注册的原始对象
	assert.False(t, SuccessCreated.HaveData())
}
