package dto

import (
	"encoding/json"
	"testing"
	"time"

	"Nebula_Tube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 不管数据库模型里装了什么，序列化出去的用户资料绝不能带密码和refreshToken
func TestUserResponseNeverLeaksCredentials(t *testing.T) {
	user := &model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice A",
		Password:     "$2a$10$supersecrethash",
		RefreshToken: "eyJhbGciOiJIUzI1NiJ9.secret",
	}
	user.ID = 1
	user.CreatedAt = time.Now()

	raw, err := json.Marshal(ToUserResponse(user))
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"username":"alice"`)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "supersecrethash")
	assert.NotContains(t, body, "refreshToken")
	assert.NotContains(t, body, user.RefreshToken)

	raw, err = json.Marshal(ToUserInfo(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "supersecrethash")
}

func TestNewPage(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrev     bool
	}{
		{"空结果", 1, 10, 0, 0, false, false},
		{"不满一页", 1, 10, 3, 1, false, false},
		{"刚好整页", 1, 10, 10, 1, false, false},
		{"多出一条就多一页", 1, 10, 11, 2, true, false},
		{"中间页前后都有", 2, 10, 25, 3, true, true},
		{"最后一页只有上一页", 3, 10, 25, 3, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage(nil, tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.totalPages, p.TotalPages)
			assert.Equal(t, tc.hasNext, p.HasNextPage)
			assert.Equal(t, tc.hasPrev, p.HasPrevPage)
			assert.Equal(t, tc.total, p.TotalDocs)
		})
	}
}

func TestParsePage(t *testing.T) {
	// 非法参数全部收敛到默认值
	page, limit, offset := ParsePage(0, 0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Zero(t, offset)

	page, limit, offset = ParsePage(-3, -1, 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
	assert.Zero(t, offset)

	// limit上限100
	_, limit, _ = ParsePage(1, 500, 10)
	assert.Equal(t, 10, limit)

	page, limit, offset = ParsePage(3, 15, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 15, limit)
	assert.Equal(t, 30, offset)
}

// Owner没被preload时响应里至少要有作者ID，不能是零值
func TestVideoResponseOwnerFallback(t *testing.T) {
	video := &model.Video{OwnerID: 7, Title: "测试视频"}
	video.ID = 1

	resp := ToVideoResponse(video)
	assert.Equal(t, uint64(7), resp.Owner.ID)
	assert.Empty(t, resp.Owner.Username)

	// preload成功时带全量名片
	video.Owner = model.User{Username: "alice", FullName: "Alice A"}
	video.Owner.ID = 7
	resp = ToVideoResponse(video)
	assert.Equal(t, "alice", resp.Owner.Username)
}
