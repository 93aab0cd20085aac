package service

import (
	"net/http"
	"testing"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggleEvenOdd(t *testing.T) {
	likeRepo := newFakeLikeRepo()
	svc := NewLikeService(likeRepo)

	const userID, videoID = 1, 42

	// 第一次：点上
	status, err := svc.Toggle(userID, videoID, model.TargetVideo)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)
	assert.Equal(t, int64(1), status.LikeCount)

	// 第二次：取消
	status, err = svc.Toggle(userID, videoID, model.TargetVideo)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)
	assert.Equal(t, int64(0), status.LikeCount)

	// 奇数次toggle后存在，偶数次后不存在
	for i := 0; i < 5; i++ {
		status, err = svc.Toggle(userID, videoID, model.TargetVideo)
		require.NoError(t, err)
	}
	assert.True(t, status.IsLiked)
	for i := 0; i < 5; i++ {
		status, err = svc.Toggle(userID, videoID, model.TargetVideo)
		require.NoError(t, err)
	}
	assert.False(t, status.IsLiked)
}

func TestLikeToggleDuplicateRace(t *testing.T) {
	likeRepo := newFakeLikeRepo()
	svc := NewLikeService(likeRepo)

	// 模拟并发竞争：另一个请求在Find和Create之间抢先插入。
	// 直接把记录插进去，然后用一个返回"未找到"的查询路径不好造，
	// 等价地验证：对着已存在的记录再Create会拿到1062，service把它当成功
	require.NoError(t, likeRepo.Create(&model.Like{LikedByID: 1, TargetID: 42, TargetType: model.TargetVideo}))
	err := likeRepo.Create(&model.Like{LikedByID: 1, TargetID: 42, TargetType: model.TargetVideo})
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))

	// toggle此时看到已有记录，正常走取消分支，不会500
	status, err := svc.Toggle(1, 42, model.TargetVideo)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)
}

func TestLikeInvalidTargetType(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo())
	_, err := svc.Toggle(1, 42, model.TargetType("playlist"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.CodeOf(err))
}

func TestLikeStatusAnonymous(t *testing.T) {
	likeRepo := newFakeLikeRepo()
	svc := NewLikeService(likeRepo)

	require.NoError(t, likeRepo.Create(&model.Like{LikedByID: 7, TargetID: 42, TargetType: model.TargetTweet}))

	// 匿名（userID=0）能看计数，isLiked恒为false
	status, err := svc.Status(0, 42, model.TargetTweet)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)
	assert.Equal(t, int64(1), status.LikeCount)

	// 点过赞的人看到true
	status, err = svc.Status(7, 42, model.TargetTweet)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)
}

// 不同目标类型的计数互不串台
func TestLikeCountsIsolatedByTargetType(t *testing.T) {
	likeRepo := newFakeLikeRepo()
	svc := NewLikeService(likeRepo)

	_, err := svc.Toggle(1, 42, model.TargetVideo)
	require.NoError(t, err)
	_, err = svc.Toggle(1, 42, model.TargetComment)
	require.NoError(t, err)

	videoStatus, err := svc.Status(1, 42, model.TargetVideo)
	require.NoError(t, err)
	commentStatus, err := svc.Status(1, 42, model.TargetComment)
	require.NoError(t, err)
	assert.Equal(t, int64(1), videoStatus.LikeCount)
	assert.Equal(t, int64(1), commentStatus.LikeCount)

	_, err = svc.Toggle(1, 42, model.TargetVideo)
	require.NoError(t, err)
	videoStatus, _ = svc.Status(1, 42, model.TargetVideo)
	commentStatus, _ = svc.Status(1, 42, model.TargetComment)
	assert.Equal(t, int64(0), videoStatus.LikeCount)
	assert.Equal(t, int64(1), commentStatus.LikeCount)
}
