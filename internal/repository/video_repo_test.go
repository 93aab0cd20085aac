package repository

import (
	"testing"

	"Nebula_Tube/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 用sqlmock验证关键SQL的形状，主要盯播放量自增这条只增不减的路径
func newMockRepo(t *testing.T) (VideoRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		// 单条语句不用默认事务，mock里就不需要Begin/Commit
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return NewVideoRepository(gdb, nil), mock
}

func TestIncrementViewsSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	// 自增必须是原子的列表达式，不是读改写
	mock.ExpectExec("UPDATE `videos` SET `views`=views \\+ \\? WHERE id = \\?").
		WithArgs(1, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementViewsMissingVideo(t *testing.T) {
	repo, mock := newMockRepo(t)

	// 视频已经被删时UPDATE命中0行，不算错误——消费端靠这一点安全消化旧事件
	mock.ExpectExec("UPDATE `videos` SET `views`=views \\+ \\? WHERE id = \\?").
		WithArgs(1, uint64(9999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementViews(9999))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSumViewsByOwnerSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(views\\), 0\\) FROM `videos` WHERE owner_id = \\?").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(views), 0)"}).AddRow(30))

	total, err := repo.SumViewsByOwner(1)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSumViewsByOwnerNoVideos(t *testing.T) {
	repo, mock := newMockRepo(t)

	// 没有视频时COALESCE兜出0，不是NULL
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(views\\), 0\\) FROM `videos` WHERE owner_id = \\?").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(views), 0)"}).AddRow(0))

	total, err := repo.SumViewsByOwner(2)
	require.NoError(t, err)
	assert.Zero(t, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByOwnerSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `videos` WHERE owner_id = \\?").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	count, err := repo.CountByOwner(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIDsByOwnerSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT `id` FROM `videos` WHERE owner_id = \\?").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(7))

	ids, err := repo.IDsByOwner(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 7}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

// rdb为空时缓存三件套要安全地退化成未命中/空操作
func TestVideoCacheNilRedis(t *testing.T) {
	repo, _ := newMockRepo(t)

	cached, err := repo.GetVideoCache(1)
	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.NoError(t, repo.SetVideoCache(&model.Video{}))
	assert.NoError(t, repo.DelVideoCache(1))
}
