package service

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ObjectStorage 是service层需要的对象存储能力，pkg/storage.Client天然满足
type ObjectStorage interface {
	UploadLocalFile(ctx context.Context, localPath, folder, contentType string) (url, objectName string, err error)
	RemoveObject(ctx context.Context, objectName string)
}

// isDuplicateKey 判断是否为MySQL的1062唯一索引冲突。
// 点赞/订阅这类toggle的并发安全完全压在唯一索引上，1062就是并发竞争的信号
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
