package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Nebula_Tube/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client 是对外部媒体托管服务（MinIO）的黑盒封装：
// 给它一个本地临时文件路径，换回一个可访问的URL，顺手把临时文件清理掉
type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

// InitStorage 初始化MinIO客户端，桶不存在就建一个
func InitStorage(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (*Client, error) {
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶失败: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
	}

	return &Client{mc: mc, bucket: bucket, publicURL: publicURL}, nil
}

// UploadLocalFile 把本地临时文件上传到对象存储，返回外链URL和对象名
// 约定：无论上传成功还是失败，本地临时文件都会被删掉，避免磁盘泄漏
func (c *Client) UploadLocalFile(ctx context.Context, localPath, folder, contentType string) (url, objectName string, err error) {
	// defer保证两条路径（成功/失败）都清理临时文件
	defer func() {
		if rmErr := os.Remove(localPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Log.WithError(rmErr).WithField("path", localPath).Warn("临时文件清理失败")
		}
	}()

	objectName = fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), filepath.Ext(localPath))
	_, err = c.mc.FPutObject(ctx, c.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("上传到对象存储失败: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, objectName), objectName, nil
}

// RemoveObject 按对象名删除，删除失败只记日志不阻断业务（和外部媒体托管的契约一致）
func (c *Client) RemoveObject(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	err := c.mc.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Log.WithError(err).WithField("object", objectName).Warn("对象存储删除失败")
	}
}
