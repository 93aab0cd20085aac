package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// saveTempFile 把multipart文件先落到本地临时目录（上传到对象存储前的中转站），
// 返回本地路径和Content-Type。之后无论业务成败，临时文件都由下游负责清理
func saveTempFile(c *gin.Context, fh *multipart.FileHeader, tempDir string) (string, string, error) {
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", "", err
	}
	// 纳秒时间戳当文件名，避免并发上传互相覆盖
	localPath := filepath.Join(tempDir, fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, localPath); err != nil {
		return "", "", err
	}
	return localPath, fh.Header.Get("Content-Type"), nil
}
