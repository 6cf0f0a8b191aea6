package storage

import (
	"context"
	"io"
)

// ObjectStore 对象存储协作方：按 key 上传/删除，URL 由 key 推导。
// 上传直接消费 reader，不在内存里缓冲整个文件。
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
