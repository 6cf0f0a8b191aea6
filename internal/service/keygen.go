package service

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const maxBaseNameLen = 40

// sanitizeBaseName 归一化文件名主干：小写，仅保留字母数字与 - _，截断超长
func sanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "file"
	}
	if len(out) > maxBaseNameLen {
		out = out[:maxBaseNameLen]
	}
	return out
}

// avatarKey 生成头像存储 key：avatar/{账号}-{文件名主干}-{随机}{扩展名}
func avatarKey(accountID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := sanitizeBaseName(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	return fmt.Sprintf("avatar/%s-%s-%s%s", accountID, base, uuid.New().String(), ext)
}

// publicationKey 生成发布存储 key：publication/{随机}{扩展名}
func publicationKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("publication/%s%s", uuid.New().String(), ext)
}

// kindFromContentType 取声明 content type 的顶层类别（image/png -> image）
func kindFromContentType(contentType string) string {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		return "file"
	}
	if i := strings.Index(ct, "/"); i > 0 {
		return strings.ToLower(ct[:i])
	}
	return strings.ToLower(ct)
}
