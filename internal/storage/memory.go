package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore 进程内 ObjectStore，供测试与本地基准使用
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	failUploads bool
	failDeletes bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// FailUploads 控制后续 Upload 是否人为失败（注入故障）
func (s *MemoryStore) FailUploads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUploads = fail
}

func (s *MemoryStore) FailDeletes(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDeletes = fail
}

func (s *MemoryStore) Upload(ctx context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUploads {
		return fmt.Errorf("upload %q: injected failure", key)
	}
	s.objects[key] = data
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeletes {
		return fmt.Errorf("delete %q: injected failure", key)
	}
	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("delete %q: object not found", key)
	}
	delete(s.objects, key)
	return nil
}

func (s *MemoryStore) PublicURL(key string) string {
	return "memory://" + key
}

// Has 判断 key 是否存在
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Get 返回对象内容副本
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// Len 返回对象数量
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
