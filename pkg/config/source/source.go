package source

import (
	"crypto/md5"
	"fmt"
	"time"
)

// Source 配置数据来源（文件、内存等）
type Source interface {
	Read() (*ChangeSet, error)
	Watch() (Watcher, error)
	Write(*ChangeSet) error
	String() string
}

// ChangeSet 一次读取到的配置快照
type ChangeSet struct {
	Data      []byte
	Checksum  string
	Format    string
	Source    string
	Timestamp time.Time
}

// Sum 计算配置内容的校验和
func (c *ChangeSet) Sum() string {
	h := md5.New()
	h.Write(c.Data)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Watcher 监听配置源变更
type Watcher interface {
	Next() (*ChangeSet, error)
	Stop() error
}
