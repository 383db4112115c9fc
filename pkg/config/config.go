package config

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/reader"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/reader/json"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/source"
)

// Config 配置管理器：聚合多个配置源并提供统一读取视图
type Config struct {
	opts Options

	mu     sync.RWMutex
	sets   []*source.ChangeSet
	values reader.Values
}

func New(opts ...Option) *Config {
	options := Options{
		Reader: json.NewReader(),
	}
	for _, o := range opts {
		o(&options)
	}

	return &Config{opts: options}
}

// Load 读取所有配置源并合并
func (c *Config) Load(sources ...source.Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range sources {
		cs, err := s.Read()
		if err != nil {
			return errors.Wrapf(err, "read config source %s", s.String())
		}
		c.sets = append(c.sets, cs)
	}

	merged, err := c.opts.Reader.Merge(c.sets...)
	if err != nil {
		return errors.Wrap(err, "merge config sources")
	}

	values, err := c.opts.Reader.Values(merged)
	if err != nil {
		return errors.Wrap(err, "parse merged config")
	}
	c.values = values

	return nil
}

// Scan 把整棵配置树反序列化到结构体
func (c *Config) Scan(v interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.values == nil {
		return errors.New("config not loaded")
	}
	return c.values.Scan(v)
}

// Get 读取指定路径上的配置节点
func (c *Config) Get(path ...string) reader.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.values.Get(path...)
}

var defaultConfig = New()

// Load 使用默认管理器加载配置源
func Load(sources ...source.Source) error {
	return defaultConfig.Load(sources...)
}

// Scan 使用默认管理器反序列化配置
func Scan(v interface{}) error {
	return defaultConfig.Scan(v)
}

// Get 使用默认管理器读取配置节点
func Get(path ...string) reader.Value {
	return defaultConfig.Get(path...)
}
