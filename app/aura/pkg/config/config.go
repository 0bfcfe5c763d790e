package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultProvider   = "gemini"
	DefaultModel      = "gemini-3-pro-preview"
	DefaultFastModel  = "gemini-3-flash-preview"
	DefaultArchiveKey = "aura_reports_history"
	DefaultArchiveDir = "data"
	DefaultSQLitePath = "data/aura.db"
)

// Config 项目配置结构体
// json 标签供 display 服务通过 kratos config 扫描使用
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	Log         LogConfig         `yaml:"log" json:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Archive     ArchiveConfig     `yaml:"archive" json:"archive"`
}

// LLMConfig 推理服务相关配置
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // gemini or openai
	BaseURL   string `yaml:"base_url" json:"base_url"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	Model     string `yaml:"model" json:"model"`           // 结构化分析使用的模型
	FastModel string `yaml:"fast_model" json:"fast_model"` // 情报简报、上下文对齐使用的模型
}

// SearchConfig 开源情报检索配置，provider 为空时 FetchScoped 直接依赖模型的 grounding
type SearchConfig struct {
	Provider string        `yaml:"provider" json:"provider"`
	Domains  []string      `yaml:"domains" json:"domains"` // 可信来源站点，如 reliefweb.int
	Tavily   TavilyConfig  `yaml:"tavily" json:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng" json:"searxng"`
	Feed     FeedConfig    `yaml:"feed" json:"feed"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key" json:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout int    `yaml:"timeout" json:"timeout"`
}

// FeedConfig RSS/Atom 订阅源配置
type FeedConfig struct {
	URLs    []string `yaml:"urls" json:"urls"`
	Timeout int      `yaml:"timeout" json:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps" json:"qps"`
	RPM int `yaml:"rpm" json:"rpm"`
}

// ArchiveConfig 报告归档存储配置
type ArchiveConfig struct {
	Backend string      `yaml:"backend" json:"backend"` // file, memory, sqlite, postgres, redis
	Key     string      `yaml:"key" json:"key"`
	Path    string      `yaml:"path" json:"path"` // file 为目录，sqlite 为数据库文件
	DB      DBConfig    `yaml:"db" json:"db"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	Name     string `yaml:"name" json:"name"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	URL string `yaml:"url" json:"url"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" && c.LLM.Provider == DefaultProvider {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.FastModel == "" {
		if c.LLM.Provider == DefaultProvider {
			c.LLM.FastModel = DefaultFastModel
		} else {
			c.LLM.FastModel = c.LLM.Model
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Archive.Backend == "" {
		c.Archive.Backend = "file"
	}
	if c.Archive.Key == "" {
		c.Archive.Key = DefaultArchiveKey
	}
	if c.Archive.Path == "" {
		switch c.Archive.Backend {
		case "file":
			c.Archive.Path = DefaultArchiveDir
		case "sqlite":
			c.Archive.Path = DefaultSQLitePath
		}
	}
}
