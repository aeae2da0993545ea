package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jimyag/one-inventory/pkg/errors"
	"github.com/jimyag/one-inventory/pkg/inventory"
	"github.com/jimyag/one-inventory/pkg/record"
)

// 默认值
const (
	DefaultURL                = "http://localhost:2633/RPC2"
	DefaultUsername           = "oneadmin"
	DefaultHostnamePreference = record.PolicyFQDN
	DefaultCacheDir           = ".one_inventory_cache"
)

// Config 是一个 inventory 源文件的全部配置
type Config struct {
	// URL 是 OpenNebula 的 RPC 端点
	URL string `yaml:"one_url"`
	// Username / Password 组合成 "user:password" 形式的凭证
	Username string `yaml:"one_username"`
	Password string `yaml:"one_password"`
	// HostnamePreference 控制主机以 FQDN 还是裸名注册
	HostnamePreference string `yaml:"one_hostname_preference"`

	// Cache 启用查询结果缓存
	Cache bool `yaml:"cache"`
	// CacheDir 是缓存文件目录
	CacheDir string `yaml:"cache_dir"`

	// Strict 决定 constructed 规则求值失败是中止还是告警
	Strict      bool                   `yaml:"strict"`
	Compose     map[string]string      `yaml:"compose"`
	Groups      map[string]string      `yaml:"groups"`
	KeyedGroups []inventory.KeyedGroup `yaml:"keyed_groups"`
}

// Default 返回填好默认值的配置
func Default() *Config {
	return &Config{
		URL:                DefaultURL,
		Username:           DefaultUsername,
		HostnamePreference: DefaultHostnamePreference,
		CacheDir:           DefaultCacheDir,
	}
}

// VerifyFile 检查路径是否是可接受的 inventory 源文件。
// 只接受以 one.yaml 或 one.yml 结尾的路径，其他文件不会被解析。
func VerifyFile(path string) bool {
	return strings.HasSuffix(path, "one.yaml") || strings.HasSuffix(path, "one.yml")
}

// Load 读取并解析源文件，套用环境变量覆盖，然后校验
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory source: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse inventory source: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides 用环境变量覆盖配置。
// 识别的变量：ONE_URL、ONE_USERNAME、ONE_PASSWORD。
func ApplyEnvOverrides(cfg *Config) {
	if url := os.Getenv("ONE_URL"); url != "" {
		cfg.URL = url
	}
	if username := os.Getenv("ONE_USERNAME"); username != "" {
		cfg.Username = username
	}
	if password := os.Getenv("ONE_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// Validate 校验配置的完整性和枚举值
func (c *Config) Validate() error {
	if c.Password == "" {
		return errors.NewInvalidOption("one_password", "(empty)")
	}
	switch c.HostnamePreference {
	case record.PolicyFQDN, record.PolicyName:
	default:
		return errors.NewInvalidOption("one_hostname_preference", c.HostnamePreference)
	}
	return nil
}
