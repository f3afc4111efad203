package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Budget   BudgetConfig   `mapstructure:"budget"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type QueueConfig struct {
	EmailQueue string `mapstructure:"email_queue"`
	MaxWorkers int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// ReminderConfig 付款提醒配置：新用户的默认提醒设置与定时检查间隔
type ReminderConfig struct {
	DefaultEnabled     bool `mapstructure:"default_enabled"`
	DefaultDaysBefore  int  `mapstructure:"default_days_before"`
	CheckIntervalHours int  `mapstructure:"check_interval_hours"`
}

// BudgetConfig 预算告警配置
type BudgetConfig struct {
	DefaultThresholds []float64 `mapstructure:"default_thresholds"`
}

// CleanupConfig 通知保留策略
type CleanupConfig struct {
	NotificationRetentionDays int `mapstructure:"notification_retention_days"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Reminder.DefaultDaysBefore <= 0 {
		cfg.Reminder.DefaultDaysBefore = 7
	}
	if cfg.Reminder.CheckIntervalHours <= 0 {
		cfg.Reminder.CheckIntervalHours = 1
	}
	if len(cfg.Budget.DefaultThresholds) == 0 {
		cfg.Budget.DefaultThresholds = []float64{75, 90, 100}
	}
	if cfg.Queue.EmailQueue == "" {
		cfg.Queue.EmailQueue = "email_reminders"
	}
	if cfg.Cleanup.NotificationRetentionDays <= 0 {
		cfg.Cleanup.NotificationRetentionDays = 30
	}
}
