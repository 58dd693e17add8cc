package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件与环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Chatbot  ChatbotConfig  `mapstructure:"chatbot"`
	MQ       MQConfig       `mapstructure:"mq"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GRPCConfig gRPC健康检查服务配置
type GRPCConfig struct {
	Port          int           `mapstructure:"port"` // 0表示不启动
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | postgres | sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"` // sqlite文件路径
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN 按驱动生成连接字符串
// MySQL格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Ho_Chi_Minh → Asia%2FHo_Chi_Minh）
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
	case "sqlite":
		return d.Path
	default:
		loc := url.QueryEscape(d.Loc)
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
			d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
	}
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	Issuer            string        `mapstructure:"issuer"`
	AccessTokenExpire time.Duration `mapstructure:"access_token_expire"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// LLMConfig 文本生成服务配置
// 在启动时注入生成客户端，调用过程中不再读取
type LLMConfig struct {
	Provider  string        `mapstructure:"provider"` // rest | sdk
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Referer   string        `mapstructure:"referer"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig 生成服务熔断配置
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// ChatbotConfig 对话检索配置
type ChatbotConfig struct {
	Locale               string `mapstructure:"locale"`
	RecommendationPolicy string `mapstructure:"recommendation_policy"` // reconcile | candidates
	HistoryWindow        int    `mapstructure:"history_window"`
	SystemLimit          int    `mapstructure:"system_limit"`
	ScopedLimit          int    `mapstructure:"scoped_limit"`
	MaxSystemTerms       int    `mapstructure:"max_system_terms"`
}

// MQConfig RabbitMQ配置，URL为空时不启动事件投递
type MQConfig struct {
	URL          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange_type"`
}

// OutboxConfig 事件发件箱轮询配置
type OutboxConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	BatchSize   int           `mapstructure:"batch_size"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CORSConfig 跨域配置，聊天组件嵌在各书店前端页面中
type CORSConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	AllowOrigins     []string      `mapstructure:"allow_origins"`
	AllowMethods     []string      `mapstructure:"allow_methods"`
	AllowHeaders     []string      `mapstructure:"allow_headers"`
	ExposeHeaders    []string      `mapstructure:"expose_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 通过环境变量BOOKBRIDGE_ENV指定环境（如config.prod.yaml）
// 3. 环境变量覆盖（如BOOKBRIDGE_LLM_API_KEY → llm.api_key）
// 4. 启动目录下的.env文件会先注入进程环境变量
func Load() (*Config, error) {
	// .env不存在不是错误
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	if env := os.Getenv("BOOKBRIDGE_ENV"); env != "" {
		v.SetConfigName("config." + env)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	v.SetEnvPrefix("BOOKBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 默认值（同时让AutomaticEnv能识别未写入YAML的key）
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("grpc.port", 9090)
	v.SetDefault("grpc.probe_interval", 15*time.Second)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("jwt.issuer", "bookbridge")
	v.SetDefault("jwt.access_token_expire", 2*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("llm.provider", "rest")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.breaker.max_requests", 1)
	v.SetDefault("llm.breaker.interval", time.Minute)
	v.SetDefault("llm.breaker.timeout", 30*time.Second)
	v.SetDefault("llm.breaker.failure_threshold", 5)

	v.SetDefault("chatbot.locale", "vi")
	v.SetDefault("chatbot.recommendation_policy", "reconcile")
	v.SetDefault("chatbot.history_window", 10)
	v.SetDefault("chatbot.system_limit", 5)
	v.SetDefault("chatbot.scoped_limit", 10)
	v.SetDefault("chatbot.max_system_terms", 5)

	v.SetDefault("mq.url", "")
	v.SetDefault("mq.exchange", "bookbridge.events")
	v.SetDefault("mq.exchange_type", "topic")

	v.SetDefault("outbox.interval", 5*time.Second)
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.max_attempts", 10)

	v.SetDefault("tracing.service_name", "bookbridge")
	v.SetDefault("tracing.endpoint", "localhost:4317")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.expose_headers", []string{"X-Request-ID"})
	v.SetDefault("cors.max_age", 12*time.Hour)
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	if cfg.GRPC.Port < 0 || cfg.GRPC.Port > 65535 {
		return fmt.Errorf("无效的gRPC端口: %d", cfg.GRPC.Port)
	}

	switch cfg.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT密钥不能为空")
	}
	if cfg.JWT.Secret == "your-secret-key-change-in-production" && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须修改JWT密钥")
	}

	switch cfg.LLM.Provider {
	case "rest", "sdk":
	default:
		return fmt.Errorf("不支持的生成服务类型: %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Timeout <= 0 {
		return fmt.Errorf("生成服务超时时间必须大于0")
	}
	if cfg.LLM.APIKey == "" && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须配置llm.api_key")
	}

	switch cfg.Chatbot.RecommendationPolicy {
	case "reconcile", "candidates":
	default:
		return fmt.Errorf("无效的推荐策略: %s", cfg.Chatbot.RecommendationPolicy)
	}
	if cfg.Chatbot.SystemLimit <= 0 || cfg.Chatbot.ScopedLimit <= 0 {
		return fmt.Errorf("候选数量上限必须大于0")
	}

	if cfg.CORS.Enabled && cfg.CORS.AllowCredentials {
		for _, origin := range cfg.CORS.AllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors.allow_credentials为true时allow_origins不能包含*")
			}
		}
	}

	return nil
}
