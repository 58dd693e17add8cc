package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  port: 8081
jwt:
  secret: unit-test-secret
database:
  driver: sqlite
  path: ":memory:"
`

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(content), 0o644))
	t.Chdir(dir)
}

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	writeConfig(t, minimalYAML)
	t.Setenv("BOOKBRIDGE_LLM_API_KEY", "key-from-env")
	t.Setenv("BOOKBRIDGE_CHATBOT_SCOPED_LIMIT", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, "key-from-env", cfg.LLM.APIKey)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "reconcile", cfg.Chatbot.RecommendationPolicy)
	assert.Equal(t, 5, cfg.Chatbot.SystemLimit)
	assert.Equal(t, 7, cfg.Chatbot.ScopedLimit)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "debug"},
			Database: DatabaseConfig{Driver: "mysql"},
			JWT:      JWTConfig{Secret: "s"},
			LLM:      LLMConfig{Provider: "rest", Timeout: time.Second},
			Chatbot:  ChatbotConfig{RecommendationPolicy: "reconcile", SystemLimit: 5, ScopedLimit: 10},
		}
	}
	require.NoError(t, validate(valid()))

	cases := map[string]func(c *Config){
		"端口非法":   func(c *Config) { c.Server.Port = 0 },
		"驱动不支持":  func(c *Config) { c.Database.Driver = "oracle" },
		"密钥为空":   func(c *Config) { c.JWT.Secret = "" },
		"生成服务类型": func(c *Config) { c.LLM.Provider = "openai" },
		"超时为0":   func(c *Config) { c.LLM.Timeout = 0 },
		"推荐策略":   func(c *Config) { c.Chatbot.RecommendationPolicy = "trust" },
		"生产缺少密钥": func(c *Config) { c.Server.Mode = "release" },
		"跨域凭证":   func(c *Config) { c.CORS = CORSConfig{Enabled: true, AllowCredentials: true, AllowOrigins: []string{"*"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, validate(c))
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	mysqlCfg := DatabaseConfig{Driver: "mysql", User: "root", Password: "pw", Host: "db", Port: 3306,
		DBName: "bookbridge", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Ho_Chi_Minh"}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookbridge?charset=utf8mb4&parseTime=true&loc=Asia%2FHo_Chi_Minh", mysqlCfg.DSN())

	pg := DatabaseConfig{Driver: "postgres", User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", pg.DSN())
}
