package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"cihai_ugc_202508/pkg/llm"
)

// ==================== 存储类型 ====================

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
	DBDriverMongo    = "mongo"
)

const (
	HashtagPolicyUnion   = "union"
	HashtagPolicyReplace = "replace"
)

// ServerlessAITimeout 函数平台的默认 AI 超时
const ServerlessAITimeout = 14 * time.Second

// Config 应用配置，启动时读取一次，之后只读
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// json / console
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogOutput   string `envconfig:"LOG_OUTPUT" default:"stdout"`

	// 数据库，DB_DRIVER 为空时有 MONGODB_URI 用 mongo，否则 sqlite
	DBDriver string `envconfig:"DB_DRIVER"`
	DBDSN    string `envconfig:"DB_DSN" default:"cihai_ugc.db"`
	MongoURI string `envconfig:"MONGODB_URI"`
	MongoDB  string `envconfig:"MONGODB_DB" default:"cihai_ugc"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// 智谱，首选视觉模型
	ZhipuAPIKey  string   `envconfig:"ZHIPU_API_KEY"`
	ZhipuBaseURL string   `envconfig:"ZHIPU_BASE_URL" default:"https://open.bigmodel.cn/api/paas/v4"`
	ZhipuModel   string   `envconfig:"ZHIPU_MODEL" default:"glm-4v"`
	ZhipuShapes  []string `envconfig:"ZHIPU_SHAPES"`

	// 通义千问（DashScope 兼容模式），备选视觉模型
	QwenAPIKey  string   `envconfig:"DASHSCOPE_API_KEY"`
	QwenBaseURL string   `envconfig:"DASHSCOPE_BASE_URL" default:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	QwenModel   string   `envconfig:"QWEN_MODEL" default:"qwen-vl-plus"`
	QwenShapes  []string `envconfig:"QWEN_SHAPES"`

	// DeepSeek，纯文本兜底
	DeepSeekAPIKey  string `envconfig:"DEEPSEEK_API_KEY"`
	DeepSeekBaseURL string `envconfig:"DEEPSEEK_BASE_URL" default:"https://api.deepseek.com/v1"`
	DeepSeekModel   string `envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`

	// 0 表示不设超时
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT"`
	AIMaxTokens   int           `envconfig:"AI_MAX_TOKENS" default:"1000"`
	AITemperature float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	HashtagPolicy string        `envconfig:"AI_HASHTAG_POLICY" default:"union"`

	// 图片归档，为空表示不归档
	StorageProvider  string `envconfig:"STORAGE_PROVIDER"`
	StorageBasePath  string `envconfig:"STORAGE_BASE_PATH" default:"cihai-ugc"`
	StorageLocalDir  string `envconfig:"STORAGE_LOCAL_DIR" default:"uploads"`
	StoragePublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:"/uploads"`
	AWSBucket        string `envconfig:"AWS_BUCKET"`
	AWSRegion        string `envconfig:"AWS_REGION"`
	AWSAccessKey     string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey     string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSEndpoint      string `envconfig:"AWS_ENDPOINT"`
	AWSCDNDomain     string `envconfig:"AWS_CDN_DOMAIN"`

	// 定时任务
	TaskEnabled          bool   `envconfig:"TASK_ENABLED" default:"true"`
	AILogRetentionDays   int    `envconfig:"TASK_AI_LOG_RETENTION_DAYS" default:"30"`
	AILogCleanupSchedule string `envconfig:"TASK_AI_LOG_CLEANUP_SPEC" default:"0 30 3 * * *"`
}

// Load 加载配置，envFile 存在时先加载到环境变量（不覆盖已有值）
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("加载 %s 失败: %w", envFile, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver == "" {
		if c.MongoURI != "" {
			c.DBDriver = DBDriverMongo
		} else {
			c.DBDriver = DBDriverSQLite
		}
	}
	c.HashtagPolicy = strings.ToLower(strings.TrimSpace(c.HashtagPolicy))
	c.StorageProvider = strings.ToLower(strings.TrimSpace(c.StorageProvider))
	c.CORSAllowedOrigins = trimList(c.CORSAllowedOrigins)
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DBDriverSQLite, DBDriverPostgres:
	case DBDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("DB_DRIVER=mongo 需要设置 MONGODB_URI")
		}
	default:
		return fmt.Errorf("不支持的 DB_DRIVER: %q", c.DBDriver)
	}

	switch c.HashtagPolicy {
	case HashtagPolicyUnion, HashtagPolicyReplace:
	default:
		return fmt.Errorf("不支持的 AI_HASHTAG_POLICY: %q", c.HashtagPolicy)
	}

	switch c.StorageProvider {
	case "", "local":
	case "s3":
		if c.AWSBucket == "" {
			return fmt.Errorf("STORAGE_PROVIDER=s3 需要设置 AWS_BUCKET")
		}
	default:
		return fmt.Errorf("不支持的 STORAGE_PROVIDER: %q", c.StorageProvider)
	}

	if c.AITimeout < 0 {
		return fmt.Errorf("AI_TIMEOUT 不能为负数")
	}

	for _, shapes := range [][]string{c.ZhipuShapes, c.QwenShapes} {
		if _, err := parseShapes(shapes); err != nil {
			return err
		}
	}
	return nil
}

// SQLStore 是否使用 SQL 存储（AI 调用日志和清理任务依赖它）
func (c *Config) SQLStore() bool {
	return c.DBDriver == DBDriverSQLite || c.DBDriver == DBDriverPostgres
}

// Providers 按优先级返回服务商配置：智谱、通义、DeepSeek
// 未配置 Key 的也会返回，由编排层跳过
func (c *Config) Providers() []llm.ProviderConfig {
	zhipuShapes, _ := parseShapes(c.ZhipuShapes)
	qwenShapes, _ := parseShapes(c.QwenShapes)

	return []llm.ProviderConfig{
		{
			Name:        "zhipu",
			BaseURL:     c.ZhipuBaseURL,
			Model:       c.ZhipuModel,
			APIKey:      c.ZhipuAPIKey,
			Vision:      true,
			Shapes:      zhipuShapes,
			MaxTokens:   c.AIMaxTokens,
			Temperature: c.AITemperature,
		},
		{
			Name:        "qwen",
			BaseURL:     c.QwenBaseURL,
			Model:       c.QwenModel,
			APIKey:      c.QwenAPIKey,
			Vision:      true,
			Shapes:      qwenShapes,
			MaxTokens:   c.AIMaxTokens,
			Temperature: c.AITemperature,
		},
		{
			Name:        "deepseek",
			BaseURL:     c.DeepSeekBaseURL,
			Model:       c.DeepSeekModel,
			APIKey:      c.DeepSeekAPIKey,
			MaxTokens:   c.AIMaxTokens,
			Temperature: c.AITemperature,
		},
	}
}

// parseShapes 解析带图消息格式列表，text 不带图片，不能出现在这里
func parseShapes(names []string) ([]llm.Shape, error) {
	var shapes []llm.Shape
	for _, n := range trimList(names) {
		s, err := llm.ParseShape(n)
		if err != nil {
			return nil, err
		}
		if s == llm.ShapeText {
			return nil, fmt.Errorf("图片消息格式列表不能包含 %q", n)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
