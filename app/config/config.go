package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type AppCfg struct {
	Port           string        `mapstructure:"port" yaml:"port"`
	Env            string        `mapstructure:"env" yaml:"env"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

type MongoCfg struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Database string `mapstructure:"database" yaml:"database"`
}

type RedisCfg struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type CacheCfg struct {
	L1Size int           `mapstructure:"l1_size" yaml:"l1_size"`
	TTL    time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type OCRCfg struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Secret  string        `mapstructure:"secret" yaml:"secret"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type StorageCfg struct {
	Root           string `mapstructure:"root" yaml:"root"`
	MaxUploadBytes int    `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

type LectureCfg struct {
	SeedFile string `mapstructure:"seed_file" yaml:"seed_file"`
}

type CertificateCfg struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	MinLengthRatio      float64 `mapstructure:"min_length_ratio" yaml:"min_length_ratio"`
}

// AppConfig toàn bộ cấu hình service, đọc một lần khi khởi động rồi truyền vào constructor
type AppConfig struct {
	App         AppCfg         `mapstructure:"app" yaml:"app"`
	Mongo       MongoCfg       `mapstructure:"mongo" yaml:"mongo"`
	Redis       RedisCfg       `mapstructure:"redis" yaml:"redis"`
	Cache       CacheCfg       `mapstructure:"cache" yaml:"cache"`
	OCR         OCRCfg         `mapstructure:"ocr" yaml:"ocr"`
	Storage     StorageCfg     `mapstructure:"storage" yaml:"storage"`
	Lecture     LectureCfg     `mapstructure:"lecture" yaml:"lecture"`
	Certificate CertificateCfg `mapstructure:"certificate" yaml:"certificate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.request_timeout", 30*time.Second)
	v.SetDefault("mongo.url", "")
	v.SetDefault("mongo.database", "edu_certificate")
	v.SetDefault("redis.url", "")
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("ocr.url", "")
	v.SetDefault("ocr.secret", "")
	v.SetDefault("ocr.timeout", 10*time.Second)
	v.SetDefault("storage.root", "./data/private")
	v.SetDefault("storage.max_upload_bytes", 10<<20)
	v.SetDefault("lecture.seed_file", "config/lectures.yaml")
	v.SetDefault("certificate.similarity_threshold", 0.8)
	v.SetDefault("certificate.min_length_ratio", 0.5)
}

// Load đọc cấu hình từ file yaml (path rỗng thì tìm config/app.yaml) và env.
// Env dạng OCR_SECRET ghi đè ocr.secret. Không có file thì dùng mặc định.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("lỗi đọc file config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate kiểm tra các giá trị ngoài miền hợp lệ
func (c *AppConfig) Validate() error {
	if t := c.Certificate.SimilarityThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("certificate.similarity_threshold phải trong (0, 1], nhận %v", t)
	}
	if r := c.Certificate.MinLengthRatio; r <= 0 {
		return fmt.Errorf("certificate.min_length_ratio phải > 0, nhận %v", r)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes phải > 0, nhận %d", c.Storage.MaxUploadBytes)
	}
	return nil
}

// IsProduction môi trường production
func (c *AppConfig) IsProduction() bool {
	return c.App.Env == "production"
}

// Redacted trả về yaml của cấu hình với secret đã che, dùng để log lúc khởi động
func (c AppConfig) Redacted() (string, error) {
	c.OCR.Secret = mask(c.OCR.Secret)
	c.Mongo.URL = maskURL(c.Mongo.URL)
	c.Redis.URL = maskURL(c.Redis.URL)

	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("lỗi marshal config: %w", err)
	}
	return string(b), nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// maskURL che phần user:password trong URL kết nối
func maskURL(u string) string {
	schemeEnd := strings.Index(u, "://")
	at := strings.LastIndex(u, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return u
	}
	return u[:schemeEnd+3] + "***" + u[at:]
}
