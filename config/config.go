package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"port"`
	UploadDir string `mapstructure:"upload_dir"`
	// Mock switches every external-call stage to its degraded/offline
	// implementation. Threaded through each constructor, never toggled at
	// runtime.
	Mock bool `mapstructure:"mock"`

	AIEndpoint         string `mapstructure:"ai_endpoint"`
	OpenAIAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	EmbeddingModel     string `mapstructure:"embedding_model"`
	EmbeddingDimension int    `mapstructure:"embedding_dimension"`

	VisionProvider string `mapstructure:"vision_provider"`
	VisionModel    string `mapstructure:"vision_model"`
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`

	Chunk    ChunkConfig         `mapstructure:"chunk"`
	Rerank   RerankConfig        `mapstructure:"rerank"`
	Weaviate WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
	Minio    MinioConfig         `mapstructure:"minio"`

	MongoURI string `mapstructure:"MONGODB_URI"`
	SearchTopN int  `mapstructure:"search_top_n"`
}

type ChunkConfig struct {
	MaxSize int `mapstructure:"max_size"`
	Overlap int `mapstructure:"overlap"`
}

type RerankConfig struct {
	Endpoint  string  `mapstructure:"endpoint"`
	Model     string  `mapstructure:"model"`
	APIKey    string  `mapstructure:"RERANK_API_KEY"`
	Threshold float64 `mapstructure:"threshold"`
	TopN      int     `mapstructure:"top_n"`
}

type WeaviateStoreConfig struct {
	Host      string `mapstructure:"host"`
	APIKey    string `mapstructure:"WEAVIATE_APIKEY"`
	ClassName string `mapstructure:"class_name"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	// Policy defaults. Threshold and top_n are deliberately configuration,
	// not constants.
	v.SetDefault("port", "8080")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("embedding_model", "text-embedding-3-small")
	v.SetDefault("embedding_dimension", 1536)
	v.SetDefault("vision_provider", "openai")
	v.SetDefault("chunk.max_size", 1000)
	v.SetDefault("chunk.overlap", 200)
	v.SetDefault("rerank.threshold", 0.1)
	v.SetDefault("rerank.top_n", 5)
	v.SetDefault("search_top_n", 50)
	v.SetDefault("weaviate_store_config.class_name", "KnowledgeUnit")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables for secrets
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("MONGODB_URI")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("minio.MINIO_SECRET_KEY", "MINIO_SECRET_KEY")
	v.BindEnv("rerank.RERANK_API_KEY", "RERANK_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
