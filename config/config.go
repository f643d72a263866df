package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Search     SearchConfig     `yaml:"search"`
	Enrich     EnrichConfig     `yaml:"enrich"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ClassifierConfig selects the Gemini model used for tag classification.
type ClassifierConfig struct {
	Model string `yaml:"model"`
}

// EmbeddingConfig configures the OpenAI-compatible embeddings endpoint.
// BaseURL is overridable so tests can point it at a local server.
type EmbeddingConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	MaxChars  int    `yaml:"max_chars"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type SearchConfig struct {
	TopK       int `yaml:"top_k"`
	MaxResults int `yaml:"max_results"`
}

// EnrichConfig bounds one enrichment pass so a single HTTP invocation
// stays well under the platform request timeout.
type EnrichConfig struct {
	BatchSize int `yaml:"batch_size"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	c.applyDefaults()
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = "gemini-2.0-flash"
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = "https://api.openai.com/v1"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-large"
	}
	if c.Embedding.MaxChars <= 0 {
		c.Embedding.MaxChars = 8000
	}
	if c.Search.TopK <= 0 {
		c.Search.TopK = 5
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 3
	}
	if c.Enrich.BatchSize <= 0 {
		c.Enrich.BatchSize = 5
	}
}

// Credentials and service locations come from the environment only.
// A missing key is not a startup error: the dependent call fails when it
// is actually made and the failure surfaces through the command error reply.

func GeminiAPIKey() string { return os.Getenv("GEMINI_API_KEY") }

func OpenAIAPIKey() string { return os.Getenv("OPENAI_API_KEY") }

func MongoURI() string { return os.Getenv("MONGO_URI") }

func MongoDBName() string {
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		return v
	}
	return "refdeck"
}

func QdrantURL() string { return os.Getenv("QDRANT_URL") }

func QdrantAPIKey() string { return os.Getenv("QDRANT_API_KEY") }

func QdrantCollection() string {
	if v := os.Getenv("QDRANT_COLLECTION"); v != "" {
		return v
	}
	return "references"
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
