package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout (not applied to the event stream)"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	HN      HNConfig      `yaml:"hn" json:"hn" jsonschema:"description=News aggregator source"`
	Browser BrowserConfig `yaml:"browser" json:"browser" jsonschema:"description=Headless browser used for scraping"`
	Capture CaptureConfig `yaml:"capture" json:"capture" jsonschema:"description=Screenshot capture"`
	Cache   CacheConfig   `yaml:"cache" json:"cache" jsonschema:"description=Story cache"`
	Stream  StreamConfig  `yaml:"stream" json:"stream" jsonschema:"description=Event stream"`
	LLM     LLMConfig     `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for hooks and analysis"`
}

// HNConfig describes where stories and comments come from
type HNConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://news.ycombinator.com,description=Aggregator base URL"`
	RSSURL        string        `yaml:"rss_url" json:"rss_url" jsonschema:"description=RSS feed used when the listing page can't be scraped (optional)"`
	PageSize      int           `yaml:"page_size" json:"page_size" jsonschema:"default=30,description=Stories per listing page"`
	CommentsLimit int           `yaml:"comments_limit" json:"comments_limit" jsonschema:"default=10,description=Top comments collected per story"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=RSS fetch timeout"`
}

// BrowserConfig holds the shared scraping browser settings
type BrowserConfig struct {
	ExecPath           string        `yaml:"exec_path" json:"exec_path" jsonschema:"description=Chrome executable (autodetected if empty)"`
	UserAgent          string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent override"`
	Headless           bool          `yaml:"headless" json:"headless" jsonschema:"default=true,description=Run browser headless"`
	NavTimeout         time.Duration `yaml:"nav_timeout" json:"nav_timeout" jsonschema:"default=30s,description=Page navigation timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" json:"idle_timeout" jsonschema:"default=5s,description=Wait for network idle"`
	BotPhrases         []string      `yaml:"bot_phrases" json:"bot_phrases" jsonschema:"description=Phrases marking a bot verification page"`
	ContainerSelectors []string      `yaml:"container_selectors" json:"container_selectors" jsonschema:"description=Article container selectors in priority order"`
	MinBlockLength     int           `yaml:"min_block_length" json:"min_block_length" jsonschema:"default=500,description=Minimal text length of a fallback content block"`
}

// CaptureConfig holds screenshot settings
type CaptureConfig struct {
	Dir             string        `yaml:"dir" json:"dir" jsonschema:"default=static/screenshots,description=Screenshot directory"`
	URLPrefix       string        `yaml:"url_prefix" json:"url_prefix" jsonschema:"default=/static/screenshots/,description=URL prefix screenshots are served under"`
	ViewportWidth   int           `yaml:"viewport_width" json:"viewport_width" jsonschema:"default=1280,description=Viewport width"`
	ViewportHeights []int         `yaml:"viewport_heights" json:"viewport_heights" jsonschema:"description=Viewport heights tried in order"`
	NavTimeout      time.Duration `yaml:"nav_timeout" json:"nav_timeout" jsonschema:"default=60s,description=Page load timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout" jsonschema:"default=30s,description=Wait for network idle before capturing anyway"`
	SettleDelay     time.Duration `yaml:"settle_delay" json:"settle_delay" jsonschema:"default=2s,description=Pause for dynamic content after scrolling"`
	CMSWait         time.Duration `yaml:"cms_wait" json:"cms_wait" jsonschema:"default=3s,description=Extra wait for pages with lazy CMS content"`
	BlockPhrases    []string      `yaml:"block_phrases" json:"block_phrases" jsonschema:"description=Phrases marking a blocked page"`
	CMSMarkers      []string      `yaml:"cms_markers" json:"cms_markers" jsonschema:"description=CSS selectors detecting a CMS with lazy content"`
	MaxConcurrent   int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=2,minimum=1,description=Maximum concurrent captures"`
}

// CacheConfig holds story cache settings
type CacheConfig struct {
	Dir string `yaml:"dir" json:"dir" jsonschema:"default=cache,description=Story cache directory"`
}

// StreamConfig holds event stream settings
type StreamConfig struct {
	Delay    time.Duration `yaml:"delay" json:"delay" jsonschema:"default=100ms,description=Pause between processed stories"`
	MaxLimit int           `yaml:"max_limit" json:"max_limit" jsonschema:"default=30,description=Maximum stories per request"`
}

// LLMConfig holds LLM configuration for hooks and analysis
type LLMConfig struct {
	Endpoint       string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://generativelanguage.googleapis.com/v1beta/openai,description=OpenAI-compatible API endpoint"`
	APIKey         string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model          string        `yaml:"model" json:"model" jsonschema:"default=gemini-1.5-flash,description=Model name"`
	Temperature    float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens      int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=1000,description=Maximum tokens in response"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	HookPrompt     string        `yaml:"hook_prompt" json:"hook_prompt" jsonschema:"description=Hook prompt template with one %s for the article (optional)"`
	AnalysisPrompt string        `yaml:"analysis_prompt" json:"analysis_prompt" jsonschema:"description=Analysis prompt template with %s for the article and %s for comments (optional)"`
	Limits         LimitsConfig  `yaml:"limits" json:"limits" jsonschema:"description=Input validation bounds"`
}

// LimitsConfig holds validation bounds applied before calling the model
type LimitsConfig struct {
	MinContent    int      `yaml:"min_content" json:"min_content" jsonschema:"default=50,description=Minimal article length"`
	MaxContent    int      `yaml:"max_content" json:"max_content" jsonschema:"default=15000,description=Article is truncated to this length"`
	MinComment    int      `yaml:"min_comment" json:"min_comment" jsonschema:"default=5,description=Minimal comment length"`
	MaxComment    int      `yaml:"max_comment" json:"max_comment" jsonschema:"default=2000,description=Comment is truncated to this length"`
	MaxComments   int      `yaml:"max_comments" json:"max_comments" jsonschema:"default=10,description=Comments passed to analysis"`
	ErrorPatterns []string `yaml:"error_patterns" json:"error_patterns" jsonschema:"description=Patterns marking an error page"`
}

var (
	defaultBotPhrases         = []string{"verify you are human", "security check", "enable javascript"}
	defaultContainerSelectors = []string{"main", "article", "[role=main]", "#content", ".post-content", ".entry-content"}
	defaultBlockPhrases       = []string{"unusual traffic", "verify you are a human", "verify you are human", "security check", "captcha", "access denied"}
	defaultCMSMarkers         = []string{`meta[name="generator"][content*="WordPress"]`, `link[href*="wp-content"]`, `script[src*="wp-includes"]`}
	defaultErrorPatterns      = []string{`error loading page`, `page not found`, `404`, `403 forbidden`, `500 internal server error`}
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	cfg.Browser.Headless = true
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	setDefault(&c.Server.Listen, ":8080")
	setDefault(&c.Server.Timeout, 30*time.Second)

	setDefault(&c.HN.BaseURL, "https://news.ycombinator.com")
	setDefault(&c.HN.PageSize, 30)
	setDefault(&c.HN.CommentsLimit, 10)
	setDefault(&c.HN.Timeout, 30*time.Second)

	setDefault(&c.Browser.NavTimeout, 30*time.Second)
	setDefault(&c.Browser.IdleTimeout, 5*time.Second)
	setDefault(&c.Browser.MinBlockLength, 500)
	if len(c.Browser.BotPhrases) == 0 {
		c.Browser.BotPhrases = defaultBotPhrases
	}
	if len(c.Browser.ContainerSelectors) == 0 {
		c.Browser.ContainerSelectors = defaultContainerSelectors
	}

	setDefault(&c.Capture.Dir, "static/screenshots")
	setDefault(&c.Capture.URLPrefix, "/static/screenshots/")
	setDefault(&c.Capture.ViewportWidth, 1280)
	setDefault(&c.Capture.NavTimeout, 60*time.Second)
	setDefault(&c.Capture.IdleTimeout, 30*time.Second)
	setDefault(&c.Capture.SettleDelay, 2*time.Second)
	setDefault(&c.Capture.CMSWait, 3*time.Second)
	setDefault(&c.Capture.MaxConcurrent, 2)
	if len(c.Capture.ViewportHeights) == 0 {
		c.Capture.ViewportHeights = []int{800, 1200, 1600}
	}
	if len(c.Capture.BlockPhrases) == 0 {
		c.Capture.BlockPhrases = defaultBlockPhrases
	}
	if len(c.Capture.CMSMarkers) == 0 {
		c.Capture.CMSMarkers = defaultCMSMarkers
	}

	setDefault(&c.Cache.Dir, "cache")

	setDefault(&c.Stream.Delay, 100*time.Millisecond)
	setDefault(&c.Stream.MaxLimit, 30)

	setDefault(&c.LLM.Endpoint, "https://generativelanguage.googleapis.com/v1beta/openai")
	setDefault(&c.LLM.Model, "gemini-1.5-flash")
	setDefault(&c.LLM.Temperature, 0.7)
	setDefault(&c.LLM.MaxTokens, 1000)
	setDefault(&c.LLM.Timeout, 30*time.Second)
	c.LLM.Limits.setDefaults()
}

func (l *LimitsConfig) setDefaults() {
	setDefault(&l.MinContent, 50)
	setDefault(&l.MaxContent, 15000)
	setDefault(&l.MinComment, 5)
	setDefault(&l.MaxComment, 2000)
	setDefault(&l.MaxComments, 10)
	if len(l.ErrorPatterns) == 0 {
		l.ErrorPatterns = defaultErrorPatterns
	}
}

// WithDefaults returns limits with zero values replaced by defaults
func (l LimitsConfig) WithDefaults() LimitsConfig {
	l.setDefaults()
	return l
}

func setDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Timeout < time.Second {
		return fmt.Errorf("llm.timeout must be at least 1 second")
	}
	if cfg.LLM.Limits.MinContent > cfg.LLM.Limits.MaxContent {
		return fmt.Errorf("llm.limits.min_content must not exceed max_content")
	}
	if cfg.LLM.Limits.MinComment > cfg.LLM.Limits.MaxComment {
		return fmt.Errorf("llm.limits.min_comment must not exceed max_comment")
	}

	if cfg.HN.PageSize < 1 {
		return fmt.Errorf("hn.page_size must be at least 1")
	}
	if cfg.Capture.MaxConcurrent < 1 {
		return fmt.Errorf("capture.max_concurrent must be at least 1")
	}
	for _, h := range cfg.Capture.ViewportHeights {
		if h <= 0 {
			return fmt.Errorf("capture.viewport_heights must be positive, got %d", h)
		}
	}
	if cfg.Stream.Delay < 0 {
		return fmt.Errorf("stream.delay must be non-negative")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
