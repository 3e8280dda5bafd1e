package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type ExtractorProvider string

const (
	ExtractorOpenAI    ExtractorProvider = "openai"
	ExtractorAnthropic ExtractorProvider = "anthropic"
	ExtractorNone      ExtractorProvider = "none"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Debug      bool `env:"DEBUG" envDefault:"false"`
	Port       uint `env:"PORT" envDefault:"9090"`

	Secret           string        `env:"SECRET,required"`
	BcryptHasherCost int           `env:"BCRYPT_HASHER_COST" envDefault:"12"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"168h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	RedisURL       string `env:"REDIS_URL,required"`

	RabbitmqURL               string        `env:"RABBITMQ_URL,required"`
	RabbitmqDelayedExchange   string        `env:"RABBITMQ_DELAYED_EXCHANGE" envDefault:"reminders-delayed"`
	RabbitmqReminderFireQueue string        `env:"RABBITMQ_REMINDER_FIRE_QUEUE" envDefault:"reminder-fire"`
	RemindersSchedulingPeriod time.Duration `env:"REMINDERS_SCHEDULING_PERIOD" envDefault:"1m"`

	ConversationContextTTL      time.Duration `env:"CONVERSATION_CONTEXT_TTL" envDefault:"30m"`
	InMemoryConversationContext bool          `env:"IN_MEMORY_CONVERSATION_CONTEXT" envDefault:"false"`

	InboundRateLimitPerMinute uint16 `env:"INBOUND_RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	LogInRateLimitPerHour     uint16 `env:"LOG_IN_RATE_LIMIT_PER_HOUR" envDefault:"10"`

	WhatsappBaseURL        url.URL       `env:"WHATSAPP_BASE_URL" envDefault:"https://api.twilio.com"`
	WhatsappAccountSID     string        `env:"WHATSAPP_ACCOUNT_SID"`
	WhatsappAuthToken      string        `env:"WHATSAPP_AUTH_TOKEN"`
	WhatsappFrom           string        `env:"WHATSAPP_FROM"`
	WhatsappWebhookURL     string        `env:"WHATSAPP_WEBHOOK_URL"`
	WhatsappRequestTimeout time.Duration `env:"WHATSAPP_REQUEST_TIMEOUT" envDefault:"10s"`

	ExtractorProvider ExtractorProvider `env:"EXTRACTOR_PROVIDER" envDefault:"openai"`
	PolishReplies     bool              `env:"POLISH_REPLIES" envDefault:"false"`
	OpenAIAPIKey      string            `env:"OPENAI_API_KEY"`
	OpenAIModel       string            `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnthropicAPIKey   string            `env:"ANTHROPIC_API_KEY"`
	AnthropicModel    string            `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.ExtractorProvider = ExtractorProvider(strings.ToLower(string(c.ExtractorProvider)))
	switch c.ExtractorProvider {
	case ExtractorOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set for the openai extractor")
		}
	case ExtractorAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY must be set for the anthropic extractor")
		}
	case ExtractorNone:
		if c.PolishReplies {
			return fmt.Errorf("POLISH_REPLIES requires an extractor provider")
		}
	default:
		return fmt.Errorf("invalid EXTRACTOR_PROVIDER value: %q", c.ExtractorProvider)
	}
	if !c.IsTestMode && (c.WhatsappAccountSID == "" || c.WhatsappAuthToken == "" || c.WhatsappFrom == "") {
		return fmt.Errorf("WHATSAPP_ACCOUNT_SID, WHATSAPP_AUTH_TOKEN and WHATSAPP_FROM must be set")
	}
	if c.RemindersSchedulingPeriod <= 0 {
		return fmt.Errorf("REMINDERS_SCHEDULING_PERIOD must be positive")
	}
	return nil
}

// VerifiesWebhookSignature is true when both the Twilio token and the public
// webhook URL are known.
func (c *Config) VerifiesWebhookSignature() bool {
	return c.WhatsappAuthToken != "" && c.WhatsappWebhookURL != ""
}
