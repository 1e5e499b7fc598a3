package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lyricduet/duetbot/internal/utils"
	"github.com/lyricduet/duetbot/internal/utils/e"
)

const (
	DefaultLookupBaseURL = "http://localhost:3000"
	DefaultTimeout       = 60 * time.Second
	DefaultThreshold     = 75
	DefaultSearchLimit   = 5
	DefaultSweepInterval = 300 * time.Second
)

// defaultMetadataKeywords covers the credit lines lyric files usually carry
// before the sung content starts.
var defaultMetadataKeywords = []string{
	"作词", "作曲", "编曲", "制作人", "监制", "混音", "母带", "录音",
	"吉他", "贝斯", "键盘", "和声", "出品", "发行",
	"lyrics by", "composed by", "arranged by", "produced by",
}

type Config struct {
	BotToken         string
	LookupBaseURL    string
	SessionTimeout   time.Duration
	MatchThreshold   int
	SearchLimit      int
	SweepInterval    time.Duration
	MetadataKeywords []string
	Messages         Messages

	RedisURL      string
	RedisPassword string
	TursoURL      string
	TursoToken    string
	LogChannelID  int64
}

// Load reads the full configuration from the environment. Only BOT_TOKEN is
// required; every other knob has a default.
func Load() (*Config, error) {
	env, err := utils.LoadEnv([]string{"BOT_TOKEN"})
	if err != nil {
		return nil, e.Wrap("failed to load bot env", err)
	}

	cfg := &Config{
		BotToken:         env["BOT_TOKEN"],
		LookupBaseURL:    strings.TrimRight(utils.OptionalEnv("LOOKUP_BASE_URL", DefaultLookupBaseURL), "/"),
		SessionTimeout:   secondsEnv("SESSION_TIMEOUT_SECONDS", DefaultTimeout),
		MatchThreshold:   intEnv("MATCH_THRESHOLD_PERCENT", DefaultThreshold),
		SearchLimit:      intEnv("SEARCH_RESULT_LIMIT", DefaultSearchLimit),
		SweepInterval:    secondsEnv("SWEEP_INTERVAL_SECONDS", DefaultSweepInterval),
		MetadataKeywords: SplitKeywords(utils.OptionalEnv("METADATA_FILTER_KEYWORDS", "")),
		Messages:         loadMessages(),
		RedisURL:         utils.OptionalEnv("REDIS_URL", ""),
		RedisPassword:    utils.OptionalEnv("REDIS_PASSWORD", ""),
		TursoURL:         utils.OptionalEnv("TURSO_DATABASE_URL", ""),
		TursoToken:       utils.OptionalEnv("TURSO_AUTH_TOKEN", ""),
	}

	if raw := utils.OptionalEnv("LOG_CHANNEL_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
		}
		cfg.LogChannelID = id
	}

	return cfg, nil
}

// SplitKeywords parses a comma-separated keyword list, falling back to the
// built-in credit keywords when the list is empty.
func SplitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), defaultMetadataKeywords...)
	}
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

func intEnv(key string, fallback int) int {
	raw := utils.OptionalEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func secondsEnv(key string, fallback time.Duration) time.Duration {
	raw := utils.OptionalEnv(key, "")
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
