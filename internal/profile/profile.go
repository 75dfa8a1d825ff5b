// Package profile holds the runtime configuration shared by the chrono
// tool server and the agent client.
package profile

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the configuration to start the chrono binaries.
type Profile struct {
	// Mode can be "prod" or "dev".
	Mode string
	// Version is reported to MCP peers during the handshake.
	Version string

	// AIAPIKey authenticates against the OpenAI-compatible endpoint.
	// Required by `chrono ask`, unused by `chrono serve`.
	AIAPIKey string
	// AIBaseURL is the endpoint base URL.
	AIBaseURL string
	// AIModel is the chat model name.
	AIModel string
	// AIMaxRetries bounds retry attempts per LLM request.
	AIMaxRetries int
	// AITimeout bounds a single LLM request.
	AITimeout time.Duration

	// ServerCommand is the command the agent spawns to reach the tool
	// server. Empty means "re-exec this binary with the serve subcommand".
	ServerCommand string
	// ServerArgs are passed to ServerCommand.
	ServerArgs []string

	// MaxIterations bounds the agent's tool-calling loop.
	MaxIterations int
}

// Load reads configuration from CHRONO_* environment variables with
// defaults applied. A fresh viper instance is used so tests do not share
// global state.
func Load() (*Profile, error) {
	v := viper.New()
	v.SetEnvPrefix("chrono")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "dev")
	v.SetDefault("version", "0.1.0")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("server.command", "")
	v.SetDefault("agent.max_iterations", 10)

	p := &Profile{
		Mode:          v.GetString("mode"),
		Version:       v.GetString("version"),
		AIAPIKey:      v.GetString("ai.api_key"),
		AIBaseURL:     v.GetString("ai.base_url"),
		AIModel:       v.GetString("ai.model"),
		AIMaxRetries:  v.GetInt("ai.max_retries"),
		AITimeout:     v.GetDuration("ai.timeout"),
		ServerCommand: v.GetString("server.command"),
		ServerArgs:    v.GetStringSlice("server.args"),
		MaxIterations: v.GetInt("agent.max_iterations"),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// IsDev reports whether the profile runs in development mode.
func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Validate normalizes and checks the profile.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.AIBaseURL == "" {
		return errors.New("ai.base_url must not be empty")
	}
	if p.AIModel == "" {
		return errors.New("ai.model must not be empty")
	}
	if p.AIMaxRetries < 1 {
		return errors.Errorf("ai.max_retries must be at least 1, got %d", p.AIMaxRetries)
	}
	if p.AITimeout <= 0 {
		return errors.Errorf("ai.timeout must be positive, got %s", p.AITimeout)
	}
	if p.MaxIterations < 1 {
		return errors.Errorf("agent.max_iterations must be at least 1, got %d", p.MaxIterations)
	}
	return nil
}
