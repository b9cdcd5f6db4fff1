package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/flashdeck/internal/flagx"
	"github.com/dmitrijs2005/flashdeck/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "1m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, non-empty fields are copied
// into the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	EnableDevAuth               bool           `json:"enable_dev_auth"`
	OpenAIAPIKey                string         `json:"openai_api_key"`
	OpenAIBaseURL               string         `json:"openai_base_url"`
	OpenAIModel                 string         `json:"openai_model"`
	AIRequestTimeout            timex.Duration `json:"ai_request_timeout"`
	RazorpayKeyID               string         `json:"razorpay_key_id"`
	RazorpayKeySecret           string         `json:"razorpay_key_secret"`
	PaymentRequestTimeout       timex.Duration `json:"payment_request_timeout"`
	FreeDeckLimit               int            `json:"free_deck_limit"`
	CardsPerGeneration          int            `json:"cards_per_generation"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. Fields absent from the file keep
// their current values. If the file cannot be read or contains invalid
// JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.EnableDevAuth {
		config.EnableDevAuth = true
	}
	if c.OpenAIAPIKey != "" {
		config.OpenAIAPIKey = c.OpenAIAPIKey
	}
	if c.OpenAIBaseURL != "" {
		config.OpenAIBaseURL = c.OpenAIBaseURL
	}
	if c.OpenAIModel != "" {
		config.OpenAIModel = c.OpenAIModel
	}
	if c.AIRequestTimeout.Duration != 0 {
		config.AIRequestTimeout = time.Duration(c.AIRequestTimeout.Duration)
	}
	if c.RazorpayKeyID != "" {
		config.RazorpayKeyID = c.RazorpayKeyID
	}
	if c.RazorpayKeySecret != "" {
		config.RazorpayKeySecret = c.RazorpayKeySecret
	}
	if c.PaymentRequestTimeout.Duration != 0 {
		config.PaymentRequestTimeout = time.Duration(c.PaymentRequestTimeout.Duration)
	}
	if c.FreeDeckLimit != 0 {
		config.FreeDeckLimit = c.FreeDeckLimit
	}
	if c.CardsPerGeneration != 0 {
		config.CardsPerGeneration = c.CardsPerGeneration
	}
}
