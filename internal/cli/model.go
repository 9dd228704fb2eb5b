package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"factcheck-quiz-service/internal/config"
	"factcheck-quiz-service/internal/factcheck"
	"factcheck-quiz-service/internal/infra/gemini"
	"factcheck-quiz-service/internal/infra/openai"
)

// loadConfig reads the config file, falling back to defaults when it does not exist.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config %s not found, using defaults", path)
		return config.Default(), nil
	}
	return cfg, err
}

// newChecker builds the classification pipeline for the configured model provider.
func newChecker(cfg config.Config) (*factcheck.Checker, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}
	timeout := cfg.ModelTimeout()

	var model factcheck.Model
	switch cfg.Model.Provider {
	case "openai":
		baseURL, name := openAISettings(cfg.Model.Endpoint, cfg.Model.Name)
		client, err := openai.NewClient(openai.Config{
			BaseURL: baseURL,
			Model:   name,
			APIKey:  apiKey,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		model = client
	case "gemini":
		client, err := gemini.NewClient(gemini.Config{
			Endpoint: cfg.Model.Endpoint,
			Model:    cfg.Model.Name,
			APIKey:   apiKey,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		model = factcheck.NewEnvelopeModel(client, cfg.Model.Verbose)
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}

	log.Printf("using %s model %q (timeout %s)", cfg.Model.Provider, cfg.Model.Name, timeout)
	return factcheck.NewChecker(model, timeout, cfg.Model.Verbose), nil
}

// openAISettings drops a Gemini endpoint or model name left over from the default
// config so the openai provider falls back to its own defaults.
func openAISettings(endpoint, name string) (string, string) {
	if endpoint == gemini.DefaultEndpoint {
		log.Printf("model endpoint %s is the Gemini API, using the OpenAI default instead", endpoint)
		endpoint = ""
	}
	if strings.HasPrefix(name, "gemini-") {
		log.Printf("model %q is a Gemini model, using %q instead", name, openai.DefaultModel)
		name = ""
	}
	return endpoint, name
}
