package cli

import (
	"testing"

	"factcheck-quiz-service/internal/infra/gemini"
)

func TestOpenAISettingsIgnoresGeminiDefaults(t *testing.T) {
	cases := []struct {
		endpoint, name         string
		wantEndpoint, wantName string
	}{
		{gemini.DefaultEndpoint, gemini.DefaultModel, "", ""},
		{"", "", "", ""},
		{"https://gateway.local/v1", "gpt-4o", "https://gateway.local/v1", "gpt-4o"},
		{gemini.DefaultEndpoint, "gpt-4o", "", "gpt-4o"},
	}
	for _, tc := range cases {
		endpoint, name := openAISettings(tc.endpoint, tc.name)
		if endpoint != tc.wantEndpoint || name != tc.wantName {
			t.Fatalf("openAISettings(%q, %q) = (%q, %q), want (%q, %q)",
				tc.endpoint, tc.name, endpoint, name, tc.wantEndpoint, tc.wantName)
		}
	}
}

func TestNewCheckerBuildsOpenAIFromGeminiConfig(t *testing.T) {
	t.Setenv("FACTCHECK_CLI_TEST_KEY", "cli-key")
	cfg, err := loadConfig(writeConfig(t, gemini.DefaultEndpoint))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Model.Provider = "openai"
	cfg.Model.Name = gemini.DefaultModel
	if _, err := newChecker(cfg); err != nil {
		t.Fatalf("newChecker: %v", err)
	}
}
