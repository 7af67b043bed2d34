package config

import "testing"

func TestServerWriteTimeoutCoversPipeline(t *testing.T) {
	if WriteTimeout <= PipelineTimeout {
		t.Errorf("write timeout %v must exceed the pipeline timeout %v or synchronous responses get cut off",
			WriteTimeout, PipelineTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		GeminiAPIKey:  "key",
		AuthToken:     "token",
		EmbeddingDim:  EmbeddingOutputDimensionality,
		MaxChunkSize:  MaxChunkSize,
		MinChunkChars: MinChunkChars,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.GeminiAPIKey = "" }},
		{"missing auth token", func(c *Config) { c.AuthToken = "" }},
		{"zero embedding dim", func(c *Config) { c.EmbeddingDim = 0 }},
		{"chunk size below min chars", func(c *Config) { c.MaxChunkSize = c.MinChunkChars }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidate_AuthBypass(t *testing.T) {
	cfg := Config{
		GeminiAPIKey:  "key",
		NoAuthBypass:  true,
		EmbeddingDim:  EmbeddingOutputDimensionality,
		MaxChunkSize:  MaxChunkSize,
		MinChunkChars: MinChunkChars,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("bypass config rejected: %v", err)
	}
}
