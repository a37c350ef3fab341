package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/assetiq/internal/catalog"
	"github.com/jask/assetiq/internal/config"
	"github.com/jask/assetiq/internal/llm"
)

func TestNewProvider(t *testing.T) {
	cat := catalog.Default()

	p, err := newProvider(config.LLMConfig{Provider: "OpenAI", Model: "gpt-4o"}, "sk-test", cat)
	require.NoError(t, err)
	oa, ok := p.(*llm.OpenAIProvider)
	require.True(t, ok)
	require.Equal(t, "gpt-4o", oa.Model())

	p, err = newProvider(config.LLMConfig{Provider: "offline"}, "", cat)
	require.NoError(t, err)
	require.IsType(t, &llm.OfflineProvider{}, p)

	_, err = newProvider(config.LLMConfig{Provider: "gemini"}, "", cat)
	require.Error(t, err)
}
