package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/internal/types"
)

func TestClassifyCode(t *testing.T) {
	dom, err := Classifier{}.Classify(context.Background(),
		"debug the function that parses the api response and refactor the module")

	require.NoError(t, err)
	assert.Equal(t, types.DomainCode, dom.Domain)
	assert.GreaterOrEqual(t, dom.Confidence, 90)
}

func TestClassifyWriting(t *testing.T) {
	dom, err := Classifier{}.Classify(context.Background(),
		"edit this blog article for tone and grammar")

	require.NoError(t, err)
	assert.Equal(t, types.DomainWriting, dom.Domain)
}

func TestClassifyAnalysis(t *testing.T) {
	dom, err := Classifier{}.Classify(context.Background(),
		"analyze the sales data for a seasonal trend")

	require.NoError(t, err)
	assert.Equal(t, types.DomainAnalysis, dom.Domain)
}

func TestClassifyResearch(t *testing.T) {
	dom, err := Classifier{}.Classify(context.Background(),
		"survey the literature on sleep and collect peer reviewed sources")

	require.NoError(t, err)
	assert.Equal(t, types.DomainResearch, dom.Domain)
}

func TestNoMatchIsGeneralLowConfidence(t *testing.T) {
	dom, err := Classifier{}.Classify(context.Background(), "help me with dinner plans")

	require.NoError(t, err)
	assert.Equal(t, types.DomainGeneral, dom.Domain)
	assert.Equal(t, 30, dom.Confidence)
}

func TestConfidenceGrowsWithMatches(t *testing.T) {
	one, err := Classifier{}.Classify(context.Background(), "fix the code")
	require.NoError(t, err)
	many, err := Classifier{}.Classify(context.Background(),
		"fix the code, debug the function, refactor the module, deploy the server")
	require.NoError(t, err)

	assert.Greater(t, many.Confidence, one.Confidence)
	assert.LessOrEqual(t, many.Confidence, 95)
}

func TestClassifyHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Classifier{}.Classify(ctx, "fix the code")
	assert.ErrorIs(t, err, context.Canceled)
}
