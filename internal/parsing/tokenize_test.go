package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_TechnologyNames(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"plain words", "Built REST APIs", []string{"built", "rest", "apis"}},
		{"c plus plus and c sharp", "C++, C# and Java.", []string{"c++", "c#", "and", "java"}},
		{"dotted names", "Node.js with .NET 3.5", []string{"node.js", "with", ".net", "3.5"}},
		{"slash splits", "CI/CD pipelines", []string{"ci", "cd", "pipelines"}},
		{"hyphen splits", "real-time systems", []string{"real", "time", "systems"}},
		{"trailing punctuation", "Led the team.", []string{"led", "the", "team"}},
		{"apostrophe", "team's roadmap", []string{"team's", "roadmap"}},
		{"empty", "", []string{}},
		{"symbols only", " -- // ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.input))
		})
	}
}

func TestTokenize_PreservesOriginalText(t *testing.T) {
	tokens := Tokenize("Kubernetes Clusters")
	require.Len(t, tokens, 2)
	assert.Equal(t, "Kubernetes", tokens[0].Text)
	assert.Equal(t, "kubernetes", tokens[0].Norm)
	assert.Equal(t, Stem("clusters"), tokens[1].Stem)
}

func TestStem(t *testing.T) {
	assert.Equal(t, Stem("testing"), Stem("tests"))
	assert.Equal(t, Stem("deployment"), Stem("deployments"))
	assert.Equal(t, "c++", Stem("c++"))
	assert.Equal(t, "k8s", Stem("k8s"))
	assert.Equal(t, "go", Stem("go"))
	assert.NotEqual(t, Stem("java"), Stem("javascript"))
}

func TestTokenize_Lines(t *testing.T) {
	tokens := Tokenize("Machine\nLearning platform\r\n\nGo")
	require.Len(t, tokens, 4)
	lines := []int{tokens[0].Line, tokens[1].Line, tokens[2].Line, tokens[3].Line}
	assert.Equal(t, []int{0, 1, 1, 3}, lines)
}

func TestIsCommonWord(t *testing.T) {
	for _, word := range []string{"scale", "scaled", "reach", "reaching", "sprint", "string", "docket"} {
		assert.True(t, IsCommonWord(word), word)
	}
	for _, word := range []string{"scala", "react", "kafka", "kubernetis", "docker", "postgresql"} {
		assert.False(t, IsCommonWord(word), word)
	}
}
