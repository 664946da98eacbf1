package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextCapsChunks(t *testing.T) {
	// Paragraph breaks every ~200 chars so the splitter produces well over
	// maxChunks pieces from a long document.
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(strings.Repeat("resume experience detail ", 8))
		sb.WriteString("\n\n")
	}

	chunks, err := chunkText(sb.String())
	require.NoError(t, err)

	assert.LessOrEqual(t, len(chunks), maxChunks)
	assert.NotEmpty(t, chunks)
}

func TestChunkTextShortInput(t *testing.T) {
	chunks, err := chunkText("short resume text")
	require.NoError(t, err)
	assert.Equal(t, []string{"short resume text"}, chunks)
}

func TestChunkTextDeterministic(t *testing.T) {
	text := strings.Repeat("backend engineer with golang and postgres experience. ", 100)

	first, err := chunkText(text)
	require.NoError(t, err)
	second, err := chunkText(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankSelectsMostRelevant(t *testing.T) {
	chunks := []string{
		"hobbies include hiking and photography",
		"professional backend engineer experience with golang services",
		"education history and coursework",
		"built backend systems for a golang engineer team",
		"references available upon request",
	}

	top := Rank(chunks, "backend engineer golang", 2)

	assert.Equal(t, []string{chunks[1], chunks[3]}, top)
}

func TestRankPreservesOriginalOrder(t *testing.T) {
	chunks := []string{
		"golang engineer summary",
		"unrelated filler text here",
		"golang engineer projects",
		"golang engineer skills",
	}

	top := Rank(chunks, "golang engineer", 3)

	// All three matches score equally; selection must keep document order.
	assert.Equal(t, []string{chunks[0], chunks[2], chunks[3]}, top)
}

func TestRankFewerChunksThanRequested(t *testing.T) {
	chunks := []string{"only chunk"}
	assert.Equal(t, chunks, Rank(chunks, "anything", 3))
}

func TestRankDeterministic(t *testing.T) {
	chunks := []string{"alpha beta gamma", "beta gamma delta", "gamma delta epsilon", "delta epsilon zeta"}

	first := Rank(chunks, "gamma delta", 2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Rank(chunks, "gamma delta", 2))
	}
}
