// Package extractor turns a resume PDF into a bounded set of text chunks for
// prompt construction. The source file is read once and never modified.
package extractor

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	chunkSize    = 2000
	chunkOverlap = 200

	// maxChunks bounds downstream prompt size.
	maxChunks = 5
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract converts the PDF at path into at most maxChunks text chunks. The
// output is deterministic for identical input files.
func (e *Extractor) Extract(path string) ([]string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading pdf %s: %w", path, err)
	}

	text, err := pdfToMarkdown(contents)
	if err != nil {
		return nil, fmt.Errorf("error extracting text from %s: %w", path, err)
	}

	return chunkText(text)
}

func pdfToMarkdown(contents []byte) (string, error) {
	doc, err := fitz.NewFromMemory(contents)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var content strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		html, err := doc.HTML(i, true)
		if err != nil {
			return "", err
		}

		converter := md.NewConverter("", true, nil)
		text, err := converter.ConvertString(html)
		if err != nil {
			return "", err
		}

		// Strip embedded base64 images, they bloat the text without adding
		// anything a prompt can use.
		content.WriteString(removeInlineImages(text))
		content.WriteString("\n\n")
	}

	return content.String(), nil
}

var inlineImagePattern = regexp.MustCompile(`!\[\]\(data:image/[^)]+\)`)

func removeInlineImages(content string) string {
	return inlineImagePattern.ReplaceAllString(content, "")
}

func chunkText(text string) ([]string, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("error splitting text: %w", err)
	}

	if len(chunks) > maxChunks {
		slog.Warn("truncating resume chunks", "total", len(chunks), "kept", maxChunks)
		chunks = chunks[:maxChunks]
	}
	return chunks, nil
}

// Rank returns the n chunks most relevant to the query, scored by term
// overlap. Ties keep original chunk order so the result is deterministic.
func Rank(chunks []string, query string, n int) []string {
	if len(chunks) <= n {
		return chunks
	}

	queryTerms := terms(query)

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(chunks))
	for i, chunk := range chunks {
		chunkTerms := terms(chunk)
		score := 0
		for term := range queryTerms {
			if chunkTerms[term] {
				score++
			}
		}
		ranked[i] = scored{index: i, score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	top := ranked[:n]
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	out := make([]string, n)
	for i, s := range top {
		out[i] = chunks[s.index]
	}
	return out
}

func terms(text string) map[string]bool {
	set := make(map[string]bool)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		field = strings.Trim(field, ".,;:!?()[]\"'")
		if len(field) > 2 {
			set[field] = true
		}
	}
	return set
}
