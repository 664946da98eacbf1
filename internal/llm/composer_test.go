package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

type fakeGenerator struct {
	response string
	err      error

	lastSystem string
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestIntroMessage(t *testing.T) {
	gen := &fakeGenerator{response: "Hello Zain, I can help you apply for jobs."}
	c := NewComposer(gen, "Zain Raza")

	intro := c.IntroMessage(context.Background(), "Zain", "Hi there")

	assert.Equal(t, gen.response, intro)
	assert.Contains(t, gen.lastPrompt, "Zain")
	assert.Contains(t, gen.lastPrompt, "Hi there")
}

func TestIntroMessageFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	c := NewComposer(gen, "Zain Raza")

	intro := c.IntroMessage(context.Background(), "Zain", "Hi")

	assert.Contains(t, intro, "Hi Zain!")
	assert.Contains(t, intro, "resume as a PDF attachment")
}

func TestIntroMessageFallsBackOnBlankOutput(t *testing.T) {
	gen := &fakeGenerator{response: "   \n"}
	c := NewComposer(gen, "Zain Raza")

	intro := c.IntroMessage(context.Background(), "Zain", "Hi")
	assert.Contains(t, intro, "Hi Zain!")
}

func TestEmailBody(t *testing.T) {
	gen := &fakeGenerator{response: "Dear recruiter, I am applying..."}
	c := NewComposer(gen, "Zain Raza")

	body := c.EmailBody(context.Background(), []string{"golang experience", "backend projects"}, "Application for Backend Engineer", "recruiter@acme.com")

	assert.Equal(t, gen.response, body)
	assert.Contains(t, gen.lastPrompt, "golang experience")
	assert.Contains(t, gen.lastPrompt, "Backend Engineer")
	assert.Contains(t, gen.lastPrompt, "recruiter@acme.com")
	assert.Contains(t, gen.lastPrompt, "Zain Raza")
}

func TestEmailBodyNoResumeText(t *testing.T) {
	gen := &fakeGenerator{response: "should not be used"}
	c := NewComposer(gen, "Zain Raza")

	body := c.EmailBody(context.Background(), nil, "Application for Backend Engineer", "recruiter@acme.com")

	assert.Contains(t, body, "Dear Hiring Manager")
	assert.Contains(t, body, "Zain Raza")
	assert.Empty(t, gen.lastPrompt, "generator must not run without resume text")
}

func TestEmailBodyFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	c := NewComposer(gen, "Zain Raza")

	body := c.EmailBody(context.Background(), []string{"chunk"}, "Application for Backend Engineer", "recruiter@acme.com")
	assert.Contains(t, body, "Dear Hiring Manager")
}

func TestEmailBodyCapsResumeText(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	c := NewComposer(gen, "Zain Raza")

	huge := strings.Repeat("x", resumeTextLimit+5000)
	c.EmailBody(context.Background(), []string{huge}, "Application for Backend Engineer", "recruiter@acme.com")

	assert.Less(t, len(gen.lastPrompt), resumeTextLimit+2000)
}

func TestEmailBodyTruncatesOnRuneBoundary(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	c := NewComposer(gen, "Zain Raza")

	// Three-byte runes with the cap not divisible by three, so the byte cap
	// lands mid-rune unless the truncation walks back to a boundary.
	huge := strings.Repeat("简", resumeTextLimit)
	c.EmailBody(context.Background(), []string{huge}, "Application for Backend Engineer", "recruiter@acme.com")

	assert.True(t, utf8.ValidString(gen.lastPrompt))
}

func TestPositionFromSubject(t *testing.T) {
	tests := []struct {
		subject  string
		expected string
	}{
		{"Application for Backend Engineer", "Backend Engineer"},
		{"Application For Python Developer Position", "Python Developer Position"},
		{"Backend Engineer", "Backend Engineer"},
		{"Quarterly report", "Quarterly report"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, positionFromSubject(test.subject), "subject: %s", test.subject)
	}
}
