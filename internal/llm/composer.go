package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const introSystemPrompt = `You are an email assistant that helps users send job application emails with their resume.
Guide the user through the process: ask for the recipient's email address, the email subject, and remind them to attach their resume as a PDF.
Be polite, professional, and concise.`

const composeSystemPrompt = `You are an expert at creating personalized job application emails.
Analyze the provided resume content, extract key skills, experiences, and qualifications, and generate a professional email tailored to the position in the subject.
Keep the email concise (250-350 words) with a polite closing and call to action.
Do not include placeholders like [Company Name], do not repeat the subject line in the body, and do not include instructions or notes in the output.`

// resumeTextLimit caps how much resume text goes into the compose prompt.
const resumeTextLimit = 10000

// Composer builds the user-facing texts that need a language model: the chat
// intro message and the application email body. Every method degrades to a
// fixed template when generation fails, so callers always get usable text.
type Composer struct {
	gen        Generator
	senderName string
}

func NewComposer(gen Generator, senderName string) *Composer {
	return &Composer{gen: gen, senderName: senderName}
}

func (c *Composer) IntroMessage(ctx context.Context, userName, userMessage string) string {
	prompt := fmt.Sprintf(`User: %s

The user's name is %s. Generate an introductory message that greets the user by name, explains that you can help them send job application emails, and asks for the recipient's email address, the email subject, and their resume as a PDF attachment.`,
		userMessage, userName)

	intro, err := c.gen.Generate(ctx, introSystemPrompt, prompt)
	if err != nil || strings.TrimSpace(intro) == "" {
		slog.Warn("intro generation failed, using fixed intro", "error", err)
		return defaultIntro(userName)
	}
	return intro
}

func (c *Composer) EmailBody(ctx context.Context, resumeChunks []string, subject, recipient string) string {
	if len(resumeChunks) == 0 {
		slog.Warn("no resume text available, using default email template")
		return c.defaultEmailBody()
	}

	resumeText := strings.Join(resumeChunks, " ")
	if len(resumeText) > resumeTextLimit {
		// Walk back to a rune boundary so the cap never splits a multi-byte
		// character.
		cut := resumeTextLimit
		for cut > 0 && !utf8.RuneStart(resumeText[cut]) {
			cut--
		}
		resumeText = resumeText[:cut] + "..."
	}

	position := positionFromSubject(subject)
	if recipient == "" {
		recipient = "Hiring Manager"
	}

	prompt := fmt.Sprintf(`Based on the following resume content, create a personalized job application email for a %s position.

RESUME CONTENT:
%s

JOB POSITION: %s

RECIPIENT: %s

Structure: a polite greeting, an opening expressing interest in the position, education and relevant experience, key skills, a few project highlights, an invitation to review the attached resume, and a professional closing signed %s.`,
		position, resumeText, position, recipient, c.senderName)

	body, err := c.gen.Generate(ctx, composeSystemPrompt, prompt)
	if err != nil || strings.TrimSpace(body) == "" {
		slog.Warn("email body generation failed, using default template", "error", err)
		return c.defaultEmailBody()
	}
	return body
}

// positionFromSubject pulls the position out of subjects like
// "Application for Backend Engineer".
func positionFromSubject(subject string) string {
	lower := strings.ToLower(subject)
	if strings.Contains(lower, "position") || strings.Contains(lower, "application") {
		if _, after, found := strings.Cut(lower, "for "); found {
			offset := len(subject) - len(after)
			return strings.TrimSpace(subject[offset:])
		}
	}
	return subject
}

func defaultIntro(userName string) string {
	return fmt.Sprintf(`Hi %s! I'm your email assistant. I can help you send job application emails with your resume attached.

To get started, please send me:
1. The recipient's email address
2. The email subject
3. Your resume as a PDF attachment`, userName)
}

func (c *Composer) defaultEmailBody() string {
	return fmt.Sprintf(`Dear Hiring Manager,

I am excited to apply for the position mentioned in the subject line. Please find my resume attached for your consideration.

Best regards,
%s`, c.senderName)
}
