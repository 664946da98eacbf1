// Package mediator classifies whether a chat has gathered everything needed
// to send a job application email: a recipient address, a subject, and a PDF
// attachment on the current turn. It is a pure function of its inputs and
// never mutates state.
package mediator

import (
	"regexp"
	"strings"

	"email-assistant/internal/database"
)

type Kind int

const (
	// Unrecognized is the fallback when no determination can be made.
	Unrecognized Kind = iota
	// Ready means email, subject and a current-turn attachment are all present.
	Ready
	// MissingAttachment means email and subject were found but the current
	// turn carries no attachment.
	MissingAttachment
	// MissingInfo means the email or the subject (or both) is still missing.
	MissingInfo
)

func (k Kind) String() string {
	switch k {
	case Ready:
		return "ready"
	case MissingAttachment:
		return "missing_attachment"
	case MissingInfo:
		return "missing_info"
	default:
		return "unrecognized"
	}
}

type Decision struct {
	Kind Kind

	// Set only when Kind == Ready.
	Email         string
	Subject       string
	AttachmentURL string
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// subjectMarker matches explicit phrasing like "subject: X", "subject is X",
// "the subject should be X".
var subjectMarker = regexp.MustCompile(`(?i)\bsubject\b[^:="']*?(?::|=|\bis\b|\bshould be\b)\s*(.+)`)

// Classify scans the chat history plus the current message, oldest first with
// the current message last, and reports the next step. The first email and
// first subject found in scan order win, so identical inputs always produce
// identical decisions.
//
// Attachment presence is judged strictly against the current turn's media:
// even if every field was provided earlier, Ready is never returned when
// mediaURLs is empty.
func Classify(history []database.Message, current string, mediaURLs []string) Decision {
	texts := make([]string, 0, len(history)+1)
	for _, turn := range history {
		texts = append(texts, turn.UserMessage)
	}
	texts = append(texts, current)

	var email, subject string
	for _, text := range texts {
		if email == "" {
			if m := emailPattern.FindString(text); m != "" {
				email = m
			}
		}
		if subject == "" {
			if s, ok := findSubject(text); ok {
				subject = s
			}
		}
	}

	if email != "" && subject != "" {
		if len(mediaURLs) == 0 {
			return Decision{Kind: MissingAttachment}
		}
		return Decision{
			Kind:          Ready,
			Email:         email,
			Subject:       subject,
			AttachmentURL: mediaURLs[0],
		}
	}

	if blank(texts) && len(mediaURLs) == 0 {
		return Decision{Kind: Unrecognized}
	}
	return Decision{Kind: MissingInfo}
}

func findSubject(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if m := subjectMarker.FindStringSubmatch(line); m != nil {
			if s := cleanSubject(m[1]); s != "" {
				return s, true
			}
		}

		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "application for ") || strings.HasPrefix(lower, "regarding ") {
			if s := cleanSubject(trimmed); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func cleanSubject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimRight(s, ".!,;")
	return strings.TrimSpace(s)
}

func blank(texts []string) bool {
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}
