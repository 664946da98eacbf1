// Package assistant implements the chat lifecycle: it owns every chat status
// transition, routes mediator decisions to side effects, and guarantees that
// each inbound message yields exactly one reply and at most one persisted
// turn.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"email-assistant/internal/database"
	"email-assistant/internal/extractor"
	"email-assistant/internal/mediator"
	"email-assistant/internal/store"

	"github.com/google/uuid"
)

// rankedChunks is how many resume chunks feed the compose prompt.
const rankedChunks = 3

type AttachmentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type ResumeExtractor interface {
	Extract(path string) ([]string, error)
}

type EmailComposer interface {
	IntroMessage(ctx context.Context, userName, userMessage string) string
	EmailBody(ctx context.Context, resumeChunks []string, subject, recipient string) string
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string, attachments ...string) error
}

type Assistant struct {
	store     *store.Store
	locks     *store.KeyedMutex
	fetcher   AttachmentFetcher
	extractor ResumeExtractor
	composer  EmailComposer
	mailer    EmailSender
}

func New(s *store.Store, fetcher AttachmentFetcher, ext ResumeExtractor, composer EmailComposer, mailer EmailSender) *Assistant {
	return &Assistant{
		store:     s,
		locks:     store.NewKeyedMutex(),
		fetcher:   fetcher,
		extractor: ext,
		composer:  composer,
		mailer:    mailer,
	}
}

// HandleMessage processes one inbound message and returns the reply to send.
// The reply is always usable, even when err is non-nil; err carries the
// internal failure for logging.
func (a *Assistant) HandleMessage(ctx context.Context, phone, body string, mediaURLs []string) (string, error) {
	user, err := a.store.FindUserByPhone(ctx, phone)
	if err != nil {
		return storeErrorReply, err
	}
	if user == nil || !user.IsMember {
		slog.Info("rejecting non-member", "phone", phone)
		return nonMemberReply, nil
	}

	// Serialize turns per phone so concurrent messages from one user cannot
	// create two active chats or dispatch the same email twice.
	a.locks.Lock(phone)
	defer a.locks.Unlock(phone)

	chat, err := a.store.FindActiveChat(ctx, user.Id)
	if err != nil {
		return storeErrorReply, err
	}

	if chat == nil {
		return a.startChat(ctx, user, body, mediaURLs)
	}
	return a.continueChat(ctx, user, chat, body, mediaURLs)
}

func (a *Assistant) startChat(ctx context.Context, user *database.User, body string, mediaURLs []string) (string, error) {
	chat, err := a.store.CreateChat(ctx, user.Id)
	if err != nil {
		return storeErrorReply, err
	}
	slog.Info("created chat", "chat_id", chat.Id, "user_id", user.Id)

	intro := a.composer.IntroMessage(ctx, user.Name, body)
	if err := a.store.AppendMessage(ctx, chat.Id, user.Id, body, intro, mediaURLs); err != nil {
		return storeErrorReply, err
	}
	return intro, nil
}

func (a *Assistant) continueChat(ctx context.Context, user *database.User, chat *database.Chat, body string, mediaURLs []string) (string, error) {
	history, err := a.store.ListMessages(ctx, chat.Id)
	if err != nil {
		return storeErrorReply, err
	}

	decision := mediator.Classify(history, body, mediaURLs)
	slog.Info("classified turn", "chat_id", chat.Id, "decision", decision.Kind.String())

	var reply string
	var ended bool

	switch decision.Kind {
	case mediator.Ready:
		reply, ended = a.dispatchEmail(ctx, decision)
	case mediator.MissingAttachment:
		reply = missingAttachmentReply
	case mediator.MissingInfo:
		reply = missingInfoReply
	default:
		reply = unrecognizedReply
	}

	if ended {
		if err := a.store.EndChat(ctx, chat.Id); err != nil {
			return storeErrorReply, err
		}
	}
	if err := a.store.AppendMessage(ctx, chat.Id, user.Id, body, reply, mediaURLs); err != nil {
		return storeErrorReply, err
	}
	return reply, nil
}

// dispatchEmail runs the irreversible pipeline: download, extract, compose,
// send. Download and extraction complete before the send; the temp file is
// removed on every exit path. Returns the reply plus whether the chat ended.
func (a *Assistant) dispatchEmail(ctx context.Context, decision mediator.Decision) (string, bool) {
	path, err := a.fetcher.Fetch(ctx, decision.AttachmentURL)
	if err != nil {
		slog.Error("attachment download failed", "url", decision.AttachmentURL, "error", err)
		return downloadErrorReply, false
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Error("error cleaning up temp file", "path", path, "error", err)
		}
	}()

	chunks, err := a.extractor.Extract(path)
	if err != nil {
		// A resume we cannot parse still gets sent, with the template body.
		slog.Warn("resume extraction failed, composing without resume text", "path", path, "error", err)
		chunks = nil
	}
	if len(chunks) > 0 {
		query := fmt.Sprintf("job application for %s", decision.Subject)
		chunks = extractor.Rank(chunks, query, rankedChunks)
	}

	emailBody := a.composer.EmailBody(ctx, chunks, decision.Subject, decision.Email)

	if err := a.mailer.Send(ctx, decision.Email, decision.Subject, emailBody, path); err != nil {
		slog.Error("email send failed", "to", decision.Email, "error", err)
		return sendErrorReply, false
	}

	return confirmationReply(decision.Email), true
}

// Terminate ends a chat explicitly, outside the normal send flow. Used by the
// admin surface; status transitions stay owned by this package.
func (a *Assistant) Terminate(ctx context.Context, chatId uuid.UUID) error {
	chat, err := a.store.GetChat(ctx, chatId)
	if err != nil {
		return err
	}
	if chat.Status != database.ChatActive {
		return fmt.Errorf("chat %v is not active", chatId)
	}
	return a.store.EndChat(ctx, chatId)
}
