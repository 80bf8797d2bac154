package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/investipet/investipet/internal/auth"
)

// Login exchanges email/password for a credential pair and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair TokenPair
	body := map[string]string{"email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/auth/login", body, tokenPairSchema, &pair); err != nil {
		return err
	}
	return c.creds.Set(auth.Tokens{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

// Register creates an account with a named pet and stores the issued
// credential pair.
func (c *Client) Register(ctx context.Context, email, password, petName string) error {
	var pair TokenPair
	body := map[string]string{"email": email, "password": password, "pet_name": petName}
	if err := c.call(ctx, http.MethodPost, "/auth/register", body, tokenPairSchema, &pair); err != nil {
		return err
	}
	return c.creds.Set(auth.Tokens{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

// ListLessons fetches one page of the lesson list.
func (c *Client) ListLessons(ctx context.Context, page, pageSize int) (*LessonPage, error) {
	var out LessonPage
	path := fmt.Sprintf("/lessons?page=%d&page_size=%d", page, pageSize)
	if err := c.call(ctx, http.MethodGet, path, nil, lessonPageSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckAnswer asks the server to judge a single drafted answer.
func (c *Client) CheckAnswer(ctx context.Context, lessonID int, questionID, answer string) (*Verdict, error) {
	var out Verdict
	path := fmt.Sprintf("/lessons/%d/check-answer", lessonID)
	body := map[string]string{"question_id": questionID, "answer": answer}
	if err := c.call(ctx, http.MethodPost, path, body, verdictSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitLesson submits a finished attempt. The idempotency key makes a
// retried request observably safe server-side: the server deduplicates the
// reward grant by (lesson, key).
func (c *Client) SubmitLesson(ctx context.Context, lessonID int, answers map[string]string, idempotencyKey string) (*SubmitResult, error) {
	var out SubmitResult
	path := fmt.Sprintf("/lessons/%d/submit", lessonID)
	body := map[string]any{"answers": answers, "idempotency_key": idempotencyKey}
	if err := c.call(ctx, http.MethodPost, path, body, submitResultSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the authoritative profile snapshot.
func (c *Client) Me(ctx context.Context) (*ProfileSnapshot, error) {
	var out ProfileSnapshot
	if err := c.call(ctx, http.MethodGet, "/me", nil, profileSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the stored credentials. Purely local; the server keeps no
// session state beyond token expiry.
func (c *Client) Logout() error {
	return c.creds.Clear()
}
