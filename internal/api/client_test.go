package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investipet/investipet/internal/auth"
)

const profileBody = `{
	"email": "kid@example.com",
	"cash_balance": 10000,
	"coins_balance": 500,
	"xp_total": 120,
	"pet": {"name": "Bubbles", "species": "axolotl", "level": 2, "xp_current": 20, "stage": "egg", "hunger": 80, "equipped_items": []}
}`

func TestMe_AttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(profileBody))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "tok-a", Refresh: "tok-r"}))
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-a", gotAuth)
	assert.Equal(t, 120, me.XPTotal)
	assert.Equal(t, "Bubbles", me.Pet.Name)
}

func TestCall_RefreshesOnceOn401(t *testing.T) {
	var meCalls, refreshCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refresh_token"] != "old-refresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"access_token": "new-access", "refresh_token": "new-refresh", "token_type": "bearer"}`))
		case "/me":
			meCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer new-access" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "token expired"}`))
				return
			}
			w.Write([]byte(profileBody))
		}
	}))
	defer srv.Close()

	store := auth.NewMemStore(auth.Tokens{Access: "stale", Refresh: "old-refresh"})
	c := New(srv.URL, store)

	_, err := c.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), meCalls.Load(), "original call retried exactly once")
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, auth.Tokens{Access: "new-access", Refresh: "new-refresh"}, store.Tokens(), "refresh rewrites stored credentials")
}

func TestCall_RefreshFailureSurfacesAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "invalid refresh token"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := auth.NewMemStore(auth.Tokens{Access: "stale", Refresh: "bad"})
	c := New(srv.URL, store)

	_, err := c.Me(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, store.Tokens().Empty(), "failed refresh clears credentials")
}

func TestCall_NoRefreshTokenSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "not signed in"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{}))
	_, err := c.Me(context.Background())

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "not signed in", httpErr.Message)
}

func TestLogin_WrongPasswordKeepsServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{}))
	err := c.Login(context.Background(), "kid@example.com", "wrong")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "invalid credentials", httpErr.Message)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestCall_SecondUnauthorizedIsNotRetried(t *testing.T) {
	var meCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.Write([]byte(`{"access_token": "a2", "refresh_token": "r2", "token_type": "bearer"}`))
			return
		}
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "still no"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "a", Refresh: "r"}))
	_, err := c.Me(context.Background())

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, int32(2), meCalls.Load(), "exactly one retry after refresh")
}

func TestCall_ErrorMessageParsing(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail field", `{"detail": "lesson not found"}`, "lesson not found"},
		{"arbitrary json", `{"oops": true}`, `{"oops":true}`},
		{"unparseable body", `<html>`, "Not Found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "a", Refresh: "r"}))
			_, err := c.ListLessons(context.Background(), 1, 6)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tc.want, httpErr.Message)
		})
	}
}

func TestCall_NetworkErrorType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "a", Refresh: "r"}))
	_, err := c.Me(context.Background())

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestCall_MalformedShapeIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// items is the wrong type entirely.
		w.Write([]byte(`{"items": "nope", "page": 1, "page_size": 6, "total": 0, "total_pages": 1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "a", Refresh: "r"}))
	_, err := c.ListLessons(context.Background(), 1, 6)

	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestCheckAnswer_SendsContract(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"correct": false, "question_id": "q2", "correct_answer": "B"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "a", Refresh: "r"}))
	v, err := c.CheckAnswer(context.Background(), 7, "q2", "A")
	require.NoError(t, err)

	assert.Equal(t, "/lessons/7/check-answer", gotPath)
	assert.Equal(t, map[string]string{"question_id": "q2", "answer": "A"}, gotBody)
	assert.False(t, v.Correct)
	assert.Equal(t, "B", v.CorrectAnswer)
}

func TestSubmitLesson_SendsIdempotencyKey(t *testing.T) {
	var gotBody struct {
		Answers        map[string]string `json:"answers"`
		IdempotencyKey string            `json:"idempotency_key"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"completed": true, "score": 100}`))
	}))
	defer srv.Close()

	c := New(srv.URL, auth.NewMemStore(auth.Tokens{Access: "a", Refresh: "r"}))
	res, err := c.SubmitLesson(context.Background(), 3, map[string]string{"q1": "A"}, "key-123")
	require.NoError(t, err)

	assert.Equal(t, "key-123", gotBody.IdempotencyKey)
	assert.Equal(t, map[string]string{"q1": "A"}, gotBody.Answers)
	assert.Equal(t, float64(100), res.Score)
}

func TestLogin_StoresTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "la", "refresh_token": "lr", "token_type": "bearer"}`))
	}))
	defer srv.Close()

	store := auth.NewMemStore(auth.Tokens{})
	c := New(srv.URL, store)
	require.NoError(t, c.Login(context.Background(), "kid@example.com", "hunter22"))
	assert.Equal(t, auth.Tokens{Access: "la", Refresh: "lr"}, store.Tokens())
}
