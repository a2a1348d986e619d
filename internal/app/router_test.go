package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"lexi_backend/internal/model"
	"lexi_backend/internal/testutil"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"gorm.io/gorm"
)

type testServer struct {
	app *App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	return &testServer{app: New(testutil.Config(), db, nil), db: db}
}

// do sends the request with an optional JSON body and session token.
func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "lexi.session-token", Value: token})
	}

	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (%s)", err, env.Data)
		}
	}
}

// topLevelKeys lists the keys of a JSON object body, sorted.
func topLevelKeys(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, w.Body.String())
	}
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/health", nil, "")
	expectStatus(t, w, http.StatusOK)
}

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ani", "email": "ani@example.com", "password": "rahasia123",
	}, "")
	expectStatus(t, w, http.StatusCreated)

	w = s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ani", "email": "ani@example.com", "password": "rahasia123",
	}, "")
	expectStatus(t, w, http.StatusConflict)

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ani@example.com", "password": "nope-nope",
	}, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ani@example.com", "password": "rahasia123",
	}, "")
	expectStatus(t, w, http.StatusOK)

	var login struct {
		Role string `json:"role"`
	}
	decode(t, w, &login)
	if login.Role != "USER" {
		t.Fatalf("expected USER role, got %q", login.Role)
	}

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "lexi.session-token" {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("expected a session cookie")
	}
	if !session.HttpOnly || session.SameSite != http.SameSiteLaxMode || session.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", session)
	}
	if session.Secure {
		t.Fatal("plain http login must not set a Secure cookie")
	}

	w = s.do(http.MethodGet, "/api/auth/me", nil, session.Value)
	expectStatus(t, w, http.StatusOK)
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decode(t, w, &me)
	if me.Email != "ani@example.com" || me.Role != "USER" {
		t.Fatalf("unexpected me: %+v", me)
	}

	w = s.do(http.MethodPost, "/api/auth/logout", nil, session.Value)
	expectStatus(t, w, http.StatusOK)
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "lexi.session-token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected logout to expire the session cookie")
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ani", "email": "not-an-email", "password": "rahasia123",
	}, "")
	expectStatus(t, w, http.StatusBadRequest)
}

func TestQuizFlow(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, s.db, "Ani", "ani@example.com", model.RoleUser)
	quiz := testutil.AnimalBasics(t, s.db, admin.ID)
	token := testutil.Token(t, learner)

	w := s.do(http.MethodGet, fmt.Sprintf("/api/quiz/start?quizId=%d", quiz.ID), nil, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = s.do(http.MethodGet, "/api/quiz/start?quizId=abc", nil, token)
	expectStatus(t, w, http.StatusBadRequest)

	w = s.do(http.MethodGet, "/api/quiz/start?quizId=999", nil, token)
	expectStatus(t, w, http.StatusNotFound)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/quiz/start?quizId=%d", quiz.ID), nil, token)
	expectStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), "isCorrect") {
		t.Fatalf("start leaks the answer key: %s", w.Body.String())
	}

	correct := quiz.Questions[0].CorrectChoiceID()
	submit := map[string]interface{}{
		"quizId":          quiz.ID,
		"durationSeconds": 42,
		"answers": []map[string]interface{}{
			{"questionId": quiz.Questions[0].ID, "choiceId": correct},
		},
	}
	w = s.do(http.MethodPost, "/api/quiz/submit", submit, token)
	expectStatus(t, w, http.StatusOK)
	var result struct {
		AttemptID uint `json:"attemptId"`
		Score     int  `json:"score"`
		Total     int  `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode submit: %v (%s)", err, w.Body.String())
	}
	if result.AttemptID == 0 || result.Score != 1 || result.Total != 1 {
		t.Fatalf("expected 1/1, got %+v", result)
	}

	w = s.do(http.MethodPost, "/api/quiz/submit", submit, token)
	expectStatus(t, w, http.StatusConflict)

	w = s.do(http.MethodGet, "/api/leaderboard", nil, "")
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"userName":"Ani"`) {
		t.Fatalf("leaderboard misses the attempt: %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/leaderboard", nil, "")
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Ani") || !strings.Contains(w.Body.String(), "Animal Basics") {
		t.Fatalf("leaderboard page misses the attempt: %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/quizzes", nil, token)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"attempted":true`) {
		t.Fatalf("expected the quiz to be flagged as attempted: %s", w.Body.String())
	}
}

func TestQuizPlayBodiesAreBare(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, s.db, "Ani", "ani@example.com", model.RoleUser)
	quiz := testutil.AnimalBasics(t, s.db, admin.ID)
	token := testutil.Token(t, learner)

	w := s.do(http.MethodGet, fmt.Sprintf("/api/quiz/start?quizId=%d", quiz.ID), nil, token)
	expectStatus(t, w, http.StatusOK)
	if got := strings.Join(topLevelKeys(t, w), ","); got != "alreadyAttempted,questions,quiz" {
		t.Fatalf("unexpected start keys %q", got)
	}

	w = s.do(http.MethodPost, "/api/quiz/submit", map[string]interface{}{
		"quizId":          quiz.ID,
		"durationSeconds": 10,
		"answers":         []map[string]interface{}{{"questionId": quiz.Questions[0].ID}},
	}, token)
	expectStatus(t, w, http.StatusOK)
	if got := strings.Join(topLevelKeys(t, w), ","); got != "attemptId,score,total" {
		t.Fatalf("unexpected submit keys %q", got)
	}

	// errors keep the envelope
	w = s.do(http.MethodGet, "/api/quiz/start?quizId=999", nil, token)
	expectStatus(t, w, http.StatusNotFound)
	if got := strings.Join(topLevelKeys(t, w), ","); got != "code,message" && got != "code,data,message" {
		t.Fatalf("unexpected error keys %q", got)
	}
}

func TestLeaderboardHidesEmails(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, s.db, "Ani", "ani.private@example.com", model.RoleUser)
	quiz := testutil.AnimalBasics(t, s.db, admin.ID)
	token := testutil.Token(t, learner)

	w := s.do(http.MethodPost, "/api/quiz/submit", map[string]interface{}{
		"quizId":  quiz.ID,
		"answers": []map[string]interface{}{{"questionId": quiz.Questions[0].ID}},
	}, token)
	expectStatus(t, w, http.StatusOK)

	for _, path := range []string{"/api/leaderboard", "/leaderboard"} {
		w = s.do(http.MethodGet, path, nil, "")
		expectStatus(t, w, http.StatusOK)
		body := w.Body.String()
		if !strings.Contains(body, "Ani") {
			t.Fatalf("%s misses the attempt: %s", path, body)
		}
		if strings.Contains(body, "ani.private") || strings.Contains(body, "userEmail") {
			t.Fatalf("%s exposes contact details: %s", path, body)
		}
	}
}

func TestSubmitRejectsForeignQuestion(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, s.db, "Ani", "ani@example.com", model.RoleUser)
	quiz := testutil.AnimalBasics(t, s.db, admin.ID)

	w := s.do(http.MethodPost, "/api/quiz/submit", map[string]interface{}{
		"quizId":  quiz.ID,
		"answers": []map[string]interface{}{{"questionId": 9999}},
	}, testutil.Token(t, learner))
	expectStatus(t, w, http.StatusBadRequest)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, s.db, "Ani", "ani@example.com", model.RoleUser)
	category := &model.Category{Name: "Hewan", Slug: "hewan"}
	if err := s.db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	path := fmt.Sprintf("/api/admin/categories/%d", category.ID)

	w := s.do(http.MethodDelete, path, nil, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = s.do(http.MethodDelete, path, nil, testutil.Token(t, learner))
	expectStatus(t, w, http.StatusForbidden)

	var n int64
	s.db.Model(&model.Category{}).Count(&n)
	if n != 1 {
		t.Fatal("forbidden delete must not remove the category")
	}

	w = s.do(http.MethodDelete, path, nil, testutil.Token(t, admin))
	expectStatus(t, w, http.StatusOK)
	s.db.Model(&model.Category{}).Count(&n)
	if n != 0 {
		t.Fatal("expected the category to be deleted")
	}

	w = s.do(http.MethodDelete, path, nil, testutil.Token(t, admin))
	expectStatus(t, w, http.StatusNotFound)
}

func TestAdminQuizValidation(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	token := testutil.Token(t, admin)

	quiz := map[string]interface{}{
		"title": "Kuis",
		"questions": []map[string]interface{}{{
			"prompt": "Asu?",
			"order":  1,
			"choices": []map[string]interface{}{
				{"text": "Anjing", "isCorrect": true},
				{"text": "Ayam", "isCorrect": true},
			},
		}},
	}
	w := s.do(http.MethodPost, "/api/admin/quizzes", quiz, token)
	expectStatus(t, w, http.StatusBadRequest)

	quiz["questions"].([]map[string]interface{})[0]["choices"] = []map[string]interface{}{
		{"text": "Anjing", "isCorrect": true},
		{"text": "Ayam", "isCorrect": false},
	}
	w = s.do(http.MethodPost, "/api/admin/quizzes", quiz, token)
	expectStatus(t, w, http.StatusCreated)

	w = s.do(http.MethodGet, "/api/admin/dashboard", nil, token)
	expectStatus(t, w, http.StatusOK)
	var stats struct {
		AvailableQuizzes int `json:"availableQuizzes"`
	}
	decode(t, w, &stats)
	if stats.AvailableQuizzes != 1 {
		t.Fatalf("expected 1 available quiz, got %d", stats.AvailableQuizzes)
	}
}

func TestPageGuard(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, "Admin", "admin@example.com", model.RoleAdmin)
	learner := testutil.CreateUser(t, s.db, "Ani", "ani@example.com", model.RoleUser)

	w := s.do(http.MethodGet, "/admin", nil, "")
	expectStatus(t, w, http.StatusFound)
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?") || !strings.Contains(loc, "reason=admin") {
		t.Fatalf("unexpected redirect %q", loc)
	}

	w = s.do(http.MethodGet, "/admin", nil, testutil.Token(t, learner))
	expectStatus(t, w, http.StatusFound)
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected learner to be sent to /dashboard, got %q", loc)
	}

	w = s.do(http.MethodGet, "/admin", nil, testutil.Token(t, admin))
	expectStatus(t, w, http.StatusOK)

	w = s.do(http.MethodGet, "/dashboard", nil, testutil.Token(t, learner))
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Ani") {
		t.Fatalf("dashboard page does not greet the user: %s", w.Body.String())
	}
}
