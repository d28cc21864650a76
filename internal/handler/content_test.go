package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edugen/internal/app"
	"edugen/internal/domain"
	"edugen/internal/dto"
	"edugen/internal/handler"
	"edugen/internal/middleware"
	"edugen/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) Generate(ctx context.Context, form domain.FormData) (*domain.GeneratedContent, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedContent), args.Error(1)
}

type testEnv struct {
	app  *fiber.App
	gen  *MockContentGenerator
	bank *store.QuestionBank
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	kv := store.NewMemoryKV()
	bank := store.NewQuestionBank(kv)
	bank.Load(context.Background())
	gen := new(MockContentGenerator)

	a := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(a.Group("/api"), handler.NewContentHandler(app.NewController(gen, bank), kv, "memory"))
	return &testEnv{app: a, gen: gen, bank: bank}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func quizQuestions(n int) []domain.QuizQuestion {
	qs := make([]domain.QuizQuestion, n)
	for i := range qs {
		qs[i] = domain.QuizQuestion{
			QuestionText:       fmt.Sprintf("Q%d", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: 1,
		}
	}
	return qs
}

func generateBody(requestType string) dto.GenerateRequest {
	return dto.GenerateRequest{
		Board:       "CBSE",
		ClassLevel:  "7th",
		Subject:     "Science",
		Topic:       "Photosynthesis",
		RequestType: requestType,
		Language:    "ENGLISH",
		Difficulty:  "INTERMEDIATE",
	}
}

func TestGetOptions(t *testing.T) {
	env := setup(t)
	resp := env.do(t, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	opts := decode[dto.OptionsResponse](t, resp)
	assert.Len(t, opts.RequestTypes, 8)
	assert.Len(t, opts.ClassLevels, 12)
	assert.Equal(t, "Bilingual (English + Hindi)", opts.Languages[2].Label)
	assert.Equal(t, domain.BoardCBSE, opts.Defaults.Board)
}

func TestGenerate_QuizFlow(t *testing.T) {
	env := setup(t)
	env.gen.On("Generate", mock.Anything, mock.MatchedBy(func(f domain.FormData) bool {
		return f.Topic == "Photosynthesis" && f.RequestType == domain.RequestQuiz
	})).Return(domain.NewQuizContent(quizQuestions(4)), nil).Once()

	resp := env.do(t, http.MethodPost, "/api/generate", generateBody("QUIZ"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.StateResponse](t, resp)
	assert.Equal(t, app.PhaseReady, st.Phase)
	assert.Len(t, st.Content.Questions, 4)
	assert.False(t, st.Exportable)

	resp = env.do(t, http.MethodPost, "/api/quiz/score", dto.ScoreRequest{Selections: []int{1, 0, 1, -1}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2/4", decode[dto.ScoreResponse](t, resp).Display)

	resp = env.do(t, http.MethodGet, "/api/export?format=pdf", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/quiz/save", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[domain.SavedQuiz](t, resp)
	assert.Equal(t, "Photosynthesis", saved.Topic)
	assert.Len(t, env.bank.List(), 1)
}

func TestGenerate_FailureReturnsErrorState(t *testing.T) {
	env := setup(t)
	env.gen.On("Generate", mock.Anything, mock.Anything).
		Return(nil, domain.NewGenerationError(domain.GenerationNetwork, errors.New("dial tcp: timeout"))).Once()

	resp := env.do(t, http.MethodPost, "/api/generate", generateBody("LESSON_PLAN"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.StateResponse](t, resp)
	assert.Equal(t, app.PhaseError, st.Phase)
	assert.Contains(t, st.Error, "Could not reach")
	assert.Nil(t, st.Content)
}

func TestGenerate_Validation(t *testing.T) {
	env := setup(t)
	body := generateBody("BOARD_QUESTION_PAPER")
	body.Year = "20x4"

	resp := env.do(t, http.MethodPost, "/api/generate", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	verr := decode[middleware.ValidationErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_ERROR", verr.Code)
	env.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestMarkdownExportAndHTML(t *testing.T) {
	env := setup(t)
	env.gen.On("Generate", mock.Anything, mock.Anything).
		Return(domain.NewMarkdownContent("## Objectives\n\n- Learn **light**\n"), nil).Once()

	resp := env.do(t, http.MethodPost, "/api/generate", generateBody("LESSON_PLAN"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.StateResponse](t, resp).Exportable)

	resp = env.do(t, http.MethodGet, "/api/content/html", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(html), "<strong>light</strong>")

	resp = env.do(t, http.MethodGet, "/api/export?format=txt", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="photosynthesis.txt"`)
	text, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(text), "- Learn light")

	resp = env.do(t, http.MethodGet, "/api/export?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = env.do(t, http.MethodGet, "/api/export?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/quiz/save", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestExport_PDFRefusesDevanagari(t *testing.T) {
	env := setup(t)
	env.gen.On("Generate", mock.Anything, mock.Anything).
		Return(domain.NewMarkdownContent("## उद्देश्य\n\nपौधे सूर्य के प्रकाश से भोजन बनाते हैं।\n"), nil).Once()

	resp := env.do(t, http.MethodPost, "/api/generate", generateBody("LESSON_PLAN"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/export?format=pdf", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[middleware.ErrorResponse](t, resp)
	assert.Equal(t, "EXPORT_UNAVAILABLE", body.Code)
	assert.Contains(t, body.Message, "Latin-script")

	resp = env.do(t, http.MethodGet, "/api/export?format=md", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	md, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(md), "पौधे")
}

func TestBankRoutes(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	require.NoError(t, env.bank.Save(ctx, domain.SavedQuiz{ID: "01HXAAAAAAAAAAAAAAAAAAAAAA", Topic: "Fractions", Questions: quizQuestions(2), SavedAt: "2024-05-01T09:30:00.000Z"}))
	require.NoError(t, env.bank.Save(ctx, domain.SavedQuiz{ID: "01HXBBBBBBBBBBBBBBBBBBBBBB", Topic: "Newton's Laws", Questions: quizQuestions(3), SavedAt: "2024-05-02T09:30:00.000Z"}))

	resp := env.do(t, http.MethodGet, "/api/bank", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.BankResponse](t, resp)
	require.Len(t, list.Quizzes, 2)
	assert.Equal(t, "Newton's Laws", list.Quizzes[0].Topic)
	assert.Equal(t, 3, list.Quizzes[0].QuestionCount)

	resp = env.do(t, http.MethodPost, "/api/bank/01HXBBBBBBBBBBBBBBBBBBBBBB/load", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.StateResponse](t, resp)
	assert.Equal(t, "Newton's Laws", st.CurrentTopic)
	assert.Len(t, st.Content.Questions, 3)
	env.gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)

	resp = env.do(t, http.MethodPost, "/api/bank/unknown-id/load", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/bank/01HXAAAAAAAAAAAAAAAAAAAAAA", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, found := env.bank.Find("01HXAAAAAAAAAAAAAAAAAAAAAA")
	assert.False(t, found)

	resp = env.do(t, http.MethodDelete, "/api/bank/bad$id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	env := setup(t)
	resp := env.do(t, http.MethodGet, "/api/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, resp).Status)
}
