package api_test

import (
	"bytes"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexshelf/bexshelf-server/internal/api"
	"github.com/bexshelf/bexshelf-server/internal/auth"
	"github.com/bexshelf/bexshelf-server/internal/domain"
	"github.com/bexshelf/bexshelf-server/internal/media/files"
	"github.com/bexshelf/bexshelf-server/internal/service"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// envelope mirrors the wire format of every API response.
type envelope struct {
	Data    jsontext.Value `json:"data"`
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Success bool           `json:"success"`
}

func newTestServer(t *testing.T) *api.Server {
	t.Helper()

	dataPath := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(dataPath, logger)
	require.NoError(t, err)

	keyHex, err := auth.LoadOrGenerateKey(dataPath)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	uploadPath := filepath.Join(dataPath, "uploads")
	pdfs, err := files.NewStorage(uploadPath, "books")
	require.NoError(t, err)
	images, err := files.NewStorage(uploadPath, "vision-boards")
	require.NoError(t, err)

	srv := api.NewServer(api.Config{
		Store:           st,
		Auth:            service.NewAuthService(st, tokens, logger),
		Books:           service.NewBookService(st, pdfs, logger),
		Journals:        service.NewJournalService(st, logger),
		Tasks:           service.NewTaskService(st, logger),
		Notes:           service.NewNoteService(st, logger),
		QuickNotes:      service.NewQuickNoteService(st, logger),
		ReadingGoals:    service.NewReadingGoalService(st, logger),
		WritingProjects: service.NewWritingProjectService(st, logger),
		VisionBoards:    service.NewVisionBoardService(st, images, logger),
		CORSOrigins:     []string{"http://localhost:5173"},
		Logger:          logger,
	})
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, srv *api.Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success, "expected success envelope, got error %q", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.Success)
	return env
}

func registerUser(t *testing.T, srv *api.Server, email string) string {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", service.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp service.AuthResponse
	decodeData(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var data map[string]string
	decodeData(t, rec, &data)
	assert.Equal(t, "ok", data["status"])
}

func TestRegisterAndVerify(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	decodeData(t, rec, &user)
	assert.Equal(t, "reader@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", service.RegisterRequest{
		Name:     "Someone Else",
		Email:    "Reader@Example.com",
		Password: "another password",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeError(t, rec)
	assert.Contains(t, env.Message, "email already in use")
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", service.LoginRequest{
		Email:    "reader@example.com",
		Password: "not the password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "reader@example.com")

	// httptest requests share one RemoteAddr, so they count against the
	// same bucket: a burst of 5, then 429.
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", service.LoginRequest{
			Email:    "reader@example.com",
			Password: "not the password",
		})
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
}

func TestRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing header", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/books", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/books", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/books", token, service.CreateBookRequest{
		Title:  "The Left Hand of Darkness",
		Author: "Ursula K. Le Guin",
		Genre:  "Science Fiction",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var book domain.Book
	decodeData(t, rec, &book)
	assert.Equal(t, domain.BookStatusWantToRead, book.Status)

	rec = doJSON(t, srv, http.MethodGet, "/api/books/"+book.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	status := string(domain.BookStatusFinished)
	rating := 5
	rec = doJSON(t, srv, http.MethodPut, "/api/books/"+book.ID, token, service.UpdateBookRequest{
		Status: &status,
		Rating: &rating,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &book)
	assert.Equal(t, domain.BookStatusFinished, book.Status)
	assert.NotNil(t, book.FinishDate)

	rec = doJSON(t, srv, http.MethodDelete, "/api/books/"+book.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/books/"+book.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookValidationError(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/books", token, service.CreateBookRequest{
		Author: "No Title",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeError(t, rec)
	assert.NotEmpty(t, env.Message)
}

func TestCrossUserIsolation(t *testing.T) {
	srv := newTestServer(t)
	ownerToken := registerUser(t, srv, "owner@example.com")
	otherToken := registerUser(t, srv, "other@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/books", ownerToken, service.CreateBookRequest{
		Title:  "Private Shelf",
		Author: "Owner",
		Genre:  "Memoir",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var book domain.Book
	decodeData(t, rec, &book)

	rec = doJSON(t, srv, http.MethodGet, "/api/books/"+book.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// uploadFile builds a multipart request with a single file part carrying
// an explicit content type.
func uploadFile(t *testing.T, srv *api.Server, path, token, field, fileName, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestBookPDFUploadAndDownload(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/books", token, service.CreateBookRequest{
		Title:  "Annotated Edition",
		Author: "Someone",
		Genre:  "Reference",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var book domain.Book
	decodeData(t, rec, &book)

	pdfData := []byte("%PDF-1.4 test payload")
	rec = uploadFile(t, srv, "/api/books/"+book.ID+"/pdf", token, "pdf", "annotated.pdf", "application/pdf", pdfData)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &book)
	assert.NotEmpty(t, book.PDFPath)

	rec = doJSON(t, srv, http.MethodGet, "/api/books/"+book.ID+"/download", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pdfData, rec.Body.Bytes())
}

func TestBookPDFUploadRejectsWrongType(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/books", token, service.CreateBookRequest{
		Title:  "Not a PDF",
		Author: "Someone",
		Genre:  "Reference",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var book domain.Book
	decodeData(t, rec, &book)

	rec = uploadFile(t, srv, "/api/books/"+book.ID+"/pdf", token, "pdf", "notes.txt", "text/plain", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestVisionBoardImageUpload(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/vision-boards", token, service.CreateVisionBoardRequest{
		Year:  2026,
		Month: 3,
		Title: "Spring",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var board domain.VisionBoard
	decodeData(t, rec, &board)

	data := pngBytes(t)
	rec = uploadFile(t, srv, "/api/vision-boards/"+board.ID+"/images", token, "image", "sunrise.png", "image/png", data)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var img domain.VisionImage
	decodeData(t, rec, &img)
	assert.Equal(t, "sunrise.png", img.FileName)

	rec = doJSON(t, srv, http.MethodGet, "/api/vision-boards/"+board.ID+"/images/"+img.ID+"/file", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, data, rec.Body.Bytes())

	// Board-independent lookup scans the user's boards for the image.
	rec = doJSON(t, srv, http.MethodGet, "/api/vision-boards/images/"+img.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, data, rec.Body.Bytes())
}

func TestVisionBoardByMonth(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/vision-boards", token, service.CreateVisionBoardRequest{
		Year:  2026,
		Month: 7,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/vision-boards/year/2026/month/7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board domain.VisionBoard
	decodeData(t, rec, &board)
	assert.Equal(t, 7, board.Month)

	rec = doJSON(t, srv, http.MethodGet, "/api/vision-boards/year/2026/month/13", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBooksByStatus(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	for _, b := range []service.CreateBookRequest{
		{Title: "Shelved", Author: "A", Genre: "Fiction"},
		{Title: "Reading Now", Author: "B", Genre: "Fiction", Status: "currently_reading"},
	} {
		rec := doJSON(t, srv, http.MethodPost, "/api/books", token, b)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/books/status/currently_reading", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var books []domain.Book
	decodeData(t, rec, &books)
	require.Len(t, books, 1)
	assert.Equal(t, "Reading Now", books[0].Title)

	rec = doJSON(t, srv, http.MethodGet, "/api/books/status/abandoned", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasksByDateRoute(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	for _, task := range []service.CreateTaskRequest{
		{Title: "Water plants", Status: "todo", DueDate: "2026-09-01"},
		{Title: "File taxes", Status: "todo", DueDate: "2026-09-02"},
	} {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks", token, task)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/tasks/date/2026-09-02", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []domain.Task
	decodeData(t, rec, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "File taxes", tasks[0].Title)
}

func TestPinnedNotesRoute(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/notes", token, service.CreateNoteRequest{
		Title: "Plain", Content: "unpinned",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/notes", token, service.CreateNoteRequest{
		Title: "Important", Content: "pinned",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Note
	decodeData(t, rec, &created)

	pinned := true
	rec = doJSON(t, srv, http.MethodPut, "/api/notes/"+created.ID, token, service.UpdateNoteRequest{
		IsPinned: &pinned,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/notes/pinned", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notes []domain.Note
	decodeData(t, rec, &notes)
	require.Len(t, notes, 1)
	assert.Equal(t, "Important", notes[0].Title)
}

func TestQuickNoteCountRoute(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/quick-notes", token, service.CreateQuickNoteRequest{
		Content: "pick up library holds",
		Color:   "yellow",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/quick-notes/count", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]int
	decodeData(t, rec, &data)
	assert.Equal(t, 1, data["count"])
}

func TestQuickNoteLimitsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/quick-notes", token, service.CreateQuickNoteRequest{
		Content: "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen",
		Color:   "yellow",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeError(t, rec)
	assert.Contains(t, env.Message, "cannot exceed")
}

func TestReadingGoalsByYear(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	for _, goal := range []service.CreateReadingGoalRequest{
		{Year: 2025, TargetBooks: 20},
		{Year: 2026, TargetBooks: 30},
	} {
		rec := doJSON(t, srv, http.MethodPost, "/api/reading-goals", token, goal)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/reading-goals/year/2026", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var goals []domain.ReadingGoal
	decodeData(t, rec, &goals)
	require.Len(t, goals, 1)
	assert.Equal(t, 30, goals[0].TargetBooks)

	rec = doJSON(t, srv, http.MethodGet, "/api/reading-goals/year/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotebookSaveMovesWordCount(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "reader@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/writing-projects", token, service.CreateWritingProjectRequest{
		Title: "Novel Draft",
		Type:  "novel",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var project domain.WritingProject
	decodeData(t, rec, &project)
	require.Zero(t, project.CurrentWordCount)

	rec = doJSON(t, srv, http.MethodPut, "/api/writing-projects/"+project.ID+"/content", token, service.SaveContentRequest{
		Content:   "It was a dark and stormy night.",
		WordCount: 8,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/writing-projects/"+project.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &project)
	assert.Equal(t, 8, project.CurrentWordCount)
}
