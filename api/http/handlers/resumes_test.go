package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/ingest/api/http/presenter"
	"github.com/artem13815/hr/ingest/pkg/logging"
	"github.com/artem13815/hr/ingest/pkg/resume"
	"github.com/artem13815/hr/ingest/pkg/security/jwt"
)

type fakeRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]resume.Resume
	skills    map[uuid.UUID][]string
	cleared   []uuid.UUID
	createErr error
	lastSkill []string
	lastPage  page
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[uuid.UUID]resume.Resume{}, skills: map[uuid.UUID][]string{}}
}

func (r *fakeRepo) put(rec resume.Resume) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = rec
}

func (r *fakeRepo) Create(_ context.Context, rec resume.Resume) error {
	if r.createErr != nil {
		return r.createErr
	}
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	r.put(rec)
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, id uuid.UUID, st resume.ProcessingStatus, detail *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return resume.ErrNotFound
	}
	rec.Status = st
	rec.ErrorMessage = detail
	r.records[id] = rec
	return nil
}

func (r *fakeRepo) Persist(context.Context, uuid.UUID, resume.ExtractedProfile) error { return nil }

func (r *fakeRepo) GetMetaForOwner(_ context.Context, owner, id uuid.UUID) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.OwnerID != owner {
		return resume.Resume{}, resume.ErrNotFound
	}
	return rec, nil
}

func (r *fakeRepo) GetMetaAny(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return resume.Resume{}, resume.ErrNotFound
	}
	return rec, nil
}

func (r *fakeRepo) filter(keep func(resume.Resume) bool) []resume.Resume {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []resume.Resume
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRepo) ListByOwner(_ context.Context, owner uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	r.lastPage = page{Limit: limit, Offset: offset}
	return r.filter(func(rec resume.Resume) bool { return rec.OwnerID == owner }), nil
}

func (r *fakeRepo) ListAll(_ context.Context, limit, offset int) ([]resume.Resume, error) {
	r.lastPage = page{Limit: limit, Offset: offset}
	return r.filter(func(resume.Resume) bool { return true }), nil
}

func (r *fakeRepo) ListBySkill(_ context.Context, owner *uuid.UUID, variants []string, limit, offset int) ([]resume.Resume, error) {
	r.lastSkill = variants
	r.lastPage = page{Limit: limit, Offset: offset}
	return r.filter(func(rec resume.Resume) bool {
		if owner != nil && rec.OwnerID != *owner {
			return false
		}
		for _, s := range r.skills[rec.ID] {
			for _, v := range variants {
				if s == v {
					return true
				}
			}
		}
		return false
	}), nil
}

func (r *fakeRepo) LatestForOwner(ctx context.Context, owner uuid.UUID) (resume.Resume, error) {
	items, _ := r.ListByOwner(ctx, owner, 1, 0)
	if len(items) == 0 {
		return resume.Resume{}, resume.ErrNotFound
	}
	return items[0], nil
}

func (r *fakeRepo) GetComplete(ctx context.Context, id uuid.UUID) (resume.Complete, error) {
	rec, err := r.GetMetaAny(ctx, id)
	if err != nil {
		return resume.Complete{}, err
	}
	return resume.Complete{Resume: rec, Skills: r.skills[id]}, nil
}

func (r *fakeRepo) ClearDerived(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, id)
	delete(r.skills, id)
	return nil
}

func (r *fakeRepo) DeleteForOwner(ctx context.Context, owner, id uuid.UUID) (resume.Resume, error) {
	rec, err := r.GetMetaForOwner(ctx, owner, id)
	if err != nil {
		return resume.Resume{}, err
	}
	return r.DeleteAny(ctx, rec.ID)
}

func (r *fakeRepo) DeleteAny(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return resume.Resume{}, resume.ErrNotFound
	}
	delete(r.records, id)
	return rec, nil
}

type fakeFiles struct {
	mu    sync.Mutex
	data  map[string][]byte
	saved []string
}

func (f *fakeFiles) Save(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = data
	f.saved = append(f.saved, key)
	return nil
}

func (f *fakeFiles) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return nil, 0, resume.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fakeQueue struct {
	mu  sync.Mutex
	ids []uuid.UUID
	err error
}

func (q *fakeQueue) Enqueue(_ context.Context, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.ids = append(q.ids, id)
	return nil
}

type env struct {
	app   *fiber.App
	repo  *fakeRepo
	files *fakeFiles
	queue *fakeQueue
}

func newEnv(t *testing.T, caller uuid.UUID, admin bool) *env {
	t.Helper()
	e := &env{repo: newFakeRepo(), files: &fakeFiles{data: map[string][]byte{}}, queue: &fakeQueue{}}
	h := NewResumesHandler(e.repo, e.files, e.queue, 64, logging.Nop())
	e.app = fiber.New()
	g := e.app.Group("/resumes", jwt.WithPrincipal(caller, admin))
	g.Post("/", h.Upload)
	g.Get("/", h.List)
	g.Get("/active", h.Active)
	g.Get("/:id", h.Get)
	g.Get("/:id/status", h.Status)
	g.Post("/:id/reparse", h.Reparse)
	g.Get("/:id/file", h.Download)
	g.Delete("/:id", h.Delete)
	return e
}

func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (e *env) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func (e *env) upload(t *testing.T, filename, contentType string, content []byte) (*http.Response, []byte) {
	body, ct := multipartBody(t, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", ct)
	return e.do(t, req)
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var er presenter.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er.Message
}

func errorKind(t *testing.T, body []byte) resume.ErrorKind {
	t.Helper()
	var er presenter.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er.Kind
}

func TestUpload_AcceptsAndEnqueues(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)

	resp, body := e.upload(t, "cv.pdf", "application/pdf", []byte("%PDF-1.4 small"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out UploadResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "cv.pdf", out.Filename)
	assert.Equal(t, out.ID.String()+".pdf", out.StoredName)
	assert.Equal(t, resume.StatusPending, out.ProcessingStatus)
	assert.Equal(t, resume.StatusPending.Message(), out.Message)

	rec, err := e.repo.GetMetaAny(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, caller, rec.OwnerID)
	assert.Equal(t, out.StoredName, rec.StorageKey)
	assert.Equal(t, int64(14), rec.Size)
	assert.Equal(t, []uuid.UUID{out.ID}, e.queue.ids)
	assert.Contains(t, e.files.data, out.StoredName)
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		size     int
		want     int
		wantKind resume.ErrorKind
	}{
		{name: "oversize wins over type", filename: "cv.txt", mime: "text/plain", size: 65, want: http.StatusRequestEntityTooLarge, wantKind: resume.KindOversize},
		{name: "text file", filename: "cv.txt", mime: "text/plain", size: 10, want: http.StatusUnsupportedMediaType, wantKind: resume.KindUnsupportedFileType},
		{name: "legacy doc", filename: "cv.doc", mime: "application/msword", size: 10, want: http.StatusUnsupportedMediaType, wantKind: resume.KindUnsupportedFileType},
		{name: "pdf name with image type", filename: "cv.pdf", mime: "image/png", size: 10, want: http.StatusUnsupportedMediaType, wantKind: resume.KindUnsupportedFileType},
		{name: "no extension no type", filename: "cv", mime: "application/octet-stream", size: 10, want: http.StatusUnsupportedMediaType, wantKind: resume.KindUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, uuid.New(), false)
			resp, body := e.upload(t, tt.filename, tt.mime, bytes.Repeat([]byte("x"), tt.size))
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, tt.wantKind, errorKind(t, body))
			assert.Empty(t, e.files.saved)
			assert.Empty(t, e.queue.ids)
		})
	}
}

func TestUpload_ExactLimitAccepted(t *testing.T) {
	e := newEnv(t, uuid.New(), false)
	resp, _ := e.upload(t, "cv.docx", "", bytes.Repeat([]byte("x"), 64))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUpload_ExtensionFromMIME(t *testing.T) {
	e := newEnv(t, uuid.New(), false)
	resp, body := e.upload(t, "resume", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out UploadResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, out.ID.String()+".docx", out.StoredName)
}

func TestUpload_CreateFailureRemovesFile(t *testing.T) {
	e := newEnv(t, uuid.New(), false)
	e.repo.createErr = errors.New("db down")

	resp, body := e.upload(t, "cv.pdf", "application/pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to save metadata", errorMessage(t, body))
	require.Len(t, e.files.saved, 1)
	assert.Empty(t, e.files.data)
	assert.Empty(t, e.queue.ids)
}

func TestUpload_MissingFile(t *testing.T) {
	e := newEnv(t, uuid.New(), false)
	req := httptest.NewRequest(http.MethodPost, "/resumes", nil)
	resp, _ := e.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func seed(e *env, owner uuid.UUID, st resume.ProcessingStatus, age time.Duration) resume.Resume {
	now := time.Now().UTC().Add(-age)
	rec := resume.Resume{
		ID: uuid.New(), OwnerID: owner, Filename: "cv.pdf", MimeType: "application/pdf",
		Status: st, CreatedAt: now, UpdatedAt: now,
	}
	rec.StorageKey = rec.ID.String() + ".pdf"
	e.repo.put(rec)
	e.files.data[rec.StorageKey] = []byte("%PDF-1.4 file")
	return rec
}

func TestStatus_ErrorDetailsOnlyWhenFailed(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)
	done := seed(e, caller, resume.StatusCompleted, 0)
	failed := seed(e, caller, resume.StatusFailed, 0)
	detail := "ParseError: ScannedPdfNoText"
	require.NoError(t, e.repo.SetStatus(context.Background(), failed.ID, resume.StatusFailed, &detail))
	stale := "old failure"
	require.NoError(t, e.repo.SetStatus(context.Background(), done.ID, resume.StatusCompleted, &stale))

	_, body := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+failed.ID.String()+"/status", nil))
	var st StatusResponse
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, resume.StatusFailed, st.Status)
	assert.Equal(t, resume.StatusFailed.Message(), st.Message)
	require.NotNil(t, st.ErrorDetails)
	assert.Equal(t, detail, *st.ErrorDetails)

	_, body = e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+done.ID.String()+"/status", nil))
	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "Completed", raw["status"])
	assert.NotContains(t, raw, "errorDetails")
}

func TestOwnership(t *testing.T) {
	caller, other := uuid.New(), uuid.New()
	e := newEnv(t, caller, false)
	foreign := seed(e, other, resume.StatusCompleted, 0)

	for _, path := range []string{"/", "/status", "/file"} {
		p := "/resumes/" + foreign.ID.String()
		if path != "/" {
			p += path
		}
		resp, _ := e.do(t, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, p)
	}
	resp, _ := e.do(t, httptest.NewRequest(http.MethodDelete, "/resumes/"+foreign.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	h := NewResumesHandler(e.repo, e.files, &fakeQueue{}, 64, logging.Nop())
	admin := &env{app: fiber.New()}
	admin.app.Get("/resumes/:id", jwt.WithPrincipal(uuid.New(), true), h.Get)
	resp, _ = admin.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+foreign.ID.String(), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGet_InvalidID(t *testing.T) {
	e := newEnv(t, uuid.New(), false)
	resp, body := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid id", errorMessage(t, body))
	assert.Empty(t, errorKind(t, body))

	resp, body = e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, resume.KindResumeNotFound, errorKind(t, body))
}

func TestList_OwnerAndSkillFilter(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)
	goDev := seed(e, caller, resume.StatusCompleted, time.Minute)
	seed(e, caller, resume.StatusCompleted, 0)
	seed(e, uuid.New(), resume.StatusCompleted, 0)
	e.repo.skills[goDev.ID] = []string{"go"}

	_, body := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes", nil))
	var all []resume.Resume
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 2)

	_, body = e.do(t, httptest.NewRequest(http.MethodGet, "/resumes?skill=Golang", nil))
	var hits []resume.Resume
	require.NoError(t, json.Unmarshal(body, &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, goDev.ID, hits[0].ID)
	assert.ElementsMatch(t, []string{"golang", "go"}, e.repo.lastSkill)

	_, body = e.do(t, httptest.NewRequest(http.MethodGet, "/resumes?skill=cobol", nil))
	assert.JSONEq(t, `[]`, string(body))
}

func TestActive_ReturnsNewest(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)

	resp, _ := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/active", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	seed(e, caller, resume.StatusCompleted, time.Hour)
	newest := seed(e, caller, resume.StatusPending, 0)

	_, body := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/active", nil))
	var got resume.Complete
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, newest.ID, got.ID)
}

func TestReparse(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)
	rec := seed(e, caller, resume.StatusFailed, 0)
	e.repo.skills[rec.ID] = []string{"go"}

	resp, _ := e.do(t, httptest.NewRequest(http.MethodPost, "/resumes/"+rec.ID.String()+"/reparse", nil))
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Empty(t, e.repo.cleared)
	assert.Equal(t, []uuid.UUID{rec.ID}, e.queue.ids)
	got, _ := e.repo.GetMetaAny(context.Background(), rec.ID)
	assert.Equal(t, resume.StatusPending, got.Status)
	assert.Nil(t, got.ErrorMessage)

	resp, _ = e.do(t, httptest.NewRequest(http.MethodPost, "/resumes/"+rec.ID.String()+"/reparse?clear=true", nil))
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, []uuid.UUID{rec.ID}, e.repo.cleared)

	e.queue.err = errors.New("redis down")
	resp, _ = e.do(t, httptest.NewRequest(http.MethodPost, "/resumes/"+rec.ID.String()+"/reparse", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDownloadAndDelete(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)
	rec := seed(e, caller, resume.StatusCompleted, 0)

	resp, body := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+rec.ID.String()+"/file", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 file", string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cv.pdf")

	resp, _ = e.do(t, httptest.NewRequest(http.MethodDelete, "/resumes/"+rec.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, e.files.data, rec.StorageKey)

	resp, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+rec.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownload_MissingFile(t *testing.T) {
	caller := uuid.New()
	e := newEnv(t, caller, false)
	rec := seed(e, caller, resume.StatusCompleted, 0)
	delete(e.files.data, rec.StorageKey)

	resp, body := e.do(t, httptest.NewRequest(http.MethodGet, "/resumes/"+rec.ID.String()+"/file", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "file not found", errorMessage(t, body))
}
