package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/artem13815/hr/ingest/api/http/presenter"
	"github.com/artem13815/hr/ingest/pkg/decode"
	"github.com/artem13815/hr/ingest/pkg/nlp"
	"github.com/artem13815/hr/ingest/pkg/resume"
	"github.com/artem13815/hr/ingest/pkg/security/jwt"
)

// FileStore is the part of the storage backend the API needs.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
}

// Enqueuer hands a resume id to the ingestion workers.
type Enqueuer interface {
	Enqueue(ctx context.Context, id uuid.UUID) error
}

type ResumesHandler struct {
	repo     resume.Repository
	files    FileStore
	queue    Enqueuer
	maxBytes int64
	log      *log.Logger
}

func NewResumesHandler(repo resume.Repository, files FileStore, queue Enqueuer, maxBytes int64, logger *log.Logger) *ResumesHandler {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ResumesHandler{repo: repo, files: files, queue: queue, maxBytes: maxBytes, log: logger}
}

// UploadResponse is returned by POST /resumes.
type UploadResponse struct {
	ID               uuid.UUID               `json:"id"`
	Filename         string                  `json:"filename"`
	StoredName       string                  `json:"storedName"`
	ProcessingStatus resume.ProcessingStatus `json:"processingStatus"`
	Message          string                  `json:"message"`
}

// StatusResponse is returned by GET /resumes/{id}/status.
type StatusResponse struct {
	ID           uuid.UUID               `json:"id"`
	Status       resume.ProcessingStatus `json:"status"`
	Message      string                  `json:"message"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	ErrorDetails *string                 `json:"errorDetails,omitempty"`
}

// Upload принимает файл, кладёт его в хранилище и ставит разбор в очередь.
// @Summary Загрузить резюме
// @Description Принимает PDF/DOCX, сохраняет файл и ставит его в очередь на разбор. Результат доступен через /resumes/{id}/status.
// @Tags        Резюме
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Файл резюме (PDF/DOCX)"
// @Security    BearerAuth
// @Success     201 {object} UploadResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     413 {object} presenter.ErrorResponse
// @Failure     415 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /resumes [post]
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	if fh.Size > h.maxBytes {
		return presenter.KindError(c, http.StatusRequestEntityTooLarge, resume.KindOversize, fmt.Sprintf("file too large: limit is %d bytes", h.maxBytes))
	}
	mimeType := fh.Header.Get("Content-Type")
	ext, ok := uploadExt(fh.Filename, mimeType)
	if !ok {
		return presenter.KindError(c, http.StatusUnsupportedMediaType, resume.KindUnsupportedFileType, "unsupported file format: only pdf and docx are allowed")
	}

	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if errors.Is(err, errTooLarge) {
		return presenter.KindError(c, http.StatusRequestEntityTooLarge, resume.KindOversize, fmt.Sprintf("file too large: limit is %d bytes", h.maxBytes))
	}
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	id := uuid.New()
	key := id.String() + ext
	if err := h.files.Save(ctx, key, data, decode.MIMEForExt(ext)); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("api.upload.store_failed")
		return presenter.Error(c, http.StatusInternalServerError, "failed to store file")
	}

	ownerID, _ := jwt.Principal(c)
	if mimeType == "" {
		mimeType = decode.MIMEForExt(ext)
	}
	rec := resume.Resume{
		ID:         id,
		OwnerID:    ownerID,
		Filename:   fh.Filename,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		StorageKey: key,
		Status:     resume.StatusPending,
	}
	if err := h.repo.Create(ctx, rec); err != nil {
		h.log.Error().Err(err).Str("resume_id", id.String()).Msg("api.upload.create_failed")
		if derr := h.files.Delete(ctx, key); derr != nil {
			h.log.Warn().Err(derr).Str("key", key).Msg("api.upload.cleanup_failed")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save metadata")
	}
	if err := h.queue.Enqueue(ctx, id); err != nil {
		// запись остаётся в Pending; повторить можно через reparse
		h.log.Error().Err(err).Str("resume_id", id.String()).Msg("api.upload.enqueue_failed")
	}
	h.log.Info().Str("resume_id", id.String()).Str("filename", fh.Filename).Int("size", len(data)).Msg("api.upload.accepted")

	return presenter.JSON(c, http.StatusCreated, UploadResponse{
		ID:               id,
		Filename:         fh.Filename,
		StoredName:       key,
		ProcessingStatus: resume.StatusPending,
		Message:          resume.StatusPending.Message(),
	})
}

// List возвращает резюме пользователя (или все, если админ).
// @Summary Список резюме
// @Description Параметр skill отбирает резюме с навыком или его синонимом (golang ↔ go).
// @Tags    Резюме
// @Produce json
// @Param   skill  query string false "Навык"
// @Param   limit  query int    false "Лимит (1..200, с skill 1..100)"
// @Param   offset query int    false "Смещение"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	uid, isAdmin := jwt.Principal(c)
	skill := strings.TrimSpace(c.Query("skill"))
	maxLimit := listMaxLimit
	if skill != "" {
		maxLimit = skillMaxLimit
	}
	pg := parsePage(c, listDefaultLimit, maxLimit)
	ctx := c.UserContext()

	var (
		items []resume.Resume
		err   error
	)
	switch {
	case skill != "":
		var owner *uuid.UUID
		if !isAdmin {
			owner = &uid
		}
		items, err = h.repo.ListBySkill(ctx, owner, nlp.SkillVariants(skill), pg.Limit, pg.Offset)
	case isAdmin:
		items, err = h.repo.ListAll(ctx, pg.Limit, pg.Offset)
	default:
		items, err = h.repo.ListByOwner(ctx, uid, pg.Limit, pg.Offset)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("api.list.failed")
		return presenter.Error(c, http.StatusInternalServerError, "failed to list resumes")
	}
	if items == nil {
		items = []resume.Resume{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Active возвращает последнее загруженное резюме пользователя.
// @Summary Активное резюме
// @Tags    Резюме
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resume.Complete
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/active [get]
func (h *ResumesHandler) Active(c *fiber.Ctx) error {
	uid, _ := jwt.Principal(c)
	meta, err := h.repo.LatestForOwner(c.UserContext(), uid)
	if err != nil {
		return h.lookupError(c, err)
	}
	return h.sendComplete(c, meta.ID)
}

// Get возвращает резюме со всеми извлечёнными разделами.
// @Summary Получить резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Complete
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	meta, err := h.visible(c)
	if err != nil {
		return h.lookupError(c, err)
	}
	return h.sendComplete(c, meta.ID)
}

// Status returns the ingestion state for polling clients.
// @Summary Статус разбора
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} StatusResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/status [get]
func (h *ResumesHandler) Status(c *fiber.Ctx) error {
	meta, err := h.visible(c)
	if err != nil {
		return h.lookupError(c, err)
	}
	out := StatusResponse{
		ID:        meta.ID,
		Status:    meta.Status,
		Message:   meta.Status.Message(),
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}
	if meta.Status == resume.StatusFailed {
		out.ErrorDetails = meta.ErrorMessage
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Reparse ставит резюме в очередь повторно.
// @Summary Повторный разбор
// @Description clear=true удаляет ранее извлечённые навыки, опыт, образование, сертификаты и проекты.
// @Tags    Резюме
// @Produce json
// @Param   id    path  string true  "ID резюме (UUID)"
// @Param   clear query bool   false "Очистить извлечённые данные"
// @Security BearerAuth
// @Success 202 {object} StatusResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/reparse [post]
func (h *ResumesHandler) Reparse(c *fiber.Ctx) error {
	meta, err := h.visible(c)
	if err != nil {
		return h.lookupError(c, err)
	}
	wipe, _ := strconv.ParseBool(c.Query("clear"))
	ctx := c.UserContext()
	if wipe {
		if err := h.repo.ClearDerived(ctx, meta.ID); err != nil {
			h.log.Error().Err(err).Str("resume_id", meta.ID.String()).Msg("api.reparse.clear_failed")
			return presenter.Error(c, http.StatusInternalServerError, "failed to clear extracted data")
		}
	}
	if err := h.repo.SetStatus(ctx, meta.ID, resume.StatusPending, nil); err != nil {
		return h.lookupError(c, err)
	}
	if err := h.queue.Enqueue(ctx, meta.ID); err != nil {
		h.log.Error().Err(err).Str("resume_id", meta.ID.String()).Msg("api.reparse.enqueue_failed")
		return presenter.Error(c, http.StatusInternalServerError, "failed to enqueue resume")
	}
	return presenter.JSON(c, http.StatusAccepted, StatusResponse{
		ID:        meta.ID,
		Status:    resume.StatusPending,
		Message:   resume.StatusPending.Message(),
		CreatedAt: meta.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	})
}

// Download скачивает исходный файл резюме.
// @Summary Скачать файл резюме
// @Tags    Резюме
// @Produce application/octet-stream
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/file [get]
func (h *ResumesHandler) Download(c *fiber.Ctx) error {
	meta, err := h.visible(c)
	if err != nil {
		return h.lookupError(c, err)
	}
	rc, size, err := h.files.Open(c.UserContext(), meta.StorageKey)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.KindError(c, http.StatusNotFound, resume.KindFileNotFound, "file not found")
		}
		h.log.Error().Err(err).Str("key", meta.StorageKey).Msg("api.download.failed")
		return presenter.Error(c, http.StatusInternalServerError, "failed to open file")
	}
	c.Set(fiber.HeaderContentType, meta.MimeType)
	c.Attachment(meta.Filename)
	// fasthttp закрывает rc после отправки
	return c.SendStream(rc, int(size))
}

// Delete удаляет резюме, извлечённые данные и файл.
// @Summary Удалить резюме
// @Tags    Резюме
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	uid, isAdmin := jwt.Principal(c)
	ctx := c.UserContext()
	var meta resume.Resume
	if isAdmin {
		meta, err = h.repo.DeleteAny(ctx, id)
	} else {
		meta, err = h.repo.DeleteForOwner(ctx, uid, id)
	}
	if err != nil {
		return h.lookupError(c, err)
	}
	if err := h.files.Delete(ctx, meta.StorageKey); err != nil {
		h.log.Warn().Err(err).Str("key", meta.StorageKey).Msg("api.delete.file_cleanup_failed")
	}
	return c.SendStatus(http.StatusNoContent)
}

var errBadID = errors.New("invalid id")

// visible loads the record named by :id if the caller may see it.
func (h *ResumesHandler) visible(c *fiber.Ctx) (resume.Resume, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return resume.Resume{}, errBadID
	}
	uid, isAdmin := jwt.Principal(c)
	if isAdmin {
		return h.repo.GetMetaAny(c.UserContext(), id)
	}
	return h.repo.GetMetaForOwner(c.UserContext(), uid, id)
}

func (h *ResumesHandler) sendComplete(c *fiber.Ctx, id uuid.UUID) error {
	full, err := h.repo.GetComplete(c.UserContext(), id)
	if err != nil {
		return h.lookupError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, full)
}

func (h *ResumesHandler) lookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errBadID):
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	case errors.Is(err, resume.ErrNotFound):
		return presenter.KindError(c, http.StatusNotFound, resume.KindResumeNotFound, "resume not found")
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("api.resume.lookup_failed")
	return presenter.Error(c, http.StatusInternalServerError, "internal error")
}

// uploadExt picks the container type from the file name, falling back to the
// declared content type. Both must agree with the accepted set when present.
func uploadExt(filename, mimeType string) (string, bool) {
	mimeExt, mimeOK := decode.ExtForMIME(mimeType)
	generic := mimeType == "" || strings.HasPrefix(strings.ToLower(mimeType), "application/octet-stream")
	if !generic && !mimeOK {
		return "", false
	}
	if ext := decode.ExtFromPath(filename); ext != "" {
		if !decode.Supported(ext) {
			return "", false
		}
		return ext, true
	}
	return mimeExt, mimeOK
}

var errTooLarge = errors.New("file too large")

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, errTooLarge
	}
	return b, nil
}
