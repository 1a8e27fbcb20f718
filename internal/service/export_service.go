package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm-api/internal/derive"
	"github.com/noah-isme/academy-crm-api/internal/dto"
	"github.com/noah-isme/academy-crm-api/internal/models"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
	"github.com/noah-isme/academy-crm-api/pkg/export"
	"github.com/noah-isme/academy-crm-api/pkg/jobs"
	"github.com/noah-isme/academy-crm-api/pkg/storage"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// ExportDownload aggregates resolved download data.
type ExportDownload struct {
	File      *os.File
	Filename  string
	Format    models.ExportFormat
	ExpiresAt time.Time
}

// ExportService runs payment ledger exports as background jobs. The job
// registry lives in memory and resets with the rest of the process state.
type ExportService struct {
	mu   sync.RWMutex
	jobs map[string]*models.ExportJob

	store     snapshotProvider
	queue     jobDispatcher
	csv       *export.CSVRenderer
	pdf       *export.PDFRenderer
	files     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	basePath string
}

// NewExportService constructs the export service. basePath is the public
// exports route prefix used to build signed download URLs.
func NewExportService(st snapshotProvider, files *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, basePath string) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if basePath == "" {
		basePath = "/exports"
	}
	return &ExportService{
		jobs:      make(map[string]*models.ExportJob),
		store:     st,
		csv:       export.NewCSVRenderer(),
		pdf:       export.NewPDFRenderer(),
		files:     files,
		signer:    signer,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		basePath:  basePath,
	}
}

// SetQueue attaches the worker queue; the queue's handler is s.Process.
func (s *ExportService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// CreateJob validates the request, registers the job and enqueues it.
func (s *ExportService) CreateJob(req dto.ExportRequest) (*dto.ExportJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export queue not running")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		Format:    models.ExportFormat(req.Format),
		Status:    models.ExportStatusQueued,
		CreatedAt: s.now().UTC(),
	}
	if req.Status != "" {
		status := models.PaymentStatus(req.Status)
		job.StatusFilter = &status
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "ledger_export"}); err != nil {
		s.fail(job.ID, "failed to enqueue export job")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}
	return &dto.ExportJobResponse{ID: job.ID, Status: string(job.Status), Progress: job.Progress}, nil
}

// GetStatus exposes job progress and, once finished, the signed result URL.
func (s *ExportService) GetStatus(id string) (*dto.ExportStatusResponse, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	resp := &dto.ExportStatusResponse{
		ID:        job.ID,
		Status:    string(job.Status),
		Progress:  job.Progress,
		ResultURL: job.ResultURL,
		Error:     job.ErrorMessage,
	}
	s.mu.RUnlock()
	return resp, nil
}

// Process renders one queued export. It is the queue handler.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	s.mu.Lock()
	record, ok := s.jobs[job.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown export job %s", job.ID)
	}
	record.Status = models.ExportStatusProcessing
	record.Progress = 10
	format := record.Format
	var statusFilter *models.PaymentStatus
	if record.StatusFilter != nil {
		status := *record.StatusFilter
		statusFilter = &status
	}
	s.mu.Unlock()

	snap := s.store.Snapshot()
	table := ledgerTable(snap, statusFilter, s.now())

	var (
		data []byte
		err  error
	)
	switch format {
	case models.ExportFormatPDF:
		data, err = s.pdf.Render(table, "Payment Ledger")
	default:
		data, err = s.csv.Render(table)
	}
	if err != nil {
		s.fail(job.ID, err.Error())
		return err
	}

	relPath := filepath.Join("ledgers", fmt.Sprintf("%s.%s", job.ID, format))
	if _, err := s.files.Save(relPath, data); err != nil {
		s.fail(job.ID, err.Error())
		return err
	}

	token, _, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.fail(job.ID, err.Error())
		return err
	}

	now := s.now().UTC()
	resultURL := fmt.Sprintf("%s/%s/download?token=%s", s.basePath, job.ID, token)

	s.mu.Lock()
	if record, ok := s.jobs[job.ID]; ok {
		record.Status = models.ExportStatusFinished
		record.Progress = 100
		record.ResultPath = relPath
		record.ResultURL = &resultURL
		record.FinishedAt = &now
	}
	s.mu.Unlock()

	s.logger.Sugar().Infow("export finished", "job_id", job.ID, "format", format, "rows", len(table.Rows))
	return nil
}

// ResolveDownload validates the token against the requested job and opens the
// stored export file.
func (s *ExportService) ResolveDownload(id, token string) (*ExportDownload, error) {
	jobID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil || jobID != id {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	s.mu.RLock()
	job, ok := s.jobs[jobID]
	if !ok {
		s.mu.RUnlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.Status != models.ExportStatusFinished || job.ResultPath != relPath {
		s.mu.RUnlock()
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export not ready")
	}
	format := job.Format
	s.mu.RUnlock()

	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &ExportDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		Format:    format,
		ExpiresAt: expiresAt,
	}, nil
}

// StartCleanup boots a goroutine purging expired export files periodically.
func (s *ExportService) StartCleanup(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if deleted, err := s.files.CleanupOlderThan(ttl); err != nil {
					s.logger.Sugar().Warnw("export cleanup failed", "error", err)
				} else if len(deleted) > 0 {
					s.logger.Sugar().Infow("export cleanup", "deleted", len(deleted))
				}
			}
		}
	}()
}

func (s *ExportService) fail(id, message string) {
	now := s.now().UTC()
	s.mu.Lock()
	if record, ok := s.jobs[id]; ok {
		record.Status = models.ExportStatusFailed
		record.Progress = 100
		record.ErrorMessage = &message
		record.FinishedAt = &now
	}
	s.mu.Unlock()
}

func ledgerTable(snap models.Snapshot, statusFilter *models.PaymentStatus, now time.Time) export.Table {
	filter := models.PaymentFilter{Status: statusFilter}
	payments := derive.FilterPayments(snap.Payments, snap.Students, filter)

	names := make(map[int64]string, len(snap.Students))
	for _, student := range snap.Students {
		names[student.ID] = student.Name
	}

	table := export.Table{
		Columns: []string{"Payment ID", "Student", "Amount (UZS)", "Due Date", "Payment Date", "Status"},
	}
	for _, p := range payments {
		date := ""
		if p.Date != nil {
			date = p.Date.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{
			p.ID,
			names[p.StudentID],
			fmt.Sprintf("%d", p.Amount),
			p.DueDate.Format("2006-01-02"),
			date,
			string(derive.EffectiveStatus(p, now)),
		})
	}
	return table
}
