package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/bcreport-go/internal/store"
	"github.com/ukaji3/bcreport-go/pkg/bcreport"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/models"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/output"
	"github.com/ukaji3/bcreport-go/pkg/bcreport/parser"
	"go.uber.org/zap"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 32 << 20

// handleProcess generates the complete bank report from an uploaded workbook
// @Summary Generate the complete bank report
// @Description Upload a workbook with a DATA sheet and receive the Region Summary, PERCENTAGE and watch-list sheets.
// @Tags Excel Processing
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file true "Excel workbook (.xlsx or .xls)"
// @Param format query string false "Set to json for the report set as JSON"
// @Success 200 {file} file "Report workbook"
// @Failure 400 {object} errorResponse "Unusable upload"
// @Failure 413 {object} errorResponse "Upload too large"
// @Failure 500 {object} errorResponse "Unexpected error"
// @Router /process-complete-report/ [post]
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	start := s.now()
	reqID := requestID(r.Context())
	log := s.log.With(zap.String("request_id", reqID))

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload exceeds the %d byte limit.", tooLarge.Limit))
			return
		}
		s.writeError(w, http.StatusBadRequest, "Expected a multipart upload with a 'file' field.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Expected a multipart upload with a 'file' field.")
		return
	}
	defer file.Close()

	if !parser.SupportedExtension(header.Filename) {
		s.writeError(w, http.StatusBadRequest, "Invalid file type. Please upload an Excel file (.xlsx, .xls).")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("read upload", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err))
		return
	}

	opts := s.opts.Report
	opts.Logger = log
	set, err := bcreport.GenerateBytes(data, header.Filename, opts)
	if err != nil {
		status, detail := s.generateError(err, opts)
		if status >= http.StatusInternalServerError {
			log.Error("generate report", zap.String("source", header.Filename), zap.Error(err))
		}
		s.writeError(w, status, detail)
		return
	}

	s.recordRun(r.Context(), log, reqID, opts, set, s.now().Sub(start))

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		s.writeJSON(w, set)
		return
	}

	var wopts output.WriteOptions
	if s.opts.KeepSource && strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		wopts.Base = bytes.NewReader(data)
	}
	var buf bytes.Buffer
	if err := output.WriteXLSX(&buf, set, wopts); err != nil {
		log.Error("write workbook", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err))
		return
	}

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+output.Filename(s.now()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// generateError maps a generation error to a status and a client-facing detail.
func (s *Server) generateError(err error, opts bcreport.Options) (int, string) {
	switch {
	case errors.Is(err, bcreport.ErrSheetNotFound):
		sheet := opts.SheetName
		if sheet == "" {
			sheet = bcreport.DefaultSheetName
		}
		return http.StatusBadRequest, fmt.Sprintf("A sheet named '%s' was not found in the uploaded file.", sheet)
	case errors.Is(err, bcreport.ErrUnsupportedExtension):
		return http.StatusBadRequest, "Invalid file type. Please upload an Excel file (.xlsx, .xls)."
	case bcreport.IsInputError(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

// recordRun stores run diagnostics. Store failures are logged, never returned.
func (s *Server) recordRun(ctx context.Context, log *zap.Logger, reqID string, opts bcreport.Options, set *models.ReportSet, elapsed time.Duration) {
	if s.opts.Store == nil {
		return
	}
	run, err := s.opts.Store.RecordRun(ctx, store.Run{
		RequestID: reqID,
		Source:    set.Source,
		Mode:      string(opts.Mode),
		Records:   set.Records,
		Reports:   len(set.Reports),
		Duration:  elapsed,
		Failures:  set.Failures,
	})
	if err != nil {
		log.Warn("record run", zap.Error(err))
		return
	}
	log.Debug("run recorded", zap.String("run_id", run.ID))
}
