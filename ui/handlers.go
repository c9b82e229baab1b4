package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"golang.org/x/sync/errgroup"

	"concilia/adapters/excel"
	"concilia/domain/core"
	"concilia/domain/reconcile"
	"concilia/domain/table"
	"concilia/internal/profile"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleIndex renders the upload form page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", nil)
}

// handleTransfer runs one reconciliation: parses the two uploaded
// spreadsheets, joins them on the chosen key columns, and streams the
// result back as an xlsx attachment.
func (a *App) handleTransfer(w http.ResponseWriter, r *http.Request) {
	reqID := core.NewRequestID()
	log.Printf("[handleTransfer] %s - starting reconciliation request", reqID)

	if err := r.ParseMultipartForm(a.config.MaxFileSize); err != nil {
		log.Printf("[handleTransfer] %s - FAILED - bad multipart form: %v", reqID, err)
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	col1 := r.FormValue("coluna_comum_arquivo1")
	col2 := r.FormValue("coluna_comum_arquivo2")
	if col1 == "" || col2 == "" {
		http.Error(w, "Both key column names are required", http.StatusBadRequest)
		return
	}

	file1, header1, err := r.FormFile("arquivo1")
	if err != nil {
		http.Error(w, "First file is missing", http.StatusBadRequest)
		return
	}
	defer file1.Close()

	file2, header2, err := r.FormFile("arquivo2")
	if err != nil {
		http.Error(w, "Second file is missing", http.StatusBadRequest)
		return
	}
	defer file2.Close()

	for _, h := range []*multipart.FileHeader{header1, header2} {
		if h.Size > a.config.MaxFileSize {
			log.Printf("[handleTransfer] %s - FAILED - file too large: %d bytes", reqID, h.Size)
			http.Error(w, fmt.Sprintf("File %q exceeds the %dMB limit", h.Filename, a.config.MaxFileSize/(1024*1024)), http.StatusBadRequest)
			return
		}
	}

	// The two payloads parse independently, so do it concurrently.
	// The reconciliation itself stays synchronous.
	var t1, t2 *table.Table
	var g errgroup.Group
	g.Go(func() error {
		var err error
		t1, err = parseUpload(file1, header1)
		return err
	})
	g.Go(func() error {
		var err error
		t2, err = parseUpload(file2, header2)
		return err
	})
	if err := g.Wait(); err != nil {
		a.writeError(w, reqID, err)
		return
	}

	log.Printf("[handleTransfer] %s - parsed inputs: %dx%d and %dx%d",
		reqID, len(t1.Rows), len(t1.Columns), len(t2.Rows), len(t2.Columns))

	result, err := reconcile.Run(t1, t2, col1, col2)
	if err != nil {
		a.writeError(w, reqID, err)
		return
	}

	log.Printf("[handleTransfer] %s - reconciliation produced %d rows, %d columns",
		reqID, len(result.Rows), len(result.Columns))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", excel.ResultFilename))
	if err := excel.WriteTable(w, result, excel.ResultSheet); err != nil {
		log.Printf("[handleTransfer] %s - FAILED - xlsx serialization: %v", reqID, err)
	}
}

// handlePreview parses a single uploaded spreadsheet and returns its
// column profile as JSON.
func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	reqID := core.NewRequestID()

	if err := r.ParseMultipartForm(a.config.MaxFileSize); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "File is missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	t, err := parseUpload(file, header)
	if err != nil {
		a.writeError(w, reqID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(profile.Analyze(t)); err != nil {
		log.Printf("[handlePreview] %s - FAILED - encoding profile: %v", reqID, err)
	}
}

// parseUpload reads one uploaded payload into a table
func parseUpload(file multipart.File, header *multipart.FileHeader) (*table.Table, error) {
	reader, err := excel.NewDataReader(header.Filename)
	if err != nil {
		return nil, err
	}
	return reader.ReadData(file)
}

// writeError maps domain errors to user-visible responses
func (a *App) writeError(w http.ResponseWriter, reqID core.RequestID, err error) {
	if core.IsUserError(err) {
		log.Printf("[App] %s - rejected: %v", reqID, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	log.Printf("[App] %s - FAILED - %v", reqID, err)
	http.Error(w, "Failed to process spreadsheets", http.StatusInternalServerError)
}
