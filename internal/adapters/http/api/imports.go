// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fieldhouse/combine/internal/adapters/ingest"
	service "github.com/fieldhouse/combine/internal/app"
	"github.com/fieldhouse/combine/internal/domain/identity"
	"github.com/fieldhouse/combine/internal/domain/model"
)

// maxUploadBytes bounds multipart parsing memory; larger files spill to disk.
const maxUploadBytes = 32 << 20

// jsonImportRequest is the non-multipart commit body, for clients that
// parsed the file themselves.
type jsonImportRequest struct {
	Headers []string          `json:"headers"`
	Rows    []model.RawRow    `json:"rows"`
	Mapping map[string]string `json:"mapping,omitempty"`
	Mode    string            `json:"mode,omitempty"`
}

// upload is a parsed import payload, whichever wire shape it arrived in.
type upload struct {
	doc      *ingest.Document
	mapping  map[string]string
	mode     identity.Mode
	filename string
}

// handleImports covers the import surface:
//
//	POST /events/{id}/imports          commit an upload
//	POST /events/{id}/imports/preview  propose a mapping, write nothing
//	POST /events/{id}/imports/sheets   list workbook sheets
//	GET  /events/{id}/imports          audit log
func (h *EventsHandler) handleImports(w http.ResponseWriter, r *http.Request, eventID string, rest []string) {
	const op = "api.event_imports"

	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		log, err := h.deps.ImportLog(r.Context(), eventID)
		if err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, log)

	case len(rest) == 0 && r.Method == http.MethodPost:
		h.handleCommit(w, r, eventID)

	case len(rest) == 1 && rest[0] == "preview" && r.Method == http.MethodPost:
		h.handlePreview(w, r, eventID)

	case len(rest) == 1 && rest[0] == "sheets" && r.Method == http.MethodPost:
		h.handleSheets(w, r)

	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handlePreview(w http.ResponseWriter, r *http.Request, eventID string) {
	const op = "api.import_preview"

	up, err := parseUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrBadUpload, err))
		return
	}

	proposal, err := h.deps.ProposeMapping(r.Context(), eventID, up.doc.Headers)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

func (h *EventsHandler) handleCommit(w http.ResponseWriter, r *http.Request, eventID string) {
	const op = "api.import_commit"

	up, err := parseUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrBadUpload, err))
		return
	}

	outcome, err := h.deps.Import(r.Context(), service.ImportRequest{
		EventID:  eventID,
		Headers:  up.doc.Headers,
		Rows:     up.doc.Rows,
		Mapping:  up.mapping,
		Mode:     up.mode,
		Filename: up.filename,
		Method:   "upload",
	})
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *EventsHandler) handleSheets(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_sheets"

	file, _, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrBadUpload, err))
		return
	}
	defer func() { _ = file.Close() }()

	sheets, err := ingest.ListSheets(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", WrapKind(op, ErrBadUpload, err))
		return
	}
	writeJSON(w, http.StatusOK, sheets)
}

// parseUpload accepts either a multipart file upload or a JSON body with
// pre-parsed rows.
func parseUpload(r *http.Request) (*upload, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req jsonImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &upload{
			doc:     &ingest.Document{Headers: req.Headers, Rows: req.Rows},
			mapping: req.Mapping,
			mode:    identity.Mode(req.Mode),
		}, nil
	}

	file, name, err := formFile(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var doc *ingest.Document
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xls":
		doc, err = ingest.ParseExcel(file, r.FormValue("sheet"))
	case ".csv":
		doc, err = ingest.ParseCSV(file)
	default:
		doc, err = ingest.ParseDelimited(file)
	}
	if err != nil {
		return nil, err
	}

	up := &upload{
		doc:      doc,
		mode:     identity.Mode(r.FormValue("mode")),
		filename: name,
	}
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &up.mapping); err != nil {
			return nil, err
		}
	}
	return up, nil
}

func formFile(r *http.Request) (multipart.File, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}
