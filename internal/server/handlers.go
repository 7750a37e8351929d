package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/internal/store"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/analytics"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/render"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/soil"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/validation"
)

const maxBodyBytes = 1 << 20

type evaluateResponse struct {
	Evaluation  *analytics.Evaluation `json:"evaluation,omitempty"`
	Validation  *validation.Report    `json:"validation"`
	FieldErrors map[string]string     `json:"field_errors,omitempty"`
}

type soilOption struct {
	Value basin.SoilType `json:"value"`
	Label string         `json:"label"`
}

type schemaResponse struct {
	Fields    []basin.Field `json:"fields"`
	SoilTypes []soilOption  `json:"soil_types"`
}

type soilResponse struct {
	Suggestion soil.Suggestion    `json:"suggestion"`
	MapUnits   []soil.MapUnit     `json:"map_units"`
	Validation *validation.Report `json:"validation"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Recharge Basin Calculator</title></head>
<body style="margin:0;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Recharge Basin Calculator</h1>
<p>POST basin inputs to <code>/api/evaluate</code>. Field definitions are at <code>/api/schema</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, basin.FromParameters(basin.Defaults()))
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	resp := schemaResponse{Fields: basin.Fields}
	for _, t := range basin.SoilTypes() {
		resp.SoilTypes = append(resp.SoilTypes, soilOption{Value: t, Label: t.Label()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateInput(&in))
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	eval, ok := s.evaluate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// evaluate decodes and evaluates the request body. It writes the error
// response itself and reports whether the caller should continue.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) (evaluateResponse, bool) {
	in, ok := decodeInput(w, r)
	if !ok {
		return evaluateResponse{}, false
	}

	eval, report, err := analytics.Evaluate(&in)
	if err != nil {
		log.Printf("evaluate: %v", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return evaluateResponse{}, false
	}
	if eval == nil {
		writeJSON(w, http.StatusUnprocessableEntity, evaluateResponse{
			Validation:  report,
			FieldErrors: report.FieldErrors(),
		})
		return evaluateResponse{}, false
	}
	return evaluateResponse{Evaluation: eval, Validation: report}, true
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	in, err := s.snapshots.Load(r.Context())
	if errors.Is(err, store.ErrNoSnapshot) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Printf("snapshot load: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load snapshot")
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	if err := s.snapshots.Save(r.Context(), in); err != nil {
		log.Printf("snapshot save: %v", err)
		writeError(w, http.StatusInternalServerError, "could not save snapshot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.snapshots.Clear(r.Context()); err != nil {
		log.Printf("snapshot clear: %v", err)
		writeError(w, http.StatusInternalServerError, "could not clear snapshot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSoil(w http.ResponseWriter, r *http.Request) {
	var b geo.Bounds
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	units, err := s.soil.Lookup(r.Context(), b)
	switch {
	case errors.Is(err, soil.ErrNoMapUnits):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Printf("soil lookup: %v", err)
		writeError(w, http.StatusBadGateway, "soil lookup failed")
		return
	}

	suggestion := soil.Suggest(b, units)
	writeJSON(w, http.StatusOK, soilResponse{
		Suggestion: suggestion,
		MapUnits:   units,
		Validation: suggestion.Check(),
	})
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, "application/pdf", "basin-report.pdf", func(out io.Writer, e *analytics.Evaluation) error {
		return render.WritePDF(out, e)
	})
}

func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "basin-report.xlsx", func(out io.Writer, e *analytics.Evaluation) error {
		return render.WriteXLSX(out, e)
	})
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, contentType, filename string, write func(io.Writer, *analytics.Evaluation) error) {
	resp, ok := s.evaluate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, resp.Evaluation); err != nil {
		log.Printf("report %s: %v", filename, err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func decodeInput(w http.ResponseWriter, r *http.Request) (basin.Input, bool) {
	var in basin.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return basin.Input{}, false
	}
	return in, true
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeJSON encodes before writing the header so an unencodable value
// becomes a 500 rather than a truncated 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"error":"could not encode response"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
