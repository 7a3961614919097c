package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/schemaguard/schemaguard/pkg/document"
	"github.com/schemaguard/schemaguard/pkg/errors"
	"github.com/schemaguard/schemaguard/pkg/schema"
	"github.com/schemaguard/schemaguard/pkg/serializer"
	"github.com/schemaguard/schemaguard/pkg/validator"
)

// rawDocument defers decoding of an embedded document until the request
// body is parsed, keeping mapping order intact.
type rawDocument struct {
	doc document.Value
	set bool
}

func (d *rawDocument) UnmarshalJSON(data []byte) error {
	// JSON is a YAML subset, so the shared document decoder applies.
	v, err := document.Parse(data)
	if err != nil {
		return err
	}
	d.doc = v
	d.set = true
	return nil
}

// handleValidate handles POST /v1/validate: it parses the embedded schema
// and config documents, runs one validation pass, and returns the full
// report. Schema defects are a client error; config findings are not, the
// report carries them.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]interface{}{
				"method": r.Method,
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]interface{}{
				"error": err.Error(),
			})
		return
	}
	if !req.Schema.set {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Request must contain a schema document", false, nil)
		return
	}
	if !req.Config.set {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Request must contain a config document", false, nil)
		return
	}

	parsed, err := schema.Parse(req.Schema.doc)
	if err != nil {
		var serr *schema.Error
		details := map[string]interface{}{"error": err.Error()}
		if errors.As(err, &serr) {
			details = map[string]interface{}{"problems": serr.Problems}
		}
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeSchema,
			"Schema document is invalid", false, details)
		return
	}

	opts := []validator.Option{validator.WithVersion(s.version)}
	if req.AllowExtraKeys != nil {
		// An explicit request policy wins over one declared in the schema.
		opts = append(opts, validator.WithAllowExtraKeys(*req.AllowExtraKeys))
	}

	v := validator.New(opts...)
	result, err := v.Validate(ctx, parsed, req.Config.doc)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, errors.CodeOf(err),
			"Validation failed", true, map[string]interface{}{
				"error": err.Error(),
			})
		return
	}

	slog.Debug("validate request served",
		"fields", result.Summary.Fields,
		"findings", result.Summary.Findings,
		"status", result.Summary.Status,
	)

	serializer.RespondJSON(w, http.StatusOK, result)
}

// CheckSchemaResponse is the body returned by POST /v1/schema/check.
type CheckSchemaResponse struct {
	Valid    bool             `json:"valid" yaml:"valid"`
	Problems []schema.Problem `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// handleCheckSchema handles POST /v1/schema/check: meta-validation of a
// schema document without validating any config against it.
func (s *Server) handleCheckSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]interface{}{
				"method": r.Method,
			})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req CheckSchemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]interface{}{
				"error": err.Error(),
			})
		return
	}
	if !req.Schema.set {
		WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Request must contain a schema document", false, nil)
		return
	}

	problems := schema.Check(req.Schema.doc)
	serializer.RespondJSON(w, http.StatusOK, CheckSchemaResponse{
		Valid:    len(problems) == 0,
		Problems: problems,
	})
}
