package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/fleet-policy/pkg/bundler"
	apperrors "github.com/NVIDIA/fleet-policy/pkg/errors"
	"github.com/NVIDIA/fleet-policy/pkg/policy"
	"github.com/NVIDIA/fleet-policy/pkg/serializer"
	"github.com/NVIDIA/fleet-policy/pkg/server"
)

const (
	// maxIntentBytes caps the intent request body size.
	maxIntentBytes = 1 << 20

	contentTypeYAML = "application/yaml"
)

// Handler serves policy bundle generation requests.
type Handler struct {
	MaxRequestBytes int64
}

// NewHandler creates a bundle request handler with default limits.
func NewHandler() *Handler {
	return &Handler{
		MaxRequestBytes: maxIntentBytes,
	}
}

// BundleResponse is the JSON envelope returned for ?format=json.
type BundleResponse struct {
	Policy    string         `json:"policy"`
	Namespace string         `json:"namespace"`
	Resources []ResourceInfo `json:"resources"`
	Bundle    string         `json:"bundle"`
}

// ResourceInfo identifies one resource in a generated bundle.
type ResourceInfo struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// HandleBundle handles POST /v1/bundle. The request body is a policy
// intent in YAML or JSON; the response is the rendered bundle.
func (h *Handler) HandleBundle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			string(apperrors.ErrCodeMethodNotAllowed),
			fmt.Sprintf("method %s not allowed, use POST", r.Method), false, nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxRequestBytes))
	if err != nil {
		slog.Error("failed to read request body", "error", err)
		server.WriteError(w, r, http.StatusRequestEntityTooLarge,
			string(apperrors.ErrCodeInvalidRequest),
			"request body too large or unreadable", false, nil)
		return
	}

	intent, err := policy.ParseIntent(bytes.NewReader(body))
	if err != nil {
		writeBuildError(w, r, "failed to parse intent", err)
		return
	}

	// API intents cannot reference local files, manifests must be inline.
	spec, err := intent.ToSpecInline()
	if err != nil {
		writeBuildError(w, r, "failed to resolve intent", err)
		return
	}

	rule, err := spec.ResolvePlacement()
	if err != nil {
		writeBuildError(w, r, "failed to resolve placement", err)
		return
	}

	bundle, err := bundler.Build(spec, rule)
	if err != nil {
		writeBuildError(w, r, "failed to build bundle", err)
		return
	}

	rendered, err := serializer.RenderBundle(bundle)
	if err != nil {
		writeBuildError(w, r, "failed to render bundle", err)
		return
	}

	slog.Info("bundle generated",
		"policy", spec.Name,
		"namespace", spec.Namespace,
		"resources", bundle.Len(),
	)

	if r.URL.Query().Get("format") == "json" {
		resp := BundleResponse{
			Policy:    spec.Name,
			Namespace: spec.Namespace,
			Bundle:    rendered,
		}
		for _, res := range bundle.Resources() {
			resp.Resources = append(resp.Resources, ResourceInfo{
				Kind:      res.Kind,
				Name:      res.Name,
				Namespace: res.Namespace,
			})
		}
		serializer.RespondJSON(w, http.StatusOK, resp)
		return
	}

	w.Header().Set("Content-Type", contentTypeYAML)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(rendered)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// writeBuildError maps domain error codes to HTTP statuses. Input
// errors map to 400, everything else is a 500.
func writeBuildError(w http.ResponseWriter, r *http.Request, message string, err error) {
	slog.Error(message, "error", err)

	status := http.StatusInternalServerError
	code := apperrors.ErrCodeInternal

	for _, c := range []apperrors.ErrorCode{
		apperrors.ErrCodeConfig,
		apperrors.ErrCodeManifest,
		apperrors.ErrCodeLabelPredicate,
		apperrors.ErrCodeInvalidRequest,
	} {
		if apperrors.IsCode(err, c) {
			status = http.StatusBadRequest
			code = c
			break
		}
	}

	server.WriteError(w, r, status, string(code),
		fmt.Sprintf("%s: %v", message, err), false, nil)
}
