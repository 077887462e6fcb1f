package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validIntent = `
apiVersion: fleet.nvidia.com/v1alpha1
kind: PolicyIntent
metadata:
  name: gpu-driver-policy
  namespace: fleet-system
spec:
  remediation: enforce
  placement:
    labelSelectors:
      environment: production
  manifests:
    - apiVersion: v1
      kind: ConfigMap
      metadata:
        name: driver-config
        namespace: gpu-operator
      data:
        version: "570.86.15"
`

func postBundle(t *testing.T, body, target string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleBundle(rec, req)
	return rec
}

func TestHandleBundle(t *testing.T) {
	rec := postBundle(t, validIntent, "/v1/bundle")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, contentTypeYAML, rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "kind: Policy")
	assert.Contains(t, body, "kind: Placement")
	assert.Contains(t, body, "kind: PlacementBinding")
	assert.Contains(t, body, "name: gpu-driver-policy")
	assert.Contains(t, body, "name: placement-gpu-driver-policy")
	assert.Contains(t, body, "name: binding-gpu-driver-policy")
	assert.Contains(t, body, "driver-config")
}

func TestHandleBundleJSONFormat(t *testing.T) {
	rec := postBundle(t, validIntent, "/v1/bundle?format=json")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp BundleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "gpu-driver-policy", resp.Policy)
	assert.Equal(t, "fleet-system", resp.Namespace)
	require.Len(t, resp.Resources, 3)
	assert.Equal(t, "Policy", resp.Resources[0].Kind)
	assert.Equal(t, "Placement", resp.Resources[1].Kind)
	assert.Equal(t, "PlacementBinding", resp.Resources[2].Kind)
	assert.Contains(t, resp.Bundle, "kind: Policy")
}

func TestHandleBundleAcceptsJSONBody(t *testing.T) {
	// JSON is a subset of YAML so the same decode path serves both.
	body := `{
	  "apiVersion": "fleet.nvidia.com/v1alpha1",
	  "kind": "PolicyIntent",
	  "metadata": {"name": "json-policy", "namespace": "default"},
	  "spec": {
	    "remediation": "inform",
	    "placement": {"labelSelectors": {"tier": "edge"}},
	    "manifests": [
	      {"apiVersion": "v1", "kind": "ConfigMap", "metadata": {"name": "cfg"}}
	    ]
	  }
	}`

	rec := postBundle(t, body, "/v1/bundle")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "name: json-policy")
	assert.Contains(t, rec.Body.String(), "remediationAction: inform")
}

func TestHandleBundleMethodNotAllowed(t *testing.T) {
	h := NewHandler()
	req := httptest.NewRequest(http.MethodGet, "/v1/bundle", nil)
	rec := httptest.NewRecorder()

	h.HandleBundle(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandleBundleMalformedBody(t *testing.T) {
	rec := postBundle(t, "not: [valid", "/v1/bundle")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFIG")
}

func TestHandleBundleRejectsPathManifests(t *testing.T) {
	intent := `
apiVersion: fleet.nvidia.com/v1alpha1
kind: PolicyIntent
metadata:
  name: path-policy
  namespace: default
spec:
  remediation: enforce
  placement:
    labelSelectors:
      env: dev
  manifests:
    - manifests/local-file.yaml
`

	rec := postBundle(t, intent, "/v1/bundle")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
}

func TestHandleBundleConflictingPlacement(t *testing.T) {
	intent := `
apiVersion: fleet.nvidia.com/v1alpha1
kind: PolicyIntent
metadata:
  name: conflicted
  namespace: default
spec:
  remediation: enforce
  placement:
    labelSelectors:
      env: dev
    clusterSets: [prod-east]
  manifests:
    - apiVersion: v1
      kind: ConfigMap
      metadata:
        name: cfg
`

	rec := postBundle(t, intent, "/v1/bundle")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFIG")
}

func TestHandleBundleBodyTooLarge(t *testing.T) {
	h := NewHandler()
	h.MaxRequestBytes = 16

	req := httptest.NewRequest(http.MethodPost, "/v1/bundle", strings.NewReader(validIntent))
	rec := httptest.NewRecorder()

	h.HandleBundle(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
