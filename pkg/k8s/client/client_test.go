package client

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSingleton() {
	clientOnce = sync.Once{}
	cachedClient = nil
	cachedConfig = nil
	clientErr = nil
}

func TestBuildKubeClientExplicitInvalidPath(t *testing.T) {
	_, _, err := BuildKubeClient("/nonexistent/path/to/kubeconfig")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build kube config")
}

func TestBuildKubeClientEnvPath(t *testing.T) {
	t.Setenv("KUBECONFIG", "/nonexistent/env/kubeconfig")
	_, _, err := BuildKubeClient("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build kube config")
}

func TestBuildKubeClientMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, os.WriteFile(path, []byte("not a kubeconfig"), 0600))

	_, _, err := BuildKubeClient(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build kube config")
}

func TestGetKubeClientSingleton(t *testing.T) {
	// Singleton state is package-global; reset around the test so other
	// tests are unaffected.
	resetSingleton()
	defer resetSingleton()

	client1, config1, err1 := GetKubeClient()
	client2, config2, err2 := GetKubeClient()

	// Whether or not a cluster config exists in the environment, both
	// calls must return the exact same results.
	assert.Equal(t, err1 == nil, err2 == nil)
	assert.True(t, client1 == client2)
	assert.True(t, config1 == config2)
}

func TestGetKubeClientConcurrent(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	const goroutines = 10
	results := make(chan bool, goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			c, _, _ := GetKubeClient()
			results <- c != nil
		}()
	}

	first := <-results
	for i := 1; i < goroutines; i++ {
		assert.Equal(t, first, <-results)
	}
}
