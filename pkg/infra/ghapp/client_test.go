package ghapp_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/infra/ghapp"
)

func TestNew(t *testing.T) {
	t.Run("create new GitHub App client with valid inputs", func(t *testing.T) {
		_, err := ghapp.New(types.GitHubAppID(12345), types.GitHubAppPrivateKey("test-key"))
		gt.NoError(t, err)
	})

	t.Run("create with empty private key fails", func(t *testing.T) {
		client, err := ghapp.New(types.GitHubAppID(12345), types.GitHubAppPrivateKey(""))
		gt.Error(t, err)
		gt.True(t, client == nil)
	})

	t.Run("create with zero app ID fails", func(t *testing.T) {
		client, err := ghapp.New(types.GitHubAppID(0), types.GitHubAppPrivateKey("test-key"))
		gt.Error(t, err)
		gt.True(t, client == nil)
	})

	t.Run("HTTPClient returns error with invalid key", func(t *testing.T) {
		client, err := ghapp.New(types.GitHubAppID(12345), types.GitHubAppPrivateKey("invalid-key"))
		gt.NoError(t, err)

		httpClient, err := client.HTTPClient(types.GitHubAppInstallID(67890))
		gt.Error(t, err)
		gt.True(t, httpClient == nil)
	})
}

func newPrivateKey(t *testing.T) types.GitHubAppPrivateKey {
	t.Helper()
	key := gt.R1(rsa.GenerateKey(rand.Reader, 2048)).NoError(t)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return types.GitHubAppPrivateKey(pem.EncodeToMemory(block))
}

func TestGetInstallationIDForOwner(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/api/v3/orgs/octocat/installation":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		case "/api/v3/users/octocat/installation":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":4242}`))
		case "/api/v3/orgs/acme/installation":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1001}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := ghapp.New(types.GitHubAppID(12345), newPrivateKey(t), ghapp.WithBaseURL(srv.URL))
	gt.NoError(t, err)

	t.Run("organization installation", func(t *testing.T) {
		calls = nil
		id := gt.R1(client.GetInstallationIDForOwner(context.Background(), "acme")).NoError(t)
		gt.V(t, id).Equal(types.GitHubAppInstallID(1001))
		gt.V(t, calls).Equal([]string{"/api/v3/orgs/acme/installation"})
	})

	t.Run("falls back to user installation", func(t *testing.T) {
		calls = nil
		id := gt.R1(client.GetInstallationIDForOwner(context.Background(), "octocat")).NoError(t)
		gt.V(t, id).Equal(types.GitHubAppInstallID(4242))
		gt.V(t, calls).Equal([]string{
			"/api/v3/orgs/octocat/installation",
			"/api/v3/users/octocat/installation",
		})
	})

	t.Run("server error is not retried as user", func(t *testing.T) {
		calls = nil
		_, err := client.GetInstallationIDForOwner(context.Background(), "broken")
		gt.Error(t, err)
		gt.V(t, len(calls)).Equal(1)
	})
}

func TestInstallation_Integration(t *testing.T) {
	appIDStr := os.Getenv("TEST_GITHUB_APP_ID")
	privateKey := os.Getenv("TEST_GITHUB_PRIVATE_KEY")
	owner := os.Getenv("TEST_GITHUB_OWNER")

	if appIDStr == "" || privateKey == "" || owner == "" {
		t.Skip("TEST_GITHUB_APP_ID, TEST_GITHUB_PRIVATE_KEY, and TEST_GITHUB_OWNER must be set")
	}

	appID, err := strconv.ParseInt(appIDStr, 10, 64)
	gt.NoError(t, err)

	client, err := ghapp.New(types.GitHubAppID(appID), types.GitHubAppPrivateKey(privateKey))
	gt.NoError(t, err)

	installID, err := client.GetInstallationIDForOwner(context.Background(), owner)
	gt.NoError(t, err)
	gt.V(t, installID).NotEqual(types.GitHubAppInstallID(0))

	httpClient, err := client.HTTPClient(installID)
	gt.NoError(t, err)

	resp, err := httpClient.Get("https://api.github.com/installation/repositories?per_page=1")
	gt.NoError(t, err)
	defer resp.Body.Close()
	gt.V(t, resp.StatusCode).Equal(http.StatusOK)
}
