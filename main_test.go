package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eTEats_recipes/config"
	"eTEats_recipes/controller"
	"eTEats_recipes/handlers"
	"eTEats_recipes/repository"
	"eTEats_recipes/views"
)

// setupCLI points every command at an in-process API and a throwaway
// storage file.
func setupCLI(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())

	srv := httptest.NewServer(handlers.NewRouter(handlers.NewDeps(repository.NewMemory(), nil), []string{"*"}))
	t.Cleanup(srv.Close)

	storePath := filepath.Join(t.TempDir(), "storage.json")
	t.Setenv("ETEATS_API_URL", srv.URL+handlers.APIPrefix+"/")
	t.Setenv("ETEATS_API_KEY", "cli-key")
	t.Setenv("ETEATS_STORAGE_DRIVER", "file")
	t.Setenv("ETEATS_STORAGE_PATH", storePath)
	t.Setenv("ETEATS_LOG_LEVEL", "error")
	return storePath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var uploadArgs = []string{
	"upload",
	"--title", "Garlic pizza",
	"--publisher", "cli",
	"--source-url", "http://example.com/garlic",
	"--image", "http://example.com/garlic.jpg",
	"--cooking-time", "30",
	"--servings", "2",
	"--ingredient", "1,kg,dough",
	"--ingredient", "4,,garlic cloves",
	"--ingredient", ",,salt",
}

func TestUploadShowAndBookmarks(t *testing.T) {
	storePath := setupCLI(t)

	out, err := run(t, uploadArgs...)
	require.NoError(t, err)
	assert.Contains(t, out, controller.UploadSuccessMessage)
	assert.Contains(t, out, "GARLIC PIZZA")
	assert.FileExists(t, storePath)

	// no id reopens the uploaded recipe, rescaled
	out, err = run(t, "show", "--servings", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "4 servings")
	assert.Contains(t, out, "8 garlic cloves")
	assert.Contains(t, out, "2 kg dough")

	out, err = run(t, "bookmarks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Garlic pizza")

	// toggling removes the bookmark
	_, err = run(t, "show", "--bookmark")
	require.NoError(t, err)
	out, err = run(t, "bookmarks")
	require.NoError(t, err)
	assert.Contains(t, out, views.NoBookmarksMessage)
}

func TestBookmarksClear(t *testing.T) {
	setupCLI(t)

	_, err := run(t, uploadArgs...)
	require.NoError(t, err)

	out, err := run(t, "bookmarks", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, views.NoBookmarksMessage)

	out, err = run(t, "bookmarks")
	require.NoError(t, err)
	assert.Contains(t, out, views.NoBookmarksMessage)
}

func TestSearch(t *testing.T) {
	setupCLI(t)

	_, err := run(t, uploadArgs...)
	require.NoError(t, err)

	out, err := run(t, "search", "garlic")
	require.NoError(t, err)
	assert.Contains(t, out, "Garlic pizza")

	out, err = run(t, "search", "nothing-like-this")
	require.NoError(t, err)
	assert.Contains(t, out, views.NoResultsMessage)
}

func TestSearchPage(t *testing.T) {
	setupCLI(t)

	_, err := run(t, uploadArgs...)
	require.NoError(t, err)

	out, err := run(t, "search", "garlic", "--page", "922337203685477582")
	require.NoError(t, err)
	assert.Contains(t, out, views.NoResultsMessage)
	assert.NotContains(t, out, "Page 922337203685477582")
}

func TestSearchFailureOnlyLogged(t *testing.T) {
	setupCLI(t)
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","message":"down"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(down.Close)
	t.Setenv("ETEATS_API_URL", down.URL+"/")

	out, err := run(t, "search", "pizza", "--page", "3")
	require.NoError(t, err)
	assert.NotContains(t, out, views.NoResultsMessage)
	assert.NotContains(t, out, "Page 3")
}

func TestShowUnknownRecipe(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "show", "does-not-exist")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, views.RecipeErrorMessage)
}

func TestShowWithoutHistory(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "show")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestUploadBadIngredient(t *testing.T) {
	setupCLI(t)

	args := append([]string{}, uploadArgs...)
	args = append(args, "--ingredient", "just salt")
	out, err := run(t, args...)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "wrong ingredient format")
}

func TestUploadRequiresFlags(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "upload", "--title", "only a title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestBadConfigFile(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "bookmarks")
	require.Error(t, err)
}

func TestServeSeedAndShutdown(t *testing.T) {
	t.Chdir(t.TempDir())
	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"id": "seed-1", "title": "Seeded pasta", "publisher": "seed", "servings": 2, "cooking_time": 20,
		 "ingredients": [{"quantity": 200, "unit": "g", "description": "pasta"}]}
	]`), 0o600))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.SeedFile = seed

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zap.NewNop(), ln) }()

	url := "http://" + ln.Addr().String() + handlers.APIPrefix + "/seed-1"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeBadSeed(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.SeedFile = filepath.Join(t.TempDir(), "missing.json")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = serve(context.Background(), cfg, zap.NewNop(), ln)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed")
}

func TestOpenRepositoryUnknown(t *testing.T) {
	_, _, err := openRepository(context.Background(), config.ServerConfig{Repository: "mongo"})
	require.Error(t, err)
}
