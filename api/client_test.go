package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eTEats_recipes/models"
)

func TestClient_Recipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v2/recipes/abc123", r.URL.Path)
		assert.Equal(t, "k1", r.URL.Query().Get("key"))
		io.WriteString(w, `{"status":"success","data":{"recipe":{"id":"abc123","title":"Pasta","servings":2,"ingredients":[{"quantity":1.5,"unit":"cups","description":"flour"}]}}}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v2/recipes", "k1", time.Second)
	got, err := c.Recipe(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Pasta", got.Title)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, 1.5, *got.Ingredients[0].Quantity)
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/recipes/", r.URL.Path)
		assert.Equal(t, "pizza pie", r.URL.Query().Get("search"))
		io.WriteString(w, `{"status":"success","results":2,"data":{"recipes":[{"id":"a","title":"A"},{"id":"b","title":"B","key":"mine"}]}}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v2/recipes/", "k1", time.Second)
	got, err := c.Search(context.Background(), "pizza pie")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mine", got[1].Key)
}

func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in models.RecipeDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = "new-id"
		in.Key = r.URL.Query().Get("key")
		var env models.RecipeEnvelope
		env.Status = "success"
		env.Data.Recipe = in
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(env)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "k1", time.Second)
	got, err := c.Upload(context.Background(), models.RecipeDTO{Title: "Soup", Servings: 3})
	require.NoError(t, err)
	assert.Equal(t, "new-id", got.ID)
	assert.Equal(t, "k1", got.Key)
	assert.Equal(t, "Soup", got.Title)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"status":"fail","message":"Invalid _id: nope"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/", "", time.Second).Recipe(context.Background(), "nope")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Invalid _id: nope (400)", err.Error())
}

func TestClient_StatusErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/", "", time.Second).Search(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":`)
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/", "", time.Second).Search(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL+"/", "", time.Second).Recipe(ctx, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
