package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reco-ai/knowledge-be/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locationXML = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`

func newTestMinioStore(t *testing.T, handler http.HandlerFunc) (*MinioImageStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the client may resolve the bucket location before object calls
		if r.Method == http.MethodGet && r.URL.Query().Has("location") {
			w.Header().Set("Content-Type", "application/xml")
			io.WriteString(w, locationXML)
			return
		}
		handler(w, r)
	}))

	store, err := NewMinioImageStore(config.MinioConfig{
		Endpoint:  strings.TrimPrefix(server.URL, "http://"),
		Bucket:    "knowledge",
		AccessKey: "test",
		SecretKey: "secret",
		UseSSL:    false,
	})
	require.NoError(t, err)
	return store, server
}

func TestMinioStoreSkipsExistingObject(t *testing.T) {
	heads, puts := 0, 0
	store, server := newTestMinioStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			heads++
			w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.Header().Set("Content-Length", "4")
		case http.MethodPut:
			puts++
		default:
			t.Errorf("unexpected %s request", r.Method)
		}
	})
	defer server.Close()

	url, err := store.Store(context.Background(), "docx_doc_img1.png", []byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, heads)
	assert.Zero(t, puts, "an existing object must not be re-uploaded")
	assert.Equal(t, server.URL+"/knowledge/images/docx_doc_img1.png", url)
}

func TestMinioStoreUploadsMissingObject(t *testing.T) {
	putPath := ""
	store, server := newTestMinioStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			putPath = r.URL.Path
			w.Header().Set("ETag", `"9a0364b9e99bb480dd25e1f0284c8555"`)
		default:
			t.Errorf("unexpected %s request", r.Method)
		}
	})
	defer server.Close()

	url, err := store.Store(context.Background(), "docx_doc_img1.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/knowledge/images/docx_doc_img1.png", putPath)
	assert.Equal(t, server.URL+"/knowledge/images/docx_doc_img1.png", url)
}

func TestMockImageStoreURL(t *testing.T) {
	s := NewMockImageStore()
	url, err := s.Store(context.Background(), "pdf_doc_p1_img1.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://fake-bucket.s3.amazonaws.com/images/pdf_doc_p1_img1.png", url)
}
