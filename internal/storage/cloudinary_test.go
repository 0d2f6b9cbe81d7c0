package storage

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadImageSignsAndReturnsURL(t *testing.T) {
	const hostedURL = "https://res.cloudinary.com/demo/image/upload/v1/safespot/avatars/a.png"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo/image/upload" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatal(err)
		}
		if got := r.FormValue("api_key"); got != "key" {
			t.Fatalf("unexpected api_key %q", got)
		}
		if got := r.FormValue("folder"); got != AvatarFolder {
			t.Fatalf("unexpected folder %q", got)
		}

		timestamp := r.FormValue("timestamp")
		want := fmt.Sprintf("%x", sha1.Sum([]byte("folder="+AvatarFolder+"&timestamp="+timestamp+"secret")))
		if got := r.FormValue("signature"); got != want {
			t.Fatalf("signature mismatch: got %q, want %q", got, want)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatal(err)
		}
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "png-bytes" {
			t.Fatalf("unexpected file content %q", content)
		}

		fmt.Fprintf(w, `{"secure_url":%q}`, hostedURL)
	}))
	defer srv.Close()

	client := NewCloudinaryClient("demo", "key", "secret")
	client.BaseURL = srv.URL

	url, err := client.UploadImage(context.Background(), "a.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if url != hostedURL {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestUploadImageSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid Signature"}}`)
	}))
	defer srv.Close()

	client := NewCloudinaryClient("demo", "key", "wrong")
	client.BaseURL = srv.URL

	_, err := client.UploadImage(context.Background(), "a.png", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "Invalid Signature") {
		t.Fatalf("expected API error to surface, got %v", err)
	}
}

func TestUploadImageUnconfigured(t *testing.T) {
	client := NewCloudinaryClient("", "", "")
	if _, err := client.UploadImage(context.Background(), "a.png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}
