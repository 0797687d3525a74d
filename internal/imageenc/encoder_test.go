package imageenc

import (
	"errors"
	"strings"
	"testing"

	"github.com/Surojit012/DobbyCaption/internal/domain"
)

func TestEncodeProducesDataURI(t *testing.T) {
	t.Parallel()
	img, err := Encode(strings.NewReader("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if img.MediaType() != "image/png" {
		t.Fatalf("MediaType = %q, want %q", img.MediaType(), "image/png")
	}
	want := "data:image/png;base64,cG5nLWJ5dGVz"
	if img.DataURI() != want {
		t.Fatalf("DataURI = %q, want %q", img.DataURI(), want)
	}
}

func TestEncodeRejectsEmptyPayload(t *testing.T) {
	t.Parallel()
	_, err := Encode(strings.NewReader(""), "image/jpeg")
	if !errors.Is(err, domain.ErrEncodingFailed) {
		t.Fatalf("expected ErrEncodingFailed, got %v", err)
	}
}

func TestEncodeRejectsNonImageMediaType(t *testing.T) {
	t.Parallel()
	_, err := Encode(strings.NewReader("payload"), "text/plain")
	if !errors.Is(err, domain.ErrEncodingFailed) {
		t.Fatalf("expected ErrEncodingFailed, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestEncodeSurfacesReadFailure(t *testing.T) {
	t.Parallel()
	_, err := Encode(failingReader{}, "image/png")
	if !errors.Is(err, domain.ErrEncodingFailed) {
		t.Fatalf("expected ErrEncodingFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Fatalf("underlying cause missing from error: %v", err)
	}
}

func TestEncodeAsset(t *testing.T) {
	t.Parallel()
	asset := domain.ImageAsset{Data: []byte{0x89, 0x50, 0x4e, 0x47}, MediaType: "image/png", Name: "sample.png"}
	img, err := EncodeAsset(asset)
	if err != nil {
		t.Fatalf("EncodeAsset returned error: %v", err)
	}
	if !strings.HasPrefix(img.DataURI(), "data:image/png;base64,") {
		t.Fatalf("unexpected data URI: %s", img.DataURI())
	}

	if _, err := EncodeAsset(domain.ImageAsset{MediaType: "image/png"}); !errors.Is(err, domain.ErrEncodingFailed) {
		t.Fatalf("expected ErrEncodingFailed for empty asset, got %v", err)
	}
}
