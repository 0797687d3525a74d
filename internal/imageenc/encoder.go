package imageenc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/Surojit012/DobbyCaption/internal/domain"
)

// EncodedImage is a transfer-safe textual rendering of an image, suitable for
// inline inclusion in a JSON request body. It embeds the media type, so the
// value is self-describing.
type EncodedImage struct {
	mediaType string
	dataURI   string
}

// MediaType returns the declared media type of the encoded payload.
func (e EncodedImage) MediaType() string { return e.mediaType }

// DataURI returns the data: URI form of the image.
func (e EncodedImage) DataURI() string { return e.dataURI }

// Empty reports whether the value holds no payload.
func (e EncodedImage) Empty() bool { return e.dataURI == "" }

// Encode reads the full image payload from r and returns a base64 data URI
// embedding mediaType. Read failures surface as domain.ErrEncodingFailed.
func Encode(r io.Reader, mediaType string) (EncodedImage, error) {
	mediaType = strings.TrimSpace(mediaType)
	if !strings.HasPrefix(mediaType, "image/") {
		return EncodedImage{}, fmt.Errorf("%w: unrecognized media type %q", domain.ErrEncodingFailed, mediaType)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("%w: %v", domain.ErrEncodingFailed, err)
	}
	if len(data) == 0 {
		return EncodedImage{}, fmt.Errorf("%w: empty payload", domain.ErrEncodingFailed)
	}
	return EncodedImage{
		mediaType: mediaType,
		dataURI:   fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data)),
	}, nil
}

// EncodeAsset encodes a captured ImageAsset.
func EncodeAsset(asset domain.ImageAsset) (EncodedImage, error) {
	if asset.Empty() {
		return EncodedImage{}, fmt.Errorf("%w: empty payload", domain.ErrEncodingFailed)
	}
	return Encode(bytes.NewReader(asset.Data), asset.MediaType)
}
