package domain

// ImageAsset is one user-selected image. It is produced once per selection and
// never mutated; picking a new file supersedes the previous asset. A pipeline
// run captures the asset at start and keeps it for the whole run.
type ImageAsset struct {
	Data      []byte
	MediaType string
	Name      string
}

// Empty reports whether no usable image payload is present.
func (a ImageAsset) Empty() bool {
	return len(a.Data) == 0
}
