// media/types.go
package media

type AssetType string

const (
	AssetTypeOriginal   AssetType = "original"
	AssetTypeDerivative AssetType = "derivative"
)

// RenderResult describes one successfully written derivative file. Width
// and height are measured on the encoded output, not computed from the
// request.
type RenderResult struct {
	RelativePath string
	Width        int
	Height       int
	SizeBytes    int64
}

// mimeExtensions maps the detected MIME types of the upload allow-list to
// the extension used for content-addressed original paths.
var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/tiff": ".tiff",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ExtensionForMime returns the canonical file extension for an allowed
// MIME type, or "" when the type is not allowed. Decisions are always made
// on sniffed content, never on the uploaded filename.
func ExtensionForMime(mimeType string) string {
	return mimeExtensions[mimeType]
}
