package lookup

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
)

// ErrInvalidPath is returned in escaping mode for dot segments, which would
// let a caller climb out of the drive root.
var ErrInvalidPath = errors.New("lookup: path contains a '.' or '..' segment")

// Translator builds driveItem-by-path URLs.
type Translator struct {
	root   string
	escape bool
}

// NewTranslator returns a Translator rooted at root (graph.DefaultRootAddress
// when empty). With escape false, path and file name segments are used
// verbatim. With escape true, each segment is NFC-normalized and
// percent-encoded, and dot segments are rejected.
func NewTranslator(root string, escape bool) *Translator {
	if root == "" {
		root = graph.DefaultRootAddress
	}

	return &Translator{root: strings.TrimRight(root, "/"), escape: escape}
}

// URL returns {root}/drive/root:/{path}/{fileName}, followed by the
// download-field selection unless req.ShowAllFields is set. Separators are
// collapsed to one and empty segments are skipped.
func (t *Translator) URL(req Request) (string, error) {
	segments := []string{graph.DriveRootSegment}

	for _, part := range [...]string{req.Path, req.FileName} {
		for _, seg := range strings.Split(part, "/") {
			if seg == "" {
				continue
			}

			if t.escape {
				if seg == "." || seg == ".." {
					return "", fmt.Errorf("%w: %q", ErrInvalidPath, part)
				}

				seg = url.PathEscape(norm.NFC.String(seg))
			}

			segments = append(segments, seg)
		}
	}

	u := t.root + "/" + strings.Join(segments, "/")
	if !req.ShowAllFields {
		u += graph.SelectDownloadFields
	}

	return u, nil
}
