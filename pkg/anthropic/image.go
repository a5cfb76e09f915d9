package anthropic

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/papercomputeco/parley/pkg/llm"
)

var errImageTooLarge = errors.New("image exceeds size limit")

// ResolveImage turns a local path or URL into an inline base64 image source.
// A reference naming an existing local file is always read from disk, even
// if it also parses as a URL.
func (c *Client) ResolveImage(ctx context.Context, ref string) (*llm.ImageSource, error) {
	if ref == "" {
		return nil, newError(KindImage, nil, "image reference is empty")
	}

	var (
		data      []byte
		mediaType string
		err       error
	)

	if _, statErr := os.Stat(ref); statErr == nil {
		data, mediaType, err = c.readLocalImage(ref)
	} else {
		data, mediaType, err = c.fetchImage(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	if !isSupportedImageType(mediaType) {
		c.logger.Debug("rejected image",
			zap.String("ref", truncate(ref, 80)),
			zap.String("media_type", mediaType),
		)
		return nil, &Error{
			Kind:   KindUnsupportedImage,
			Detail: "Unsupported image type. Supported types are: " + strings.Join(supportedImageTypes[:], ", "),
		}
	}

	c.logger.Debug("resolved image",
		zap.String("ref", truncate(ref, 80)),
		zap.String("media_type", mediaType),
		zap.Int("bytes", len(data)),
	)

	return &llm.ImageSource{
		Type:      llm.SourceTypeBase64,
		MediaType: mediaType,
		Data:      base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (c *Client) readLocalImage(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", newError(KindImage, err, fmt.Sprintf("could not open image %s: %v", path, err))
	}
	defer f.Close()

	data, err := readLimited(f, c.config.MaxImageBytes)
	if err != nil {
		return nil, "", newError(KindImage, err, fmt.Sprintf("could not read image %s: %v", path, err))
	}

	return data, detectMediaType(path, data), nil
}

func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", newError(KindImage, err, fmt.Sprintf("could not fetch image %s: %v", url, err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", newError(KindImage, err, fmt.Sprintf("could not fetch image %s: %v", url, err))
	}
	defer resp.Body.Close()

	// The type is checked before the status, so an HTML error page is
	// reported as an unsupported type. The download is skipped either way.
	mediaType := normalizeMediaType(resp.Header.Get("Content-Type"))
	if !isSupportedImageType(mediaType) {
		return nil, mediaType, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", newError(KindImage, nil, fmt.Sprintf("could not fetch image %s: server returned %d", url, resp.StatusCode))
	}

	data, err := readLimited(resp.Body, c.config.MaxImageBytes)
	if err != nil {
		return nil, "", newError(KindImage, err, fmt.Sprintf("could not read image %s: %v", url, err))
	}

	return data, mediaType, nil
}

// detectMediaType sniffs the content first and falls back to the file
// extension when the content is not recognised.
func detectMediaType(path string, data []byte) string {
	mtype := mimetype.Detect(data)
	if !mtype.Is("application/octet-stream") {
		return normalizeMediaType(mtype.String())
	}
	return normalizeMediaType(mime.TypeByExtension(filepath.Ext(path)))
}

// normalizeMediaType strips parameters and lower-cases the type.
func normalizeMediaType(s string) string {
	s, _, _ = strings.Cut(s, ";")
	return strings.ToLower(strings.TrimSpace(s))
}

func isSupportedImageType(mediaType string) bool {
	return slices.Contains(supportedImageTypes[:], mediaType)
}

// readLimited reads all of r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %d bytes", errImageTooLarge, limit)
	}
	return data, nil
}
