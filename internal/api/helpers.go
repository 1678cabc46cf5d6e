package api

import (
	"encoding/json/v2"
	"io"
	"net/http"
	"strings"

	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
)

const (
	// maxJSONBodySize caps JSON request bodies at 10 MB; notebook and
	// journal saves carry whole manuscripts.
	maxJSONBodySize = 10 << 20
	// maxUploadSize caps file uploads (PDFs, board images) at 50 MB.
	maxUploadSize = 50 << 20
)

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodySize))
	if err != nil {
		return domainerrors.Validation("failed to read request body")
	}
	if len(body) == 0 {
		return domainerrors.Validation("request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domainerrors.Validation("invalid JSON in request body")
	}
	return nil
}

// readUpload pulls one file out of a multipart form and gates it by
// content type. allowedType matches either exactly ("application/pdf")
// or by prefix when it ends with "/" ("image/").
func readUpload(r *http.Request, field, allowedType string) (fileName string, data []byte, err error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", nil, domainerrors.Validation("invalid multipart form")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, domainerrors.Validationf("missing file field %q", field)
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return "", nil, domainerrors.Validation("file exceeds maximum upload size")
	}

	contentType := header.Header.Get("Content-Type")
	if strings.HasSuffix(allowedType, "/") {
		if !strings.HasPrefix(contentType, allowedType) {
			return "", nil, domainerrors.Validationf("unsupported file type %q", contentType)
		}
	} else if contentType != allowedType {
		return "", nil, domainerrors.Validationf("unsupported file type %q", contentType)
	}

	data, err = io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return "", nil, domainerrors.Internal("failed to read uploaded file")
	}

	return header.Filename, data, nil
}
