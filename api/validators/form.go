package validators

import (
	"mime/multipart"
	"net/http"

	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
)

// FormFile pulls a single multipart file field from the request, parsing the
// form if needed. maxMemory bounds the in-memory portion of the parse.
func FormFile(r *http.Request, field string, maxMemory int64) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "no file uploaded").WithDetails(map[string]any{"field": field})
	}
	return file, header, nil
}
