// AngelaMos | 2026
// form.go

package property

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/media"
)

const formOverhead = 1 << 20

// requestBody is a decoded create or update payload plus the optional image
// part. close must be called once the image has been consumed.
type requestBody struct {
	form  *multipart.Form
	image *media.Upload
	file  multipart.File
}

func (b *requestBody) close() {
	if b.file != nil {
		_ = b.file.Close() //nolint:errcheck // read-only upload part
	}
	if b.form != nil {
		_ = b.form.RemoveAll() //nolint:errcheck // temp files only
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readBody parses JSON into dst, or a multipart form into the returned
// requestBody for the caller to map onto dst.
func readBody(
	w http.ResponseWriter,
	r *http.Request,
	maxUpload int64,
	dst any,
) (*requestBody, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formOverhead)

	if !isMultipart(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return nil, bodyError(err)
		}
		return &requestBody{}, nil
	}

	if err := r.ParseMultipartForm(maxUpload + formOverhead); err != nil {
		return nil, bodyError(err)
	}

	body := &requestBody{form: r.MultipartForm}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		body.close()
		return nil, core.ValidationError("invalid image upload")
	default:
		body.file = file
		body.image = &media.Upload{Filename: header.Filename, Content: file}
	}

	return body, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return core.NewAppError(
			err,
			"request body too large",
			http.StatusRequestEntityTooLarge,
			core.CodePayloadTooLarge,
		)
	}
	return core.ValidationError("invalid request body")
}

func (b *requestBody) createRequest() (CreatePropertyRequest, error) {
	var req CreatePropertyRequest
	f := formValues(b.form.Value)

	req.Title = f.str("title")
	req.Description = f.str("description")
	req.Location = f.str("location")
	req.Type = f.str("type")
	req.Furnished = f.boolean("furnished")

	var err error
	if rent := f.str("rent"); rent != "" {
		if req.Rent, err = strconv.ParseFloat(rent, 64); err != nil {
			return req, core.ValidationError("rent must be a number")
		}
	}
	if req.Bedrooms, err = f.intPtr("bedrooms"); err != nil {
		return req, err
	}
	if req.Bathrooms, err = f.intPtr("bathrooms"); err != nil {
		return req, err
	}
	if req.Size, err = f.floatPtr("size"); err != nil {
		return req, err
	}

	return req, nil
}

func (b *requestBody) updateRequest() (UpdatePropertyRequest, error) {
	var req UpdatePropertyRequest
	f := formValues(b.form.Value)

	req.Title = f.strPtr("title")
	req.Description = f.strPtr("description")
	req.Location = f.strPtr("location")
	req.Type = f.strPtr("type")
	if f.str("furnished") != "" {
		furnished := f.boolean("furnished")
		req.Furnished = &furnished
	}

	var err error
	if req.Rent, err = f.floatPtr("rent"); err != nil {
		return req, err
	}
	if req.Bedrooms, err = f.intPtr("bedrooms"); err != nil {
		return req, err
	}
	if req.Bathrooms, err = f.intPtr("bathrooms"); err != nil {
		return req, err
	}
	if req.Size, err = f.floatPtr("size"); err != nil {
		return req, err
	}

	return req, nil
}

type formValues map[string][]string

func (f formValues) str(key string) string {
	if v := f[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func (f formValues) strPtr(key string) *string {
	if v := f.str(key); v != "" {
		return &v
	}
	return nil
}

func (f formValues) boolean(key string) bool {
	return f.str(key) == "true"
}

func (f formValues) intPtr(key string) (*int, error) {
	v := f.str(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, core.ValidationError(fmt.Sprintf("%s must be a whole number", key))
	}
	return &n, nil
}

func (f formValues) floatPtr(key string) (*float64, error) {
	v := f.str(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, core.ValidationError(fmt.Sprintf("%s must be a number", key))
	}
	return &n, nil
}
