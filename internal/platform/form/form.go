// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package form decodes request bodies into presence-aware field sets.

Mutating endpoints accept either a JSON object or a multipart form (used when an
image is attached). Both are decoded into [Values], where every field carries an
explicit "was this key present" marker next to its raw value, so partial updates
can tell an absent key from an explicit empty string or a JSON null.

JSON numbers are kept as [encoding/json.Number] and multipart scalars are plain
strings; interpreting them is the job of the validate package.
*/
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/tvcatalog/internal/platform/apperr"
)

// defaultMaxBytes caps request bodies when [Options.MaxBytes] is zero.
const defaultMaxBytes = 10 << 20

// Field is a single named input value together with its presence marker.
type Field struct {
	Name string
	// Present reports whether the key appeared in the input at all.
	Present bool
	// Value is the raw decoded value: nil, string, bool, json.Number, []any or map[string]any.
	Value any
}

// Supplied reports whether the caller sent the key with a non-null value.
func (f Field) Supplied() bool {
	return f.Present && f.Value != nil
}

// String returns the value when it is a string.
func (f Field) String() (string, bool) {
	s, ok := f.Value.(string)
	return s, ok
}

// File is an uploaded file that has been spooled to a local temporary path.
type File struct {
	Field    string
	Filename string
	Path     string
	Size     int64
}

// Values is the decoded body of a request.
type Values struct {
	fields map[string]any
	files  map[string]*File
}

// New builds [Values] from an already decoded map. It is mostly useful in tests
// and for internal callers that construct input programmatically.
func New(fields map[string]any) *Values {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Values{fields: fields, files: map[string]*File{}}
}

// Get returns the named field. Missing keys yield a Field with Present=false.
func (values *Values) Get(name string) Field {
	value, present := values.fields[name]
	return Field{Name: name, Present: present, Value: value}
}

// Len returns the number of keys present in the input.
func (values *Values) Len() int {
	return len(values.fields)
}

// File returns the uploaded file for the named multipart field, or nil.
func (values *Values) File(name string) *File {
	return values.files[name]
}

// AttachFile registers a spooled file under name.
func (values *Values) AttachFile(file *File) {
	values.files[file.Field] = file
}

// Close removes every spooled temporary file.
func (values *Values) Close() error {
	var errs []error
	for _, file := range values.files {
		if err := os.Remove(file.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Options tunes [Decode].
type Options struct {
	// MaxBytes limits the size of the whole request body.
	MaxBytes int64
	// TempDir is where uploaded files are spooled. Empty means os.TempDir().
	TempDir string
	// FileFields lists the multipart file fields that should be kept.
	FileFields []string
}

/*
Decode reads the request body as JSON or multipart form data.

Parameters:
  - writer: http.ResponseWriter (used to enforce the body size limit)
  - request: *http.Request
  - options: Options

Returns:
  - *Values: decoded fields; the caller must Close it to drop spooled files
  - error: apperr.InvalidJSON for malformed JSON, a field error for unreadable uploads
*/
func Decode(writer http.ResponseWriter, request *http.Request, options Options) (*Values, error) {
	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(request, maxBytes, options)
	}

	return decodeJSON(request.Body)
}

func decodeJSON(body io.Reader) (*Values, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil), nil
		}
		return nil, apperr.InvalidJSON()
	}

	return New(payload), nil
}

func decodeMultipart(request *http.Request, maxBytes int64, options Options) (*Values, error) {
	if err := request.ParseMultipartForm(maxBytes); err != nil {
		return nil, unreadable(options.FileFields)
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	fields := make(map[string]any, len(request.MultipartForm.Value))
	for name, list := range request.MultipartForm.Value {
		if len(list) > 0 {
			fields[name] = list[0]
		}
	}
	values := New(fields)

	for _, name := range options.FileFields {
		headers := request.MultipartForm.File[name]
		if len(headers) == 0 {
			continue
		}

		header := headers[0]
		path, err := spool(header.Filename, options.TempDir, func() (io.ReadCloser, error) {
			return header.Open()
		})
		if err != nil {
			_ = values.Close()
			return nil, unreadable([]string{name})
		}

		values.AttachFile(&File{Field: name, Filename: header.Filename, Path: path, Size: header.Size})
	}

	return values, nil
}

// spool copies an upload into a fresh temporary file and returns its path.
func spool(filename, dir string, open func() (io.ReadCloser, error)) (string, error) {
	source, err := open()
	if err != nil {
		return "", err
	}
	defer source.Close()

	target, err := os.CreateTemp(dir, "upload-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return "", fmt.Errorf("form: create temp file: %w", err)
	}

	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		_ = os.Remove(target.Name())
		return "", fmt.Errorf("form: spool upload: %w", err)
	}

	if err := target.Close(); err != nil {
		_ = os.Remove(target.Name())
		return "", err
	}

	return target.Name(), nil
}

func unreadable(fileFields []string) *apperr.AppError {
	field := "body"
	if len(fileFields) > 0 {
		field = fileFields[0]
	}
	return apperr.Invalid([]apperr.FieldError{{Field: field, Message: "Unable to read image"}})
}
