package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 5 << 20 // 5MB

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	images    services.ImageStore
}

func newUploadHandler(images services.ImageStore) *uploadHandler {
	if images == nil {
		return nil
	}
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return &uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		images:    images,
	}
}

// uploadImage stores the multipart "file" field and returns its public URL
func (h *uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("expected a multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		if header.Size > maxUploadSize {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
			return
		}

		// type comes from the leading bytes, not the part header
		head := make([]byte, 512)
		n, err := io.ReadFull(file, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read upload"))
			return
		}
		head = head[:n]

		contentType := http.DetectContentType(head)
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(contentType, []string{"image/*"}))
			return
		}
		if declared := header.Header.Get("Content-Type"); declared != "" && declared != contentType {
			h.logger.Debug().Str("declared", declared).Str("detected", contentType).Msg("Upload content type differs from declared")
		}

		body := io.MultiReader(bytes.NewReader(head), file)
		url, err := h.images.Put(r.Context(), header.Filename, contentType, body, header.Size)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store image", err))
			return
		}

		h.logger.Info().Str("url", url).Int64("size", header.Size).Msg("Stored image")
		h.responder.WriteCreated(w, UploadResponse{URL: url})
	}
}
