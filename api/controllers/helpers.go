package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/assets"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

var (
	errUploadMissing  = errors.New("upload is missing")
	errUploadTooLarge = errors.New("upload exceeds size limit")
)

// validate checks values that need normalizing before validation.
var validate = validator.New()

func respondError(g *gin.Context, status int, message string) {
	g.JSON(status, models.ErrorResponse{Message: message})
}

// bindErrorStatus tells failed field validation (422) apart from a body
// that could not be decoded at all (400).
func bindErrorStatus(err error) int {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func formFile(g *gin.Context, field string, maxBytes int64) (*multipart.FileHeader, error) {
	fh, err := g.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errUploadMissing
		}
		return nil, err
	}
	if fh.Size > maxBytes {
		return nil, errUploadTooLarge
	}
	return fh, nil
}

func storeFile(ctx context.Context, store assets.Store, folder string, fh *multipart.FileHeader) (*assets.Asset, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return store.Upload(ctx, folder, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
}

// deleteAsset never fails the caller; a leftover asset is only logged.
func deleteAsset(ctx context.Context, store assets.Store, assetID, area string) {
	if assetID == "" {
		return
	}
	if err := store.Delete(ctx, assetID); err != nil {
		logging.Log.Warnf("%s: failed to delete asset %s: %v", area, assetID, err)
	}
}
