package handler

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"filedrop/internal/service"
	"filedrop/internal/validate"
)

// validationCodes maps each admission failure to its distinct wire code, so a
// sender can tell exactly which rule rejected the upload.
var validationCodes = map[error]string{
	validate.ErrEmptyPayload:   "EMPTY_PAYLOAD",
	validate.ErrPayloadTooBig:  "PAYLOAD_TOO_LARGE",
	validate.ErrMimeNotAllowed: "MIME_NOT_ALLOWED",
	validate.ErrNameRequired:   "FILENAME_REQUIRED",
	validate.ErrNameIllegal:    "FILENAME_ILLEGAL",
	validate.ErrExtNotAllowed:  "EXTENSION_NOT_ALLOWED",
}

// UploadFile accepts a raw ciphertext body and issues a one-time token.
//
// @Summary Upload an encrypted file
// @Accept octet-stream
// @Produce json
// @Param X-Mime header string true "Declared MIME type of the plaintext"
// @Param X-Filename header string true "URL-encoded original filename"
// @Success 200 {object} service.IssueResult
// @Failure 400 {object} errorPayload
// @Router /api/upload [post]
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mime := c.Get("X-Mime")
		name, err := url.QueryUnescape(c.Get("X-Filename"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILENAME_ILLEGAL", "filename contains illegal characters")
		}

		res, err := svc.Issue(c.UserContext(), c.Body(), mime, name)
		if err != nil {
			if code, ok := validationCodes[err]; ok {
				return writeError(c, fiber.StatusBadRequest, code, err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// FileMetadata returns the declared name and MIME for a token. Read-only: it
// never consumes the token and stays available after redemption.
//
// @Summary Get file metadata by token
// @Produce json
// @Param token path string true "Download token"
// @Success 200 {object} service.Metadata
// @Failure 404 {object} errorPayload
// @Router /api/meta/{token} [get]
func FileMetadata(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		meta, err := svc.Metadata(c.UserContext(), c.Params("token"))
		if err != nil {
			if errors.Is(err, service.ErrTokenNotFound) || errors.Is(err, service.ErrTokenRequired) {
				return writeError(c, fiber.StatusNotFound, "TOKEN_NOT_FOUND", "token not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(meta)
	}
}

// DownloadFile redeems a token and redirects to a short-lived locator. Each
// failure mode gets its own code: a consumed token, an expired token, and an
// unknown token are different answers.
//
// @Summary Redeem a one-time download token
// @Param token path string true "Download token"
// @Success 302
// @Failure 404 {object} errorPayload
// @Failure 410 {object} errorPayload
// @Router /download/{token} [get]
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc, err := svc.Redeem(c.UserContext(), c.Params("token"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrTokenRequired):
				return writeError(c, fiber.StatusNotFound, "TOKEN_NOT_FOUND", "token not found")
			case errors.Is(err, service.ErrTokenUsed):
				return writeError(c, fiber.StatusGone, "TOKEN_USED", "token already used")
			case errors.Is(err, service.ErrTokenExpired):
				return writeError(c, fiber.StatusGone, "TOKEN_EXPIRED", "token expired")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Redirect(loc, fiber.StatusFound)
	}
}
