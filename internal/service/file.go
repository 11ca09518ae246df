package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"filedrop/internal/config"
	"filedrop/internal/model"
	"filedrop/internal/repository"
	"filedrop/internal/storage"
	"filedrop/internal/token"
	"filedrop/internal/validate"
)

var (
	ErrTokenRequired = errors.New("token is required")
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenUsed     = errors.New("token already used")
	ErrTokenExpired  = errors.New("token expired")
)

// IssueResult is returned to the sender after a successful upload.
type IssueResult struct {
	Token       string `json:"token"`
	DownloadURL string `json:"download_url"`
}

// Metadata is the read-only view of a record exposed to receivers.
type Metadata struct {
	OriginalName string `json:"original_name"`
	Mime         string `json:"mime"`
}

// FileService is the token lifecycle controller: it binds each issued token
// to exactly one stored object and enforces one-time, in-window redemption.
type FileService interface {
	// Issue validates the payload, stores the ciphertext, and persists a new
	// token record with a fresh expiry. The object write completes before the
	// record becomes visible; if the record insert fails afterwards, the
	// caller gets an error and the orphaned blob is left to the janitor.
	Issue(ctx context.Context, payload []byte, mime, filename string) (*IssueResult, error)

	// Redeem consumes a token and returns a short-lived retrieval locator.
	// Concurrent calls on one token yield at most one locator; the rest see
	// ErrTokenUsed. Expired tokens are refused without being marked used.
	Redeem(ctx context.Context, tok string) (string, error)

	// Metadata returns the declared name and MIME for a token. It never
	// mutates the record and stays readable after redemption.
	Metadata(ctx context.Context, tok string) (*Metadata, error)
}

// fileService is a concrete implementation of FileService.
type fileService struct {
	store      storage.Storage
	repo       repository.FileRepository
	baseURL    string
	tokenTTL   time.Duration
	locatorTTL time.Duration

	// injected for deterministic tests
	now      func() time.Time
	newToken func() (string, error)
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, repo repository.FileRepository, baseURL string, cfg config.TransferConfig) FileService {
	return &fileService{
		store:      store,
		repo:       repo,
		baseURL:    baseURL,
		tokenTTL:   time.Duration(cfg.TokenTTLSec) * time.Second,
		locatorTTL: time.Duration(cfg.LocatorTTLSec) * time.Second,
		now:        time.Now,
		newToken:   token.New,
	}
}

func (s *fileService) Issue(ctx context.Context, payload []byte, mime, filename string) (*IssueResult, error) {
	up, err := validate.CheckUpload(payload, mime, filename)
	if err != nil {
		return nil, err
	}

	id, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	key := model.ObjectKey(id)

	// Store the ciphertext first so the record never references a missing
	// object. The content type is forced opaque: the declared MIME is only
	// metadata and must not influence how the blob would be served.
	_, err = s.store.Put(ctx, key, bytes.NewReader(payload), storage.PutObjectOptions{
		Size:        int64(len(payload)),
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return nil, fmt.Errorf("store ciphertext: %w", err)
	}

	now := s.now().UTC()
	rec := &model.File{
		ID:           id,
		OriginalName: up.Name,
		Mime:         up.Mime,
		Size:         int64(len(payload)),
		ExpiresAt:    now.Add(s.tokenTTL),
		Used:         false,
		CreatedAt:    now,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		// The blob is already durable but no token references it; the
		// janitor reaps it with the rest of the expired objects.
		return nil, fmt.Errorf("save token record: %w", err)
	}

	return &IssueResult{
		Token:       id,
		DownloadURL: s.baseURL + "/download/" + id,
	}, nil
}

func (s *fileService) Redeem(ctx context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrTokenRequired
	}

	rec, err := s.repo.FindByID(ctx, tok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", err
	}

	// Refuse expired tokens before the mark so they stay unused in the
	// store and the janitor can tell them apart from claimed ones.
	if rec.ExpiresAt.Before(s.now()) {
		return "", ErrTokenExpired
	}

	// The conditional mark is the single serialization point: every racing
	// redemption funnels through it and at most one proceeds. The fetch
	// above may be stale; the outcome here is authoritative.
	res, err := s.repo.MarkUsed(ctx, tok)
	if err != nil {
		return "", err
	}
	switch res {
	case repository.MarkAlreadyUsed:
		return "", ErrTokenUsed
	case repository.MarkNotFound:
		return "", ErrTokenNotFound
	}

	// Possession of the locator is possession of the file, so it is minted
	// only after the mark succeeded. If presigning fails the token stays
	// consumed; un-marking would reopen the double-delivery window.
	loc, err := s.store.PresignGet(ctx, model.ObjectKey(tok), s.locatorTTL)
	if err != nil {
		return "", fmt.Errorf("presign locator: %w", err)
	}
	return loc, nil
}

func (s *fileService) Metadata(ctx context.Context, tok string) (*Metadata, error) {
	if tok == "" {
		return nil, ErrTokenRequired
	}
	rec, err := s.repo.FindByID(ctx, tok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &Metadata{OriginalName: rec.OriginalName, Mime: rec.Mime}, nil
}
