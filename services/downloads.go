package services

import (
	"context"
	"log"
	"path"
	"time"

	"podlearn/store"
)

// Download kinds accepted by AuthorizeDownload.
const (
	DownloadKindAudio       = "audio"
	DownloadKindReport      = "report"
	DownloadKindCertificate = "certificate"
)

// ObjectSigner issues time-limited read URLs for private object keys.
type ObjectSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Download is a granted, time-boxed link.
type Download struct {
	URL       string `json:"downloadUrl"`
	Filename  string `json:"filename"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// DownloadStore is the slice of the store the download service reads and
// writes.
type DownloadStore interface {
	store.EntitlementStore
	store.ProgressStore
	store.CertificateStore
}

// DownloadService gates signed-URL generation behind the access decision.
type DownloadService struct {
	entitlements *EntitlementService
	store        DownloadStore
	signer       ObjectSigner
	urlTTL       time.Duration
	now          func() time.Time
}

func NewDownloadService(e *EntitlementService, st DownloadStore, signer ObjectSigner, urlTTL time.Duration) *DownloadService {
	return &DownloadService{
		entitlements: e,
		store:        st,
		signer:       signer,
		urlTTL:       urlTTL,
		now:          time.Now,
	}
}

// AuthorizeDownload checks the caller's entitlement and, when granted,
// returns a presigned URL for the requested file. "No access" is the
// expected negative outcome and comes back as ErrAccessDenied, not as a
// store failure. The milestone write afterwards is best-effort: its failure
// is logged and the URL is returned regardless.
func (s *DownloadService) AuthorizeDownload(ctx context.Context, userID, contentID uint, kind string) (*Download, error) {
	content, err := s.store.ContentByID(contentID)
	if err != nil {
		return nil, dataAccess("content lookup", err)
	}
	if content == nil {
		return nil, ErrNotFound
	}

	// Free content skips the paid-access path entirely.
	if !content.IsFree() {
		ok, _, err := s.entitlements.HasFullAccess(userID, contentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAccessDenied
		}
	}

	var key, milestone string
	switch kind {
	case DownloadKindAudio:
		key = content.AudioKey
		milestone = store.MilestoneListened
	case DownloadKindReport:
		key = content.ReportKey
		milestone = store.MilestoneReportDownloaded
	case DownloadKindCertificate:
		cert, err := s.store.CertificateByUserAndContent(userID, contentID)
		if err != nil {
			return nil, dataAccess("certificate lookup", err)
		}
		if cert == nil {
			return nil, ErrNotFound
		}
		key = cert.FileKey
		milestone = store.MilestoneCertificateDownloaded
	default:
		return nil, &ValidationError{Field: "kind", Message: "unknown download kind"}
	}

	if key == "" {
		return nil, ErrNotFound
	}

	url, err := s.signer.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		return nil, dataAccess("presign url", err)
	}

	if err := s.store.SetProgressFlag(userID, contentID, milestone, s.now()); err != nil {
		log.Printf("Failed to mark %s for user %d content %d: %v", milestone, userID, contentID, err)
	}

	return &Download{
		URL:       url,
		Filename:  content.Slug + path.Ext(key),
		ExpiresIn: int64(s.urlTTL.Seconds()),
	}, nil
}
