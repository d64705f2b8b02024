package application

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/pkg/helpers"
)

// imageTypes maps the accepted avatar content types to their object extension.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadTicket lets the browser PUT a file straight to the bucket.
type UploadTicket struct {
	UploadURL   string    `json:"uploadUrl"`
	PublicURL   string    `json:"publicUrl"`
	Object      string    `json:"object"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type UploadService struct {
	Signer helpers.URLSigner
	Bucket string
	TTL    time.Duration
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewUploadService(signer helpers.URLSigner, bucket string, ttl time.Duration, logger *logrus.Logger) *UploadService {
	return &UploadService{Signer: signer, Bucket: bucket, TTL: ttl, Logger: logger, Now: time.Now}
}

// SignAvatarUpload issues a short-lived signed PUT URL under avatars/<accountID>/.
func (s *UploadService) SignAvatarUpload(ctx context.Context, accountID, contentType string) (UploadTicket, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageTypes[contentType]
	if !ok {
		return UploadTicket{}, Validation("unsupported content type")
	}
	if s.Signer == nil || s.Bucket == "" {
		return UploadTicket{}, Dependency("uploads are not configured", nil)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	object := path.Join("avatars", accountID, uuid.NewString()+ext)
	exp := now.Add(s.TTL)

	url, err := helpers.SignedPutURL(s.Signer, object, contentType, exp)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", accountID).Error("sign upload url failed")
		}
		return UploadTicket{}, Dependency("internal server error", err)
	}
	uploadsSigned.Add(1)
	return UploadTicket{
		UploadURL:   url,
		PublicURL:   helpers.PublicURL(s.Bucket, object),
		Object:      object,
		ContentType: contentType,
		ExpiresAt:   exp,
	}, nil
}
