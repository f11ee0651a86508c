// Package media uploads local image files (cover images, thumbnails,
// avatars, certificate icons) to S3-compatible storage so that the public
// URL can be sent in place of the file.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/client/config"
)

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("media uploads are not configured")

// FilePrefix marks a field value as a local file to upload ("@./logo.png").
const FilePrefix = "@"

// Kind is the folder an upload is stored under.
type Kind string

const (
	KindCover     Kind = "covers"
	KindThumbnail Kind = "thumbnails"
	KindAvatar    Kind = "avatars"
	KindIcon      Kind = "icons"
	KindImage     Kind = "images"
)

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	api    putter
	cfg    config.MediaConfig
	now    func() time.Time
	newKey func() string
}

// New returns an Uploader for cfg, or ErrDisabled when cfg has no bucket.
func New(ctx context.Context, cfg config.MediaConfig) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newUploader(api, cfg), nil
}

func newUploader(api putter, cfg config.MediaConfig) *Uploader {
	return &Uploader{
		api:    api,
		cfg:    cfg,
		now:    time.Now,
		newKey: func() string { return uuid.NewString() },
	}
}

// Upload stores the file at localPath and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, localPath string, kind Kind) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", localPath, contentType)
	}

	d := u.now().UTC()
	key := fmt.Sprintf("%s/%d/%02d/%s%s", kind, d.Year(), d.Month(), u.newKey(), ext)

	_, err = u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", localPath, err)
	}
	return u.PublicURL(key), nil
}

// Resolve uploads value if it names a local file (see FilePrefix) and
// returns the URL to submit; any other value is returned unchanged.
func (u *Uploader) Resolve(ctx context.Context, value string, kind Kind) (string, error) {
	p, ok := strings.CutPrefix(value, FilePrefix)
	if !ok {
		return value, nil
	}
	if u == nil {
		return "", ErrDisabled
	}
	return u.Upload(ctx, p, kind)
}

// PublicURL is where key can be fetched from.
func (u *Uploader) PublicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.Endpoint != "" {
		base, err := url.Parse(u.cfg.Endpoint)
		if err == nil {
			if u.cfg.UsePathStyle {
				base.Path = path.Join("/", base.Path, u.cfg.Bucket, key)
			} else {
				base.Host = u.cfg.Bucket + "." + base.Host
				base.Path = path.Join("/", base.Path, key)
			}
			return base.String()
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}
