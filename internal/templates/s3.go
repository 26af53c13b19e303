package templates

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/vango-dev/create-webapp/internal/errors"
)

// DefaultS3Region is used when no region is configured.
const DefaultS3Region = "us-east-1"

// ObjectGetter is the subset of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source serves assets from objects under a bucket prefix.
// An organization can publish replacement assets there without rebuilding the CLI.
type S3Source struct {
	client ObjectGetter
	bucket string
	prefix string

	// anonymous is set when requests are unsigned. Public buckets that only
	// grant s3:GetObject answer AccessDenied instead of NoSuchKey for missing
	// keys, so AccessDenied then means the asset is absent.
	anonymous bool
}

// clientOptions is implemented by *s3.Client.
type clientOptions interface {
	Options() s3.Options
}

// NewS3Source creates an asset source reading s3://bucket/prefix/<name>.
func NewS3Source(client ObjectGetter, bucket, prefix string) *S3Source {
	return &S3Source{
		client:    client,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		anonymous: isAnonymous(client),
	}
}

// isAnonymous reports whether client sends unsigned requests.
func isAnonymous(client ObjectGetter) bool {
	c, ok := client.(clientOptions)
	if !ok {
		return false
	}
	_, anon := c.Options().Credentials.(aws.AnonymousCredentials)
	return anon
}

// ParseS3URL splits an s3://bucket/prefix URL.
func ParseS3URL(raw string) (bucket, prefix string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", errors.New("E141").WithPath(raw)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// NewS3Client creates an S3 client for the given region and optional custom endpoint.
// Credentials are taken from AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN;
// without them requests are sent unsigned, which works for public buckets.
func NewS3Client(region, endpoint string) *s3.Client {
	if region == "" {
		region = DefaultS3Region
	}

	opts := s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	}
	if id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); id != "" && secret != "" {
		creds := aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		))
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts)
}

// key returns the object key for a manifest path.
func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// ReadAsset implements AssetSource.
func (s *S3Source) ReadAsset(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) || (s.anonymous && isAccessDenied(err)) {
			return nil, &fs.PathError{Op: "get", Path: name, Err: fs.ErrNotExist}
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key(name), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.bucket, s.key(name), err)
	}
	return data, nil
}

// String implements AssetSource.
func (s *S3Source) String() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

func isAccessDenied(err error) bool {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "Forbidden":
			return true
		}
	}
	return false
}
