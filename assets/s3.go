package assets

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

// S3Store keeps assets in Bucket and serves them from BaseURL, typically a
// CDN in front of the bucket.
type S3Store struct {
	Client  *s3.Client
	Bucket  string
	BaseURL string
}

func (s *S3Store) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (*Asset, error) {
	key, err := objectKey(folder, filename)
	if err != nil {
		logging.Log.Errorf("ASSETS: failed to generate object key: %v", err)
		return nil, err
	}

	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		logging.Log.Errorf("ASSETS: PutObject %s failed: %v", key, err)
		return nil, err
	}

	logging.Log.Infof("ASSETS: uploaded %s (%d bytes)", key, size)
	return &Asset{
		URL: strings.TrimRight(s.BaseURL, "/") + "/" + key,
		ID:  key,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, assetID string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return ErrAssetNotFound
		}
		logging.Log.Errorf("ASSETS: DeleteObject %s failed: %v", assetID, err)
		return err
	}
	return nil
}
