// services/spaces.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SpacesService mirrors card art from the catalog's image URIs into a
// DigitalOcean Spaces bucket so deck exports do not hotlink the catalog.
type SpacesService struct {
	client   *s3.Client
	http     *http.Client
	bucket   string
	region   string
	CardRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, cardRoot string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	return &SpacesService{
		client:   s3.NewFromConfig(cfg),
		http:     &http.Client{Timeout: 30 * time.Second},
		bucket:   bucket,
		region:   region,
		CardRoot: strings.TrimPrefix(cardRoot, "/"),
	}
}

// MirrorCardImage downloads the catalog image and stores it under the card
// root, keyed by card ID. Mirroring an already-stored card overwrites it.
func (s *SpacesService) MirrorCardImage(ctx context.Context, cardID, imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("card %s has no image to mirror", cardID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image for %s: %w", cardID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image download for %s returned status %d", cardID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image for %s: %w", cardID, err)
	}

	key := s.cardKey(cardID)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to store image for %s: %w", cardID, err)
	}
	return nil
}

// DeleteCardImage removes a mirrored card image.
func (s *SpacesService) DeleteCardImage(ctx context.Context, cardID string) error {
	key := s.cardKey(cardID)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image for %s: %w", cardID, err)
	}
	return nil
}

// CardImageURL is the public URL of a mirrored card image.
func (s *SpacesService) CardImageURL(cardID string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, s.cardKey(cardID))
}

func (s *SpacesService) cardKey(cardID string) string {
	if s.CardRoot == "" {
		return fmt.Sprintf("%s.jpg", cardID)
	}
	return fmt.Sprintf("%s/%s.jpg", s.CardRoot, cardID)
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}

func (s *SpacesService) GetCardRoot() string {
	return s.CardRoot
}
