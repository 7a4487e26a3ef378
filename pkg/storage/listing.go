package storage

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// MaxListCap bounds a single listing page regardless of configuration.
const MaxListCap int32 = 500

// BlobMetadata describes a stored blob.
type BlobMetadata struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// ListResult is a single page of blob metadata. NextMarker is empty when no
// further pages remain.
type ListResult struct {
	Blobs      []BlobMetadata `json:"blobs"`
	NextMarker string         `json:"next_marker,omitempty"`
}

// DownloadResult pairs a blob stream with its response metadata.
type DownloadResult struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ParseMaxResults parses an optional max_results query value, falling back to
// fallback and clamping to MaxListCap.
func ParseMaxResults(raw string, fallback int32) (int32, error) {
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid max_results: %q", raw)
	}

	return min(int32(n), MaxListCap), nil
}

func (a *azure) Find(ctx context.Context, key string) (*BlobMetadata, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)

	props, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find blob %s: %w", key, err)
	}

	meta := &BlobMetadata{Key: key}
	if props.ContentLength != nil {
		meta.Size = *props.ContentLength
	}
	if props.ContentType != nil {
		meta.ContentType = *props.ContentType
	}
	if props.LastModified != nil {
		meta.LastModified = *props.LastModified
	}

	return meta, nil
}

func (a *azure) List(ctx context.Context, prefix, marker string, maxResults int32) (*ListResult, error) {
	opts := &azblob.ListBlobsFlatOptions{
		MaxResults: &maxResults,
	}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	if marker != "" {
		opts.Marker = &marker
	}

	pager := a.client.NewListBlobsFlatPager(a.container, opts)
	if !pager.More() {
		return &ListResult{}, nil
	}

	page, err := pager.NextPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	result := &ListResult{
		Blobs: make([]BlobMetadata, 0, len(page.Segment.BlobItems)),
	}

	for _, item := range page.Segment.BlobItems {
		meta := blobItemMetadata(item)
		if meta != nil {
			result.Blobs = append(result.Blobs, *meta)
		}
	}

	if page.NextMarker != nil {
		result.NextMarker = *page.NextMarker
	}

	return result, nil
}

func blobItemMetadata(item *container.BlobItem) *BlobMetadata {
	if item == nil || item.Name == nil {
		return nil
	}

	meta := &BlobMetadata{Key: *item.Name}
	if item.Properties != nil {
		if item.Properties.ContentLength != nil {
			meta.Size = *item.Properties.ContentLength
		}
		if item.Properties.ContentType != nil {
			meta.ContentType = *item.Properties.ContentType
		}
		if item.Properties.LastModified != nil {
			meta.LastModified = *item.Properties.LastModified
		}
	}

	return meta
}
