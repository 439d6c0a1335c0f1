package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
	"github.com/kamal-hamza/b64pack/internal/core/ports"
	"github.com/kamal-hamza/b64pack/pkg/datauri"
)

// InventoryService reports what a bundle run would contain without writing it
type InventoryService struct {
	assetRepo ports.AssetRepository
	mimes     ports.MimeResolver
}

// NewInventoryService creates a new inventory service
func NewInventoryService(assetRepo ports.AssetRepository, mimes ports.MimeResolver) *InventoryService {
	return &InventoryService{
		assetRepo: assetRepo,
		mimes:     mimes,
	}
}

// InventoryRequest represents a request to list assets
type InventoryRequest struct {
	KeyPrefix string
	SortBy    string // "path", "size", "type" (default: path)
	Reverse   bool
	Query     string // Case-insensitive substring filter on the key (optional)
}

// InventoryItem is one asset with its projected manifest cost
type InventoryItem struct {
	domain.Asset
	EncodedSize int // Length of the data URI
}

// TypeSummary aggregates assets sharing a MIME type
type TypeSummary struct {
	MimeType    string
	Count       int
	Size        int64
	EncodedSize int64
}

// InventoryResponse represents the response from listing assets
type InventoryResponse struct {
	InputDir     string
	Items        []InventoryItem
	ByType       []TypeSummary // Sorted by encoded size, largest first
	Total        int
	TotalSize    int64
	TotalEncoded int64
}

// Execute lists assets with sizes and per-type totals
func (s *InventoryService) Execute(ctx context.Context, req InventoryRequest) (*InventoryResponse, error) {
	assets, err := discoverAssets(ctx, s.assetRepo, s.mimes, req.KeyPrefix)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(req.Query)
	resp := &InventoryResponse{InputDir: s.assetRepo.Root(), Items: []InventoryItem{}}
	byType := make(map[string]*TypeSummary)

	for _, a := range assets {
		if query != "" && !strings.Contains(strings.ToLower(a.Key), query) {
			continue
		}

		item := InventoryItem{
			Asset:       a,
			EncodedSize: datauri.EncodedLen(a.MimeType, int(a.Size)),
		}
		resp.Items = append(resp.Items, item)
		resp.TotalSize += a.Size
		resp.TotalEncoded += int64(item.EncodedSize)

		summary, ok := byType[a.MimeType]
		if !ok {
			summary = &TypeSummary{MimeType: a.MimeType}
			byType[a.MimeType] = summary
		}
		summary.Count++
		summary.Size += a.Size
		summary.EncodedSize += int64(item.EncodedSize)
	}

	resp.Total = len(resp.Items)
	sortItems(resp.Items, req.SortBy, req.Reverse)

	for _, summary := range byType {
		resp.ByType = append(resp.ByType, *summary)
	}
	sort.Slice(resp.ByType, func(i, j int) bool {
		if resp.ByType[i].EncodedSize != resp.ByType[j].EncodedSize {
			return resp.ByType[i].EncodedSize > resp.ByType[j].EncodedSize
		}
		return resp.ByType[i].MimeType < resp.ByType[j].MimeType
	})

	return resp, nil
}

// DataURI reads a single asset and returns its encoded form
func (s *InventoryService) DataURI(ctx context.Context, asset domain.Asset) (string, error) {
	data, err := s.assetRepo.Read(ctx, asset)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", asset.Key, err)
	}
	return datauri.EncodeToString(asset.MimeType, data), nil
}

func sortItems(items []InventoryItem, sortBy string, reverse bool) {
	less := func(i, j int) bool { return items[i].Key < items[j].Key }

	switch sortBy {
	case "size":
		less = func(i, j int) bool {
			if items[i].Size != items[j].Size {
				return items[i].Size < items[j].Size
			}
			return items[i].Key < items[j].Key
		}
	case "type":
		less = func(i, j int) bool {
			if items[i].MimeType != items[j].MimeType {
				return items[i].MimeType < items[j].MimeType
			}
			return items[i].Key < items[j].Key
		}
	}

	if reverse {
		sort.SliceStable(items, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(items, less)
}
