package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/kamal-hamza/b64pack/internal/core/domain"
	"github.com/kamal-hamza/b64pack/internal/core/ports"
	"github.com/kamal-hamza/b64pack/pkg/datauri"
	"github.com/kamal-hamza/b64pack/pkg/manifest"
)

// DefaultExtension is appended to the output name when none is given
const DefaultExtension = ".js"

// BundleService encodes every asset under the input directory into a single
// generated manifest file
type BundleService struct {
	assetRepo ports.AssetRepository
	mimes     ports.MimeResolver
	output    ports.OutputWriter
}

// NewBundleService creates a new bundle service
func NewBundleService(assetRepo ports.AssetRepository, mimes ports.MimeResolver, output ports.OutputWriter) *BundleService {
	return &BundleService{
		assetRepo: assetRepo,
		mimes:     mimes,
		output:    output,
	}
}

// BundleRequest represents a request to generate a manifest
type BundleRequest struct {
	OutputPath    string // Directory for the generated file ("" = current directory)
	OutputName    string // Base filename and embedded identifier
	Extension     string // Output file extension (default: .js)
	IncludeHeader bool   // Prepend "/* Generated by <HeaderTool> */"
	HeaderTool    string
	KeyPrefix     string // Prepended to every manifest key
}

// Target returns the path of the file the request produces
func (r BundleRequest) Target() string {
	ext := r.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	return filepath.Join(r.OutputPath, r.OutputName+ext)
}

// BundleResponse represents the result of a bundle run
type BundleResponse struct {
	InputDir     string
	OutputPath   string
	Entries      int
	SourceBytes  int64
	OutputBytes  int64
	UnknownTypes []string // Keys written with an empty MIME type
}

// Execute discovers, encodes and writes all assets. Discovery happens before
// the output is touched, and the output is only replaced when every entry was
// written.
func (s *BundleService) Execute(ctx context.Context, req BundleRequest) (*BundleResponse, error) {
	if !manifest.ValidIdentifier(req.OutputName) {
		return nil, fmt.Errorf("invalid output name %q: must be a JavaScript identifier", req.OutputName)
	}

	target := req.Target()

	assets, err := s.Discover(ctx, req.KeyPrefix)
	if err != nil {
		return nil, err
	}
	assets = excludeTarget(assets, target)

	resp := &BundleResponse{InputDir: s.assetRepo.Root(), OutputPath: target}

	err = s.output.Write(ctx, target, func(w io.Writer) error {
		cw := &countingWriter{w: w}
		mw := manifest.NewWriter(cw, req.OutputName)

		if req.IncludeHeader {
			if err := mw.WriteHeader(req.HeaderTool); err != nil {
				return err
			}
		}

		for _, asset := range assets {
			if err := ctx.Err(); err != nil {
				return err
			}

			uri, err := s.EncodeFile(ctx, asset)
			if err != nil {
				return err
			}
			if err := mw.WriteEntry(asset.Key, uri); err != nil {
				return err
			}

			resp.SourceBytes += asset.Size
			if asset.MimeType == "" {
				resp.UnknownTypes = append(resp.UnknownTypes, asset.Key)
			}
		}

		if err := mw.Close(); err != nil {
			return err
		}
		resp.Entries = mw.Count()
		resp.OutputBytes = cw.n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Discover lists the assets under the input directory with their MIME type
// resolved and their manifest key set
func (s *BundleService) Discover(ctx context.Context, keyPrefix string) ([]domain.Asset, error) {
	return discoverAssets(ctx, s.assetRepo, s.mimes, keyPrefix)
}

// EncodeFile reads asset and returns its data URI
func (s *BundleService) EncodeFile(ctx context.Context, asset domain.Asset) (string, error) {
	data, err := s.assetRepo.Read(ctx, asset)
	if err != nil {
		return "", err
	}
	return datauri.EncodeToString(asset.MimeType, data), nil
}

func discoverAssets(ctx context.Context, repo ports.AssetRepository, mimes ports.MimeResolver, keyPrefix string) ([]domain.Asset, error) {
	assets, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	prefix := domain.NormalizePath(keyPrefix)
	for i := range assets {
		key := prefix + domain.NormalizePath(assets[i].RelPath)
		// Invalid bytes would collapse into U+FFFD and collide with other keys
		if !utf8.ValidString(key) {
			return nil, &domain.FileReadError{Path: assets[i].SourcePath, Err: domain.ErrInvalidPathEncoding}
		}
		assets[i].MimeType = mimes.TypeByPath(assets[i].RelPath)
		assets[i].Key = key
	}
	return assets, nil
}

// excludeTarget drops the output file itself when it lives inside the input
// tree, so a previous manifest is never embedded into the next one
func excludeTarget(assets []domain.Asset, target string) []domain.Asset {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return assets
	}

	filtered := assets[:0]
	for _, a := range assets {
		if a.SourcePath == absTarget {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
