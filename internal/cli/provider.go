package cli

import (
	"context"

	"github.com/lumenote/grounding/internal/domain"
	"github.com/lumenote/grounding/internal/storage"
)

// S3SourceProvider adapts the S3 storage client to the ingestion pipeline's
// source provider interface.
type S3SourceProvider struct {
	client *storage.S3Client
}

func (p *S3SourceProvider) ListSources(ctx context.Context) ([]string, error) {
	return p.client.ListObjects(ctx)
}

func (p *S3SourceProvider) Fetch(ctx context.Context, name string) (*domain.SourceDocument, func(), error) {
	path, cleanup, err := p.client.DownloadToTemp(ctx, name)
	if err != nil {
		return nil, nil, domain.NewDomainErrorWithCause(domain.ErrCodeSourceFetch, "failed to fetch source document", err)
	}
	return &domain.SourceDocument{Name: name, LocalPath: path}, cleanup, nil
}
