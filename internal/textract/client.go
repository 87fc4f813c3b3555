package textract

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awstextract "github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/lucaferrario/docnorm/internal/blockgraph"
)

// Config holds client credentials and retry knobs.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string

	MaxRetries  int // default 3
	BaseBackoff int // seconds; sleep is base^attempt, default 2
}

// Client calls AnalyzeDocument with table detection enabled.
type Client struct {
	api    *awstextract.Client
	cfg    Config
	logger *slog.Logger
}

// NewClient builds the AWS Textract client from static credentials.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 2
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Client{api: awstextract.NewFromConfig(awsCfg), cfg: cfg, logger: logger}, nil
}

// AnalyzeDocument submits the document bytes and retries transient failures
// with exponential backoff (base^attempt seconds).
func (c *Client) AnalyzeDocument(ctx context.Context, fileBytes []byte) (*blockgraph.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		c.logger.Info("submitting document for analysis", "attempt", attempt, "bytes", len(fileBytes))

		out, err := c.api.AnalyzeDocument(ctx, &awstextract.AnalyzeDocumentInput{
			Document:     &types.Document{Bytes: fileBytes},
			FeatureTypes: []types.FeatureType{types.FeatureTypeTables},
		})
		if err == nil {
			return convertBlocks(out.Blocks), nil
		}
		lastErr = err
		c.logger.Warn("analyze attempt failed", "attempt", attempt, "error", err)

		if attempt == c.cfg.MaxRetries {
			break
		}
		sleep := time.Duration(math.Pow(float64(c.cfg.BaseBackoff), float64(attempt))) * time.Second
		c.logger.Info("backing off before retry", "sleep", sleep.String())
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("analyze document: all %d attempts failed: %w", c.cfg.MaxRetries, lastErr)
}

// convertBlocks maps SDK blocks onto the internal graph types; absent
// optional fields become zero values.
func convertBlocks(blocks []types.Block) *blockgraph.Document {
	doc := &blockgraph.Document{Blocks: make([]blockgraph.Block, 0, len(blocks))}
	for _, b := range blocks {
		nb := blockgraph.Block{
			ID:          aws.ToString(b.Id),
			BlockType:   blockgraph.BlockType(b.BlockType),
			Text:        aws.ToString(b.Text),
			Confidence:  float64(aws.ToFloat32(b.Confidence)),
			RowIndex:    int(aws.ToInt32(b.RowIndex)),
			ColumnIndex: int(aws.ToInt32(b.ColumnIndex)),
		}
		for _, rel := range b.Relationships {
			nb.Relationships = append(nb.Relationships, blockgraph.Relationship{
				Type: blockgraph.RelationshipType(rel.Type),
				IDs:  rel.Ids,
			})
		}
		doc.Blocks = append(doc.Blocks, nb)
	}
	return doc
}
