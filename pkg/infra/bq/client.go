// Package bq exports repository metrics snapshots to a BigQuery table through the Storage Write API.
package bq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"cloud.google.com/go/bigquery/storage/managedwriter/adapt"
	"github.com/cenkalti/backoff/v4"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/m-mizutani/ghpulse/pkg/domain/interfaces"
	"github.com/m-mizutani/ghpulse/pkg/domain/types"
	"github.com/m-mizutani/ghpulse/pkg/utils/logging"
	"github.com/m-mizutani/ghpulse/pkg/utils/safe"
)

// A schema change takes a while to reach the Storage Write API backend.
const (
	schemaRetryInitial = 2 * time.Second
	schemaRetryMax     = 10 * time.Minute
)

type Client struct {
	bqClient *bigquery.Client
	mwClient *managedwriter.Client
	project  string
	dataset  string
	tableID  types.BQTableID
}

var _ interfaces.BigQuery = (*Client)(nil)

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, clientOptions ...option.ClientOption) (*Client, error) {
	mwClient, err := managedwriter.NewClient(ctx, projectID.String(), clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create managed writer client", goerr.V("projectID", projectID))
	}

	bqClient, err := bigquery.NewClient(ctx, projectID.String(), clientOptions...)
	if err != nil {
		safe.Close(mwClient)
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient: bqClient,
		mwClient: mwClient,
		project:  projectID.String(),
		dataset:  datasetID.String(),
		tableID:  tableID,
	}, nil
}

func (x *Client) table() *bigquery.Table {
	return x.bqClient.Dataset(x.dataset).Table(x.tableID.String())
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.table().Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}
	return nil
}

// GetMetadata implements interfaces.BigQuery. If the table does not exist, it returns nil.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.table().Metadata(ctx)
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID))
	}

	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.table().Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update table", goerr.V("dataset", x.dataset), goerr.V("table", x.tableID), goerr.V("meta", md))
	}

	return nil
}

// Insert implements interfaces.BigQuery. With WithRetry(true), a rejected row is retried while the table schema
// update is still propagating.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any, opts ...interfaces.BigQueryInsertOption) error {
	var cfg interfaces.BigQueryInsertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	descriptor, row, err := encodeRow(schema, data)
	if err != nil {
		return err
	}

	if !cfg.EnableRetry {
		return x.appendRows(ctx, descriptor, [][]byte{row})
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = schemaRetryInitial
	bo.MaxElapsedTime = schemaRetryMax

	attempt := 0
	op := func() error {
		attempt++
		err := x.appendRows(ctx, descriptor, [][]byte{row})
		if err == nil {
			return nil
		}
		if !IsSchemaNotFoundError(err) {
			return backoff.Permanent(err)
		}
		logging.From(ctx).Info("schema is not propagated yet, retrying insert",
			slog.Int("attempt", attempt),
			slog.String("table", x.tableID.String()),
		)
		return err
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return goerr.Wrap(err, "failed to insert row after schema update", goerr.V("attempts", attempt))
	}
	return nil
}

func encodeRow(schema bigquery.Schema, data any) (*descriptorpb.DescriptorProto, []byte, error) {
	convertedSchema, err := adapt.BQSchemaToStorageTableSchema(schema)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema")
	}

	descriptor, err := adapt.StorageSchemaToProto2Descriptor(convertedSchema, "root")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert schema to descriptor")
	}
	messageDescriptor, ok := descriptor.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, nil, goerr.New("adapted descriptor is not a message descriptor")
	}
	descriptorProto, err := adapt.NormalizeDescriptor(messageDescriptor)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to normalize descriptor")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to marshal row", goerr.V("v", data))
	}
	sanitized, err := sanitizeProtoJSON(raw)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to sanitize row", goerr.V("raw", string(raw)))
	}

	message := dynamicpb.NewMessage(messageDescriptor)
	if err := protojson.Unmarshal(sanitized, message); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to convert row to proto message", goerr.V("raw", string(raw)))
	}
	b, err := proto.Marshal(message)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to marshal proto message")
	}

	return descriptorProto, b, nil
}

func (x *Client) appendRows(ctx context.Context, descriptor *descriptorpb.DescriptorProto, rows [][]byte) error {
	ms, err := x.mwClient.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(x.project, x.dataset, x.tableID.String()),
		),
		managedwriter.WithSchemaDescriptor(descriptor),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create managed stream")
	}
	defer safe.Close(ms)

	result, err := ms.AppendRows(ctx, rows)
	if err != nil {
		return goerr.Wrap(err, "failed to append rows")
	}
	if _, err := result.FullResponse(ctx); err != nil {
		return goerr.Wrap(err, "failed to get append result")
	}
	return nil
}

// IsSchemaNotFoundError reports whether the backend rejected rows because it does not know the new columns yet.
func IsSchemaNotFoundError(err error) bool {
	for err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			if strings.Contains(st.Message(), "Input schema has more fields than BigQuery schema") {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

func sanitizeProtoJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}

	return json.Marshal(sanitizeProtoJSONValue(data))
}

func sanitizeProtoJSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(val))
		for key, value := range val {
			res[protoFieldJSONName(key)] = sanitizeProtoJSONValue(value)
		}
		return res
	case []any:
		for i := range val {
			val[i] = sanitizeProtoJSONValue(val[i])
		}
		return val
	default:
		return v
	}
}

// protoFieldJSONName renames keys that are not valid proto field names, such as label names with dashes.
func protoFieldJSONName(name string) string {
	if protoreflect.Name(name).IsValid() {
		return name
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(name))
	encoded = strings.NewReplacer("+", "_", "/", "_", "=", "").Replace(encoded)
	return "col_" + encoded
}
