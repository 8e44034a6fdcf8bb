/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package awsdynamo is the DynamoDB-backed client adapter: a concrete
// apis.Factory whose connection identities are key=value connection
// strings.
//
// Collections map to tables. Point reads use GetItem on the "id"
// attribute, queries execute as PartiQL statements, unfiltered listings
// scan, and collector writes put items. Constructing the client performs
// no network I/O; the first document operation does.
package awsdynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"dirpx.dev/docbind/apis"
)

var (
	// ErrBadConnectionString indicates a connection identity this adapter
	// cannot parse.
	ErrBadConnectionString = errors.New("docbind(awsdynamo): malformed connection string")
)

// Settings is the parsed form of an adapter connection identity.
type Settings struct {
	// Region is the AWS region. Empty falls back to the SDK's ambient
	// resolution (environment, shared config).
	Region string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
	// AccessKey/SecretKey select static credentials when both are set;
	// otherwise the SDK's default credential chain applies.
	AccessKey string
	SecretKey string
}

// ParseConnection parses a semicolon-separated key=value connection
// identity: "region=eu-west-1;endpoint=http://localhost:8000;
// access_key=AK;secret_key=SK". Keys are case-insensitive; empty
// segments are ignored; unknown keys are an error so typos fail at
// setup, not at first use.
func ParseConnection(id apis.ConnectionID) (Settings, error) {
	var s Settings
	if id == "" {
		return s, fmt.Errorf("%w: empty identity", ErrBadConnectionString)
	}
	for _, part := range strings.Split(string(id), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Settings{}, fmt.Errorf("%w: segment %q has no '='", ErrBadConnectionString, part)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "region":
			s.Region = value
		case "endpoint":
			s.Endpoint = value
		case "access_key":
			s.AccessKey = value
		case "secret_key":
			s.SecretKey = value
		default:
			return Settings{}, fmt.Errorf("%w: unknown key %q", ErrBadConnectionString, key)
		}
	}
	return s, nil
}

// Factory returns the adapter's apis.Factory. Safe to retry: a failed
// construction leaves no state behind.
func Factory() apis.Factory {
	return New
}

// New constructs an apis.Client for the given connection identity.
func New(ctx context.Context, id apis.ConnectionID) (apis.Client, error) {
	s, err := ParseConnection(id)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if s.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(s.Region))
	}
	if s.AccessKey != "" && s.SecretKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("docbind(awsdynamo): load aws config: %w", err)
	}

	db := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
	})
	return &client{db: db}, nil
}

// client implements apis.Client over a shared *dynamodb.Client, which is
// safe for concurrent use.
type client struct {
	db *dynamodb.Client
}

var _ apis.Client = (*client)(nil)

func (c *client) ReadDocument(ctx context.Context, collection, id string) (apis.Document, error) {
	out, err := c.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(collection),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("docbind(awsdynamo): read %s/%s: %w", collection, id, err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %s/%s", apis.ErrNotFound, collection, id)
	}
	var doc apis.Document
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("docbind(awsdynamo): decode %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (c *client) QueryDocuments(ctx context.Context, collection, query string) ([]apis.Document, error) {
	if query == "" {
		return c.scan(ctx, collection)
	}
	return c.execute(ctx, collection, query)
}

// scan lists every document in the collection, following pagination.
func (c *client) scan(ctx context.Context, collection string) ([]apis.Document, error) {
	var docs []apis.Document
	p := dynamodb.NewScanPaginator(c.db, &dynamodb.ScanInput{TableName: aws.String(collection)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("docbind(awsdynamo): scan %s: %w", collection, err)
		}
		var batch []apis.Document
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("docbind(awsdynamo): decode scan %s: %w", collection, err)
		}
		docs = append(docs, batch...)
	}
	return docs, nil
}

// execute runs a PartiQL statement, following pagination.
func (c *client) execute(ctx context.Context, collection, query string) ([]apis.Document, error) {
	var (
		docs []apis.Document
		next *string
	)
	for {
		out, err := c.db.ExecuteStatement(ctx, &dynamodb.ExecuteStatementInput{
			Statement: aws.String(query),
			NextToken: next,
		})
		if err != nil {
			return nil, fmt.Errorf("docbind(awsdynamo): query %s: %w", collection, err)
		}
		var batch []apis.Document
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &batch); err != nil {
			return nil, fmt.Errorf("docbind(awsdynamo): decode query %s: %w", collection, err)
		}
		docs = append(docs, batch...)
		if out.NextToken == nil {
			return docs, nil
		}
		next = out.NextToken
	}
}

func (c *client) CreateDocument(ctx context.Context, collection string, doc apis.Document) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("docbind(awsdynamo): encode document for %s: %w", collection, err)
	}
	if _, err := c.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(collection),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("docbind(awsdynamo): write %s: %w", collection, err)
	}
	return nil
}
