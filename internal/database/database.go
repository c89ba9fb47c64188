package database

import (
	"context"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Document is a single stored document: its store-assigned ID and raw fields.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// DocumentStore is the read capability the services need from the document store.
// Implementations must be safe for concurrent use.
type DocumentStore interface {
	// GetAll returns every document in the collection, in store order.
	GetAll(ctx context.Context, collection string) ([]Document, error)
	// Get returns the document with the given ID. found is false, with a nil
	// error, when no such document exists.
	Get(ctx context.Context, collection, id string) (doc *Document, found bool, err error)
}

// New creates a Firestore client. credentialsFile may be empty, in which case
// Application Default Credentials (or FIRESTORE_EMULATOR_HOST) are used.
func New(ctx context.Context, projectID, databaseID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	return firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
}

// FirestoreStore adapts a Firestore client to DocumentStore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an initialized Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// GetAll fetches all documents in the collection.
func (s *FirestoreStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// Get fetches a single document by ID.
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Document, bool, error) {
	if !ValidDocumentID(id) {
		return nil, false, nil
	}

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !snap.Exists() {
		return nil, false, nil
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, true, nil
}

// maxDocumentIDBytes is Firestore's limit on a document ID.
const maxDocumentIDBytes = 1500

// ValidDocumentID reports whether id can name a Firestore document. No stored
// document can have an ID for which this returns false.
func ValidDocumentID(id string) bool {
	switch {
	case id == "", id == ".", id == "..":
		return false
	case len(id) > maxDocumentIDBytes:
		return false
	case !utf8.ValidString(id), strings.Contains(id, "/"):
		return false
	case len(id) >= 4 && strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__"):
		return false
	}
	return true
}

// ValidCollectionID reports whether id names a top-level collection.
func ValidCollectionID(id string) bool {
	return ValidDocumentID(id)
}
