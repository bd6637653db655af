// README: Firestore-backed implementation of the document store port.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore adapts a Firestore client to the Store port. Every
// operation runs under a per-call timeout; the store itself imposes none.
type FirestoreStore struct {
	client  *firestore.Client
	timeout time.Duration
}

func NewFirestoreStore(client *firestore.Client, timeout time.Duration) *FirestoreStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FirestoreStore{client: client, timeout: timeout}
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ref, _, err := s.client.Collection(collection).Add(ctx, translateSentinels(data))
	if err != nil {
		return "", fmt.Errorf("firestore add %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Path, f.Op, f.Value)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore query %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, translateSentinels(fields), firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("firestore update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Subscribe(ctx context.Context, collection string, onSnapshot func([]Document)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := s.client.Collection(collection).Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("store: %s snapshot feed ended: %v", collection, err)
				}
				return
			}
			var docs []Document
			docIter := snap.Documents
			for {
				d, err := docIter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("store: %s snapshot read: %v", collection, err)
					break
				}
				docs = append(docs, Document{ID: d.Ref.ID, Data: d.Data()})
			}
			onSnapshot(docs)
		}
	}()

	return cancel, nil
}

// translateSentinels maps the port's ServerTimestamp sentinel onto the
// Firestore one. Nested maps are walked because booking payloads nest place
// objects.
func translateSentinels(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch tv := v.(type) {
		case serverTimestamp:
			out[k] = firestore.ServerTimestamp
		case map[string]any:
			out[k] = translateSentinels(tv)
		default:
			out[k] = v
		}
	}
	return out
}
