package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"eTEats_recipes/models"
)

// Firestore stores one document per recipe, keyed by recipe id.
type Firestore struct {
	client     *firestore.Client
	collection string
}

func NewFirestore(client *firestore.Client, collection string) *Firestore {
	return &Firestore{client: client, collection: collection}
}

// Search scans the collection; Firestore has no substring queries.
func (f *Firestore) Search(ctx context.Context, query, key string) ([]models.RecipeDTO, error) {
	out := []models.RecipeDTO{}
	iter := f.client.Collection(f.collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore search: %w", err)
		}

		var r models.RecipeDTO
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("firestore decode %s: %w", doc.Ref.ID, err)
		}
		if r.Ingredients == nil {
			r.Ingredients = []models.Ingredient{}
		}
		if Visible(r, key) && matches(r, query) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Firestore) Get(ctx context.Context, id string) (models.RecipeDTO, error) {
	iter := f.client.Collection(f.collection).Where("id", "==", id).Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		return models.RecipeDTO{}, ErrNotFound
	}
	if err != nil {
		return models.RecipeDTO{}, fmt.Errorf("firestore get %s: %w", id, err)
	}

	var r models.RecipeDTO
	if err := doc.DataTo(&r); err != nil {
		return models.RecipeDTO{}, fmt.Errorf("firestore decode %s: %w", id, err)
	}
	if r.Ingredients == nil {
		r.Ingredients = []models.Ingredient{}
	}
	return r, nil
}

func (f *Firestore) Create(ctx context.Context, r models.RecipeDTO) error {
	if _, err := f.client.Collection(f.collection).Doc(r.ID).Set(ctx, r); err != nil {
		return fmt.Errorf("firestore create %s: %w", r.ID, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, id string) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}
	if _, err := f.client.Collection(f.collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s: %w", id, err)
	}
	return nil
}
