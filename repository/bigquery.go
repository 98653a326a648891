package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"eTEats_recipes/models"
)

// BigQuery keeps recipes in one table and searches it with CONTAINS_SUBSTR,
// so matching happens in the warehouse instead of a full scan here.
type BigQuery struct {
	client  *bigquery.Client
	dataset string
	table   string
}

func NewBigQuery(client *bigquery.Client, dataset, table string) *BigQuery {
	return &BigQuery{client: client, dataset: dataset, table: table}
}

// bigQueryRow is the table layout. Ingredients are stored as a JSON array;
// ingredient_text holds their descriptions for searching.
type bigQueryRow struct {
	ID             string    `bigquery:"id"`
	Title          string    `bigquery:"title"`
	Publisher      string    `bigquery:"publisher"`
	SourceURL      string    `bigquery:"source_url"`
	ImageURL       string    `bigquery:"image_url"`
	Servings       int64     `bigquery:"servings"`
	CookingTime    int64     `bigquery:"cooking_time"`
	Ingredients    string    `bigquery:"ingredients"`
	IngredientText string    `bigquery:"ingredient_text"`
	Key            string    `bigquery:"key"`
	CreatedAt      time.Time `bigquery:"created_at"`
}

const bigQueryColumns = "id, title, publisher, source_url, image_url, servings, cooking_time, ingredients, key"

func toBigQueryRow(r models.RecipeDTO) (bigQueryRow, error) {
	ings := r.Ingredients
	if ings == nil {
		ings = []models.Ingredient{}
	}
	b, err := json.Marshal(ings)
	if err != nil {
		return bigQueryRow{}, fmt.Errorf("encode ingredients of %s: %w", r.ID, err)
	}
	descs := make([]string, len(ings))
	for i, ing := range ings {
		descs[i] = ing.Description
	}
	return bigQueryRow{
		ID:             r.ID,
		Title:          r.Title,
		Publisher:      r.Publisher,
		SourceURL:      r.SourceURL,
		ImageURL:       r.ImageURL,
		Servings:       int64(r.Servings),
		CookingTime:    int64(r.CookingTime),
		Ingredients:    string(b),
		IngredientText: strings.Join(descs, "\n"),
		Key:            r.Key,
	}, nil
}

func (row bigQueryRow) toDTO() (models.RecipeDTO, error) {
	ings := []models.Ingredient{}
	if row.Ingredients != "" {
		if err := json.Unmarshal([]byte(row.Ingredients), &ings); err != nil {
			return models.RecipeDTO{}, fmt.Errorf("decode ingredients of %s: %w", row.ID, err)
		}
	}
	return models.RecipeDTO{
		ID:          row.ID,
		Title:       row.Title,
		Publisher:   row.Publisher,
		SourceURL:   row.SourceURL,
		ImageURL:    row.ImageURL,
		Servings:    int(row.Servings),
		CookingTime: int(row.CookingTime),
		Ingredients: ings,
		Key:         row.Key,
	}, nil
}

func (b *BigQuery) tableRef() string {
	return fmt.Sprintf("`%s.%s.%s`", b.client.Project(), b.dataset, b.table)
}

// EnsureTable creates the recipe table when it does not exist yet.
func (b *BigQuery) EnsureTable(ctx context.Context) error {
	schema, err := bigquery.InferSchema(bigQueryRow{})
	if err != nil {
		return fmt.Errorf("bigquery schema: %w", err)
	}
	err = b.client.Dataset(b.dataset).Table(b.table).Create(ctx, &bigquery.TableMetadata{Schema: schema})
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusConflict {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bigquery create table %s.%s: %w", b.dataset, b.table, err)
	}
	return nil
}

func (b *BigQuery) read(ctx context.Context, sql string, params ...bigquery.QueryParameter) ([]models.RecipeDTO, error) {
	q := b.client.Query(sql)
	q.Parameters = params
	it, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.RecipeDTO{}
	for {
		var row bigQueryRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		r, err := row.toDTO()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (b *BigQuery) exec(ctx context.Context, sql string, params ...bigquery.QueryParameter) error {
	q := b.client.Query(sql)
	q.Parameters = params
	job, err := q.Run(ctx)
	if err != nil {
		return err
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	return status.Err()
}

func (b *BigQuery) Search(ctx context.Context, query, key string) ([]models.RecipeDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.RecipeDTO{}, nil
	}
	sql := fmt.Sprintf(`SELECT %s FROM %s
WHERE (CONTAINS_SUBSTR(title, @query) OR CONTAINS_SUBSTR(ingredient_text, @query))
  AND (key = '' OR key = @key)
ORDER BY created_at`, bigQueryColumns, b.tableRef())
	out, err := b.read(ctx, sql,
		bigquery.QueryParameter{Name: "query", Value: query},
		bigquery.QueryParameter{Name: "key", Value: key},
	)
	if err != nil {
		return nil, fmt.Errorf("bigquery search: %w", err)
	}
	return out, nil
}

func (b *BigQuery) Get(ctx context.Context, id string) (models.RecipeDTO, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = @id LIMIT 1", bigQueryColumns, b.tableRef())
	out, err := b.read(ctx, sql, bigquery.QueryParameter{Name: "id", Value: id})
	if err != nil {
		return models.RecipeDTO{}, fmt.Errorf("bigquery get %s: %w", id, err)
	}
	if len(out) == 0 {
		return models.RecipeDTO{}, ErrNotFound
	}
	return out[0], nil
}

// Create inserts r, or replaces the recipe with the same id.
func (b *BigQuery) Create(ctx context.Context, r models.RecipeDTO) error {
	row, err := toBigQueryRow(r)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`MERGE %s T
USING (SELECT @id AS id) S ON T.id = S.id
WHEN MATCHED THEN UPDATE SET
  title = @title, publisher = @publisher, source_url = @source_url, image_url = @image_url,
  servings = @servings, cooking_time = @cooking_time, ingredients = @ingredients,
  ingredient_text = @ingredient_text, key = @key
WHEN NOT MATCHED THEN INSERT
  (id, title, publisher, source_url, image_url, servings, cooking_time, ingredients, ingredient_text, key, created_at)
  VALUES (@id, @title, @publisher, @source_url, @image_url, @servings, @cooking_time, @ingredients, @ingredient_text, @key, CURRENT_TIMESTAMP())`,
		b.tableRef())
	err = b.exec(ctx, sql,
		bigquery.QueryParameter{Name: "id", Value: row.ID},
		bigquery.QueryParameter{Name: "title", Value: row.Title},
		bigquery.QueryParameter{Name: "publisher", Value: row.Publisher},
		bigquery.QueryParameter{Name: "source_url", Value: row.SourceURL},
		bigquery.QueryParameter{Name: "image_url", Value: row.ImageURL},
		bigquery.QueryParameter{Name: "servings", Value: row.Servings},
		bigquery.QueryParameter{Name: "cooking_time", Value: row.CookingTime},
		bigquery.QueryParameter{Name: "ingredients", Value: row.Ingredients},
		bigquery.QueryParameter{Name: "ingredient_text", Value: row.IngredientText},
		bigquery.QueryParameter{Name: "key", Value: row.Key},
	)
	if err != nil {
		return fmt.Errorf("bigquery create %s: %w", r.ID, err)
	}
	return nil
}

func (b *BigQuery) Delete(ctx context.Context, id string) error {
	if _, err := b.Get(ctx, id); err != nil {
		return err
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE id = @id", b.tableRef())
	if err := b.exec(ctx, sql, bigquery.QueryParameter{Name: "id", Value: id}); err != nil {
		return fmt.Errorf("bigquery delete %s: %w", id, err)
	}
	return nil
}
