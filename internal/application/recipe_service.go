package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adisetya/recipe-api/internal/domain/entity"
	repo "github.com/adisetya/recipe-api/internal/domain/repository"
	"github.com/adisetya/recipe-api/pkg/helpers"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidTime    = errors.New("time_minutes must be a positive integer")
	ErrInvalidPrice   = errors.New("price must have at most 5 digits with 2 decimal places")
)

// RecipeService owns recipe CRUD plus the Elasticsearch index and GCS
// image storage that hang off it.
type RecipeService struct {
	Repo        repo.RecipeRepository
	Tags        repo.TagRepository
	Ingredients repo.IngredientRepository
	GCS         *storage.Client
	GCSBucket   string
	Logger      *logrus.Logger
	ES          *elasticsearch.Client
	ESIndex     string
}

func NewRecipeService(r repo.RecipeRepository, tags repo.TagRepository, ingredients repo.IngredientRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *RecipeService {
	return &RecipeService{
		Repo:        r,
		Tags:        tags,
		Ingredients: ingredients,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		Logger:      logger,
		ES:          es,
		ESIndex:     esIndex,
	}
}

// normalizePrice validates a decimal string against NUMERIC(5,2) and pads
// it to two decimal places ("5" -> "5.00").
func normalizePrice(p string) (string, error) {
	s := strings.TrimSpace(p)
	if s == "" {
		return "", ErrInvalidPrice
	}
	intPart := s
	frac := ""
	if dot := strings.Index(s, "."); dot >= 0 {
		intPart, frac = s[:dot], s[dot+1:]
	}
	if intPart == "" || len(intPart) > 3 || len(frac) > 2 {
		return "", ErrInvalidPrice
	}
	for _, r := range intPart + frac {
		if r < '0' || r > '9' {
			return "", ErrInvalidPrice
		}
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return intPart + "." + frac, nil
}

// checkRefs verifies every referenced tag/ingredient id exists.
func (s *RecipeService) checkRefs(tagIDs, ingredientIDs []int64) error {
	for _, id := range tagIDs {
		if _, err := s.Tags.GetByID(id); err != nil {
			return ErrTagNotFound
		}
	}
	for _, id := range ingredientIDs {
		if _, err := s.Ingredients.GetByID(id); err != nil {
			return ErrIngredientNotFound
		}
	}
	return nil
}

type CreateRecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         string
	Link          string
	TagIDs        []int64
	IngredientIDs []int64
}

func (s *RecipeService) Create(ctx context.Context, userID string, in CreateRecipeInput) (*entity.Recipe, error) {
	if in.TimeMinutes <= 0 {
		return nil, ErrInvalidTime
	}
	price, err := normalizePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(in.TagIDs, in.IngredientIDs); err != nil {
		return nil, err
	}

	rec := &entity.Recipe{
		UserID:        userID,
		Title:         in.Title,
		TimeMinutes:   in.TimeMinutes,
		Price:         price,
		Link:          in.Link,
		TagIDs:        in.TagIDs,
		IngredientIDs: in.IngredientIDs,
	}
	if rec.TagIDs == nil {
		rec.TagIDs = []int64{}
	}
	if rec.IngredientIDs == nil {
		rec.IngredientIDs = []int64{}
	}
	if err := s.Repo.Create(rec); err != nil {
		return nil, err
	}
	_ = s.indexRecipe(ctx, rec)
	return rec, nil
}

func (s *RecipeService) List() ([]*entity.Recipe, error) {
	return s.Repo.List()
}

// RecipeDetail is the expanded read shape: tag/ingredient references are
// resolved into full objects.
type RecipeDetail struct {
	Recipe      *entity.Recipe
	Tags        []*entity.Tag
	Ingredients []*entity.Ingredient
}

func (s *RecipeService) Get(id int64) (*RecipeDetail, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	d := &RecipeDetail{Recipe: rec, Tags: make([]*entity.Tag, 0), Ingredients: make([]*entity.Ingredient, 0)}
	for _, tagID := range rec.TagIDs {
		if t, err := s.Tags.GetByID(tagID); err == nil {
			d.Tags = append(d.Tags, t)
		}
	}
	for _, ingID := range rec.IngredientIDs {
		if i, err := s.Ingredients.GetByID(ingID); err == nil {
			d.Ingredients = append(d.Ingredients, i)
		}
	}
	return d, nil
}

type UpdateRecipeInput struct {
	Title         *string
	TimeMinutes   *int
	Price         *string
	Link          *string
	TagIDs        []int64
	IngredientIDs []int64
}

// Update applies a partial (PATCH) or full (PUT) update. Nil fields are
// left unchanged; nil id slices keep the existing references.
func (s *RecipeService) Update(ctx context.Context, userID string, id int64, in UpdateRecipeInput) (*entity.Recipe, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	if rec.UserID != userID {
		return nil, ErrNotOwner
	}
	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.TimeMinutes != nil {
		if *in.TimeMinutes <= 0 {
			return nil, ErrInvalidTime
		}
		rec.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		price, err := normalizePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		rec.Price = price
	}
	if in.Link != nil {
		rec.Link = *in.Link
	}
	if in.TagIDs != nil {
		rec.TagIDs = in.TagIDs
	}
	if in.IngredientIDs != nil {
		rec.IngredientIDs = in.IngredientIDs
	}
	if err := s.checkRefs(rec.TagIDs, rec.IngredientIDs); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(rec); err != nil {
		return nil, err
	}
	_ = s.indexRecipe(ctx, rec)
	return rec, nil
}

func (s *RecipeService) Delete(ctx context.Context, userID string, id int64) error {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return ErrRecipeNotFound
	}
	if rec.UserID != userID {
		return ErrNotOwner
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// UploadImage stores a recipe image in GCS and persists its public URL.
func (s *RecipeService) UploadImage(ctx context.Context, userID string, id int64, r io.Reader, filename, contentType string) (string, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return "", ErrRecipeNotFound
	}
	if rec.UserID != userID {
		return "", ErrNotOwner
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("recipes", strconv.FormatInt(id, 10), uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	rec.ImageURL = url
	if err := s.Repo.Update(rec); err != nil {
		return "", err
	}
	_ = s.indexRecipe(ctx, rec)
	return url, nil
}

func (s *RecipeService) indexRecipe(ctx context.Context, rec *entity.Recipe) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":           rec.ID,
		"user_id":      rec.UserID,
		"title":        rec.Title,
		"time_minutes": rec.TimeMinutes,
		"price":        rec.Price,
		"link":         rec.Link,
		"image_url":    rec.ImageURL,
		"created_at":   rec.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   rec.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(rec.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("recipe_id", rec.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("recipe_id", rec.ID).Warn("es index response error")
	}
	return nil
}

func (s *RecipeService) removeFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("recipe_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over recipe titles and links.
func (s *RecipeService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "link"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
