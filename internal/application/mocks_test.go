package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/adisetya/recipe-api/internal/domain/entity"
	"github.com/adisetya/recipe-api/internal/domain/repository"
)

// Hand-written in-memory fakes for the repository and token store
// interfaces.

type MockUserRepository struct {
	users     map[string]*entity.User // by id
	nextID    int
	createErr error
	updateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*entity.User), nextID: 1}
}

func (m *MockUserRepository) Create(u *entity.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = fmt.Sprintf("user-%d", m.nextID)
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) Update(u *entity.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

type MockTokenStore struct {
	tokens map[string]string // token -> user id
	ttl    time.Duration
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[string]string), ttl: time.Hour}
}

func (m *MockTokenStore) Save(_ context.Context, token, userID string) error {
	m.tokens[token] = userID
	return nil
}

func (m *MockTokenStore) Resolve(_ context.Context, token string) (string, error) {
	uid, ok := m.tokens[token]
	if !ok {
		return "", fmt.Errorf("token not found")
	}
	return uid, nil
}

func (m *MockTokenStore) Revoke(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func (m *MockTokenStore) RevokeUser(_ context.Context, userID string) error {
	for t, uid := range m.tokens {
		if uid == userID {
			delete(m.tokens, t)
		}
	}
	return nil
}

func (m *MockTokenStore) TTL() time.Duration { return m.ttl }

type MockTagRepository struct {
	tags   map[int64]*entity.Tag
	nextID int64
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{tags: make(map[int64]*entity.Tag), nextID: 1}
}

func (m *MockTagRepository) Create(t *entity.Tag) error {
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.tags[t.ID] = &cp
	return nil
}

func (m *MockTagRepository) GetByID(id int64) (*entity.Tag, error) {
	if t, ok := m.tags[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockTagRepository) ListByUser(userID string) ([]*entity.Tag, error) {
	out := make([]*entity.Tag, 0)
	for _, t := range m.tags {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockTagRepository) Update(t *entity.Tag) error {
	if _, ok := m.tags[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	m.tags[t.ID] = &cp
	return nil
}

func (m *MockTagRepository) Delete(id int64) error {
	if _, ok := m.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tags, id)
	return nil
}

type MockIngredientRepository struct {
	ingredients map[int64]*entity.Ingredient
	nextID      int64
}

func NewMockIngredientRepository() *MockIngredientRepository {
	return &MockIngredientRepository{ingredients: make(map[int64]*entity.Ingredient), nextID: 1}
}

func (m *MockIngredientRepository) Create(i *entity.Ingredient) error {
	i.ID = m.nextID
	m.nextID++
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	cp := *i
	m.ingredients[i.ID] = &cp
	return nil
}

func (m *MockIngredientRepository) GetByID(id int64) (*entity.Ingredient, error) {
	if i, ok := m.ingredients[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockIngredientRepository) ListByUser(userID string) ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0)
	for _, i := range m.ingredients {
		if i.UserID == userID {
			cp := *i
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockIngredientRepository) Update(i *entity.Ingredient) error {
	if _, ok := m.ingredients[i.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *i
	m.ingredients[i.ID] = &cp
	return nil
}

func (m *MockIngredientRepository) Delete(id int64) error {
	if _, ok := m.ingredients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.ingredients, id)
	return nil
}

type MockRecipeRepository struct {
	recipes map[int64]*entity.Recipe
	nextID  int64
}

func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{recipes: make(map[int64]*entity.Recipe), nextID: 1}
}

func copyRecipe(r *entity.Recipe) *entity.Recipe {
	cp := *r
	cp.TagIDs = append([]int64(nil), r.TagIDs...)
	cp.IngredientIDs = append([]int64(nil), r.IngredientIDs...)
	return &cp
}

func (m *MockRecipeRepository) Create(r *entity.Recipe) error {
	r.ID = m.nextID
	m.nextID++
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.recipes[r.ID] = copyRecipe(r)
	return nil
}

func (m *MockRecipeRepository) GetByID(id int64) (*entity.Recipe, error) {
	if r, ok := m.recipes[id]; ok {
		return copyRecipe(r), nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockRecipeRepository) List() ([]*entity.Recipe, error) {
	out := make([]*entity.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, copyRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *MockRecipeRepository) Update(r *entity.Recipe) error {
	if _, ok := m.recipes[r.ID]; !ok {
		return repository.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	m.recipes[r.ID] = copyRecipe(r)
	return nil
}

func (m *MockRecipeRepository) Delete(id int64) error {
	if _, ok := m.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}
