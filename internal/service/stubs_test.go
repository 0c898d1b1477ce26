package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"notely-be/internal/cache"
	"notely-be/internal/entities"
	"notely-be/internal/repository"
)

// memStore is a shared in-memory backing store for the stub repositories.
// It mirrors the ownership semantics of the SQL layer: every lookup is
// filtered by owner, and rows of other users are indistinguishable from
// missing rows.
type memStore struct {
	users         map[string]*entities.User
	emails        map[string]string // email -> user id
	categories    map[string]*entities.Category
	categoryOrder []string // ids in creation order
	notes         map[string]*entities.Note
	idSeq         int
	timeSeq       int
	base          time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]*entities.User),
		emails:     make(map[string]string),
		categories: make(map[string]*entities.Category),
		notes:      make(map[string]*entities.Note),
		base:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.idSeq++
	return fmt.Sprintf("%s-%d", prefix, m.idSeq)
}

// tick returns a strictly increasing timestamp so updated_at comparisons
// are deterministic without sleeping.
func (m *memStore) tick() time.Time {
	m.timeSeq++
	return m.base.Add(time.Duration(m.timeSeq) * time.Second)
}

func (m *memStore) notesCount(categoryID string) int {
	count := 0
	for _, note := range m.notes {
		if note.CategoryID == categoryID {
			count++
		}
	}
	return count
}

func (m *memStore) categoryClone(id string) *entities.Category {
	category := *m.categories[id]
	category.NotesCount = m.notesCount(id)
	return &category
}

func (m *memStore) noteClone(id string) *entities.Note {
	note := *m.notes[id]
	note.Category = *m.categories[note.CategoryID]
	return &note
}

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Register(email, passwordHash string, seeds []repository.CategorySeed) (*entities.User, error) {
	if _, taken := r.store.emails[email]; taken {
		return nil, repository.ErrDuplicateEmail
	}

	now := r.store.tick()
	user := &entities.User{
		ID:           r.store.nextID("user"),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.store.users[user.ID] = user
	r.store.emails[email] = user.ID

	for _, seed := range seeds {
		r.store.addCategory(user.ID, seed.Name, seed.Colour)
	}

	clone := *user
	return &clone, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entities.User, error) {
	id, ok := r.store.emails[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *r.store.users[id]
	return &clone, nil
}

func (r *memUserRepo) FindByID(id string) (*entities.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *memStore) addCategory(userID, name, colour string) *entities.Category {
	now := m.tick()
	category := &entities.Category{
		ID:        m.nextID("cat"),
		Name:      name,
		Colour:    colour,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.categories[category.ID] = category
	m.categoryOrder = append(m.categoryOrder, category.ID)
	return category
}

type memCategoryRepo struct {
	store *memStore
}

func (r *memCategoryRepo) Create(userID, name, colour string) (*entities.Category, error) {
	category := r.store.addCategory(userID, name, colour)
	return r.store.categoryClone(category.ID), nil
}

func (r *memCategoryRepo) List(userID string, limit, offset int) ([]*entities.Category, int, error) {
	var owned []*entities.Category
	for _, id := range r.store.categoryOrder {
		if category, ok := r.store.categories[id]; ok && category.UserID == userID {
			owned = append(owned, r.store.categoryClone(id))
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Name < owned[j].Name })

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (r *memCategoryRepo) FindByID(userID, id string) (*entities.Category, error) {
	category, ok := r.store.categories[id]
	if !ok || category.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return r.store.categoryClone(id), nil
}

func (r *memCategoryRepo) Update(userID, id, name, colour string) (*entities.Category, error) {
	category, ok := r.store.categories[id]
	if !ok || category.UserID != userID {
		return nil, repository.ErrNotFound
	}
	category.Name = name
	category.Colour = colour
	category.UpdatedAt = r.store.tick()
	return r.store.categoryClone(id), nil
}

func (r *memCategoryRepo) Delete(userID, id string) error {
	category, ok := r.store.categories[id]
	if !ok || category.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.store.categories, id)
	for noteID, note := range r.store.notes {
		if note.CategoryID == id {
			delete(r.store.notes, noteID)
		}
	}
	return nil
}

type memNoteRepo struct {
	store *memStore
}

func (r *memNoteRepo) Create(userID string, fields repository.NoteFields) (*entities.Note, error) {
	category, ok := r.store.categories[fields.CategoryID]
	if !ok || category.UserID != userID {
		return nil, repository.ErrForeignCategory
	}

	now := r.store.tick()
	note := &entities.Note{
		ID:         r.store.nextID("note"),
		Title:      fields.Title,
		Content:    fields.Content,
		Date:       fields.Date,
		CategoryID: fields.CategoryID,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.store.notes[note.ID] = note
	return r.store.noteClone(note.ID), nil
}

func (r *memNoteRepo) List(userID, categoryID string, limit, offset int) ([]*entities.Note, int, error) {
	var owned []*entities.Note
	for id, note := range r.store.notes {
		if note.UserID != userID {
			continue
		}
		if categoryID != "" && note.CategoryID != categoryID {
			continue
		}
		owned = append(owned, r.store.noteClone(id))
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Date.After(owned[j].Date) })

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (r *memNoteRepo) FindByID(userID, id string) (*entities.Note, error) {
	note, ok := r.store.notes[id]
	if !ok || note.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return r.store.noteClone(id), nil
}

func (r *memNoteRepo) Update(userID, id string, fields repository.NoteFields) (*entities.Note, error) {
	note, ok := r.store.notes[id]
	if !ok || note.UserID != userID {
		return nil, repository.ErrNotFound
	}
	category, ok := r.store.categories[fields.CategoryID]
	if !ok || category.UserID != userID {
		return nil, repository.ErrForeignCategory
	}

	note.Title = fields.Title
	note.Content = fields.Content
	note.Date = fields.Date
	note.CategoryID = fields.CategoryID
	note.UpdatedAt = r.store.tick()
	return r.store.noteClone(id), nil
}

func (r *memNoteRepo) Delete(userID, id string) error {
	note, ok := r.store.notes[id]
	if !ok || note.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.store.notes, id)
	return nil
}

// stubCache is an in-memory cache.Cache
type stubCache struct {
	data map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (c *stubCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = data
	return nil
}

func (c *stubCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	data, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}
