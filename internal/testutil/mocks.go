// Package testutil provides in-memory mock implementations of the
// repository interfaces for service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/centavo-app/centavo-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID       map[uuid.UUID]*domain.User
	ByEmail    map[string]*domain.User
	ByUsername map[string]*domain.User
	CreateFn   func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:       make(map[uuid.UUID]*domain.User),
		ByEmail:    make(map[string]*domain.User),
		ByUsername: make(map[string]*domain.User),
	}
}

// Create stores a new user, enforcing email and username uniqueness
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	if _, ok := m.ByUsername[user.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	m.AddUser(user)
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.ByUsername[username]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
	m.ByUsername[user.Username] = user
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	NextID   int32
	CreateFn func(expense *domain.Expense) (*domain.Expense, error)
	ListFn   func(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// Create stores a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	expense.ID = m.NextID
	m.NextID++
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense scoped to a user
func (m *MockExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.Expense, error) {
	exp, ok := m.Expenses[id]
	if !ok || exp.UserID != userID {
		return nil, domain.ErrExpenseNotFound
	}
	return exp, nil
}

// List retrieves expenses matching the filters, newest first
func (m *MockExpenseRepository) List(userID uuid.UUID, filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	if m.ListFn != nil {
		return m.ListFn(userID, filters)
	}

	result := make([]*domain.Expense, 0)
	for _, exp := range m.sortedByUser(userID) {
		if filters != nil && !matchesFilters(exp, filters) {
			continue
		}
		result = append(result, exp)
	}

	// Newest first, like the real repository
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	if filters != nil {
		if filters.Offset > 0 {
			if int(filters.Offset) >= len(result) {
				return []*domain.Expense{}, nil
			}
			result = result[filters.Offset:]
		}
		if filters.Limit > 0 && int(filters.Limit) < len(result) {
			result = result[:filters.Limit]
		}
	}
	return result, nil
}

// GetByDateRange retrieves a user's expenses with start <= date < end, oldest first
func (m *MockExpenseRepository) GetByDateRange(userID uuid.UUID, start, end time.Time) ([]*domain.Expense, error) {
	result := make([]*domain.Expense, 0)
	for _, exp := range m.sortedByUser(userID) {
		if exp.Date.Before(start) || !exp.Date.Before(end) {
			continue
		}
		result = append(result, exp)
	}
	return result, nil
}

// GetAllByUser retrieves all of a user's expenses, oldest first
func (m *MockExpenseRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Expense, error) {
	return m.sortedByUser(userID), nil
}

// Update replaces an existing expense
func (m *MockExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	existing, ok := m.Expenses[expense.ID]
	if !ok || existing.UserID != expense.UserID {
		return nil, domain.ErrExpenseNotFound
	}
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = time.Now()
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// Delete removes an expense scoped to a user
func (m *MockExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	exp, ok := m.Expenses[id]
	if !ok || exp.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) *domain.Expense {
	if expense.ID == 0 {
		expense.ID = m.NextID
		m.NextID++
	} else if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
	m.Expenses[expense.ID] = expense
	return expense
}

func (m *MockExpenseRepository) sortedByUser(userID uuid.UUID) []*domain.Expense {
	result := make([]*domain.Expense, 0)
	for _, exp := range m.Expenses {
		if exp.UserID == userID {
			result = append(result, exp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

func matchesFilters(exp *domain.Expense, filters *domain.ExpenseFilters) bool {
	if filters.Month != nil && !filters.Month.Contains(exp.Date) {
		return false
	}
	if filters.Category != nil && exp.Category != *filters.Category {
		return false
	}
	if filters.IsNeed != nil && exp.IsNeed != *filters.IsNeed {
		return false
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		note := ""
		if exp.Note != nil {
			note = *exp.Note
		}
		if !strings.Contains(strings.ToLower(exp.Merchant), needle) &&
			!strings.Contains(strings.ToLower(exp.Category), needle) &&
			!strings.Contains(strings.ToLower(note), needle) {
			return false
		}
	}
	return true
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets  map[int32]*domain.Budget
	NextID   int32
	CreateFn func(budget *domain.Budget) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// Create stores a new budget, enforcing (user, category, month) uniqueness
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	if m.CreateFn != nil {
		return m.CreateFn(budget)
	}
	for _, b := range m.Budgets {
		if b.UserID == budget.UserID && b.Category == budget.Category && b.Month == budget.Month {
			return nil, domain.ErrBudgetExists
		}
	}
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget scoped to a user
func (m *MockBudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

// List retrieves budgets matching the filters
func (m *MockBudgetRepository) List(userID uuid.UUID, filters *domain.BudgetFilters) ([]*domain.Budget, error) {
	result := make([]*domain.Budget, 0)
	for _, b := range m.sortedBudgets(userID) {
		if filters != nil {
			if filters.Month != nil && b.Month != *filters.Month {
				continue
			}
			if filters.Category != nil && b.Category != *filters.Category {
				continue
			}
		}
		result = append(result, b)
	}
	return result, nil
}

// GetByMonth retrieves all of a user's budgets for one month
func (m *MockBudgetRepository) GetByMonth(userID uuid.UUID, month util.Month) ([]*domain.Budget, error) {
	return m.List(userID, &domain.BudgetFilters{Month: &month})
}

// Update replaces the amount of an existing budget
func (m *MockBudgetRepository) Update(budget *domain.Budget) (*domain.Budget, error) {
	existing, ok := m.Budgets[budget.ID]
	if !ok || existing.UserID != budget.UserID {
		return nil, domain.ErrBudgetNotFound
	}
	existing.Amount = budget.Amount
	existing.UpdatedAt = time.Now()
	return existing, nil
}

// Delete removes a budget scoped to a user
func (m *MockBudgetRepository) Delete(userID uuid.UUID, id int32) error {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) *domain.Budget {
	if budget.ID == 0 {
		budget.ID = m.NextID
		m.NextID++
	}
	m.Budgets[budget.ID] = budget
	return budget
}

func (m *MockBudgetRepository) sortedBudgets(userID uuid.UUID) []*domain.Budget {
	result := make([]*domain.Budget, 0)
	for _, b := range m.Budgets {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// MockReceiptRepository is a mock implementation of domain.ReceiptRepository
type MockReceiptRepository struct {
	Receipts map[int32]*domain.Receipt // keyed by expense ID
	NextID   int32
}

// NewMockReceiptRepository creates a new MockReceiptRepository
func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{
		Receipts: make(map[int32]*domain.Receipt),
		NextID:   1,
	}
}

// Create stores a new receipt
func (m *MockReceiptRepository) Create(receipt *domain.Receipt) (*domain.Receipt, error) {
	receipt.ID = m.NextID
	m.NextID++
	receipt.CreatedAt = time.Now()
	m.Receipts[receipt.ExpenseID] = receipt
	return receipt, nil
}

// GetByExpense retrieves the receipt attached to an expense
func (m *MockReceiptRepository) GetByExpense(userID uuid.UUID, expenseID int32) (*domain.Receipt, error) {
	r, ok := m.Receipts[expenseID]
	if !ok || r.UserID != userID {
		return nil, domain.ErrReceiptNotFound
	}
	return r, nil
}

// Delete removes the receipt attached to an expense
func (m *MockReceiptRepository) Delete(userID uuid.UUID, expenseID int32) error {
	r, ok := m.Receipts[expenseID]
	if !ok || r.UserID != userID {
		return domain.ErrReceiptNotFound
	}
	delete(m.Receipts, expenseID)
	return nil
}

// MockReceiptStore is an in-memory implementation of storage.ReceiptStore
type MockReceiptStore struct {
	mu       sync.Mutex
	Objects  map[string][]byte
	UploadFn func(objectPath string) error
}

// NewMockReceiptStore creates a new MockReceiptStore
func NewMockReceiptStore() *MockReceiptStore {
	return &MockReceiptStore{
		Objects: make(map[string][]byte),
	}
}

// Upload stores the object bytes in memory
func (m *MockReceiptStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		if err := m.UploadFn(objectPath); err != nil {
			return "", err
		}
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = body
	return objectPath, nil
}

// Delete removes an object
func (m *MockReceiptStore) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL for the object
func (m *MockReceiptStore) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[objectPath]; !ok {
		return "", fmt.Errorf("object %s not found", objectPath)
	}
	return "https://storage.test/" + objectPath, nil
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent pairs an event with the user it was published to
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// Published returns a copy of the recorded events
func (m *MockEventPublisher) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]PublishedEvent, len(m.Events))
	copy(copied, m.Events)
	return copied
}
