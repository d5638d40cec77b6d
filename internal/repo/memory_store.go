package repo

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type memoryData struct {
	products  map[int]models.Product
	orders    map[int]models.Order
	users     map[int]models.User
	movements []models.Movement

	nextProductID  int
	nextOrderID    int
	nextUserID     int
	nextMovementID int
}

func (d *memoryData) clone() *memoryData {
	c := *d
	c.products = maps.Clone(d.products)
	c.orders = maps.Clone(d.orders)
	c.users = maps.Clone(d.users)
	c.movements = slices.Clone(d.movements)
	return &c
}

// InMemoryStore keeps everything in process memory. Transactions are
// serialized on a single mutex and rolled back by restoring a snapshot.
type InMemoryStore struct {
	mu   sync.Mutex
	data *memoryData
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: &memoryData{
			products:       map[int]models.Product{},
			orders:         map[int]models.Order{},
			users:          map[int]models.User{},
			nextProductID:  1,
			nextOrderID:    1,
			nextUserID:     1,
			nextMovementID: 1,
		},
	}
}

// memoryRepos gives repositories access to the store. Outside a transaction
// every call takes the store mutex; inside one the mutex is already held.
type memoryRepos struct {
	store *InMemoryStore
	inTx  bool
}

func (r memoryRepos) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r memoryRepos) data() *memoryData {
	return r.store.data
}

func (r memoryRepos) Products() ProductRepository {
	return &InMemoryProductRepository{m: r}
}

func (r memoryRepos) Orders() OrderRepository {
	return &InMemoryOrderRepository{m: r}
}

func (r memoryRepos) Users() UserRepository {
	return &InMemoryUserRepository{m: r}
}

func (r memoryRepos) Movements() MovementRepository {
	return &InMemoryMovementRepository{m: r}
}

func (s *InMemoryStore) Products() ProductRepository {
	return memoryRepos{store: s}.Products()
}

func (s *InMemoryStore) Orders() OrderRepository {
	return memoryRepos{store: s}.Orders()
}

func (s *InMemoryStore) Users() UserRepository {
	return memoryRepos{store: s}.Users()
}

func (s *InMemoryStore) Movements() MovementRepository {
	return memoryRepos{store: s}.Movements()
}

func (s *InMemoryStore) WithinTx(ctx context.Context, fn func(tx Repositories) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(memoryRepos{store: s, inTx: true})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
