// Package memory implementa los puertos del inventario en memoria, para pruebas y STORE_DRIVER=memory.
// Cada transacción trabaja sobre una copia del estado y la publica al confirmar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

type state struct {
	balances  map[string]*entity.StockBalance
	byKey     map[entity.BalanceKey]string
	movements []*entity.StockMovement
	tasks     map[string]*entity.PickTask
	taskOrder []string
}

func newState() *state {
	return &state{
		balances: make(map[string]*entity.StockBalance),
		byKey:    make(map[entity.BalanceKey]string),
		tasks:    make(map[string]*entity.PickTask),
	}
}

func (s *state) clone() *state {
	c := &state{
		balances:  make(map[string]*entity.StockBalance, len(s.balances)),
		byKey:     make(map[entity.BalanceKey]string, len(s.byKey)),
		movements: append([]*entity.StockMovement(nil), s.movements...),
		tasks:     make(map[string]*entity.PickTask, len(s.tasks)),
		taskOrder: append([]string(nil), s.taskOrder...),
	}
	for id, b := range s.balances {
		c.balances[id] = b.Clone()
	}
	for k, id := range s.byKey {
		c.byKey[k] = id
	}
	for id, t := range s.tasks {
		c.tasks[id] = t.Clone()
	}
	return c
}

// Store estado compartido. mu protege el estado transaccional (saldos, kardex, tareas);
// topoMu la topología y la configuración de reposición, que se leen también dentro de una tx.
type Store struct {
	mu sync.Mutex
	st *state

	topoMu    sync.RWMutex
	locations map[string]*entity.Location
	configs   []*entity.ReplenishmentConfig
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		st:        newState(),
		locations: make(map[string]*entity.Location),
	}
}

// AddLocation registra (o reemplaza) una ubicación.
func (s *Store) AddLocation(l *entity.Location) {
	s.topoMu.Lock()
	defer s.topoMu.Unlock()
	c := *l
	s.locations[l.ID] = &c
}

// AddReplenishmentConfig registra una configuración de reposición.
func (s *Store) AddReplenishmentConfig(c *entity.ReplenishmentConfig) {
	s.topoMu.Lock()
	defer s.topoMu.Unlock()
	cp := *c
	s.configs = append(s.configs, &cp)
}

// view liga un repositorio al estado de una tx (tx != nil) o al estado confirmado.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// StockRepository repositorio de saldos fuera de transacción.
func (s *Store) StockRepository() *StockRepository {
	return &StockRepository{view: view{store: s}}
}

// MovementRepository kardex fuera de transacción.
func (s *Store) MovementRepository() *MovementRepository {
	return &MovementRepository{view: view{store: s}}
}

// TaskRepository tareas fuera de transacción.
func (s *Store) TaskRepository() *TaskRepository {
	return &TaskRepository{view: view{store: s}}
}

// LocationRepository lectura de ubicaciones.
func (s *Store) LocationRepository() *LocationRepository {
	return &LocationRepository{store: s}
}

// ReplenishmentConfigRepository lectura de configuración de reposición.
func (s *Store) ReplenishmentConfigRepository() *ReplenishmentConfigRepository {
	return &ReplenishmentConfigRepository{store: s}
}

// TxRunner ejecuta fn sobre una copia del estado; solo si fn no devuelve error la copia
// reemplaza al estado confirmado. Las transacciones se serializan.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner del store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	taskRepo repository.PickTaskRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	v := view{store: r.store, tx: work}
	if err := fn(&MovementRepository{view: v}, &StockRepository{view: v}, &TaskRepository{view: v}); err != nil {
		return err
	}
	r.store.st = work
	return nil
}
