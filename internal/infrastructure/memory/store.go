// Package memory implementa los puertos de persistencia del kardex en memoria.
//
// Reproduce la semántica transaccional del driver de Postgres: bloqueo por ítem
// (equivalente a SELECT FOR UPDATE), escrituras diferidas hasta el Commit y descarte
// completo ante cualquier error.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu        sync.RWMutex
	items     map[string]*entity.StockItem
	order     []string                      // ids en orden de alta
	movements map[string][]*entity.Movement // por ítem, en orden de inserción
	seq       int64

	locksMu sync.Mutex
	locks   map[string]*itemLock // solo ítems con un dueño o en espera
}

// itemLock bloqueo exclusivo de un ítem; refs cuenta al dueño y a los que esperan.
type itemLock struct {
	ch   chan struct{}
	refs int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]*entity.StockItem),
		movements: make(map[string][]*entity.Movement),
		locks:     make(map[string]*itemLock),
	}
}

// Run implementa inventory.TxRunner. Si fn devuelve error no se aplica ningún cambio.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	t := s.begin()
	defer t.release()

	if err := fn(&txItems{t: t}, &txMovements{t: t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.commit()
	return nil
}

// Items repositorio de ítems fuera de transacción (cada llamada es atómica).
func (s *Store) Items() repository.StockItemRepository { return itemRepository{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return movementRepository{s: s} }

// lock adquiere el bloqueo del ítem; respeta la cancelación del contexto.
// La clave se copia: el id puede venir de un buffer que el llamador reutiliza.
func (s *Store) lock(ctx context.Context, id string) (*itemLock, error) {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &itemLock{ch: make(chan struct{}, 1)}
		s.locks[strings.Clone(id)] = l
	}
	l.refs++
	s.locksMu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return l, nil
	case <-ctx.Done():
		s.release(id, l)
		return nil, ctx.Err()
	}
}

func (s *Store) unlock(id string, l *itemLock) {
	<-l.ch
	s.release(id, l)
}

// release descuenta una referencia y olvida el bloqueo cuando nadie lo usa.
func (s *Store) release(id string, l *itemLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l.refs--
	if l.refs == 0 && s.locks[id] == l {
		delete(s.locks, id)
	}
}

func cloneItem(it *entity.StockItem) *entity.StockItem {
	c := *it
	if it.Threshold.Value != nil {
		v := *it.Threshold.Value
		c.Threshold.Value = &v
	}
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	if m.UnitPrice != nil {
		v := *m.UnitPrice
		c.UnitPrice = &v
	}
	if m.TotalCost != nil {
		v := *m.TotalCost
		c.TotalCost = &v
	}
	return &c
}

// ── Transacción ───────────────────────────────────────────────────────────────

type tx struct {
	s       *Store
	locked  []heldLock
	items   map[string]*entity.StockItem // escrituras pendientes (alta o actualización)
	created map[string]bool
	deleted map[string]bool
	movs    []*entity.Movement
}

func (s *Store) begin() *tx {
	return &tx{
		s:       s,
		items:   make(map[string]*entity.StockItem),
		created: make(map[string]bool),
		deleted: make(map[string]bool),
	}
}

// heldLock bloqueo tomado por una transacción, con su propia copia del id.
type heldLock struct {
	id string
	l  *itemLock
}

func (t *tx) release() {
	for _, h := range t.locked {
		t.s.unlock(h.id, h.l)
	}
	t.locked = nil
}

func (t *tx) holds(id string) bool {
	return slices.ContainsFunc(t.locked, func(h heldLock) bool { return h.id == id })
}

// read devuelve la versión visible para la transacción (pendiente o confirmada).
func (t *tx) read(id string) *entity.StockItem {
	if t.deleted[id] {
		return nil
	}
	if it, ok := t.items[id]; ok {
		return cloneItem(it)
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	if it, ok := t.s.items[id]; ok {
		return cloneItem(it)
	}
	return nil
}

func (t *tx) movementsOf(itemID string) []*entity.Movement {
	t.s.mu.RLock()
	list := make([]*entity.Movement, 0, len(t.s.movements[itemID]))
	for _, m := range t.s.movements[itemID] {
		list = append(list, cloneMovement(m))
	}
	t.s.mu.RUnlock()
	for _, m := range t.movs {
		if m.ItemID == itemID {
			list = append(list, cloneMovement(m))
		}
	}
	return list
}

func (t *tx) commit() {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range t.deleted {
		delete(s.items, id)
		s.order = slices.DeleteFunc(s.order, func(x string) bool { return x == id })
	}
	for id, it := range t.items {
		if t.created[id] {
			s.order = append(s.order, id)
		}
		s.items[id] = it
	}
	for _, m := range t.movs {
		s.seq++
		m.Seq = s.seq
		s.movements[m.ItemID] = append(s.movements[m.ItemID], cloneMovement(m))
	}
}

// ── Repositorio de ítems (transaccional) ──────────────────────────────────────

type txItems struct{ t *tx }

func (r *txItems) Create(ctx context.Context, item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if r.t.read(item.ID) != nil {
		return domain.ErrDuplicate
	}
	r.t.items[item.ID] = cloneItem(item)
	r.t.created[item.ID] = true
	return nil
}

func (r *txItems) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.t.read(id), nil
}

func (r *txItems) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	// Un ítem creado en esta misma transacción aún no es visible para otras
	if !r.t.created[id] && !r.t.holds(id) {
		id = strings.Clone(id)
		l, err := r.t.s.lock(ctx, id)
		if err != nil {
			return nil, err
		}
		r.t.locked = append(r.t.locked, heldLock{id: id, l: l})
	}
	return r.t.read(id), nil
}

func (r *txItems) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, status entity.StockStatus, unitCost decimal.Decimal) error {
	it := r.t.read(id)
	if it == nil {
		return domain.ErrItemNotFound
	}
	it.Quantity = quantity
	it.Status = status
	it.UnitCost = unitCost
	it.UpdatedAt = time.Now().UTC()
	r.t.items[id] = it
	return nil
}

func (r *txItems) Update(ctx context.Context, item *entity.StockItem) error {
	it := r.t.read(item.ID)
	if it == nil {
		return domain.ErrItemNotFound
	}
	it.Name = item.Name
	it.Unit = item.Unit
	it.Threshold = item.Threshold
	it.UnitPrice = item.UnitPrice
	it.Status = item.Status
	it.UpdatedAt = item.UpdatedAt
	r.t.items[item.ID] = cloneItem(it)
	return nil
}

func (r *txItems) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	r.t.s.mu.RLock()
	ids := slices.Clone(r.t.s.order)
	r.t.s.mu.RUnlock()
	for id := range r.t.created {
		ids = append(ids, id)
	}
	out := make([]*entity.StockItem, 0, limit)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		if it := r.t.read(id); it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *txItems) Delete(ctx context.Context, id string) error {
	if r.t.read(id) == nil {
		return domain.ErrItemNotFound
	}
	// Igual que ON DELETE RESTRICT: el kardex no se borra en cascada
	if len(r.t.movementsOf(id)) > 0 {
		return domain.ErrConflict
	}
	delete(r.t.items, id)
	if r.t.created[id] {
		delete(r.t.created, id)
		return nil
	}
	r.t.deleted[strings.Clone(id)] = true
	return nil
}

// ── Repositorio de movimientos (transaccional) ────────────────────────────────

type txMovements struct{ t *tx }

func (r *txMovements) Create(ctx context.Context, m *entity.Movement) error {
	if r.t.read(m.ItemID) == nil {
		return domain.ErrItemNotFound
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	// Seq se asigna al confirmar; el llamador recibe el valor en el mismo puntero
	r.t.movs = append(r.t.movs, m)
	return nil
}

func (r *txMovements) ListByItem(ctx context.Context, itemID string, order repository.SortOrder, limit, offset int) ([]*entity.Movement, error) {
	list := r.t.movementsOf(itemID)
	slices.SortStableFunc(list, func(a, b *entity.Movement) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return compareSeq(a.Seq, b.Seq)
	})
	if order == repository.NewestFirst {
		slices.Reverse(list)
	}
	if offset >= len(list) {
		return []*entity.Movement{}, nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// compareSeq ordena los pendientes (Seq 0) después de los confirmados.
func compareSeq(a, b int64) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

func (r *txMovements) CountByItem(ctx context.Context, itemID string) (int, error) {
	return len(r.t.movementsOf(itemID)), nil
}

func (r *txMovements) SumOutboundSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	add := func(m *entity.Movement) {
		if m.Direction != entity.DirectionOut || m.CreatedAt.Before(since) {
			return
		}
		out[m.ItemID] = out[m.ItemID].Add(m.Quantity)
	}
	r.t.s.mu.RLock()
	for _, list := range r.t.s.movements {
		for _, m := range list {
			add(m)
		}
	}
	r.t.s.mu.RUnlock()
	for _, m := range r.t.movs {
		add(m)
	}
	return out, nil
}
