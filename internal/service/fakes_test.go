package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/booth-market/internal/config"
	"github.com/iliyamo/booth-market/internal/model"
	"github.com/iliyamo/booth-market/internal/repository"
)

// memVendors emulates the vendor and vendor_auth tables.
type memVendors struct {
	mu      sync.Mutex
	nextID  uint64
	vendors map[uint64]model.Vendor
	auth    []model.VendorAuth
	ops     []string
	err     error
}

func newMemVendors() *memVendors {
	return &memVendors{vendors: map[uint64]model.Vendor{}}
}

func (m *memVendors) List(context.Context) ([]model.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Vendor, 0, len(m.vendors))
	for _, v := range m.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memVendors) GetByID(_ context.Context, id uint64) (*model.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (m *memVendors) emailTaken(email string) bool {
	for _, a := range m.auth {
		if a.Email == email {
			return true
		}
	}
	return false
}

func (m *memVendors) CreateWithAuth(_ context.Context, v *model.Vendor, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.emailTaken(email) {
		return repository.ErrDuplicate
	}
	m.nextID++
	v.ID = m.nextID
	m.vendors[v.ID] = *v
	m.auth = append(m.auth, model.VendorAuth{ID: uint64(len(m.auth) + 1), VendorID: v.ID, Email: email, PasswordHash: hash})
	return nil
}

func (m *memVendors) Update(_ context.Context, v *model.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vendors[v.ID]; !ok {
		return repository.ErrNotFound
	}
	m.vendors[v.ID] = *v
	return nil
}

func (m *memVendors) Delete(_ context.Context, id uint64, policy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if policy == config.DeleteRestrict {
		return repository.ErrConflict
	}
	kept := m.auth[:0]
	for _, a := range m.auth {
		if a.VendorID != id {
			kept = append(kept, a)
		}
	}
	m.auth = kept
	m.ops = append(m.ops, "delete vendor_auth")
	if _, ok := m.vendors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vendors, id)
	m.ops = append(m.ops, "delete vendor")
	return nil
}

func (m *memVendors) GetAuthByEmail(_ context.Context, email string) (*model.VendorAuth, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.auth {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memVendors) FindForRecovery(_ context.Context, email, phone, owner string) (*model.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := uint64(1); id <= m.nextID; id++ {
		v, ok := m.vendors[id]
		if ok && v.Email == email && v.Phone == phone && v.Owner == owner {
			return &v, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memVendors) SetPassword(_ context.Context, vendorID uint64, email, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i := range m.auth {
		if m.auth[i].VendorID == vendorID {
			m.auth[i].PasswordHash = hash
			found = true
		}
	}
	if found {
		return false, nil
	}
	m.auth = append(m.auth, model.VendorAuth{ID: uint64(len(m.auth) + 1), VendorID: vendorID, Email: email, PasswordHash: hash})
	return true, nil
}

func (m *memVendors) authRows(vendorID uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.auth {
		if a.VendorID == vendorID {
			n++
		}
	}
	return n
}

// memProducts emulates the product and saleitem tables.
type memProducts struct {
	products  []model.Product
	saleItems []model.SaleItem
}

func (m *memProducts) ListByVendor(_ context.Context, vid uint64) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.products {
		if p.VendorID == vid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) GetByID(_ context.Context, id uint64) (*model.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memProducts) Create(_ context.Context, p *model.Product) error {
	p.ID = uint64(len(m.products) + 1)
	m.products = append(m.products, *p)
	return nil
}

func (m *memProducts) Update(_ context.Context, p *model.Product) error {
	for i := range m.products {
		if m.products[i].ID == p.ID {
			p.VendorID = m.products[i].VendorID
			m.products[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memProducts) Delete(_ context.Context, id uint64, policy string) error {
	if policy == config.DeleteRestrict {
		for _, si := range m.saleItems {
			if si.ProductID == id {
				return repository.ErrConflict
			}
		}
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memProducts) Search(_ context.Context, search string, page, limit int) ([]model.Product, int64, error) {
	var hits []model.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			hits = append(hits, p)
		}
	}
	from := (page - 1) * limit
	if from > len(hits) {
		from = len(hits)
	}
	to := from + limit
	if to > len(hits) {
		to = len(hits)
	}
	return append([]model.Product{}, hits[from:to]...), int64(len(hits)), nil
}

func (m *memProducts) SaleItems(_ context.Context, pid uint64) ([]model.SaleItem, error) {
	out := []model.SaleItem{}
	for _, si := range m.saleItems {
		if si.ProductID == pid {
			out = append(out, si)
		}
	}
	return out, nil
}

// memReservations emulates the reservation table, including the reject
// policy's overlap check.
type memReservations struct {
	mu   sync.Mutex
	rows []model.Reservation
}

func (m *memReservations) List(context.Context) ([]model.Reservation, error) {
	return append([]model.Reservation{}, m.rows...), nil
}

func (m *memReservations) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memReservations) ListByBooth(_ context.Context, bid uint64, day string) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for _, r := range m.rows {
		if r.BoothID == bid && (day == "" || r.Date.Format(repository.DayLayout) == day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) ListByDay(_ context.Context, day string) ([]model.DayReservation, error) {
	out := []model.DayReservation{}
	for _, r := range m.rows {
		if r.Date.Format(repository.DayLayout) == day {
			out = append(out, model.DayReservation{Reservation: r, VendorName: "vendor"})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BoothID != out[j].BoothID {
			return out[i].BoothID < out[j].BoothID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *memReservations) Create(_ context.Context, res *model.Reservation, policy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if policy == config.ConflictReject {
		for _, r := range m.rows {
			if r.Overlaps(*res) {
				return repository.ErrConflict
			}
		}
	}
	res.ID = uint64(len(m.rows) + 1)
	m.rows = append(m.rows, *res)
	return nil
}

type memBooths struct{ booths []model.Booth }

func (m *memBooths) List(context.Context) ([]model.Booth, error) { return m.booths, nil }

func (m *memBooths) GetByID(_ context.Context, id uint64) ([]model.Booth, error) {
	out := []model.Booth{}
	for _, b := range m.booths {
		if b.ID == id {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBooths) LatestForVendor(context.Context, uint64) ([]model.VendorBooth, error) {
	return []model.VendorBooth{}, nil
}

type published struct {
	key   string
	event any
}

// chanPublisher records published events on a buffered channel.
type chanPublisher struct{ ch chan published }

func newChanPublisher() *chanPublisher { return &chanPublisher{ch: make(chan published, 16)} }

func (p *chanPublisher) Publish(_ context.Context, key string, event any) error {
	p.ch <- published{key: key, event: event}
	return nil
}

func (p *chanPublisher) Close() error { return nil }
