package repository

import (
	"cmp"
	"slices"

	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/storage"
)

// Orders returns the typed travel order collection.
func (r *Repository) Orders() Collection[models.TravelOrder] {
	return NewCollection[models.TravelOrder](r, KeySPPD)
}

// Lumpsums returns the typed lumpsum collection.
func (r *Repository) Lumpsums() Collection[models.LumpsumEntry] {
	return NewCollection[models.LumpsumEntry](r, KeyLumpsum)
}

// Receipts returns the typed receipt collection.
func (r *Repository) Receipts() Collection[models.Receipt] {
	return NewCollection[models.Receipt](r, KeyKuitansi)
}

// AllSPPD returns every travel order.
func (r *Repository) AllSPPD() []models.TravelOrder { return r.Orders().All() }

// SaveSPPD stores a new travel order.
func (r *Repository) SaveSPPD(order models.TravelOrder) (*models.TravelOrder, error) {
	return r.Orders().Add(order)
}

// UpdateSPPD applies patch to the travel order with the given id.
func (r *Repository) UpdateSPPD(id string, patch models.TravelOrderPatch) (*models.TravelOrder, error) {
	return r.Orders().Update(id, patch)
}

// GetSPPDByID returns the travel order with the given id, or nil.
func (r *Repository) GetSPPDByID(id string) *models.TravelOrder { return r.Orders().ByID(id) }

// DeleteSPPD removes a travel order together with every lumpsum entry referencing it.
// Both collections are written in one backend batch. Receipts keep their reference.
func (r *Repository) DeleteSPPD(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lumpsum := slices.DeleteFunc(r.get(KeyLumpsum), func(rec Record) bool {
		return rec.String("sppdId") == id
	})
	orders := slices.DeleteFunc(r.get(KeySPPD), func(rec Record) bool {
		return rec.ID() == id
	})

	lumpsumData, err := encodeRecords(lumpsum)
	if err != nil {
		return err
	}
	orderData, err := encodeRecords(orders)
	if err != nil {
		return err
	}

	return r.backend.Apply(
		storage.Put(string(KeyLumpsum), lumpsumData),
		storage.Put(string(KeySPPD), orderData),
	)
}

// ListSPPD returns the travel orders issued in month (YYYY-MM, empty for all),
// most recent issue date first.
func (r *Repository) ListSPPD(month string) []models.TravelOrder {
	orders := r.AllSPPD()
	if month != "" {
		orders = slices.DeleteFunc(orders, func(o models.TravelOrder) bool {
			return o.Month() != month
		})
	}
	slices.SortStableFunc(orders, func(a, b models.TravelOrder) int {
		return cmp.Compare(b.Tanggal, a.Tanggal)
	})
	return orders
}

// AllLumpsum returns every lumpsum entry.
func (r *Repository) AllLumpsum() []models.LumpsumEntry { return r.Lumpsums().All() }

// SaveLumpsum stores a new lumpsum entry. The caller computes Total.
func (r *Repository) SaveLumpsum(entry models.LumpsumEntry) (*models.LumpsumEntry, error) {
	return r.Lumpsums().Add(entry)
}

// UpdateLumpsum applies patch to the lumpsum entry with the given id.
func (r *Repository) UpdateLumpsum(id string, patch models.LumpsumPatch) (*models.LumpsumEntry, error) {
	return r.Lumpsums().Update(id, patch)
}

// GetLumpsumByID returns the lumpsum entry with the given id, or nil.
func (r *Repository) GetLumpsumByID(id string) *models.LumpsumEntry { return r.Lumpsums().ByID(id) }

// GetLumpsumBySPPD returns the first lumpsum entry referencing the travel order, or nil.
func (r *Repository) GetLumpsumBySPPD(sppdID string) *models.LumpsumEntry {
	return r.Lumpsums().Find(func(l models.LumpsumEntry) bool { return l.SPPDID == sppdID })
}

// DeleteLumpsum removes the lumpsum entry with the given id.
func (r *Repository) DeleteLumpsum(id string) error { return r.Lumpsums().Delete(id) }

// AllKuitansi returns every receipt.
func (r *Repository) AllKuitansi() []models.Receipt { return r.Receipts().All() }

// SaveKuitansi stores a new receipt.
func (r *Repository) SaveKuitansi(receipt models.Receipt) (*models.Receipt, error) {
	return r.Receipts().Add(receipt)
}

// UpdateKuitansi applies patch to the receipt with the given id.
func (r *Repository) UpdateKuitansi(id string, patch models.ReceiptPatch) (*models.Receipt, error) {
	return r.Receipts().Update(id, patch)
}

// GetKuitansiByID returns the receipt with the given id, or nil.
func (r *Repository) GetKuitansiByID(id string) *models.Receipt { return r.Receipts().ByID(id) }

// DeleteKuitansi removes the receipt with the given id.
func (r *Repository) DeleteKuitansi(id string) error { return r.Receipts().Delete(id) }
